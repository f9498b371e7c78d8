// Package reducer implements the four-state InputMode machine that drives
// logged evaluation, keybinding invocation, and mode crossings for a live
// stream of OS key events.
package reducer

import (
	"github.com/keykapp/keykapp/internal/evaluator"
	"github.com/keykapp/keykapp/internal/kapp"
	"github.com/keykapp/keykapp/internal/keyset"
)

// Renderer is the terminal-output hook, invoked whenever the reducer goes
// idle after a Release.
type Renderer interface {
	Render(snap Snapshot)
}

// BindingLine is one row of the idle snapshot: a keyswitch bound to a kapp,
// together with that kapp's current n-gram score.
type BindingLine struct {
	Key   kapp.Key
	Kapp  kapp.Kapp
	Score uint64
}

// Snapshot is everything the renderer needs to print the idle text block.
type Snapshot struct {
	Mode        InputMode
	PressedKeys []kapp.Key
	Bindings    []BindingLine
}

// Reducer owns the mode state, the keyboard-state tracker, the evaluator,
// the current keybindings, and the collaborators it drives on every step.
// It is not safe for concurrent use — callers run it from a single
// cooperative event loop with no locks.
type Reducer struct {
	mode     InputMode
	keys     *keyset.Set
	eval     *evaluator.Evaluator
	sim      evaluator.Simulator
	renderer Renderer
	bindings map[kapp.Key]kapp.Kapp
}

// New builds a Reducer starting in Insert mode with an empty keyboard state
// and no keybindings.
func New(eval *evaluator.Evaluator, sim evaluator.Simulator, renderer Renderer) *Reducer {
	return &Reducer{
		mode:     Insert,
		keys:     keyset.New(),
		eval:     eval,
		sim:      sim,
		renderer: renderer,
		bindings: make(map[kapp.Key]kapp.Kapp),
	}
}

// Mode returns the reducer's current InputMode, for tests and the host's
// diagnostics.
func (r *Reducer) Mode() InputMode {
	return r.mode
}

// Binding returns the kapp currently bound to keyswitch k, and whether a
// binding exists at all.
func (r *Reducer) Binding(k kapp.Key) (kapp.Kapp, bool) {
	b, ok := r.bindings[k]
	return b, ok
}

// Step processes one physical key event and returns the reducer's verdict
// to the OS grab primitive. Non-key OS events never reach this method — the
// host keeps them pass-through before calling Step, since they never touch
// keyboard state.
func (r *Reducer) Step(e kapp.KeyEvent) Decision {
	switch r.mode {
	case Insert:
		r.stepInsert(e)
	case LeavingInsertEnteringCommand:
		if e.Kind == kapp.Press {
			// A stray Press is tracked but never emitted and never
			// completes the crossing.
			r.keys.Apply(e)
		} else {
			r.stepLeavingInsertEnteringCommand(e)
		}
	case Command:
		r.stepCommand(e)
	case LeavingCommandEnteringInsert:
		if e.Kind == kapp.Press {
			r.keys.Apply(e)
		} else {
			r.stepLeavingCommandEnteringInsert(e)
		}
	}
	r.postStep(e)
	return Drop
}

func (r *Reducer) stepInsert(e kapp.KeyEvent) {
	r.keys.Apply(e)
	if r.keys.EnterCommandMode() {
		r.mode = LeavingInsertEnteringCommand
		return
	}
	r.eval.LoggedEval(kapp.FromEvent(e))
}

func (r *Reducer) stepLeavingInsertEnteringCommand(e kapp.KeyEvent) {
	preEnterCommand := r.keys.EnterCommandMode()
	preSize := r.keys.Len()

	if !preEnterCommand {
		r.eval.LoggedEval(kapp.FromEvent(e))
	}
	r.keys.Apply(e)
	if !preEnterCommand && preSize == 1 {
		r.mode = Command
	}
}

func (r *Reducer) stepCommand(e kapp.KeyEvent) {
	r.keys.Apply(e)
	switch {
	case r.keys.EnterInsertMode():
		r.mode = LeavingCommandEnteringInsert
	case r.keys.EnterCommandMode():
		// Absorb the triggering chord's own remaining press/release activity.
	default:
		if sole, ok := r.keys.SoleKey(); ok && kapp.IsKeyswitch(sole) {
			if binding, ok := r.bindings[sole]; ok {
				r.eval.LoggedEval(binding)
			}
		}
	}
}

func (r *Reducer) stepLeavingCommandEnteringInsert(e kapp.KeyEvent) {
	preSize := r.keys.Len()
	if preSize == 1 {
		r.mode = Insert
	}
	r.keys.Apply(e)
}

// postStep runs the post-step actions common to every state: recompute
// keybindings on idle, drain the effect queue, and render on a Release that
// leaves the pressed set empty.
func (r *Reducer) postStep(e kapp.KeyEvent) {
	if r.keys.Empty() {
		r.RecomputeBindings()
	}
	r.eval.PerformEffects(r.sim)
	if e.Kind == kapp.Release && r.keys.Empty() {
		r.Render()
	}
}

// RecomputeBindings zips the keyswitches, in order, against the n-gram
// table's current top entries: each keyswitch is bound to the
// correspondingly ranked kapp, or left unbound if fewer entries exist than
// keyswitches. Exported so the replay bootstrap can force one recomputation
// after replay without waiting for the pressed set to go idle.
func (r *Reducer) RecomputeBindings() {
	top := r.eval.NGrams().Top(len(kapp.Keyswitches))
	r.bindings = make(map[kapp.Key]kapp.Kapp, len(top))
	for i, sw := range kapp.Keyswitches {
		if i >= len(top) {
			break
		}
		r.bindings[sw] = top[i]
	}
}

// Render invokes the renderer hook with the current mode, pressed keys, and
// keybindings. Exported so the replay bootstrap can trigger the one-time
// post-replay render.
func (r *Reducer) Render() {
	if r.renderer == nil {
		return
	}
	snap := Snapshot{Mode: r.mode, PressedKeys: r.keys.Snapshot()}
	for _, sw := range kapp.Keyswitches {
		binding, ok := r.bindings[sw]
		if !ok {
			continue
		}
		snap.Bindings = append(snap.Bindings, BindingLine{
			Key:   sw,
			Kapp:  binding,
			Score: r.eval.NGrams().ScoreOf(binding),
		})
	}
	r.renderer.Render(snap)
}
