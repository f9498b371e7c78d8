// Package host binds the mode reducer into the two OS-level external
// collaborators it needs: the "grab and forward" primitive that delivers
// every hardware key event to the reducer, and the key-synthesis primitive
// the effect drainer calls to inject the reducer's outgoing Simulate
// effects back into the OS.
package host

import (
	"github.com/keykapp/keykapp/internal/kapp"
	"github.com/keykapp/keykapp/internal/reducer"
)

// OSEventKind tags a grabbed OS event: a key press, a key release, or
// anything else the grab primitive reports.
type OSEventKind int

const (
	KeyPress OSEventKind = iota
	KeyRelease
	Other
)

// OSEvent is one event delivered by the grab primitive.
type OSEvent struct {
	Kind OSEventKind
	Key  kapp.Key
}

// Handler processes one grabbed OS event and returns the reducer's
// verdict: Drop suppresses the original hardware event, Keep forwards it.
// Non-key events are always Keep — the reducer's Step is never called for
// them, since keyboard-state tracking and mode logic only care about key
// transitions.
type Handler func(OSEvent) reducer.Decision

// Grabber is the OS-level "grab and forward" primitive. It must block,
// deliver every event on a single callback thread, and return only when
// the device stops reporting events (or never, in the usual
// run-until-terminated case). Engagement failure is fatal at startup.
type Grabber interface {
	Engage(handler Handler) error
}

// Simulator injects a key event into the OS input stream. It satisfies
// evaluator.Simulator.
type Simulator interface {
	Simulate(e kapp.KeyEvent) error
}

// StepHandler adapts a *reducer.Reducer into a Handler: key events are
// translated to kapp.KeyEvent and stepped through the reducer; anything
// else is passed straight through.
func StepHandler(r *reducer.Reducer) Handler {
	return func(ev OSEvent) reducer.Decision {
		switch ev.Kind {
		case KeyPress:
			return r.Step(kapp.PressOf(ev.Key))
		case KeyRelease:
			return r.Step(kapp.ReleaseOf(ev.Key))
		default:
			return reducer.Keep
		}
	}
}
