package evaluator

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/keykapp/keykapp/internal/commitlog"
	"github.com/keykapp/keykapp/internal/kapp"
	"github.com/keykapp/keykapp/internal/ngram"
)

type recordingSimulator struct {
	calls []kapp.KeyEvent
}

func (r *recordingSimulator) Simulate(e kapp.KeyEvent) error {
	r.calls = append(r.calls, e)
	return nil
}

func newTestEvaluator(t *testing.T) (*Evaluator, *bytes.Buffer) {
	t.Helper()
	log := commitlog.Open(t.TempDir())
	t.Cleanup(func() { log.Close() })
	var buf bytes.Buffer
	return New(log, ngram.New(), bufio.NewWriter(&buf)), &buf
}

// Expectations:
//   - Press(A) then Release(A) via LoggedEval produces a kapp log of
//     [Atom(Press(A)), Atom(Release(A))]
//   - PerformEffects drains exactly two Simulate calls, in order, without
//     losing which key each call refers to
func TestLoggedEvalThenPerformEffectsDrainsPressAndRelease(t *testing.T) {
	e, _ := newTestEvaluator(t)
	e.SetInteractive(true)

	e.LoggedEval(kapp.Atom(kapp.PressOf(kapp.KeyA)))
	e.LoggedEval(kapp.Atom(kapp.ReleaseOf(kapp.KeyA)))

	log := e.KappLog()
	if len(log) != 2 {
		t.Fatalf("kapp log length = %d, want 2", len(log))
	}
	if !log[0].Equal(kapp.Atom(kapp.PressOf(kapp.KeyA))) || !log[1].Equal(kapp.Atom(kapp.ReleaseOf(kapp.KeyA))) {
		t.Fatalf("kapp log = %v, want [Press(A), Release(A)]", log)
	}

	sim := &recordingSimulator{}
	e.PerformEffects(sim)
	if len(sim.calls) != 2 || sim.calls[0].Kind != kapp.Press || sim.calls[1].Kind != kapp.Release {
		t.Fatalf("simulate calls = %v, want [Press, Release]", sim.calls)
	}
	if sim.calls[0].Key != kapp.KeyA || sim.calls[1].Key != kapp.KeyA {
		t.Fatalf("simulate calls lost the key: %v", sim.calls)
	}
	if e.PendingEffects() != 0 {
		t.Fatalf("expected effect queue empty after draining")
	}
}

// Expectations:
//   - A List evaluates its children left-to-right, enqueueing one effect
//     per atom in order
func TestEvalListOrdering(t *testing.T) {
	e, _ := newTestEvaluator(t)
	list := kapp.List(
		kapp.Atom(kapp.PressOf(kapp.KeyJ)),
		kapp.Atom(kapp.ReleaseOf(kapp.KeyJ)),
		kapp.List(kapp.Atom(kapp.PressOf(kapp.KeyF))),
	)
	e.Eval(list)
	if e.PendingEffects() != 3 {
		t.Fatalf("pending effects = %d, want 3", e.PendingEffects())
	}
}

// Expectations:
//   - While not interactive, LoggedEval never calls persist or prints
func TestLoggedEvalNonInteractiveDoesNotPersist(t *testing.T) {
	e, out := newTestEvaluator(t)
	e.SetInteractive(false)
	e.LoggedEval(kapp.Atom(kapp.PressOf(kapp.KeyA)))

	if out.Len() != 0 {
		t.Fatalf("expected no output while non-interactive, got %q", out.String())
	}
	var replayed int
	// The underlying log must contain zero entries: LoggedEval never
	// called persist while non-interactive.
	l2 := e.log
	if err := l2.Replay(func(kapp.Kapp) { replayed++ }); err != nil {
		t.Fatalf("replay error: %v", err)
	}
	if replayed != 0 {
		t.Fatalf("expected zero persisted entries, got %d", replayed)
	}
}

// Expectations:
//   - ClearEffects empties the queue regardless of what Eval enqueued
func TestClearEffects(t *testing.T) {
	e, _ := newTestEvaluator(t)
	e.Eval(kapp.Atom(kapp.PressOf(kapp.KeyA)))
	e.ClearEffects()
	if e.PendingEffects() != 0 {
		t.Fatalf("expected empty effect queue after ClearEffects")
	}
}
