// Package evaluator expands a kapp into an ordered queue of outgoing
// key-simulation effects, appends it to the in-memory (and, when
// interactive, persisted) kapp log, and updates the n-gram table.
package evaluator

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/keykapp/keykapp/internal/commitlog"
	"github.com/keykapp/keykapp/internal/kapp"
	"github.com/keykapp/keykapp/internal/ngram"
)

// DrainPacing is the fixed inter-simulation delay between queued effects: it
// gives the OS input pipeline time to deliver each synthetic event before
// the next, and keeps the drainer from re-entering while still draining.
const DrainPacing = 5 * time.Millisecond

// Simulator is the external key-synthesis primitive: inject a full key
// press-or-release event into the OS input stream. A simulate failure is
// fatal.
type Simulator interface {
	Simulate(e kapp.KeyEvent) error
}

// Evaluator owns the in-memory kapp log, the n-gram table, the pending
// effect queue, and the interactivity flag that gates persistence and
// printing. It is not safe for concurrent use — the reducer's event loop is
// single-threaded.
type Evaluator struct {
	log         *commitlog.Log
	ngrams      *ngram.Table
	kappLog     []kapp.Kapp
	effects     []kapp.KeyEvent
	interactive bool
	out         *bufio.Writer
}

// New builds an Evaluator over an already-open commit log and n-gram table.
// Interactivity starts false; the bootstrap sets it true once replay
// completes.
func New(log *commitlog.Log, ngrams *ngram.Table, out *bufio.Writer) *Evaluator {
	return &Evaluator{log: log, ngrams: ngrams, out: out}
}

// SetInteractive toggles the interactivity flag.
func (e *Evaluator) SetInteractive(interactive bool) {
	e.interactive = interactive
}

// Interactive reports the current interactivity flag.
func (e *Evaluator) Interactive() bool {
	return e.interactive
}

// KappLog returns the in-memory kapp log accumulated so far. The slice is
// owned by the caller's view only; callers must not mutate it.
func (e *Evaluator) KappLog() []kapp.Kapp {
	return e.kappLog
}

// NGrams exposes the n-gram table for keybinding recomputation.
func (e *Evaluator) NGrams() *ngram.Table {
	return e.ngrams
}

// Eval evaluates k: an Atom enqueues one Simulate effect; a List evaluates
// its children left-to-right.
func (e *Evaluator) Eval(k kapp.Kapp) {
	if k.Form == kapp.FormAtom {
		e.effects = append(e.effects, k.Event)
		return
	}
	for _, c := range k.Children {
		e.Eval(c)
	}
}

// LoggedEval evaluates k, appends it to the in-memory log, updates the
// n-gram table, and — only while interactive — persists and prints its
// rendering.
func (e *Evaluator) LoggedEval(k kapp.Kapp) {
	e.Eval(k)
	e.kappLog = append(e.kappLog, k)
	e.ngrams.UpdateFromLogTail(e.kappLog)

	if !e.interactive {
		return
	}
	if _, err := e.log.Append(k); err != nil {
		fatalf("evaluator: persist failed: %v", err)
	}
	if e.out != nil {
		fmt.Fprintln(e.out, k.Render())
		if err := e.out.Flush(); err != nil {
			fatalf("evaluator: stdout flush failed: %v", err)
		}
	}
}

// PerformEffects drains the effect queue head to tail, calling sim.Simulate
// between each with DrainPacing's sleep. A simulate failure is fatal.
func (e *Evaluator) PerformEffects(sim Simulator) {
	for len(e.effects) > 0 {
		ev := e.effects[0]
		e.effects = e.effects[1:]
		if err := sim.Simulate(ev); err != nil {
			fatalf("evaluator: simulate failed: %v", err)
		}
		time.Sleep(DrainPacing)
	}
}

// ClearEffects empties the effect queue without performing any of its
// entries. Used once by the replay bootstrap: replay must never
// re-simulate historical effects.
func (e *Evaluator) ClearEffects() {
	e.effects = nil
}

// PendingEffects reports the number of effects currently queued.
func (e *Evaluator) PendingEffects() int {
	return len(e.effects)
}

// fatalf reports an unrecoverable error (serialization, log I/O, or
// simulate failure) and terminates the process. There is no retry and no
// partial-state recovery.
func fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Error(msg)
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
