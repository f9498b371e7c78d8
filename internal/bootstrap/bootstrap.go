// Package bootstrap implements crash-recoverable replay: before the OS
// grab is ever engaged, every persisted kapp is replayed through the
// evaluator with effects suppressed, so the n-gram table and kapp log are
// rebuilt exactly as they stood before the last shutdown.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/keykapp/keykapp/internal/commitlog"
	"github.com/keykapp/keykapp/internal/evaluator"
	"github.com/keykapp/keykapp/internal/reducer"
)

// Run replays an already-open commit log into eval and reducer before the
// caller engages the OS grab:
//
//  1. interactive = false
//  2. replay every persisted kapp via LoggedEval (persistence/printing
//     skipped automatically because interactive is false)
//  3. clear the effect queue unconditionally — historical effects are
//     never re-simulated
//  4. recompute keybindings and render once
//  5. interactive = true
//
// A decode failure during replay is fatal: partial replay is not
// permitted, so Run returns an error for the caller to report, and the
// caller must not proceed to engage the OS grab.
func Run(log *commitlog.Log, eval *evaluator.Evaluator, r *reducer.Reducer) error {
	eval.SetInteractive(false)

	if err := log.Replay(eval.LoggedEval); err != nil {
		return fmt.Errorf("bootstrap: replay failed: %w", err)
	}
	replayed := len(eval.KappLog())

	eval.ClearEffects()
	r.RecomputeBindings()
	r.Render()

	eval.SetInteractive(true)
	slog.Info("bootstrap replay complete", "kapps_replayed", replayed)
	return nil
}
