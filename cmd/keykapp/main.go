// Command keykapp is an adaptive keyboard remapper: it grabs the
// keyboard, evaluates and logs every kapp it produces, learns which
// sequences recur, and lets Command mode invoke the best-learned
// sequences from the home row.
//
// No arguments, flags, or environment variables are read. The commit log
// lives at ./log in the current working directory; diagnostics go to
// ./log/debug.log so they never collide with the terminal renderer's
// stdout snapshots.
package main

import (
	"bufio"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/keykapp/keykapp/internal/bootstrap"
	"github.com/keykapp/keykapp/internal/commitlog"
	"github.com/keykapp/keykapp/internal/evaluator"
	"github.com/keykapp/keykapp/internal/host"
	"github.com/keykapp/keykapp/internal/ngram"
	"github.com/keykapp/keykapp/internal/reducer"
	"github.com/keykapp/keykapp/internal/render"
)

// logDir is the fixed working-directory-relative path to the commit log
// and debug log. The CLI takes no arguments, flags, or environment
// variables, so there is nothing to make this configurable from.
const logDir = "log"

// defaultKeyboardDevice is the evdev node grabbed on Linux. Real
// deployments should confirm this node is the keyboard before running —
// there is no discovery or configuration surface.
const defaultKeyboardDevice = "/dev/input/event0"

func main() {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "keykapp: failed to create %s: %v\n", logDir, err)
		os.Exit(1)
	}

	debugLog, err := os.OpenFile(logDir+"/debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keykapp: failed to open debug log: %v\n", err)
		os.Exit(1)
	}
	defer debugLog.Close()

	// Every stdlib-log diagnostic and every structured log/slog record
	// (the commit log's persist/replay trace) both land in debug.log, so
	// stdout is reserved entirely for the interactive kapp stream and the
	// idle renderer's snapshots.
	log.SetOutput(debugLog)
	slog.SetDefault(slog.New(slog.NewTextHandler(debugLog, nil)))

	commitLog := commitlog.Open(logDir)
	defer commitLog.Close()

	sim, err := host.NewPlatformSimulator()
	if err != nil {
		log.Fatalf("keykapp: simulator engagement failed: %v", err)
	}

	stdout := bufio.NewWriter(os.Stdout)
	eval := evaluator.New(commitLog, ngram.New(), stdout)
	renderer := render.New(os.Stdout)
	r := reducer.New(eval, sim, renderer)

	if err := bootstrap.Run(commitLog, eval, r); err != nil {
		log.Fatalf("keykapp: bootstrap replay failed: %v", err)
	}

	grabber := host.NewPlatformGrabber(defaultKeyboardDevice)
	if err := grabber.Engage(host.StepHandler(r)); err != nil {
		log.Fatalf("keykapp: grab engagement failed: %v", err)
	}
}
