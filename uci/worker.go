package uci

import (
	"sync/atomic"
	"time"

	"github.com/ekmadsen/madchess/move"
	"github.com/ekmadsen/madchess/timeman"
)

// stopWait is how long a `stop` (or an implicit stop ahead of a new `go`)
// waits for the worker goroutine to notice and return, per spec.md §5.
const stopWait = 500 * time.Millisecond

// stopFlag is the Stopper the worker goroutine polls, set from the main
// goroutine on `stop` or an implicit stop. One atomic.Bool, no lock --
// grounded on hailam-chessplay's Worker.stopFlag and blunext-chess's
// SearchContext.stopped.
type stopFlag struct {
	flag atomic.Bool
}

func newStopFlag() *stopFlag { return &stopFlag{} }

// Stopped implements search.Stopper.
func (s *stopFlag) Stopped() bool { return s.flag.Load() }

func (s *stopFlag) set(v bool) { s.flag.Store(v) }

// goRequest is one `go` command handed to the worker goroutine.
type goRequest struct {
	limits timeman.Limits
	moves  []move.Move
	mateIn int
	done   chan struct{}
}

// workerLoop is the single long-lived goroutine that owns every search
// (spec.md §5: "one worker goroutine owns the search for its lifetime").
// It blocks on workCh between searches; the main goroutine is the only
// other writer of engine state, and only while this loop is idle.
func (e *Engine) workerLoop() {
	for req := range e.workCh {
		e.runSearch(req)
	}
}

// stopAndWait flips the stop flag and waits up to stopWait for the
// in-flight search (if any) to return. Every command that mutates engine
// state the worker goroutine reads -- position, ucinewgame, setoption
// Hash/ClearHash, a new go -- calls this first.
func (e *Engine) stopAndWait() {
	e.busyMu.Lock()
	done := e.done
	e.busyMu.Unlock()
	if done == nil {
		return
	}
	e.stop.set(true)
	select {
	case <-done:
	case <-time.After(stopWait):
	}
}
