package uci

import (
	"strconv"
	"time"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/internal/bitutil"
	"github.com/ekmadsen/madchess/move"
	"github.com/ekmadsen/madchess/search"
	"github.com/ekmadsen/madchess/timeman"
)

// handleGo parses `go [searchmoves ...] [wtime N] [btime N] [winc N]
// [binc N] [movestogo N] [depth N] [nodes N] [mate N] [movetime N]
// [infinite]` and hands a goRequest to the worker goroutine. Any search
// already in flight is stopped and waited on first (spec.md §5's "a new
// go implicitly stops and waits for the prior search").
func (e *Engine) handleGo(args []string) {
	e.stopAndWait()

	limits, searchMoveTokens, mateIn := parseGoArgs(args)

	var searchMoves []move.Move
	if len(searchMoveTokens) > 0 {
		legal := e.legalMoves()
		for _, tok := range searchMoveTokens {
			if m, ok := board.ParseUCIMove(tok, legal); ok {
				searchMoves = append(searchMoves, m)
			} else {
				e.out.errorf("go searchmoves: ignoring malformed or illegal move %q", tok)
			}
		}
	}

	done := make(chan struct{})
	e.busyMu.Lock()
	e.done = done
	e.busyMu.Unlock()

	e.workCh <- goRequest{limits: limits, moves: searchMoves, mateIn: mateIn, done: done}
}

// parseGoArgs reads go's argument tokens into a Limits and the raw
// searchmoves/mate sub-arguments.
func parseGoArgs(args []string) (limits timeman.Limits, searchMoves []string, mateIn int) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "searchmoves":
			for i+1 < len(args) && !isGoKeyword(args[i+1]) {
				i++
				searchMoves = append(searchMoves, args[i])
			}
		case "wtime":
			i++
			limits.WhiteTime = parseMillis(argAt(args, i))
		case "btime":
			i++
			limits.BlackTime = parseMillis(argAt(args, i))
		case "winc":
			i++
			limits.WhiteIncrement = parseMillis(argAt(args, i))
		case "binc":
			i++
			limits.BlackIncrement = parseMillis(argAt(args, i))
		case "movestogo":
			i++
			limits.MovesToGo = parseIntArg(argAt(args, i))
		case "depth":
			i++
			limits.Depth = parseIntArg(argAt(args, i))
		case "nodes":
			i++
			n := parseIntArg(argAt(args, i))
			if n > 0 {
				limits.Nodes = uint64(n)
			}
		case "mate":
			i++
			mateIn = parseIntArg(argAt(args, i))
		case "movetime":
			i++
			limits.MoveTime = parseMillis(argAt(args, i))
		case "infinite":
			limits.Infinite = true
		}
	}
	return limits, searchMoves, mateIn
}

func isGoKeyword(s string) bool {
	switch s {
	case "wtime", "btime", "winc", "binc", "movestogo", "depth", "nodes", "mate", "movetime", "infinite":
		return true
	}
	return false
}

func argAt(args []string, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

func parseIntArg(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseMillis(s string) time.Duration {
	return time.Duration(parseIntArg(s)) * time.Millisecond
}

// runSearch executes one go-command on the worker goroutine: it owns the
// board, cache and heuristic tables for the search's duration, reports
// progress through msg, and prints `bestmove` when done.
func (e *Engine) runSearch(req goRequest) {
	defer close(req.done)

	e.stop.set(false)
	e.cache.NewSearch()

	pos := e.board.Current()
	occupancy := bitutil.CountBits(pos.Occupancy)
	tm := timeman.New(req.limits, pos.ColorToMove == board.White, occupancy)

	msg := &messenger{out: e.out, b: e.board}
	s := search.NewSearcher(e.board, e.cache, e.tables, e.eval, tm, msg, e.stop)
	s.MaxDepth = req.limits.Depth
	s.MaxNodes = req.limits.Nodes
	s.SearchMoves = req.moves

	if e.limitStrength {
		s.Strength = search.NewStrength(e.elo, time.Now().UnixNano())
	}

	best := s.FindBestMove(req.mateIn)
	e.out.printf("bestmove %s", board.MoveToUCI(best))
}
