package uci

import (
	"strings"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/move"
	"github.com/ekmadsen/madchess/movegen"
)

// handlePosition applies `position [startpos|fen <6 fields>] [moves ...]`.
// It stops and waits for any in-flight search first: the position is
// engine state the worker goroutine reads, so it may only change while
// the worker is idle (spec.md §5).
func (e *Engine) handlePosition(args []string) {
	e.stopAndWait()

	if len(args) == 0 {
		e.out.errorf("position requires startpos or fen")
		return
	}

	i := 0
	switch args[0] {
	case "startpos":
		e.board.SetPosition(board.InitialFEN, false)
		i = 1
	case "fen":
		fields := args[1:]
		end := len(fields)
		for j, f := range fields {
			if f == "moves" {
				end = j
				break
			}
		}
		if end < 6 {
			e.out.errorf("position fen requires 6 fields")
			return
		}
		fen := strings.Join(fields[:6], " ")
		e.board.SetPosition(fen, false)
		i = 1 + end
	default:
		e.out.errorf("position requires startpos or fen, got %q", args[0])
		return
	}

	if i >= len(args) || args[i] != "moves" {
		return
	}
	for _, tok := range args[i+1:] {
		legal := e.legalMoves()
		m, ok := board.ParseUCIMove(tok, legal)
		if !ok {
			e.out.errorf("illegal or malformed move %q in position moves list", tok)
			return
		}
		if ok, _ := e.board.PlayMove(m); !ok {
			e.board.UndoMove()
			e.out.errorf("illegal move %q in position moves list", tok)
			return
		}
	}
}

// legalMoves returns every legal move available at the current position.
func (e *Engine) legalMoves() []move.Move {
	pos := e.board.Current()
	pos.Moves.Reset()
	movegen.GenerateAll(pos, &pos.Moves)

	var legal []move.Move
	for _, m := range pos.Moves.Slice() {
		ok, _ := e.board.PlayMove(m)
		e.board.UndoMove()
		if ok {
			legal = append(legal, m)
		}
	}
	return legal
}
