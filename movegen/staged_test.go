package movegen

import (
	"testing"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/heuristics"
	"github.com/ekmadsen/madchess/move"
)

func drainGetNextMove(p *board.Position, bestMove move.Move, ply int, tables *heuristics.Tables) []move.Move {
	var out []move.Move
	for {
		m, _ := GetNextMove(p, bestMove, ply, tables)
		if m == move.Null {
			return out
		}
		out = append(out, m)
	}
}

func TestGetNextMoveEmitsBestMoveFirst(t *testing.T) {
	p := newPosition(board.InitialFEN)
	best := move.New(board.SE2, board.SE4, move.WhitePawn).SetIsPawnMove(true).SetIsDoublePawnMove(true)

	var tables heuristics.Tables
	moves := drainGetNextMove(p, best, 0, &tables)
	if len(moves) == 0 || !move.Equal(moves[0], best) {
		t.Fatalf("expected the supplied best move to be emitted first")
	}
}

func TestGetNextMoveNeverDuplicatesBestMove(t *testing.T) {
	p := newPosition(board.InitialFEN)
	best := move.New(board.SE2, board.SE4, move.WhitePawn).SetIsPawnMove(true).SetIsDoublePawnMove(true)

	var tables heuristics.Tables
	moves := drainGetNextMove(p, best, 0, &tables)
	count := 0
	for _, m := range moves {
		if move.Equal(m, best) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected the best move to appear exactly once, got %d", count)
	}
}

func TestGetNextMoveYieldsCapturesBeforeNonCaptures(t *testing.T) {
	p := newPosition("rnbqkbnr/ppp1pppp/8/3p4/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1")
	var tables heuristics.Tables
	moves := drainGetNextMove(p, move.Null, 0, &tables)

	sawNonCapture := false
	for _, m := range moves {
		isCapture := m.CaptureVictim() != move.None
		if !isCapture {
			sawNonCapture = true
			continue
		}
		if isCapture && sawNonCapture {
			t.Fatalf("expected all captures to be emitted before any non-capture")
		}
	}
}

func TestGetNextMoveHonorsKillerPriority(t *testing.T) {
	p := newPosition(board.InitialFEN)
	killer := move.New(board.SG1, board.SF3, move.WhiteKnight)

	var tables heuristics.Tables
	tables.Killers.Update(3, killer)

	moves := drainGetNextMove(p, move.Null, 3, &tables)
	firstQuiet := -1
	for i, m := range moves {
		if m.CaptureVictim() == move.None {
			firstQuiet = i
			break
		}
	}
	if firstQuiet < 0 || !move.Equal(moves[firstQuiet], killer) {
		t.Fatalf("expected the killer move to be the first non-capture emitted")
	}
}

func TestGetNextCaptureOrdersByMVVLVA(t *testing.T) {
	p := newPosition("4k3/8/8/3q4/2P1r3/8/8/4K3 w - - 0 1")

	var prev move.Move = move.Null
	for {
		m, _ := GetNextCapture(p)
		if m == move.Null {
			break
		}
		if prev != move.Null && prev < m {
			t.Fatalf("expected captures in descending raw-value order")
		}
		prev = m
	}
}
