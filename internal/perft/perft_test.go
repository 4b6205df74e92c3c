package perft

import (
	"testing"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/magic"
)

func init() {
	magic.Init()
	board.InitZobristKeys()
}

func newBoard(fen string) *board.Board {
	b := board.New()
	if fen != "" {
		b.SetPosition(fen, false)
	}
	return b
}

func TestCountStartingPositionDepth1(t *testing.T) {
	b := newBoard("")
	if got := Count(b, 1); got != 20 {
		t.Fatalf("perft(1) from the starting position = %d, want 20", got)
	}
}

func TestCountStartingPositionDepth2(t *testing.T) {
	b := newBoard("")
	if got := Count(b, 2); got != 400 {
		t.Fatalf("perft(2) from the starting position = %d, want 400", got)
	}
}

func TestCountStartingPositionDepth3(t *testing.T) {
	b := newBoard("")
	if got := Count(b, 3); got != 8902 {
		t.Fatalf("perft(3) from the starting position = %d, want 8902", got)
	}
}

func TestDivideSumsToCount(t *testing.T) {
	b := newBoard("")
	splits := Divide(b, 3)
	var sum uint64
	for _, s := range splits {
		sum += s.Nodes
	}
	if want := Count(b, 3); sum != want {
		t.Fatalf("divide(3) node sum = %d, want %d", sum, want)
	}
	if len(splits) != 20 {
		t.Fatalf("divide(3) produced %d root branches, want 20", len(splits))
	}
}

func TestCountKiwipeteDepth1(t *testing.T) {
	// The "Kiwipete" perft test position: castling, en-passant, and
	// promotions all reachable within a couple of plies.
	b := newBoard("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if got := Count(b, 1); got != 48 {
		t.Fatalf("perft(1) from Kiwipete = %d, want 48", got)
	}
}
