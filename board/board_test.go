package board

import (
	"testing"

	"github.com/ekmadsen/madchess/magic"
	"github.com/ekmadsen/madchess/move"
)

func init() {
	magic.Init()
	InitZobristKeys()
}

func playAndSerialize(t *testing.T, fen string, m move.Move) string {
	t.Helper()
	b := New()
	b.SetPosition(fen, false)
	legal, _ := b.PlayMove(m)
	if !legal {
		t.Fatalf("move unexpectedly illegal in %q", fen)
	}
	return SerializeFEN(b.Current())
}

func TestPlayMove(t *testing.T) {
	testcases := []struct {
		name     string
		fen      string
		expected string
		move     move.Move
	}{
		{
			"pawn capture",
			"rnbqkbnr/ppp1pppp/8/3p4/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1",
			"rnbqkbnr/ppp1pppp/8/3P4/2B5/5N2/PPPP1PPP/RNBQK2R b KQkq - 0 1",
			move.New(SE4, SD5, move.WhitePawn).SetIsPawnMove(true).
				SetCaptureVictim(move.BlackPawn).SetCaptureAttacker(move.WhitePawn),
		},
		{
			"white O-O",
			"2bqkbnr/4pppp/8/8/8/3N1N2/P1PP1PPP/R1BQK2R w KQkq - 0 1",
			"2bqkbnr/4pppp/8/8/8/3N1N2/P1PP1PPP/R1BQ1RK1 b kq - 1 1",
			move.New(SE1, SG1, move.WhiteKing).SetIsCastling(true).SetIsKingMove(true),
		},
		{
			"white double pawn push sets en passant",
			"4k3/4p3/8/8/8/8/4P3/4K3 w - - 0 1",
			"4k3/4p3/8/8/4P3/8/8/4K3 b - e3 0 1",
			move.New(SE2, SE4, move.WhitePawn).SetIsPawnMove(true).SetIsDoublePawnMove(true),
		},
		{
			"white promotes",
			"8/4P1k1/8/8/8/8/6K1/8 w - - 0 1",
			"4Q3/6k1/8/8/8/8/6K1/8 b - - 0 1",
			move.New(SE7, SE8, move.WhitePawn).SetIsPawnMove(true).SetPromotedPiece(move.WhiteQueen),
		},
	}

	for _, tc := range testcases {
		got := playAndSerialize(t, tc.fen, tc.move)
		if got != tc.expected {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.expected, got)
		}
	}
}

func TestPlayMoveEnPassant(t *testing.T) {
	b := New()
	b.SetPosition("4k3/8/8/8/1Pp5/8/8/4K3 b - b3 0 1", false)
	m := move.New(SC4, SB3, move.BlackPawn).SetIsPawnMove(true).SetIsEnPassantCapture(true).
		SetCaptureVictim(move.WhitePawn).SetCaptureAttacker(move.BlackPawn)

	legal, _ := b.PlayMove(m)
	if !legal {
		t.Fatalf("expected en passant capture to be legal")
	}
	got := SerializeFEN(b.Current())
	want := "4k3/8/8/8/8/1p6/8/4K3 w - - 0 2"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPlayMoveRejectsSelfCheck(t *testing.T) {
	b := New()
	b.SetPosition("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", false)
	m := move.New(SE1, SD2, move.WhiteKing).SetIsKingMove(true)
	legal, _ := b.PlayMove(m)
	if legal {
		t.Fatalf("expected move leaving king in check to be rejected")
	}
	b.UndoMove()
	if b.Index != 0 {
		t.Fatalf("expected UndoMove to restore the stack index")
	}
}

func TestUndoMoveRestoresPosition(t *testing.T) {
	b := New()
	before := SerializeFEN(b.Current())
	m := move.New(SE2, SE4, move.WhitePawn).SetIsPawnMove(true).SetIsDoublePawnMove(true)
	b.PlayMove(m)
	b.UndoMove()
	after := SerializeFEN(b.Current())
	if before != after {
		t.Fatalf("expected undo to restore %q, got %q", before, after)
	}
}

func TestIsRepeatPosition(t *testing.T) {
	b := New()
	knightShuffle := []move.Move{
		move.New(SG1, SF3, move.WhiteKnight),
		move.New(SG8, SF6, move.BlackKnight),
		move.New(SF3, SG1, move.WhiteKnight),
		move.New(SF6, SG8, move.BlackKnight),
		move.New(SG1, SF3, move.WhiteKnight),
		move.New(SG8, SF6, move.BlackKnight),
		move.New(SF3, SG1, move.WhiteKnight),
		move.New(SF6, SG8, move.BlackKnight),
	}
	for _, m := range knightShuffle {
		legal, _ := b.PlayMove(m)
		if !legal {
			t.Fatalf("expected knight shuffle move to be legal: %v", m)
		}
	}
	if !b.IsRepeatPosition(2) {
		t.Fatalf("expected two prior occurrences (threefold) after knight shuffle")
	}
}
