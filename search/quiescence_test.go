package search

import (
	"testing"

	"github.com/ekmadsen/madchess/eval"
)

func TestGetQuietScoreStandsPatWhenNoCaptureHelps(t *testing.T) {
	s := newTestSearcher("")
	pos := s.Board.Current()
	staticScore, _ := s.Eval.Evaluate(pos)

	score := s.getQuietScore(0, 0, -eval.Max, eval.Max)
	if score != staticScore {
		t.Fatalf("expected quiescence to stand pat at a quiet starting position: got %d, want %d", score, staticScore)
	}
}

func TestGetQuietScoreResolvesAHangingQueenCapture(t *testing.T) {
	// White to move, black queen hanging on e5 defended by nothing, a
	// white queen adjacent on d4 able to capture it.
	s := newTestSearcher("4k3/8/8/4q3/3Q4/8/8/4K3 w - - 0 1")
	score := s.getQuietScore(0, 0, -eval.Max, eval.Max)
	if score <= 0 {
		t.Fatalf("expected a clearly winning score after capturing a hanging queen, got %d", score)
	}
}

func TestGetQuietScoreDetectsNoLegalEvasionAsMate(t *testing.T) {
	// Black to move, already checkmated.
	s := newTestSearcher("4R1k1/5ppp/8/8/8/8/8/7K b - - 0 1")
	score := s.getQuietScore(0, 0, -eval.Max, eval.Max)
	if score != eval.MatedIn(0) {
		t.Fatalf("expected MatedIn(0) for a position with no legal evasions, got %d", score)
	}
}
