package eval

import (
	"testing"

	"github.com/ekmadsen/madchess/board"
)

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	b := board.New()
	var e Classical
	score, drawn := e.Evaluate(b.Current())
	if score != 0 {
		t.Fatalf("expected the symmetric starting position to score 0, got %d", score)
	}
	if drawn {
		t.Fatalf("did not expect the starting position to be a drawn endgame")
	}
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	b := board.New()
	b.SetPosition("4k3/8/8/8/8/8/4Q3/4K3 w - - 0 1", false)

	var e Classical
	score, _ := e.Evaluate(b.Current())
	if score <= 0 {
		t.Fatalf("expected white's extra queen to score positive for the side to move, got %d", score)
	}
}

func TestEvaluateIsSideToMoveRelative(t *testing.T) {
	b := board.New()
	b.SetPosition("4k3/8/8/8/8/8/4q3/4K3 b - - 0 1", false)

	var e Classical
	score, _ := e.Evaluate(b.Current())
	if score <= 0 {
		t.Fatalf("expected black's extra queen to score positive from black's perspective, got %d", score)
	}
}

func TestEvaluateReportsInsufficientMaterialAsDrawnEndgame(t *testing.T) {
	b := board.New()
	b.SetPosition("4k3/8/8/8/8/8/8/4K3 w - - 0 1", false)

	var e Classical
	_, drawn := e.Evaluate(b.Current())
	if !drawn {
		t.Fatalf("expected bare kings to be reported as a drawn endgame")
	}
}

func TestMateInAndMatedInAreSymmetric(t *testing.T) {
	if MateIn(3) != -MatedIn(3) {
		t.Fatalf("expected MateIn and MatedIn to be sign-symmetric at the same ply")
	}
	if MateIn(1) <= MateIn(3) {
		t.Fatalf("expected a quicker mate to score higher than a slower one")
	}
}
