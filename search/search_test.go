package search

import (
	"testing"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/cache"
	"github.com/ekmadsen/madchess/eval"
	"github.com/ekmadsen/madchess/heuristics"
	"github.com/ekmadsen/madchess/magic"
	"github.com/ekmadsen/madchess/move"
)

func init() {
	magic.Init()
	board.InitZobristKeys()
}

func newTestSearcher(fen string) *Searcher {
	b := board.New()
	if fen != "" {
		b.SetPosition(fen, false)
	}
	return NewSearcher(b, cache.New(1), &heuristics.Tables{}, eval.Classical{}, nil, nil, nil)
}

func TestFindBestMoveReturnsLegalMoveFromStartingPosition(t *testing.T) {
	s := newTestSearcher("")
	legal := s.legalRootMoves()
	found := false
	best := s.searchToHorizon(4)
	for _, m := range legal {
		if move.Equal(m, best) {
			found = true
		}
	}
	if !found {
		t.Fatalf("FindBestMove returned a move not among the legal root moves: %+v", best)
	}
}

func TestFindBestMoveFindsMateInOne(t *testing.T) {
	// White to move: Re1-e8 is a back-rank checkmate, the black king
	// boxed in by its own f7/g7/h7 pawns.
	s := newTestSearcher("6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	best := s.searchToHorizon(3)

	ok, givesCheck := s.Board.PlayMove(best)
	defer s.Board.UndoMove()
	if !ok {
		t.Fatalf("FindBestMove returned an illegal move %+v", best)
	}
	if !givesCheck {
		t.Fatalf("expected the mating move to give check")
	}

	pos := s.Board.Current()
	pos.Moves.Reset()
	evasions := s.legalRootMoves()
	if len(evasions) != 0 {
		t.Fatalf("expected no legal replies after mate, got %d", len(evasions))
	}
}

func TestFindBestMoveEscapesCheckWithSeveralEvasions(t *testing.T) {
	// Black king in check from a rook on the h-file, a few legal escape
	// squares available -- exercises the ordinary (non-shortcut) path.
	s := newTestSearcher("7k/8/8/8/8/8/8/6KR b - - 0 1")
	best := s.searchToHorizon(1)
	if best == move.Null {
		t.Fatalf("expected a legal move, got Null")
	}
}

func TestFindBestMoveOnNoLegalMovesReturnsNull(t *testing.T) {
	// Already-checkmated black king, black to move, no legal replies.
	s := newTestSearcher("4R1k1/5ppp/8/8/8/8/8/7K b - - 0 1")
	best := s.FindBestMove(0)
	if best != move.Null {
		t.Fatalf("expected Null on a mated position with no legal moves, got %+v", best)
	}
}

// searchToHorizon stands in for FindBestMove with a fixed horizon instead
// of a real time budget: it runs a single full-window getDynamicScore at
// that horizon (no iterative deepening) and returns the top root move --
// tests care about correctness at a small, fast depth, not search speed.
func (s *Searcher) searchToHorizon(horizon int) move.Move {
	legal := s.legalRootMoves()
	if len(legal) == 0 {
		return move.Null
	}
	s.rootMoves = make([]RootMove, len(legal))
	for i, m := range legal {
		s.rootMoves[i] = RootMove{Move: m, Score: -eval.Max}
	}
	if len(legal) == 1 {
		return legal[0]
	}
	score := s.getDynamicScore(0, horizon, false, -eval.Max, eval.Max, move.Null)
	if score == Interrupted {
		return s.rootMoves[0].Move
	}
	sortRootMovesDescending(s.rootMoves)
	return s.rootMoves[0].Move
}

func TestSearchMovesRestrictsLegalRootMoves(t *testing.T) {
	s := newTestSearcher("")
	all := s.legalRootMoves()
	if len(all) < 2 {
		t.Fatalf("expected more than one legal root move from the starting position")
	}
	s.SearchMoves = []move.Move{all[0]}
	restricted := s.legalRootMoves()
	if len(restricted) != 1 || !move.Equal(restricted[0], all[0]) {
		t.Fatalf("expected legalRootMoves to honor SearchMoves, got %+v", restricted)
	}
}

func TestMaxDepthStopsIterativeDeepening(t *testing.T) {
	s := newTestSearcher("")
	s.MaxDepth = 2
	s.FindBestMove(0)
	// Every root move's score was set by the horizon-2 iteration; a
	// deeper iteration would have reset and resolved them again, which
	// this test can't observe directly, so instead it just confirms the
	// search returns promptly with MaxDepth capping the loop (no timeout
	// or Stopper is configured, so an uncapped search would run to
	// HorizonLimit).
	if len(s.rootMoves) == 0 {
		t.Fatalf("expected root moves to be populated")
	}
}

func TestIsSingularRejectsNonLowerBoundCache(t *testing.T) {
	s := newTestSearcher("")
	legal := s.legalRootMoves()
	m := legal[0]
	entry := cache.Entry{Data: cache.Pack(10, m, storeScore(2000, 0), cache.Exact, 0)}
	if s.isSingular(0, 10, 10, m, m, true, entry) {
		t.Fatalf("expected isSingular to reject a cached entry that isn't a LowerBound")
	}
}

func TestIsSingularSearchesTheParentPositionWithMExcluded(t *testing.T) {
	s := newTestSearcher("")
	legal := s.legalRootMoves()
	s.rootMoves = make([]RootMove, len(legal))
	for i, mv := range legal {
		s.rootMoves[i] = RootMove{Move: mv, Score: -eval.Max}
	}
	m := legal[0]
	keyBefore := s.Board.Current().Key

	// A high cached score sets a singularBeta no other opening move from
	// the starting position can clear, so the exclusion search should
	// fail low and report m as singular -- this only holds if the probe
	// actually ran on this node (with m excluded from its own move loop),
	// not on the position m leads to.
	entry := cache.Entry{Data: cache.Pack(10, m, storeScore(2000, 0), cache.LowerBound, 0)}
	if !s.isSingular(0, 10, 10, m, m, true, entry) {
		t.Fatalf("expected isSingular to report true when every alternative fails far below the cached score")
	}
	if s.Board.Current().Key != keyBefore {
		t.Fatalf("isSingular must leave the board at the position it was called on, not at m's child")
	}
}

func TestMateDistanceRoundTrips(t *testing.T) {
	score := eval.MateIn(5)
	if got := mateDistance(score); got != 3 {
		t.Fatalf("mateDistance(MateIn(5)) = %d, want 3", got)
	}
	score = eval.MatedIn(5)
	if got := mateDistance(score); got != -3 {
		t.Fatalf("mateDistance(MatedIn(5)) = %d, want -3", got)
	}
}

func TestStoreAndLoadScoreRoundTripOrdinaryScores(t *testing.T) {
	if got := loadScore(storeScore(123, 7), 7); got != 123 {
		t.Fatalf("ordinary score did not round-trip: got %d", got)
	}
}

func TestStoreAndLoadScoreAdjustMateDistanceByDepth(t *testing.T) {
	// A mate 12 plies from the root, found at a node at depth 10: it lies
	// 2 plies into that node's subtree.
	mate := eval.MateIn(12)
	stored := storeScore(mate, 10)
	// Probed at depth 4 on a different path: still 2 plies below that
	// node, so 6 plies from the root.
	reloaded := loadScore(stored, 4)
	if reloaded != eval.MateIn(6) {
		t.Fatalf("loadScore adjusted mate distance incorrectly: got %d, want %d", reloaded, eval.MateIn(6))
	}
}

func TestIsMateScoreDistinguishesFromMaterialScores(t *testing.T) {
	if isMateScore(500) {
		t.Fatalf("an ordinary material score should not read as a mate score")
	}
	if !isMateScore(eval.MateIn(3)) {
		t.Fatalf("MateIn(3) should read as a mate score")
	}
	if !isMateScore(eval.MatedIn(3)) {
		t.Fatalf("MatedIn(3) should read as a mate score")
	}
}
