// Package search implements iterative-deepening negamax with the full
// pruning/extension/ordering heuristic stack: aspiration windows,
// principal-variation search, null-move pruning, reverse and move
// futility, late-move pruning and reductions, singular extensions,
// internal iterative deepening, and quiescence. It drives the move
// generator, the transposition cache, and the killer/history tables to
// find the best move in a position under a time budget.
package search

import (
	"math"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/cache"
	"github.com/ekmadsen/madchess/eval"
	"github.com/ekmadsen/madchess/heuristics"
	"github.com/ekmadsen/madchess/move"
	"github.com/ekmadsen/madchess/movegen"
	"github.com/ekmadsen/madchess/timeman"
)

// HorizonLimit bounds iterative deepening's search depth.
const HorizonLimit = heuristics.MaxHorizon

// AspirationMinHorizon is the horizon at which aspiration windows start
// narrowing the search around the previous iteration's score, instead of
// searching the full (-Max, +Max) window.
const AspirationMinHorizon = 5

// AspirationWindow is the half-width, in centipawns, of the aspiration
// window around the previous iteration's score.
const AspirationWindow int32 = 100

// QuietSearchMaxFromHorizon bounds how far quiescence may run past the
// horizon before it restricts itself to recaptures only.
const QuietSearchMaxFromHorizon = 3

// IidReduction is how much shallower internal iterative deepening
// searches before a real move-ordering hint exists for a PV node.
const IidReduction = 2

// SingularMoveMinToHorizon is the shallowest toHorizon at which the
// singular-extension test is attempted.
const SingularMoveMinToHorizon = 7

// NullMoveReductionBase is null-move pruning's baseline horizon
// reduction; it grows further when the static score clears beta by a
// wide margin (see nullMoveReduction).
const NullMoveReductionBase = 3

// AdjustMoveTimeMinScoreDecrease is the centipawn drop between
// iterations that triggers a soft time-budget extension.
const AdjustMoveTimeMinScoreDecrease int32 = 33

// Interrupted is the sentinel score returned (and propagated, untouched,
// all the way to the root) when the search is stopped mid-node. It lies
// outside [-eval.Max, +eval.Max], so no real evaluation can collide with
// it.
const Interrupted int32 = eval.Max + 1

// mateThreshold is the score magnitude above which a value is "a mate
// score" rather than a material one, used to gate futility/null-move
// pruning (which assume ordinary material reasoning) and to convert
// stored mate scores between root-relative and node-relative distances.
const mateThreshold = eval.Checkmate - int32(HorizonLimit+heuristics.MaxQuietDepth)

// FutilityMargins[toHorizon] bounds how much a position's static score
// may fall short of beta (reverse futility) or alpha (move futility)
// before the node/move is pruned without a full search.
var FutilityMargins = [6]int32{50, 100, 175, 275, 400, 550}

// LateMovePruning[toHorizon] is how many quiet moves may be tried at a
// node before the rest are skipped outright. Index 0 is "never prune".
var LateMovePruning = [6]int{math.MaxInt32, 3, 7, 13, 21, 31}

// LateMoveReductions[quietMoveNumber] is how many plies a late quiet
// move's search horizon is reduced by, monotonically increasing.
var LateMoveReductions [32]int

func init() {
	for i := range LateMoveReductions {
		r := int(0.5 + math.Log(float64(i+1))*1.5)
		if r > 5 {
			r = 5
		}
		LateMoveReductions[i] = r
	}
}

// RootMove is one legal move available at the search root, together with
// the score its subtree resolved to in the most recently completed
// iteration.
type RootMove struct {
	Move  move.Move
	Score int32
}

// Stopper reports whether the search has been asked to stop, e.g. by a
// UCI `stop` command observed on another goroutine.
type Stopper interface {
	Stopped() bool
}

// Searcher owns one search's dependencies: the board it searches, the
// transposition cache and killer/history tables it reads and updates,
// the evaluator it calls at leaf nodes, and the time budget and stop
// signal it polls. A Searcher is built fresh per `go` command.
type Searcher struct {
	Board     *board.Board
	Cache     *cache.Cache
	Tables    *heuristics.Tables
	Eval      eval.Evaluator
	Time      *timeman.Manager
	Messenger Messenger
	Stop      Stopper

	// Competitive is false in limited-strength mode, where LMR is
	// skipped so every line gets a full-depth look (spec.md §4.6's
	// "or first move at root or non-competitive play, horizon
	// unchanged").
	Competitive bool

	// Strength, when non-nil, enables limited-strength mode (spec.md
	// §4.8): node-rate throttling and move-choice jitter around an
	// Elo target.
	Strength *Strength

	// MaxDepth, when positive, caps iterative deepening at that horizon
	// (UCI `go depth N`). MaxNodes, when positive, stops the search once
	// that many nodes have been examined (UCI `go nodes N`). Both are
	// the "search loop itself enforces" half of timeman.Limits that
	// timeman.Manager's soft/hard budgets don't cover.
	MaxDepth int
	MaxNodes uint64

	// SearchMoves, when non-empty, restricts the root move loop to this
	// subset (UCI `go searchmoves ...`). Matched by From/To/promotion,
	// same as board.ParseUCIMove.
	SearchMoves []move.Move

	nodes    uint64
	selDepth int

	rootMoves []RootMove
}

// NewSearcher builds a Searcher ready for FindBestMove.
func NewSearcher(b *board.Board, c *cache.Cache, tables *heuristics.Tables, evaluator eval.Evaluator, tm *timeman.Manager, messenger Messenger, stop Stopper) *Searcher {
	return &Searcher{
		Board:       b,
		Cache:       c,
		Tables:      tables,
		Eval:        evaluator,
		Time:        tm,
		Messenger:   messenger,
		Stop:        stop,
		Competitive: true,
	}
}

// Nodes is the number of nodes examined so far by this Searcher.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// legalRootMoves generates every legal move in the current root
// position by pseudo-legal-generate-then-make-move-and-check-king.
func (s *Searcher) legalRootMoves() []move.Move {
	b := s.Board
	pos := b.Current()
	pos.Moves.Reset()
	movegen.GenerateAll(pos, &pos.Moves)

	var legal []move.Move
	for _, m := range pos.Moves.Slice() {
		ok, _ := b.PlayMove(m)
		b.UndoMove()
		if ok && s.allowedRoot(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// allowedRoot reports whether m passes the SearchMoves restriction, if any.
func (s *Searcher) allowedRoot(m move.Move) bool {
	if len(s.SearchMoves) == 0 {
		return true
	}
	for _, allowed := range s.SearchMoves {
		if move.Equal(allowed, m) {
			return true
		}
	}
	return false
}

// FindBestMove runs iterative deepening from the current root position
// up to HorizonLimit or until the time manager or an external stop
// signal cuts it short. mateInMoves, when positive, stops the search
// early once a checkmate of exactly that distance is confirmed.
func (s *Searcher) FindBestMove(mateInMoves int) move.Move {
	if s.Strength != nil {
		s.Competitive = false
	}

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

	best := s.rootMoves[0].Move
	var prevScore int32
	havePrevScore := false

	for horizon := 1; horizon <= HorizonLimit; horizon++ {
		s.selDepth = 0

		alpha, beta := -eval.Max, eval.Max
		if horizon >= AspirationMinHorizon && havePrevScore {
			alpha, beta = prevScore-AspirationWindow, prevScore+AspirationWindow
		}

		for i := range s.rootMoves {
			s.rootMoves[i].Score = -eval.Max
		}
		score := s.getDynamicScore(0, horizon, false, alpha, beta, move.Null)
		if score == Interrupted {
			break
		}

		if score <= alpha || score >= beta {
			for i := range s.rootMoves {
				s.rootMoves[i].Score = -eval.Max
			}
			score = s.getDynamicScore(0, horizon, false, -eval.Max, eval.Max, move.Null)
			if score == Interrupted {
				break
			}
		}

		sortRootMovesDescending(s.rootMoves)
		best = s.rootMoves[0].Move
		prevScore, havePrevScore = score, true

		s.report(horizon, score)

		if s.Time != nil {
			s.Time.OnIterationComplete(score)
		}

		if mateInMoves > 0 && isMateScore(score) && mateDistance(score) == mateInMoves {
			break
		}
		if s.MaxDepth > 0 && horizon >= s.MaxDepth {
			break
		}
		if s.MaxNodes > 0 && s.nodes >= s.MaxNodes {
			break
		}
		if s.Time != nil && s.Time.ShouldStopBeforeDepth() {
			break
		}
	}

	if s.Strength != nil {
		if m := s.Strength.ChooseMove(s.rootMoves); m != move.Null {
			best = m
		}
	}
	return best
}

func sortRootMovesDescending(moves []RootMove) {
	for i := 1; i < len(moves); i++ {
		for j := i; j > 0 && moves[j].Score > moves[j-1].Score; j-- {
			moves[j], moves[j-1] = moves[j-1], moves[j]
		}
	}
}

// isMateScore reports whether score represents a forced mate rather than
// an ordinary material/positional evaluation.
func isMateScore(score int32) bool {
	return score >= mateThreshold || score <= -mateThreshold
}

// mateDistance returns the number of full moves to the mate a mate score
// represents (UCI's `score mate N`).
func mateDistance(score int32) int {
	plies := eval.Checkmate - score
	if score < 0 {
		plies = eval.Checkmate + score
	}
	moves := (int(plies) + 1) / 2
	if score < 0 {
		return -moves
	}
	return moves
}

// storeScore converts a root-relative score to node-relative before
// writing it to the cache, so a mate found N plies deep in one search
// path is still valid if probed M plies deep in a different path.
func storeScore(score int32, depth int) int32 {
	switch {
	case score >= mateThreshold:
		return score + int32(depth)
	case score <= -mateThreshold:
		return score - int32(depth)
	default:
		return score
	}
}

// loadScore reverses storeScore when reading a cached score back at a
// particular node's depth.
func loadScore(score int32, depth int) int32 {
	switch {
	case score >= mateThreshold:
		return score - int32(depth)
	case score <= -mateThreshold:
		return score + int32(depth)
	default:
		return score
	}
}

// poll increments the node counter and, every timeman.NodesTimeInterval
// nodes, checks the clock and the external stop signal.
func (s *Searcher) poll() bool {
	s.nodes++
	if s.nodes%timeman.NodesTimeInterval != 0 {
		return false
	}
	if s.Stop != nil && s.Stop.Stopped() {
		return true
	}
	if s.Time != nil && s.Time.ShouldStopNode() {
		return true
	}
	if s.MaxNodes > 0 && s.nodes >= s.MaxNodes {
		return true
	}
	if s.Strength != nil {
		s.Strength.throttle(s.nodes, func() bool {
			return s.Time == nil || !s.Time.ShouldStopNode()
		})
	}
	return false
}

func (s *Searcher) report(horizon int, score int32) {
	if s.Messenger == nil {
		return
	}
	info := Info{
		Depth:    horizon,
		SelDepth: s.selDepth,
		Nodes:    s.nodes,
		Score:    score,
	}
	if s.Time != nil {
		info.Elapsed = s.Time.Elapsed()
	}
	if s.Cache != nil {
		info.Hashfull = s.Cache.Hashfull()
	}
	if isMateScore(score) {
		info.IsMate = true
		info.MateDistance = mateDistance(score)
	}
	info.PV = s.principalVariation(horizon)
	s.Messenger.SendInfo(info)
}

// principalVariation reconstructs the best line by walking cached best
// moves forward from the root, replaying them on the board and undoing
// afterward.
func (s *Searcher) principalVariation(maxLen int) []move.Move {
	if len(s.rootMoves) == 0 {
		return nil
	}
	var pv []move.Move
	m := s.rootMoves[0].Move
	played := 0
	for m != move.Null && played < maxLen {
		ok, _ := s.Board.PlayMove(m)
		if !ok {
			s.Board.UndoMove()
			break
		}
		pv = append(pv, m)
		played++

		entry, ok := s.Cache.Get(s.Board.Current().Key)
		if !ok {
			m = move.Null
			continue
		}
		m = entry.BestMove()
	}
	for i := 0; i < played; i++ {
		s.Board.UndoMove()
	}
	return pv
}
