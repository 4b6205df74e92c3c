package search

import (
	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/cache"
	"github.com/ekmadsen/madchess/eval"
	"github.com/ekmadsen/madchess/move"
	"github.com/ekmadsen/madchess/movegen"
)

// getDynamicScore is the search's core recursive procedure: a negamax
// search with principal-variation scoping, reverse and move futility,
// null-move pruning, internal iterative deepening, late-move pruning and
// reduction, and singular extension, backed by the transposition cache
// and the killer/history tables for move ordering.
//
// depth is the distance from the root (0 at the root itself); horizon is
// the search's current iterative-deepening target, so toHorizon :=
// horizon-depth is how many plies remain before quiescence takes over.
// excluded, when not move.Null, is skipped in the move loop -- used by
// the singular-extension test to search "every move except this one".
func (s *Searcher) getDynamicScore(depth, horizon int, allowNull bool, alpha, beta int32, excluded move.Move) int32 {
	if s.poll() {
		return Interrupted
	}

	b := s.Board
	pos := b.Current()
	atRoot := depth == 0

	if depth > 0 {
		if pos.PlySinceCaptureOrPawnMove >= 100 || pos.InsufficientMaterial() || b.IsRepeatPosition(2) {
			return 0
		}
	}
	repeated := depth > 0 && b.IsRepeatPosition(1)

	toHorizon := horizon - depth

	var cached cache.Entry
	haveCache := false
	cachedBestMove := move.Null
	if entry, ok := s.Cache.Get(pos.Key); ok {
		haveCache = true
		cached = entry
		cachedBestMove = entry.BestMove()
		if depth > 0 && !repeated && excluded == move.Null && entry.ToHorizon() >= toHorizon {
			score := loadScore(entry.DynamicScore(), depth)
			switch entry.Precision() {
			case cache.Exact:
				if score <= alpha {
					return alpha
				}
				if score >= beta {
					return beta
				}
				return score
			case cache.UpperBound:
				if score <= alpha {
					return alpha
				}
			case cache.LowerBound:
				if score >= beta {
					if cachedBestMove != move.Null && cachedBestMove.CaptureVictim() == move.None {
						s.Tables.History.Update(cachedBestMove, nil, toHorizon)
						s.Tables.Killers.Update(depth, cachedBestMove)
					}
					return beta
				}
			}
		}
	}

	if toHorizon <= 0 {
		return s.getQuietScore(depth, depth, alpha, beta)
	}

	inCheck := pos.KingInCheck
	var staticScore int32
	var drawnEndgame bool
	switch {
	case inCheck:
		staticScore = -eval.Max
	case depth > 0 && pos.PlayedMove == move.Null:
		// The previous ply was a null move: nothing on the board
		// changed, only the side to move flipped, so the position
		// before it evaluates to the exact negation -- no need to
		// call the evaluator again. *next = *prev in PlayNullMove
		// already carried that score forward into pos.StaticScore.
		// Guarded to depth > 0 because a freshly parsed root position
		// also has PlayedMove zero-valued to move.Null, which must not
		// be mistaken for "the previous ply was a null move".
		staticScore = -pos.StaticScore
	default:
		staticScore, drawnEndgame = s.Eval.Evaluate(pos)
	}
	pos.StaticScore = staticScore

	hasMaterial := pos.HasNonPawnMaterial(pos.ColorToMove)
	bothHaveMaterial := pos.HasNonPawnMaterial(board.White) && pos.HasNonPawnMaterial(board.Black)
	pruningEligible := !inCheck && !atRoot && !drawnEndgame && !isMateScore(staticScore) && excluded == move.Null

	// Reverse futility: the static score already clears beta by more
	// than this depth's margin, so no move here is needed to prove it.
	if pruningEligible && toHorizon < len(FutilityMargins) && bothHaveMaterial {
		if staticScore-FutilityMargins[toHorizon] >= beta {
			s.Cache.Set(pos.Key, cache.Pack(toHorizon, move.Null, storeScore(beta, depth), cache.LowerBound, s.Cache.Generation()))
			return beta
		}
	}

	// Null-move pruning: let the opponent move twice in a row and see
	// if they can still not catch up to beta.
	if pruningEligible && allowNull && staticScore >= beta && hasMaterial {
		reduction := nullMoveReduction(staticScore, beta)
		b.PlayNullMove()
		score := -s.getDynamicScore(depth+1, horizon-reduction, false, -beta, -beta+1, move.Null)
		b.UndoMove()
		if score == -Interrupted {
			return Interrupted
		}
		if score >= beta {
			s.Cache.Set(pos.Key, cache.Pack(toHorizon, move.Null, storeScore(beta, depth), cache.LowerBound, s.Cache.Generation()))
			return beta
		}
	}

	// Internal iterative deepening: no move-ordering hint exists for
	// this PV node, so search it shallower first just to populate one.
	if cachedBestMove == move.Null && alpha+1 < beta && toHorizon > IidReduction {
		score := s.getDynamicScore(depth, horizon-IidReduction, false, alpha, beta, excluded)
		if score == Interrupted {
			return Interrupted
		}
		if entry, ok := s.Cache.Get(pos.Key); ok {
			cachedBestMove = entry.BestMove()
		}
	}

	originalAlpha := alpha
	var bestMoveFound move.Move
	var triedQuiets []move.Move
	legalMoveCount := 0
	quietMoveNumber := 0
	bestScore := -eval.Max

	for moveIndex := 0; ; moveIndex++ {
		var m move.Move
		if atRoot {
			if moveIndex >= len(s.rootMoves) {
				break
			}
			m = s.rootMoves[moveIndex].Move
		} else {
			m, _ = movegen.GetNextMove(pos, cachedBestMove, depth, s.Tables)
			if m == move.Null {
				break
			}
		}
		if excluded != move.Null && move.Equal(m, excluded) {
			continue
		}

		isCapture := m.CaptureVictim() != move.None
		isPromotion := m.PromotedPiece() != move.None
		isQuiet := !isCapture && !isPromotion && !m.IsCastling()

		// isSingular's exclusion search must run on the parent position
		// -- the one m is excluded from -- so it has to run before
		// b.PlayMove(m) advances the board to the child.
		singular := false
		if cachedBestMove != move.Null && move.Equal(m, cachedBestMove) {
			singular = s.isSingular(depth, horizon, toHorizon, m, cachedBestMove, haveCache, cached)
		}

		ok, givesCheck := b.PlayMove(m)
		if !ok {
			b.UndoMove()
			continue
		}
		legalMoveCount++

		prunableQuiet := isQuiet && !givesCheck && !m.IsKingMove() &&
			!isPawnPushNearPromotion(m, pos.ColorToMove)

		if isQuiet {
			quietMoveNumber++
		}

		// Late-move pruning: skip further quiet moves once enough
		// have already failed to improve alpha at a shallow node.
		if pruningEligible && prunableQuiet && toHorizon < len(LateMovePruning) &&
			legalMoveCount > 1 && quietMoveNumber > LateMovePruning[toHorizon] {
			b.UndoMove()
			continue
		}

		// Move futility: a quiet move with no real chance of raising
		// alpha this far below it is skipped without searching it.
		if pruningEligible && prunableQuiet && toHorizon < len(FutilityMargins) &&
			legalMoveCount > 1 && staticScore+FutilityMargins[toHorizon] <= alpha {
			b.UndoMove()
			continue
		}

		extension := 0
		if givesCheck {
			extension = 1
		} else if singular {
			extension = 1
		}

		childHorizon := horizon + extension
		reduction := 0
		if s.Competitive && extension == 0 && isQuiet && legalMoveCount > 1 && quietMoveNumber > 0 {
			idx := quietMoveNumber - 1
			if idx >= len(LateMoveReductions) {
				idx = len(LateMoveReductions) - 1
			}
			reduction = LateMoveReductions[idx]
		}

		var score int32
		switch {
		case legalMoveCount == 1:
			score = -s.getDynamicScore(depth+1, childHorizon, true, -beta, -alpha, move.Null)
		default:
			score = -s.getDynamicScore(depth+1, childHorizon-reduction, true, -alpha-1, -alpha, move.Null)
			if score == -Interrupted {
				b.UndoMove()
				return Interrupted
			}
			if score > alpha && (reduction > 0 || score < beta) {
				score = -s.getDynamicScore(depth+1, childHorizon, true, -beta, -alpha, move.Null)
			}
		}
		b.UndoMove()

		if score == Interrupted {
			return Interrupted
		}

		if atRoot {
			s.rootMoves[moveIndex].Score = score
		}

		if isQuiet {
			triedQuiets = append(triedQuiets, m)
		}

		if score > bestScore {
			bestScore = score
			bestMoveFound = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if isQuiet {
				s.Tables.Killers.Update(depth, m)
				s.Tables.History.Update(m, triedQuiets, toHorizon)
			}
			s.Cache.Set(pos.Key, cache.Pack(toHorizon, m, storeScore(beta, depth), cache.LowerBound, s.Cache.Generation()))
			return beta
		}
	}

	if legalMoveCount == 0 {
		if excluded != move.Null {
			// Only the excluded move was legal: the singular test
			// can't be evaluated, treat as "not singular".
			return alpha
		}
		if inCheck {
			return eval.MatedIn(depth)
		}
		return 0
	}

	precision := cache.Exact
	if bestScore <= originalAlpha {
		precision = cache.UpperBound
	}
	s.Cache.Set(pos.Key, cache.Pack(toHorizon, bestMoveFound, storeScore(bestScore, depth), precision, s.Cache.Generation()))
	return bestScore
}

// nullMoveReduction grows null-move pruning's baseline reduction when the
// static score clears beta by a wide margin, capped at 3 extra plies.
func nullMoveReduction(staticScore, beta int32) int {
	reduction := NullMoveReductionBase
	extra := int((staticScore - beta) / 200)
	if extra > 3 {
		extra = 3
	}
	if extra > 0 {
		reduction += extra
	}
	return reduction
}

// singularMargin is the per-ply multiplier used to lower the zero-window
// probe below the cached score in the singular-extension test.
const singularMargin = 4

// isSingular reports whether m -- which must be the cached best move --
// is so far ahead of every alternative that it deserves a one-ply
// extension: the position searched with m excluded, at a window just
// below the cached score, still fails low.
func (s *Searcher) isSingular(depth, horizon, toHorizon int, m, cachedBestMove move.Move, haveCache bool, cached cache.Entry) bool {
	if !haveCache || cachedBestMove == move.Null || !move.Equal(m, cachedBestMove) {
		return false
	}
	if toHorizon < SingularMoveMinToHorizon {
		return false
	}
	if cached.Precision() != cache.LowerBound {
		return false
	}
	if cached.ToHorizon() < toHorizon-3 {
		return false
	}

	cachedScore := loadScore(cached.DynamicScore(), depth)
	singularBeta := cachedScore - singularMargin*int32(toHorizon)
	score := s.getDynamicScore(depth, horizon-1, false, singularBeta-1, singularBeta, m)
	if score == Interrupted {
		return false
	}
	return score < singularBeta
}

// isPawnPushNearPromotion reports whether m is a pawn push reaching the
// rank just short of promotion, the one case a "quiet" pawn move is too
// dangerous for late-move pruning/reduction/futility to treat lightly.
func isPawnPushNearPromotion(m move.Move, mover board.Color) bool {
	if !m.IsPawnMove() {
		return false
	}
	return board.RelativeRank(m.To(), mover) >= 6
}
