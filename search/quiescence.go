package search

import (
	"github.com/ekmadsen/madchess/eval"
	"github.com/ekmadsen/madchess/move"
	"github.com/ekmadsen/madchess/movegen"
)

// getQuietScore resolves a leaf the main search reached with toHorizon<=0
// by playing out captures (and, if the side to move is in check, every
// evasion) until the position is "quiet": no side has a profitable
// capture left. depth is the ply from the root; qStartDepth is the depth
// at which quiescence was entered, used to know how far past the horizon
// the current node is for the recapture-only restriction.
func (s *Searcher) getQuietScore(depth, qStartDepth int, alpha, beta int32) int32 {
	if s.poll() {
		return Interrupted
	}
	if depth > s.selDepth {
		s.selDepth = depth
	}

	b := s.Board
	pos := b.Current()

	if pos.PlySinceCaptureOrPawnMove >= 100 || pos.InsufficientMaterial() || b.IsRepeatPosition(2) {
		return 0
	}

	inCheck := pos.KingInCheck
	var bestScore int32
	if inCheck {
		bestScore = -eval.Max
	} else {
		staticScore, drawnEndgame := s.Eval.Evaluate(pos)
		pos.StaticScore = staticScore
		if drawnEndgame {
			return 0
		}
		if staticScore >= beta {
			return beta
		}
		if staticScore > alpha {
			alpha = staticScore
		}
		bestScore = staticScore
	}

	// Past QuietSearchMaxFromHorizon plies into quiescence, only
	// recaptures on the square the opponent just captured on are
	// considered -- keeps deep exchanges from exploding in size.
	restrictToSquare := move.Illegal
	if !inCheck && depth-qStartDepth > QuietSearchMaxFromHorizon && pos.PlayedMove != move.Null &&
		pos.PlayedMove.CaptureVictim() != move.None {
		restrictToSquare = pos.PlayedMove.To()
	}

	legalMoveCount := 0

	if inCheck {
		pos.Moves.Reset()
		movegen.GenerateAll(pos, &pos.Moves)
		for _, m := range pos.Moves.Slice() {
			ok, _ := b.PlayMove(m)
			if !ok {
				b.UndoMove()
				continue
			}
			legalMoveCount++

			score := -s.getQuietScore(depth+1, qStartDepth, -beta, -alpha)
			b.UndoMove()

			if score == Interrupted {
				return Interrupted
			}
			if score > bestScore {
				bestScore = score
			}
			if score > alpha {
				alpha = score
			}
			if alpha >= beta {
				return beta
			}
		}
		if legalMoveCount == 0 {
			return eval.MatedIn(depth)
		}
		return bestScore
	}

	for {
		m, _ := movegen.GetNextCapture(pos)
		if m == move.Null {
			break
		}
		if restrictToSquare != move.Illegal && m.To() != restrictToSquare {
			continue
		}

		// Move futility: even winning the captured piece outright
		// can't clear alpha from here, and the exchange itself isn't
		// favorable either.
		gain := eval.PieceValue(m.CaptureVictim())
		if bestScore+gain+FutilityMargins[0] <= alpha && s.getExchangeScore(pos, m) <= 0 {
			continue
		}

		ok, _ := b.PlayMove(m)
		if !ok {
			b.UndoMove()
			continue
		}
		legalMoveCount++

		score := -s.getQuietScore(depth+1, qStartDepth, -beta, -alpha)
		b.UndoMove()

		if score == Interrupted {
			return Interrupted
		}
		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			return beta
		}
	}

	return bestScore
}
