package search

import (
	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/eval"
	"github.com/ekmadsen/madchess/move"
	"github.com/ekmadsen/madchess/movegen"
)

// ExchangeScore is the exported entry point to the SEE exchange-minimax,
// for callers outside the search (the UCI `exchangescore` debugging
// command) that want the same number quiescence uses internally.
func (s *Searcher) ExchangeScore(m move.Move) int32 {
	return s.getExchangeScore(s.Board.Current(), m)
}

// getExchangeScore statically evaluates a capture's material outcome: the
// piece it wins, minus the best the defender can do recapturing on the
// same square, and so on down the chain of attackers -- without a real
// search, and without ever looking at anything but material. Used to cut
// off clearly-losing captures in quiescence before playing them out.
func (s *Searcher) getExchangeScore(pos *board.Position, m move.Move) int32 {
	_ = pos
	victim := eval.PieceValue(m.CaptureVictim())

	b := s.Board
	ok, _ := b.PlayMove(m)
	if !ok {
		b.UndoMove()
		return 0
	}
	score := victim - s.exchangeScoreAt(m.To())
	b.UndoMove()
	return score
}

// exchangeScoreAt returns the best material outcome available to the
// side now to move by recapturing on sq, recursively: 0 (standing pat,
// declining to recapture at all) unless some recapture does better.
func (s *Searcher) exchangeScoreAt(sq move.Square) int32 {
	b := s.Board
	pos := b.Current()

	best := int32(0)
	for {
		m, _ := movegen.GetNextCapture(pos)
		if m == move.Null {
			break
		}
		if m.To() != sq {
			continue
		}

		gain := eval.PieceValue(m.CaptureVictim())
		ok, _ := b.PlayMove(m)
		if !ok {
			b.UndoMove()
			continue
		}
		score := gain - s.exchangeScoreAt(sq)
		b.UndoMove()

		if score > best {
			best = score
		}
	}
	return best
}
