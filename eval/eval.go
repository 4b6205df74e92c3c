// Package eval supplies the search's static position judgment: a pluggable
// Evaluator that turns a Position into a centipawn score and a "drawn
// endgame" flag. Weights are tuned out-of-band (by a Particle-Swarm tuner
// elsewhere) and are not this package's concern -- Classical just ships a
// sane default set so the engine plays reasonable chess out of the box.
package eval

import (
	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/move"
)

// Max bounds every score a search should ever reason about, cached
// position or otherwise. Scores outside [-Max, +Max] are reserved for
// control-flow sentinels (see search.Interrupted).
const Max int32 = 32000

// Checkmate is the score of delivering mate on the current move. A mate
// found deeper in the tree scores nearer zero than one found shallower,
// so callers offset this by the distance in plies from the root.
const Checkmate int32 = Max - 1000

// MateIn returns the score for delivering checkmate in plies plies from
// the current node, and MatedIn the score for being on the receiving end.
func MateIn(plies int) int32  { return Checkmate - int32(plies) }
func MatedIn(plies int) int32 { return -Checkmate + int32(plies) }

// Evaluator is the search's static-evaluation dependency. Implementations
// must be side-to-move relative: a positive score favors pos.ColorToMove.
type Evaluator interface {
	Evaluate(pos *board.Position) (score int32, drawnEndgame bool)
}

// colorless piece indices into the per-piece-kind weight tables, matching
// move.ColorlessPiece's ordering.
const (
	pawn = iota
	knight
	bishop
	rook
	queen
	king
	pieceKinds
)

// pieceValueMG and pieceValueEG are each piece kind's material worth in
// the middlegame and endgame, in centipawns.
var pieceValueMG = [pieceKinds]int32{82, 337, 365, 477, 1025, 0}
var pieceValueEG = [pieceKinds]int32{94, 281, 297, 512, 936, 0}

// PieceValue returns a piece kind's middlegame material worth, the figure
// search uses for futility margins and SEE ("materialGain(victim)") where
// a single, phase-independent number is wanted rather than a tapered one.
func PieceValue(p move.Piece) int32 {
	cp := p.Colorless()
	if cp < 0 {
		return 0
	}
	return pieceValueMG[cp]
}

// knightPhase..queenPhase is how much each minor/major piece contributes
// to the game-phase counter used to taper between the middlegame and
// endgame tables; total is that counter's value with a full complement
// of pieces (four knights, four bishops, four rooks, two queens).
const (
	knightPhase = 1
	bishopPhase = 1
	rookPhase   = 2
	queenPhase  = 4
	total       = 4*knightPhase + 4*bishopPhase + 4*rookPhase + 2*queenPhase
)

var phaseWeight = [pieceKinds]int32{0, knightPhase, bishopPhase, rookPhase, queenPhase, 0}

// pieceSquareMG and pieceSquareEG give each piece kind's positional bonus
// by square, indexed a8..h1 (this project's square numbering, white's
// perspective); a black piece's bonus is looked up at sq^56, the vertical
// mirror.
var pieceSquareMG = [pieceKinds][64]int32{
	pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		98, 134, 61, 95, 68, 126, 34, -11,
		-6, 7, 26, 31, 65, 56, 25, -20,
		-14, 13, 6, 21, 23, 12, 17, -23,
		-27, -2, -5, 12, 17, 6, 10, -25,
		-26, -4, -4, -10, 3, 3, 33, -12,
		-35, -1, -20, -23, -15, 24, 38, -22,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	knight: {
		-167, -89, -34, -49, 61, -97, -15, -107,
		-73, -41, 72, 36, 23, 62, 7, -17,
		-47, 60, 37, 65, 84, 129, 73, 44,
		-9, 17, 19, 53, 37, 69, 18, 22,
		-13, 4, 16, 13, 28, 19, 21, -8,
		-23, -9, 12, 10, 19, 17, 25, -16,
		-29, -53, -12, -3, -1, 18, -14, -19,
		-105, -21, -58, -33, -17, -28, -19, -23,
	},
	bishop: {
		-29, 4, -82, -37, -25, -42, 7, -8,
		-26, 16, -18, -13, 30, 59, 18, -47,
		-16, 37, 43, 40, 35, 50, 37, -2,
		-4, 5, 19, 50, 37, 37, 7, -2,
		-6, 13, 13, 26, 34, 12, 10, 4,
		0, 15, 15, 15, 14, 27, 18, 10,
		4, 15, 16, 0, 7, 21, 33, 1,
		-33, -3, -14, -21, -13, -12, -39, -21,
	},
	rook: {
		32, 42, 32, 51, 63, 9, 31, 43,
		27, 32, 58, 62, 80, 67, 26, 44,
		-5, 19, 26, 36, 17, 45, 61, 16,
		-24, -11, 7, 26, 24, 35, -8, -20,
		-36, -26, -12, -1, 9, -7, 6, -23,
		-45, -25, -16, -17, 3, 0, -5, -33,
		-44, -16, -20, -9, -1, 11, -6, -71,
		-19, -13, 1, 17, 16, 7, -37, -26,
	},
	queen: {
		-28, 0, 29, 12, 59, 44, 43, 45,
		-24, -39, -5, 1, -16, 57, 28, 54,
		-13, -17, 7, 8, 29, 56, 47, 57,
		-27, -27, -16, -16, -1, 17, -2, 1,
		-9, -26, -9, -10, -2, -4, 3, -3,
		-14, 2, -11, -2, -5, 2, 14, 5,
		-35, -8, 11, 2, 8, 15, -3, 1,
		-1, -18, -9, 10, -15, -25, -31, -50,
	},
	king: {
		-65, 23, 16, -15, -56, -34, 2, 13,
		29, -1, -20, -7, -8, -4, -38, -29,
		-9, 24, 2, -16, -20, 6, 22, -22,
		-17, -20, -12, -27, -30, -25, -14, -36,
		-49, -1, -27, -39, -46, -44, -33, -51,
		-14, -14, -22, -46, -44, -30, -15, -27,
		1, 7, -8, -64, -43, -16, 9, 8,
		-15, 36, 12, -54, 8, -28, 24, 14,
	},
}

var pieceSquareEG = [pieceKinds][64]int32{
	pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		178, 173, 158, 134, 147, 132, 165, 187,
		94, 100, 85, 67, 56, 53, 82, 84,
		32, 24, 13, 5, -2, 4, 17, 17,
		13, 9, -3, -7, -7, -8, 3, -1,
		4, 7, -6, 1, 0, -5, -1, -8,
		13, 8, 8, 10, 13, 0, 2, -7,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	knight: {
		-58, -38, -13, -28, -31, -27, -63, -99,
		-25, -8, -25, -2, -9, -25, -24, -52,
		-24, -20, 10, 9, -1, -9, -19, -41,
		-17, 3, 22, 22, 22, 11, 8, -18,
		-18, -6, 16, 25, 16, 17, 4, -18,
		-23, -3, -1, 15, 10, -3, -20, -22,
		-42, -20, -10, -5, -2, -20, -23, -44,
		-29, -51, -23, -15, -22, -18, -50, -64,
	},
	bishop: {
		-14, -21, -11, -8, -7, -9, -17, -24,
		-8, -4, 7, -12, -3, -13, -4, -14,
		2, -8, 0, -1, -2, 6, 0, 4,
		-3, 9, 12, 9, 14, 10, 3, 2,
		-6, 3, 13, 19, 7, 10, -3, -9,
		-12, -3, 8, 10, 13, 3, -7, -15,
		-14, -18, -7, -1, 4, -9, -15, -27,
		-23, -9, -23, -5, -9, -16, -5, -17,
	},
	rook: {
		13, 10, 18, 15, 12, 12, 8, 5,
		11, 13, 13, 11, -3, 3, 8, 3,
		7, 7, 7, 5, 4, -3, -5, -3,
		4, 3, 13, 1, 2, 1, -1, 2,
		3, 5, 8, 4, -5, -6, -8, -11,
		-4, 0, -5, -1, -7, -12, -8, -16,
		-6, -6, 0, 2, -9, -9, -11, -3,
		-9, 2, 3, -1, -5, -13, 4, -20,
	},
	queen: {
		-9, 22, 22, 27, 27, 19, 10, 20,
		-17, 20, 32, 41, 58, 25, 30, 0,
		-20, 6, 9, 49, 47, 35, 19, 9,
		3, 22, 24, 45, 57, 40, 57, 36,
		-18, 28, 19, 47, 31, 34, 39, 23,
		-16, -27, 15, 6, 9, 17, 10, 5,
		-22, -23, -30, -16, -16, -23, -36, -32,
		-33, -28, -22, -43, -5, -32, -20, -41,
	},
	king: {
		-74, -35, -18, -18, -11, 15, 4, -17,
		-12, 17, 14, 17, 17, 38, 23, 11,
		10, 17, 23, 15, 20, 45, 44, 13,
		-8, 22, 24, 27, 26, 33, 26, 3,
		-18, -4, 21, 24, 27, 23, 9, -11,
		-19, -3, 11, 21, 23, 16, 7, -9,
		-27, -11, 4, 13, 14, 4, -5, -17,
		-53, -34, -21, -11, -28, -14, -24, -43,
	},
}

// Classical is a tapered material-and-piece-square evaluator: the
// middlegame and endgame scores are both computed in full, then
// interpolated by a game-phase counter that drains as pieces come off
// the board.
type Classical struct{}

var _ Evaluator = (*Classical)(nil)

// Evaluate implements Evaluator.
func (Classical) Evaluate(pos *board.Position) (int32, bool) {
	var mg, eg, phase int32

	for piece := board.Piece(1); int(piece) < len(pos.PieceBitboards); piece++ {
		bb := pos.PieceBitboards[piece]
		if bb == 0 {
			continue
		}
		cp := int(piece.Colorless())
		color := piece.Color()
		for bb != 0 {
			sq := int(bitScanForward(bb))
			bb &= bb - 1

			table := sq
			if color == board.Black {
				table = sq ^ 56
			}

			sign := int32(1)
			if color == board.Black {
				sign = -1
			}
			mg += sign * (pieceValueMG[cp] + pieceSquareMG[cp][table])
			eg += sign * (pieceValueEG[cp] + pieceSquareEG[cp][table])
			phase += phaseWeight[cp]
		}
	}

	if phase > total {
		phase = total
	}
	score := (mg*phase + eg*(total-phase)) / total

	if pos.ColorToMove == board.Black {
		score = -score
	}

	return score, pos.InsufficientMaterial()
}

// bitScanForward returns the index of the least significant set bit.
func bitScanForward(bb uint64) int {
	for i := range 64 {
		if bb&(uint64(1)<<uint(i)) != 0 {
			return i
		}
	}
	return 0
}
