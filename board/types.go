// Package board implements the chessboard state machine: bitboard
// occupancy, FEN and Zobrist hashing, SAN/long-algebraic notation, and the
// fixed-size position ring the search drives make/undo through.
package board

import "github.com/ekmadsen/madchess/move"

// Square, Color and Piece are re-exported from move so callers don't need
// two imports for one concept: the move word and the board it plays on
// share a single square/piece numbering.
type (
	Square = move.Square
	Color  = move.Color
	Piece  = move.Piece
)

const (
	White = move.White
	Black = move.Black
)

// Illegal marks the absence of a square (no en-passant target, no from/to
// square on a null move).
const Illegal = move.Illegal

// Square indices: 0..63 with A8=0, H1=63, row-major by descending rank.
const (
	SA8 Square = iota
	SB8
	SC8
	SD8
	SE8
	SF8
	SG8
	SH8
	SA7
	SB7
	SC7
	SD7
	SE7
	SF7
	SG7
	SH7
	SA6
	SB6
	SC6
	SD6
	SE6
	SF6
	SG6
	SH6
	SA5
	SB5
	SC5
	SD5
	SE5
	SF5
	SG5
	SH5
	SA4
	SB4
	SC4
	SD4
	SE4
	SF4
	SG4
	SH4
	SA3
	SB3
	SC3
	SD3
	SE3
	SF3
	SG3
	SH3
	SA2
	SB2
	SC2
	SD2
	SE2
	SF2
	SG2
	SH2
	SA1
	SB1
	SC1
	SD1
	SE1
	SF1
	SG1
	SH1
)

// CastlingRights is a 4-bit set: WK, WQ, BK, BQ.
type CastlingRights int

const (
	CastlingWhiteShort CastlingRights = 1 << iota
	CastlingWhiteLong
	CastlingBlackShort
	CastlingBlackLong
)

// File returns a square's file, 0..7 for A..H.
func File(s Square) int { return int(s) % 8 }

// Row returns a square's row in the index space, 0 (rank8) .. 7 (rank1).
func Row(s Square) int { return int(s) / 8 }

// RelativeRank returns a square's rank as seen by color: 0 is that color's
// own back rank, 7 is its promotion rank.
func RelativeRank(s Square, c Color) int {
	if c == White {
		return 7 - Row(s)
	}
	return Row(s)
}

// Square2String renders a square in long-algebraic form ("e4"); Illegal
// renders as "-".
func Square2String(s Square) string {
	if s == Illegal {
		return "-"
	}
	file := byte('a' + File(s))
	rank := byte('0' + (8 - Row(s)))
	return string([]byte{file, rank})
}

// String2Square parses a long-algebraic square string ("e4"); "-" yields
// Illegal.
func String2Square(s string) Square {
	if s == "-" || len(s) != 2 {
		return Illegal
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '0')
	return Square((8 - rank) * 8 + file)
}

// PieceSymbols maps each colored piece to its FEN letter.
var PieceSymbols = [13]byte{
	move.None:        '.',
	move.WhitePawn:   'P',
	move.WhiteKnight: 'N',
	move.WhiteBishop: 'B',
	move.WhiteRook:   'R',
	move.WhiteQueen:  'Q',
	move.WhiteKing:   'K',
	move.BlackPawn:   'p',
	move.BlackKnight: 'n',
	move.BlackBishop: 'b',
	move.BlackRook:   'r',
	move.BlackQueen:  'q',
	move.BlackKing:   'k',
}

// pieceWeights gives each colorless piece kind's material value, used for
// insufficient-material detection.
var pieceWeights = [6]int{1, 3, 3, 5, 9, 0}
