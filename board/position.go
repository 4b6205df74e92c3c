package board

import (
	"github.com/ekmadsen/madchess/magic"
	"github.com/ekmadsen/madchess/move"
)

// Position is a value-semantic chessboard snapshot. It is copied wholesale
// by Board.PlayMove (stack[i+1] = stack[i]) and then mutated in place --
// never allocated at search time.
type Position struct {
	PieceBitboards [13]uint64
	ColorOccupancy [2]uint64
	Occupancy      uint64

	ColorToMove    Color
	Castling       CastlingRights
	EnPassant      Square

	PlySinceCaptureOrPawnMove int
	FullMoveNumber            int

	KingInCheck   bool
	PinnedPieces  uint64

	PlayedMove  move.Move
	StaticScore int32

	Key              uint64
	PiecesSquaresKey uint64

	Moves move.List
}

// PlacePiece sets piece on square and updates the derived occupancy
// bitboards.
func (p *Position) PlacePiece(piece Piece, sq Square) {
	bb := uint64(1) << uint(sq)
	p.PieceBitboards[piece] |= bb
	p.ColorOccupancy[piece.Color()] |= bb
	p.Occupancy |= bb
}

// RemovePiece clears piece from square and updates the derived occupancy
// bitboards. It is a caller error to call this for a square piece does not
// occupy.
func (p *Position) RemovePiece(piece Piece, sq Square) {
	bb := uint64(1) << uint(sq)
	p.PieceBitboards[piece] &^= bb
	p.ColorOccupancy[piece.Color()] &^= bb
	p.Occupancy &^= bb
}

// PieceAt returns the piece standing on square, or None.
func (p *Position) PieceAt(sq Square) Piece {
	bb := uint64(1) << uint(sq)
	for piece := move.WhitePawn; piece <= move.BlackKing; piece++ {
		if p.PieceBitboards[piece]&bb != 0 {
			return piece
		}
	}
	return move.None
}

// KingSquare returns the square of color's king.
func (p *Position) KingSquare(color Color) Square {
	king := move.WhiteKing
	if color == Black {
		king = move.BlackKing
	}
	bb := p.PieceBitboards[king]
	return Square(bitScan(bb))
}

// bitScan returns the index of the least significant set bit. Empty-board
// callers never happen (there is always exactly one king per color).
func bitScan(bb uint64) int {
	for i := range 64 {
		if bb&(uint64(1)<<uint(i)) != 0 {
			return i
		}
	}
	return 0
}

// attackersTo returns every piece of either color (kings and pawns
// included) that attacks sq, with bishop, rook and queen rays computed
// against the given occupancy rather than the position's own.
func (p *Position) attackersTo(sq Square, occupancy uint64) uint64 {
	var attackers uint64
	target := uint64(1) << uint(sq)
	_ = target

	attackers |= magic.KnightAttacks(int(sq)) & (p.PieceBitboards[move.WhiteKnight] | p.PieceBitboards[move.BlackKnight])
	attackers |= magic.KingAttacks(int(sq)) & (p.PieceBitboards[move.WhiteKing] | p.PieceBitboards[move.BlackKing])
	bishopsQueens := p.PieceBitboards[move.WhiteBishop] | p.PieceBitboards[move.BlackBishop] |
		p.PieceBitboards[move.WhiteQueen] | p.PieceBitboards[move.BlackQueen]
	attackers |= magic.BishopAttacks(int(sq), occupancy) & bishopsQueens
	rooksQueens := p.PieceBitboards[move.WhiteRook] | p.PieceBitboards[move.BlackRook] |
		p.PieceBitboards[move.WhiteQueen] | p.PieceBitboards[move.BlackQueen]
	attackers |= magic.RookAttacks(int(sq), occupancy) & rooksQueens

	attackers |= magic.PawnAttacks(int(sq), magic.White) & p.PieceBitboards[move.BlackPawn]
	attackers |= magic.PawnAttacks(int(sq), magic.Black) & p.PieceBitboards[move.WhitePawn]

	return attackers
}

// IsSquareAttacked reports whether any piece of color `by` attacks sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.attackersTo(sq, p.Occupancy)&p.ColorOccupancy[by] != 0
}

// ComputePinnedPieces recomputes PinnedPieces: allied pieces standing
// between the king and an enemy slider on the same line, where removing
// that piece would expose the king.
func (p *Position) ComputePinnedPieces() {
	p.PinnedPieces = 0
	color := p.ColorToMove
	enemy := color.Enemy()
	kingSq := p.KingSquare(color)

	enemyBishopsQueens := (p.PieceBitboards[move.WhiteBishop] | p.PieceBitboards[move.BlackBishop] |
		p.PieceBitboards[move.WhiteQueen] | p.PieceBitboards[move.BlackQueen]) & p.ColorOccupancy[enemy]
	enemyRooksQueens := (p.PieceBitboards[move.WhiteRook] | p.PieceBitboards[move.BlackRook] |
		p.PieceBitboards[move.WhiteQueen] | p.PieceBitboards[move.BlackQueen]) & p.ColorOccupancy[enemy]

	sliderAttacksFromKing := magic.BishopAttacks(int(kingSq), 0) & enemyBishopsQueens
	sliderAttacksFromKing |= magic.RookAttacks(int(kingSq), 0) & enemyRooksQueens

	for sliders := sliderAttacksFromKing; sliders != 0; {
		sliderSq := popLSB(&sliders)
		between := squaresBetween(kingSq, Square(sliderSq)) & p.Occupancy
		if onesCount(between) == 1 {
			p.PinnedPieces |= between & p.ColorOccupancy[color]
		}
	}
}

func popLSB(bb *uint64) int {
	lsb := bitScan(*bb)
	*bb &= *bb - 1
	return lsb
}

func onesCount(bb uint64) int {
	n := 0
	for bb != 0 {
		bb &= bb - 1
		n++
	}
	return n
}

// squaresBetween returns the bitboard of squares strictly between a and b
// when they share a rank, file, or diagonal; zero otherwise.
func squaresBetween(a, b Square) uint64 {
	ra, fa := Row(a), File(a)
	rb, fb := Row(b), File(b)
	dr, df := sign(rb-ra), sign(fb-fa)
	if dr == 0 && df == 0 {
		return 0
	}
	if dr != 0 && df != 0 && abs(rb-ra) != abs(fb-fa) {
		return 0
	}
	if dr == 0 && ra != rb {
		return 0
	}
	if df == 0 && fa != fb {
		return 0
	}
	var bb uint64
	r, f := ra+dr, fa+df
	for r != rb || f != fb {
		bb |= uint64(1) << uint(r*8+f)
		r += dr
		f += df
	}
	return bb
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// HasNonPawnMaterial reports whether color has any piece other than pawns
// and the king -- used to gate null-move pruning (zugzwang risk is high
// with only pawns left).
func (p *Position) HasNonPawnMaterial(color Color) bool {
	knight, bishop, rook, queen := move.WhiteKnight, move.WhiteBishop, move.WhiteRook, move.WhiteQueen
	if color == Black {
		knight, bishop, rook, queen = move.BlackKnight, move.BlackBishop, move.BlackRook, move.BlackQueen
	}
	return p.PieceBitboards[knight]|p.PieceBitboards[bishop]|p.PieceBitboards[rook]|p.PieceBitboards[queen] != 0
}

// darkSquares has a bit set on one color class of squares (with A8=0
// indexing these are the light squares: a8, c8, ..., h1), used to tell
// same-colored bishops (a dead position) from opposite-colored ones.
const darkSquares = uint64(0xAA55AA55AA55AA55)

// InsufficientMaterial reports a dead-position draw: neither side has
// enough material left to deliver checkmate. This covers bare kings, a
// lone king and minor piece against a bare king, and one bishop per side
// with both bishops on the same square color.
func (p *Position) InsufficientMaterial() bool {
	total := 0
	for piece := move.WhitePawn; piece <= move.BlackKing; piece++ {
		if piece == move.WhiteKing || piece == move.BlackKing {
			continue
		}
		cp := piece.Colorless()
		total += onesCount(p.PieceBitboards[piece]) * pieceWeights[cp]
	}
	minorCount := onesCount(p.PieceBitboards[move.WhiteKnight]) + onesCount(p.PieceBitboards[move.WhiteBishop]) +
		onesCount(p.PieceBitboards[move.BlackKnight]) + onesCount(p.PieceBitboards[move.BlackBishop])
	if total == 0 || (total == pieceWeights[move.Knight] && minorCount == 1) ||
		(total == pieceWeights[move.Bishop] && minorCount == 1) {
		return true
	}

	if total != 2*pieceWeights[move.Bishop] {
		return false
	}
	wb := p.PieceBitboards[move.WhiteBishop]
	bb := p.PieceBitboards[move.BlackBishop]
	if wb == 0 || bb == 0 || onesCount(wb) != 1 || onesCount(bb) != 1 {
		return false
	}
	return ((wb & darkSquares) != 0) == ((bb & darkSquares) != 0)
}
