// fen.go implements conversions between Forsyth-Edwards Notation strings
// and Position values. Functions here expect the given FEN to be valid and
// may panic otherwise -- validation happens once, at the UCI boundary.
package board

import (
	"strconv"
	"strings"

	"github.com/ekmadsen/madchess/move"
)

// InitialFEN is the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieceToPiece = map[byte]Piece{
	'P': move.WhitePawn, 'N': move.WhiteKnight, 'B': move.WhiteBishop,
	'R': move.WhiteRook, 'Q': move.WhiteQueen, 'K': move.WhiteKing,
	'p': move.BlackPawn, 'n': move.BlackKnight, 'b': move.BlackBishop,
	'r': move.BlackRook, 'q': move.BlackQueen, 'k': move.BlackKing,
}

// ParseFEN parses fen into a Position. The returned Position's Key fields
// are left zero; callers (Board.SetPosition) fill those in once, since
// computing them requires the full board to already be built.
func ParseFEN(fen string) Position {
	var p Position
	fields := strings.SplitN(strings.TrimSpace(fen), " ", 6)

	p.PieceBitboards = ParseBitboards(fields[0])
	for piece := move.WhitePawn; piece <= move.BlackKing; piece++ {
		p.ColorOccupancy[piece.Color()] |= p.PieceBitboards[piece]
	}
	p.Occupancy = p.ColorOccupancy[White] | p.ColorOccupancy[Black]

	if len(fields) > 1 && fields[1] == "b" {
		p.ColorToMove = Black
	}

	p.EnPassant = Illegal
	if len(fields) > 3 {
		p.EnPassant = String2Square(fields[3])
	}

	if len(fields) > 2 {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.Castling |= CastlingWhiteShort
			case 'Q':
				p.Castling |= CastlingWhiteLong
			case 'k':
				p.Castling |= CastlingBlackShort
			case 'q':
				p.Castling |= CastlingBlackLong
			}
		}
	}

	p.PlySinceCaptureOrPawnMove = 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			p.PlySinceCaptureOrPawnMove = n
		}
	}
	p.FullMoveNumber = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			p.FullMoveNumber = n
		}
	}

	p.PlayedMove = move.Null
	return p
}

// ParseBitboards parses only the piece-placement field of a FEN string.
// FEN lists rank 8 first, file A to H, which is exactly this package's
// square numbering order (A8=0 .. H1=63), so parsing needs no reordering.
func ParseBitboards(placement string) (bitboards [13]uint64) {
	sq := 0
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			continue
		case c >= '1' && c <= '8':
			sq += int(c - '0')
		default:
			piece, ok := fenPieceToPiece[c]
			if !ok {
				continue
			}
			bitboards[piece] |= uint64(1) << uint(sq)
			sq++
		}
	}
	return bitboards
}

// SerializeFEN renders p as a FEN string.
func SerializeFEN(p *Position) string {
	var b strings.Builder
	b.WriteString(SerializeBitboards(p.PieceBitboards))
	b.WriteByte(' ')
	if p.ColorToMove == White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}
	b.WriteByte(' ')

	if p.Castling == 0 {
		b.WriteByte('-')
	} else {
		if p.Castling&CastlingWhiteShort != 0 {
			b.WriteByte('K')
		}
		if p.Castling&CastlingWhiteLong != 0 {
			b.WriteByte('Q')
		}
		if p.Castling&CastlingBlackShort != 0 {
			b.WriteByte('k')
		}
		if p.Castling&CastlingBlackLong != 0 {
			b.WriteByte('q')
		}
	}
	b.WriteByte(' ')
	b.WriteString(Square2String(p.EnPassant))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(p.PlySinceCaptureOrPawnMove))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(p.FullMoveNumber))
	return b.String()
}

// SerializeBitboards renders the piece-placement field of a FEN string.
func SerializeBitboards(bitboards [13]uint64) string {
	var b strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := row*8 + file
			piece := pieceAtSquareIn(bitboards, sq)
			if piece == move.None {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(PieceSymbols[piece])
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if row != 7 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

func pieceAtSquareIn(bitboards [13]uint64, sq int) Piece {
	bb := uint64(1) << uint(sq)
	for piece := move.WhitePawn; piece <= move.BlackKing; piece++ {
		if bitboards[piece]&bb != 0 {
			return piece
		}
	}
	return move.None
}
