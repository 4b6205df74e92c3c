// san.go implements serialization of moves to Standard Algebraic Notation
// and to UCI's long-algebraic notation.
package board

import (
	"strings"

	"github.com/ekmadsen/madchess/move"
)

// MoveToUCI renders m in UCI's long-algebraic form: "e2e4", "e7e8q" (the
// promotion letter is always lowercase, regardless of the moving side).
func MoveToUCI(m move.Move) string {
	if m == move.Null {
		return "0000"
	}
	var b strings.Builder
	b.WriteString(Square2String(m.From()))
	b.WriteString(Square2String(m.To()))
	if promo := m.PromotedPiece(); promo != move.None {
		b.WriteByte(promotionLetter(promo))
	}
	return b.String()
}

func promotionLetter(p Piece) byte {
	switch p.Colorless() {
	case move.Knight:
		return 'n'
	case move.Bishop:
		return 'b'
	case move.Rook:
		return 'r'
	default:
		return 'q'
	}
}

// ParseUCIMove finds the legal move in legalMoves matching a long-algebraic
// string such as "e2e4" or "e7e8q". It returns (move.Null, false) when no
// legal move matches, which the caller should treat as a protocol error.
func ParseUCIMove(s string, legalMoves []move.Move) (move.Move, bool) {
	if len(s) < 4 {
		return move.Null, false
	}
	from := String2Square(s[0:2])
	to := String2Square(s[2:4])
	promo := move.None
	if len(s) >= 5 {
		switch s[4] {
		case 'n':
			promo = move.WhiteKnight
		case 'b':
			promo = move.WhiteBishop
		case 'r':
			promo = move.WhiteRook
		case 'q':
			promo = move.WhiteQueen
		}
	}
	for _, m := range legalMoves {
		if m.From() != from || m.To() != to {
			continue
		}
		if promo == move.None && m.PromotedPiece() == move.None {
			return m, true
		}
		if promo != move.None && m.PromotedPiece() != move.None && m.PromotedPiece().Colorless() == promo.Colorless() {
			return m, true
		}
	}
	return move.Null, false
}

// Move2SAN renders m in Standard Algebraic Notation. legalMoves must be
// every other legal move available in the position m was played from, used
// to disambiguate (e.g. "Nbd7" when two knights could reach d7).
func Move2SAN(m move.Move, legalMoves []move.Move, isCapture, isCheck, isCheckmate bool) string {
	if m.IsCastling() {
		if File(m.To()) == 2 { // c-file destination: queenside
			return "O-O-O"
		}
		return "O-O"
	}

	moving := m.MovingPiece()
	var b strings.Builder

	if moving.Colorless() != move.Pawn {
		b.WriteByte(pieceLetter(moving))
		sameFile, sameRank, ambiguous := disambiguate(m, moving, legalMoves)
		if ambiguous {
			if !sameFile {
				b.WriteByte(byte('a' + File(m.From())))
			} else if !sameRank {
				b.WriteByte(byte('0' + (8 - Row(m.From()))))
			} else {
				b.WriteString(Square2String(m.From()))
			}
		}
	} else if isCapture {
		b.WriteByte(byte('a' + File(m.From())))
	}

	if isCapture {
		b.WriteByte('x')
	}
	b.WriteString(Square2String(m.To()))

	if promo := m.PromotedPiece(); promo != move.None {
		b.WriteByte('=')
		b.WriteByte(pieceLetter(promo))
	}

	switch {
	case isCheckmate:
		b.WriteByte('#')
	case isCheck:
		b.WriteByte('+')
	}

	return b.String()
}

func pieceLetter(p Piece) byte {
	switch p.Colorless() {
	case move.Knight:
		return 'N'
	case move.Bishop:
		return 'B'
	case move.Rook:
		return 'R'
	case move.Queen:
		return 'Q'
	case move.King:
		return 'K'
	default:
		return 0
	}
}

// disambiguate reports, among legalMoves, whether another move of the same
// piece kind also reaches m.To(), and if so whether any of those share
// m.From()'s file or rank (SAN prefers the shortest disambiguator: file,
// then rank, then the full square).
func disambiguate(m move.Move, moving Piece, legalMoves []move.Move) (sameFile, sameRank, ambiguous bool) {
	for _, other := range legalMoves {
		if other.From() == m.From() || other.To() != m.To() || other.MovingPiece() != moving {
			continue
		}
		ambiguous = true
		if File(other.From()) == File(m.From()) {
			sameFile = true
		}
		if Row(other.From()) == Row(m.From()) {
			sameRank = true
		}
	}
	return sameFile, sameRank, ambiguous
}
