// Package movegen implements staged pseudo-legal move generation on top of
// magic-bitboard attack lookups: captures first (MVV/LVA-ordered), then
// quiet moves, matching the BestMove -> Captures -> NonCaptures -> End
// state machine a search node drives through a position's move list.
package movegen

import (
	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/internal/bitutil"
	"github.com/ekmadsen/madchess/magic"
	"github.com/ekmadsen/madchess/move"
)

func toMagicColor(c board.Color) magic.Color {
	if c == board.White {
		return magic.White
	}
	return magic.Black
}

// GenerateCaptures appends every pseudo-legal capturing move (including
// capture-promotions and en passant) to out.
func GenerateCaptures(p *board.Position, out *move.List) {
	generate(p, out, true, false)
}

// GenerateNonCaptures appends every pseudo-legal non-capturing move
// (including castling and non-capture promotions) to out.
func GenerateNonCaptures(p *board.Position, out *move.List) {
	generate(p, out, false, true)
}

// GenerateAll appends every pseudo-legal move to out: equivalent to calling
// GenerateCaptures then GenerateNonCaptures.
func GenerateAll(p *board.Position, out *move.List) {
	generate(p, out, true, true)
}

func generate(p *board.Position, out *move.List, captures, quiets bool) {
	color := p.ColorToMove
	enemy := color.Enemy()
	ownPieces := p.ColorOccupancy[color]
	enemyPieces := p.ColorOccupancy[enemy]

	genPawnMoves(p, out, color, captures, quiets)

	knight := move.WhiteKnight
	bishop := move.WhiteBishop
	rook := move.WhiteRook
	queen := move.WhiteQueen
	king := move.WhiteKing
	if color == board.Black {
		knight, bishop, rook, queen, king = move.BlackKnight, move.BlackBishop, move.BlackRook, move.BlackQueen, move.BlackKing
	}

	genPieceMoves(p, out, knight, ownPieces, enemyPieces, captures, quiets, func(sq int, occ uint64) uint64 {
		return magic.KnightAttacks(sq)
	})
	genPieceMoves(p, out, bishop, ownPieces, enemyPieces, captures, quiets, magic.BishopAttacks)
	genPieceMoves(p, out, rook, ownPieces, enemyPieces, captures, quiets, magic.RookAttacks)
	genPieceMoves(p, out, queen, ownPieces, enemyPieces, captures, quiets, magic.QueenAttacks)
	genPieceMoves(p, out, king, ownPieces, enemyPieces, captures, quiets, func(sq int, occ uint64) uint64 {
		return magic.KingAttacks(sq)
	})

	if quiets {
		genCastling(p, out, color)
	}
}

func genPieceMoves(p *board.Position, out *move.List, piece move.Piece, ownPieces, enemyPieces uint64, captures, quiets bool, attacksFn func(sq int, occupancy uint64) uint64) {
	bb := p.PieceBitboards[piece]
	for bb != 0 {
		from := bitutil.PopLSB(&bb)
		attacks := attacksFn(from, p.Occupancy) &^ ownPieces
		captureTargets := attacks & enemyPieces
		quietTargets := attacks &^ enemyPieces

		if captures {
			t := captureTargets
			for t != 0 {
				to := bitutil.PopLSB(&t)
				m := move.New(move.Square(from), move.Square(to), piece)
				victim := p.PieceAt(move.Square(to))
				m = m.SetCaptureVictim(victim).SetCaptureAttacker(piece)
				if piece.Colorless() == move.King {
					m = m.SetIsKingMove(true)
				}
				out.Push(m)
			}
		}
		if quiets {
			t := quietTargets
			for t != 0 {
				to := bitutil.PopLSB(&t)
				m := move.New(move.Square(from), move.Square(to), piece)
				if piece.Colorless() == move.King {
					m = m.SetIsKingMove(true)
				}
				out.Push(m)
			}
		}
	}
}

func genPawnMoves(p *board.Position, out *move.List, color board.Color, captures, quiets bool) {
	pawn := move.WhitePawn
	promoteRow := 0
	startRow := 6
	forward := -8
	if color == board.Black {
		pawn = move.BlackPawn
		promoteRow = 7
		startRow = 1
		forward = 8
	}
	enemy := color.Enemy()
	enemyPieces := p.ColorOccupancy[enemy]

	bb := p.PieceBitboards[pawn]
	for bb != 0 {
		from := bitutil.PopLSB(&bb)

		if captures {
			attacks := magic.PawnAttacks(from, toMagicColor(color)) & enemyPieces
			t := attacks
			for t != 0 {
				to := bitutil.PopLSB(&t)
				victim := p.PieceAt(move.Square(to))
				pushPawnMoves(out, from, to, pawn, color, promoteRow, victim)
			}
			if p.EnPassant != board.Illegal && magic.PawnAttacks(from, toMagicColor(color))&(uint64(1)<<uint(p.EnPassant)) != 0 {
				to := int(p.EnPassant)
				m := move.New(move.Square(from), move.Square(to), pawn).
					SetIsEnPassantCapture(true).SetIsPawnMove(true).
					SetCaptureVictim(opposingPawn(color)).SetCaptureAttacker(pawn)
				out.Push(m)
			}
		}

		if quiets {
			to := from + forward
			if to >= 0 && to < 64 && p.Occupancy&(uint64(1)<<uint(to)) == 0 {
				pushPawnMoves(out, from, to, pawn, color, promoteRow, move.None)
				if board.Row(move.Square(from)) == startRow {
					to2 := from + 2*forward
					if p.Occupancy&(uint64(1)<<uint(to2)) == 0 {
						m := move.New(move.Square(from), move.Square(to2), pawn).
							SetIsPawnMove(true).SetIsDoublePawnMove(true)
						out.Push(m)
					}
				}
			}
		}
	}
}

func opposingPawn(color board.Color) move.Piece {
	if color == board.White {
		return move.BlackPawn
	}
	return move.WhitePawn
}

func pushPawnMoves(out *move.List, from, to int, pawn move.Piece, color board.Color, promoteRow int, victim move.Piece) {
	base := move.New(move.Square(from), move.Square(to), pawn).SetIsPawnMove(true)
	if victim != move.None {
		base = base.SetCaptureVictim(victim).SetCaptureAttacker(pawn)
	}
	if board.Row(move.Square(to)) == promoteRow {
		for _, promo := range promotionPieces(color) {
			out.Push(base.SetPromotedPiece(promo))
		}
		return
	}
	out.Push(base)
}

func promotionPieces(color board.Color) []move.Piece {
	if color == board.White {
		return []move.Piece{move.WhiteQueen, move.WhiteRook, move.WhiteBishop, move.WhiteKnight}
	}
	return []move.Piece{move.BlackQueen, move.BlackRook, move.BlackBishop, move.BlackKnight}
}

func genCastling(p *board.Position, out *move.List, color board.Color) {
	if p.KingInCheck {
		return
	}
	if color == board.White {
		if p.Castling&board.CastlingWhiteShort != 0 &&
			p.Occupancy&(sqBB(board.SF1)|sqBB(board.SG1)) == 0 {
			m := move.New(board.SE1, board.SG1, move.WhiteKing).SetIsCastling(true).SetIsKingMove(true)
			out.Push(m)
		}
		if p.Castling&board.CastlingWhiteLong != 0 &&
			p.Occupancy&(sqBB(board.SB1)|sqBB(board.SC1)|sqBB(board.SD1)) == 0 {
			m := move.New(board.SE1, board.SC1, move.WhiteKing).SetIsCastling(true).SetIsKingMove(true)
			out.Push(m)
		}
		return
	}
	if p.Castling&board.CastlingBlackShort != 0 &&
		p.Occupancy&(sqBB(board.SF8)|sqBB(board.SG8)) == 0 {
		m := move.New(board.SE8, board.SG8, move.BlackKing).SetIsCastling(true).SetIsKingMove(true)
		out.Push(m)
	}
	if p.Castling&board.CastlingBlackLong != 0 &&
		p.Occupancy&(sqBB(board.SB8)|sqBB(board.SC8)|sqBB(board.SD8)) == 0 {
		m := move.New(board.SE8, board.SC8, move.BlackKing).SetIsCastling(true).SetIsKingMove(true)
		out.Push(m)
	}
}

func sqBB(s move.Square) uint64 { return uint64(1) << uint(s) }

