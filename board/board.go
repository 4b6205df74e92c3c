package board

import "github.com/ekmadsen/madchess/move"

// StackSize is the fixed depth of the position ring. Make-move copies
// slot i to slot i+1 and mutates i+1; undo just decrements the index --
// no allocation happens at search time (spec.md §9's re-architecture
// guidance).
const StackSize = 1024

// Board owns the search's position stack: a fixed ring of Position value
// structs addressed by a single cursor index.
type Board struct {
	Stack [StackSize]Position
	Index int
}

// New returns a Board positioned at the standard starting array.
func New() *Board {
	b := &Board{}
	b.SetPosition(InitialFEN, false)
	return b
}

// Current returns the position at the top of the stack.
func (b *Board) Current() *Position { return &b.Stack[b.Index] }

// SetPosition parses fen into a fresh Position at the bottom of the stack,
// resetting the search stack. When preserveMoveCount is false, the
// fullmove/halfmove counters are taken from the FEN as-is; UCI's
// `position` command always wants this cleared to the FEN's own counters,
// so the flag exists for callers (tuning/testing tools) that want to keep
// counting from an existing game instead.
func (b *Board) SetPosition(fen string, preserveMoveCount bool) {
	prevFullMove, prevHalfMove := b.Stack[0].FullMoveNumber, b.Stack[0].PlySinceCaptureOrPawnMove
	b.Index = 0
	b.Stack[0] = ParseFEN(fen)
	if preserveMoveCount {
		b.Stack[0].FullMoveNumber = prevFullMove
		b.Stack[0].PlySinceCaptureOrPawnMove = prevHalfMove
	}

	p := &b.Stack[0]
	p.PiecesSquaresKey = piecesSquaresKeyFromScratch(p)
	p.Key = recomputeKey(p)
	p.KingInCheck = p.IsSquareAttacked(p.KingSquare(p.ColorToMove), p.ColorToMove.Enemy())
	p.ComputePinnedPieces()
}

// PlayMove applies m to the current position, pushing a new position onto
// the stack. It returns (legal, givesCheck): if the move turns out to be
// illegal (it leaves or puts the moving side's own king in check), the
// stack is left pushed -- the caller must call UndoMove.
func (b *Board) PlayMove(m move.Move) (legal, givesCheck bool) {
	prev := &b.Stack[b.Index]
	b.Index++
	next := &b.Stack[b.Index]
	*next = *prev

	mover := prev.ColorToMove
	applyMove(next, m)

	next.ColorToMove = mover.Enemy()

	kingSq := next.KingSquare(mover)
	if next.IsSquareAttacked(kingSq, mover.Enemy()) {
		return false, false
	}
	if m.IsCastling() {
		transit := castlingTransitSquares(m.To())
		for _, sq := range transit {
			if next.IsSquareAttacked(sq, mover.Enemy()) {
				return false, false
			}
		}
	}

	updateCastlingRights(next, m)
	updateEnPassant(next, m)
	if m.CaptureVictim() != move.None || m.IsPawnMove() {
		next.PlySinceCaptureOrPawnMove = 0
	} else {
		next.PlySinceCaptureOrPawnMove++
	}
	if mover == Black {
		next.FullMoveNumber++
	}

	next.Key = recomputeKey(next)
	next.PlayedMove = m
	next.KingInCheck = next.IsSquareAttacked(next.KingSquare(next.ColorToMove), mover)
	next.ComputePinnedPieces()
	next.Moves.Reset()

	return true, next.KingInCheck
}

// PlayNullMove pushes a copy of the current position with the side to
// move flipped, the en-passant target cleared, the key recomputed,
// KingInCheck false and PlayedMove set to move.Null -- used by null-move
// pruning.
func (b *Board) PlayNullMove() {
	prev := &b.Stack[b.Index]
	b.Index++
	next := &b.Stack[b.Index]
	*next = *prev
	next.ColorToMove = prev.ColorToMove.Enemy()
	next.EnPassant = Illegal
	next.Key = recomputeKey(next)
	next.KingInCheck = false
	next.PlayedMove = move.Null
	next.Moves.Reset()
}

// UndoMove pops the top of the stack.
func (b *Board) UndoMove() { b.Index-- }

// IsRepeatPosition walks the stack backward two plies at a time, within
// PlySinceCaptureOrPawnMove, counting positions whose key matches the
// current one. A count >= n signals a draw by repetition.
func (b *Board) IsRepeatPosition(n int) bool {
	current := &b.Stack[b.Index]
	limit := current.PlySinceCaptureOrPawnMove
	matches := 0
	for back := 2; back <= limit && b.Index-back >= 0; back += 2 {
		if b.Stack[b.Index-back].Key == current.Key {
			matches++
			if matches >= n {
				return true
			}
		}
	}
	return false
}

// applyMove mutates p in place to reflect m having been played: it
// dispatches on the move's flags (castling, en passant, promotion, plain)
// and maintains PiecesSquaresKey incrementally via XOR.
func applyMove(p *Position, m move.Move) {
	from, to := m.From(), m.To()
	moving := m.MovingPiece()

	switch {
	case m.IsEnPassantCapture():
		p.RemovePiece(moving, from)
		p.PiecesSquaresKey ^= pieceSquareKeys[moving][from]
		p.PlacePiece(moving, to)
		p.PiecesSquaresKey ^= pieceSquareKeys[moving][to]

		victimSq := epVictimSquare(to, moving.Color())
		victim := p.PieceAt(victimSq)
		p.RemovePiece(victim, victimSq)
		p.PiecesSquaresKey ^= pieceSquareKeys[victim][victimSq]

	case m.IsCastling():
		p.RemovePiece(moving, from)
		p.PiecesSquaresKey ^= pieceSquareKeys[moving][from]
		p.PlacePiece(moving, to)
		p.PiecesSquaresKey ^= pieceSquareKeys[moving][to]

		rook, rookFrom, rookTo := castlingRookMove(to)
		p.RemovePiece(rook, rookFrom)
		p.PiecesSquaresKey ^= pieceSquareKeys[rook][rookFrom]
		p.PlacePiece(rook, rookTo)
		p.PiecesSquaresKey ^= pieceSquareKeys[rook][rookTo]

	default:
		if victim := m.CaptureVictim(); victim != move.None {
			p.RemovePiece(victim, to)
			p.PiecesSquaresKey ^= pieceSquareKeys[victim][to]
		}
		p.RemovePiece(moving, from)
		p.PiecesSquaresKey ^= pieceSquareKeys[moving][from]

		placed := moving
		if promo := m.PromotedPiece(); promo != move.None {
			placed = promo
		}
		p.PlacePiece(placed, to)
		p.PiecesSquaresKey ^= pieceSquareKeys[placed][to]
	}
}

// epVictimSquare returns the square of the pawn captured en passant, given
// the capturing pawn's destination square and color.
func epVictimSquare(to Square, mover Color) Square {
	if mover == White {
		return to + 8
	}
	return to - 8
}

// castlingRookMove returns the rook piece and its from/to squares for a
// castling move, keyed by the king's destination square.
func castlingRookMove(kingTo Square) (rook Piece, from, to Square) {
	switch kingTo {
	case SG1:
		return move.WhiteRook, SH1, SF1
	case SC1:
		return move.WhiteRook, SA1, SD1
	case SG8:
		return move.BlackRook, SH8, SF8
	case SC8:
		return move.BlackRook, SA8, SD8
	}
	return move.None, Illegal, Illegal
}

// castlingTransitSquares returns the squares the king passes through
// (excluding the origin, including the destination) for legality checking.
func castlingTransitSquares(kingTo Square) []Square {
	switch kingTo {
	case SG1:
		return []Square{SF1, SG1}
	case SC1:
		return []Square{SD1, SC1}
	case SG8:
		return []Square{SF8, SG8}
	case SC8:
		return []Square{SD8, SC8}
	}
	return nil
}

// updateCastlingRights clears rights whenever a move starts or ends on a
// king's home square (e1, e8) or one of the four corner squares, which
// covers king moves, rook moves and rook captures.
func updateCastlingRights(p *Position, m move.Move) {
	touch := func(sq Square) {
		switch sq {
		case SA1:
			p.Castling &^= CastlingWhiteLong
		case SH1:
			p.Castling &^= CastlingWhiteShort
		case SA8:
			p.Castling &^= CastlingBlackLong
		case SH8:
			p.Castling &^= CastlingBlackShort
		case SE1:
			p.Castling &^= CastlingWhiteShort | CastlingWhiteLong
		case SE8:
			p.Castling &^= CastlingBlackShort | CastlingBlackLong
		}
	}
	touch(m.From())
	touch(m.To())
}

// updateEnPassant sets the en-passant target when m was a double pawn
// push, and clears it otherwise (legal for only the immediately following
// move).
func updateEnPassant(p *Position, m move.Move) {
	p.EnPassant = Illegal
	if !m.IsDoublePawnMove() {
		return
	}
	if m.MovingPiece().Color() == White {
		p.EnPassant = m.To() + 8
	} else {
		p.EnPassant = m.To() - 8
	}
}
