package board

import (
	"math/rand/v2"

	"github.com/ekmadsen/madchess/move"
)

// Zobrist keys: four independent random arrays XORed together to form a
// position's key. Piece placement contributes to PiecesSquaresKey and is
// maintained incrementally (XOR on add/remove); the other three
// components are cheap enough to recompute on every move.
var (
	pieceSquareKeys  [13][64]uint64
	sideToMoveKeys   [2]uint64
	castlingKeys     [16]uint64
	enPassantKeys    [65]uint64
)

// InitZobristKeys seeds the random key tables. Call once at process
// startup, before any Position is created.
func InitZobristKeys() {
	rng := rand.New(rand.NewPCG(0x9E3779B97F4A7C15, 0xBF58476D1CE4E5B9))
	for piece := move.WhitePawn; piece <= move.BlackKing; piece++ {
		for sq := range 64 {
			pieceSquareKeys[piece][sq] = rng.Uint64()
		}
	}
	sideToMoveKeys[White] = rng.Uint64()
	sideToMoveKeys[Black] = rng.Uint64()
	for i := range castlingKeys {
		castlingKeys[i] = rng.Uint64()
	}
	for sq := range enPassantKeys {
		enPassantKeys[sq] = rng.Uint64()
	}
}

// piecesSquaresKeyFromScratch recomputes the placement component of the
// Zobrist key by hashing every occupied square. Used when a Position is
// built directly from a FEN string, where there is no incremental history
// to build on.
func piecesSquaresKeyFromScratch(p *Position) (key uint64) {
	for piece := move.WhitePawn; piece <= move.BlackKing; piece++ {
		bb := p.PieceBitboards[piece]
		for bb != 0 {
			sq := popLSB(&bb)
			key ^= pieceSquareKeys[piece][sq]
		}
	}
	return key
}

// recomputeKey derives the full Zobrist key from its four components, per
// spec: key == piecesSquaresKey XOR sideToMoveKey XOR castlingKey XOR
// enPassantKey.
func recomputeKey(p *Position) uint64 {
	return p.PiecesSquaresKey ^
		sideToMoveKeys[p.ColorToMove] ^
		castlingKeys[p.Castling] ^
		enPassantKeys[p.EnPassant]
}
