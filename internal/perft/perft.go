// Package perft walks the move-generation tree of strictly legal moves to
// a given depth, counting leaf nodes. It backs the UCI `countmoves` and
// `dividemoves` debugging commands and the standalone perft CLI.
package perft

import (
	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/move"
	"github.com/ekmadsen/madchess/movegen"
)

// Count returns the number of leaf nodes reachable from b's current
// position in exactly depth plies of strictly legal moves.
//
// See https://www.chessprogramming.org/Perft_Results
func Count(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	pos := b.Current()
	pos.Moves.Reset()
	movegen.GenerateAll(pos, &pos.Moves)
	pseudo := pos.Moves.Slice()

	if depth == 1 {
		var n uint64
		for _, m := range pseudo {
			ok, _ := b.PlayMove(m)
			b.UndoMove()
			if ok {
				n++
			}
		}
		return n
	}

	var nodes uint64
	for _, m := range pseudo {
		ok, _ := b.PlayMove(m)
		if ok {
			nodes += Count(b, depth-1)
		}
		b.UndoMove()
	}
	return nodes
}

// Split is one root move's perft subtree count, as reported by
// `dividemoves`.
type Split struct {
	Move  move.Move
	Nodes uint64
}

// Divide returns, for every legal move at b's current root, the perft
// count of the subtree that move leads to -- the standard perft "divide"
// used to localize a move generator bug to a single branch.
func Divide(b *board.Board, depth int) []Split {
	pos := b.Current()
	pos.Moves.Reset()
	movegen.GenerateAll(pos, &pos.Moves)
	pseudo := pos.Moves.Slice()

	var splits []Split
	for _, m := range pseudo {
		ok, _ := b.PlayMove(m)
		if ok {
			n := uint64(1)
			if depth > 1 {
				n = Count(b, depth-1)
			}
			splits = append(splits, Split{Move: m, Nodes: n})
		}
		b.UndoMove()
	}
	return splits
}
