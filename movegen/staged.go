package movegen

import (
	"sort"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/heuristics"
	"github.com/ekmadsen/madchess/move"
)

// GetNextMove drives the BestMove -> Captures -> NonCaptures -> End state
// machine living on p.Moves.Stage: each call emits the single
// highest-priority not-yet-emitted move, generating and sorting the next
// stage lazily only once the previous one is exhausted. bestMove, when
// not move.Null, is emitted first regardless of stage ordering; any
// pseudo-legal move equal to it that the generator later produces is
// skipped rather than re-emitted. tables supplies the killer and history
// priority bits for quiet moves; pass nil to skip the heuristic lookup
// (e.g. before the tables exist).
func GetNextMove(p *board.Position, bestMove move.Move, ply int, tables *heuristics.Tables) (move.Move, int) {
	list := &p.Moves
	for {
		if list.CurrentMoveIndex < list.MoveIndex {
			idx := list.CurrentMoveIndex
			m := list.Moves[idx]
			list.CurrentMoveIndex++
			if !m.IsBest() && bestMove != move.Null && move.Equal(m, bestMove) {
				continue
			}
			return m, idx
		}

		switch list.Stage {
		case move.StageBestMove:
			if bestMove != move.Null {
				list.Push(bestMove.SetIsBest(true))
			}
			list.Stage = move.StageCaptures

		case move.StageCaptures:
			from := list.MoveIndex
			GenerateCaptures(p, list)
			prioritize(list, tables, ply, from, list.MoveIndex)
			sortMoves(list, from, list.MoveIndex)
			list.Stage = move.StageNonCaptures

		case move.StageNonCaptures:
			from := list.MoveIndex
			GenerateNonCaptures(p, list)
			prioritize(list, tables, ply, from, list.MoveIndex)
			sortMoves(list, from, list.MoveIndex)
			list.Stage = move.StageEnd

		case move.StageEnd:
			return move.Null, list.CurrentMoveIndex
		}
	}
}

// GetNextCapture is quiescence's narrower generator: captures only,
// MVV/LVA order intrinsic to the move word's high bits, no killer or
// history lookup and no pre-tagged best move.
func GetNextCapture(p *board.Position) (move.Move, int) {
	list := &p.Moves
	for {
		if list.CurrentMoveIndex < list.MoveIndex {
			idx := list.CurrentMoveIndex
			list.CurrentMoveIndex++
			return list.Moves[idx], idx
		}
		if list.Stage == move.StageEnd {
			return move.Null, list.CurrentMoveIndex
		}
		from := list.MoveIndex
		GenerateCaptures(p, list)
		sortMoves(list, from, list.MoveIndex)
		list.Stage = move.StageEnd
	}
}

// prioritize stamps killer-slot and history priority bits onto
// list.Moves[from:to]. Captures already carry MVV/LVA priority in their
// victim/attacker bits, which always outrank killer/history, so applying
// this uniformly to both captures and non-captures is harmless.
func prioritize(list *move.List, tables *heuristics.Tables, ply, from, to int) {
	if tables == nil {
		return
	}
	for i := from; i < to; i++ {
		m := list.Moves[i]
		m = m.SetKillerSlot(tables.Killers.Value(ply, m)).SetHistory(tables.History.Value(m))
		list.Moves[i] = m
	}
}

// sortMoves sorts list.Moves[from:to] by raw move value, descending --
// the move-ordering priority sort (spec.md §4.3). Only the newly
// generated suffix is sorted: the already-emitted prefix before `from`
// must keep its consumed order undisturbed.
func sortMoves(list *move.List, from, to int) {
	s := list.Moves[from:to]
	sort.Slice(s, func(i, j int) bool { return s[i] > s[j] })
}
