// Package heuristics implements the killer-move and history tables that
// drive quiet-move ordering: a small amount of state, indexed by search
// ply or by piece/square, that biases getNextMove toward moves which have
// recently caused beta cutoffs elsewhere in the tree.
package heuristics

import "github.com/ekmadsen/madchess/move"

// MaxHorizon bounds the main search's iterative-deepening depth.
const MaxHorizon = 64

// MaxQuietDepth bounds how far quiescence can extend past the horizon, so
// killer slots cover every ply a quiet move could be tried at.
const MaxQuietDepth = 32

// KillerPlies is the number of ply slots the killer table carries.
const KillerPlies = MaxHorizon + MaxQuietDepth

// Killers holds, for every ply, the two most recent quiet moves that
// caused a beta cutoff there. Slot 0 is the more recent of the two.
type Killers struct {
	slots [KillerPlies][2]move.Move
}

// Update records that move caused a beta cutoff at ply. If move already
// occupies slot 1 it is promoted to slot 0 (no shift needed); if it
// already occupies slot 0, nothing changes; otherwise slot 0 shifts to
// slot 1 and move takes slot 0.
func (k *Killers) Update(ply int, m move.Move) {
	if ply < 0 || ply >= KillerPlies {
		return
	}
	s := &k.slots[ply]
	switch {
	case move.Equal(s[0], m):
		return
	case move.Equal(s[1], m):
		s[0], s[1] = m, s[0]
	default:
		s[1] = s[0]
		s[0] = m
	}
}

// Value returns the killer priority of move at ply: 2 for slot 0, 1 for
// slot 1, 0 otherwise -- stored directly in the move word's killer field.
func (k *Killers) Value(ply int, m move.Move) int {
	if ply < 0 || ply >= KillerPlies {
		return 0
	}
	s := &k.slots[ply]
	switch {
	case move.Equal(s[0], m):
		return 2
	case move.Equal(s[1], m):
		return 1
	default:
		return 0
	}
}

// Shift re-aligns killer depths after the root position advances by
// plies (e.g. a `position ... moves ...` command continuing a game):
// what used to be ply i's killers becomes ply i-plies's, and the
// vacated tail plies are cleared.
func (k *Killers) Shift(plies int) {
	if plies <= 0 {
		return
	}
	if plies >= KillerPlies {
		k.Clear()
		return
	}
	copy(k.slots[:KillerPlies-plies], k.slots[plies:])
	for i := KillerPlies - plies; i < KillerPlies; i++ {
		k.slots[i] = [2]move.Move{}
	}
}

// Clear empties every ply's killer slots.
func (k *Killers) Clear() {
	for i := range k.slots {
		k.slots[i] = [2]move.Move{}
	}
}

// History credits and debits quiet moves by piece/destination square,
// independent of the position they were played in, capped to
// ±move.HistoryMax.
type History struct {
	scores [13][64]int
}

// Value returns move's current history score, used directly in the move
// word's history field.
func (h *History) Value(m move.Move) int {
	return h.scores[m.MovingPiece()][m.To()]
}

// Update is called on a quiet beta cutoff: cutoff is credited by
// toHorizon², and every other quiet move already tried at that node
// (tried, excluding cutoff) is debited by the same amount.
func (h *History) Update(cutoff move.Move, tried []move.Move, toHorizon int) {
	bonus := toHorizon * toHorizon
	h.add(cutoff, bonus)
	for _, m := range tried {
		if move.Equal(m, cutoff) {
			continue
		}
		h.add(m, -bonus)
	}
}

func (h *History) add(m move.Move, delta int) {
	p, to := m.MovingPiece(), m.To()
	v := h.scores[p][to] + delta
	if v > move.HistoryMax {
		v = move.HistoryMax
	} else if v < -move.HistoryMax {
		v = -move.HistoryMax
	}
	h.scores[p][to] = v
}

// Clear empties every piece/square history score.
func (h *History) Clear() {
	for p := range h.scores {
		for sq := range h.scores[p] {
			h.scores[p][sq] = 0
		}
	}
}

// Tables bundles the killer and history tables the search shares across
// its lifetime: cleared on `ucinewgame`, otherwise persistent, and
// touched only by the single worker thread (spec.md §5's no-lock
// shared-resource rule).
type Tables struct {
	Killers Killers
	History History
}

// Clear empties both tables.
func (t *Tables) Clear() {
	t.Killers.Clear()
	t.History.Clear()
}
