package move

import "sort"

// MaxMoves bounds the number of pseudo-legal moves any reachable chess
// position can have. 218 is the documented theoretical maximum; headroom
// is kept for the staged generator's pre-tagged best move being inserted
// before the rest is generated.
const MaxMoves = 256

// Stage is a staged move generator's position within its state machine.
type Stage int

const (
	StageBestMove Stage = iota
	StageCaptures
	StageNonCaptures
	StageEnd
)

// List is a fixed-capacity move buffer living inline on a Position, so
// generating moves at a search node never allocates.
type List struct {
	Moves            [MaxMoves]Move
	MoveIndex        int
	CurrentMoveIndex int
	Stage            Stage
}

// Reset empties the list and resets the staged-generation state machine.
func (l *List) Reset() {
	l.MoveIndex = 0
	l.CurrentMoveIndex = 0
	l.Stage = StageBestMove
}

// Push appends m to the list.
func (l *List) Push(m Move) {
	l.Moves[l.MoveIndex] = m
	l.MoveIndex++
}

// Slice returns the currently generated moves as a slice view (no copy).
func (l *List) Slice() []Move { return l.Moves[:l.MoveIndex] }

// SortDescending sorts the generated moves by raw unsigned value,
// descending -- the move-ordering priority sort (spec.md §4.3).
func (l *List) SortDescending() {
	s := l.Moves[:l.MoveIndex]
	sort.Slice(s, func(i, j int) bool { return s[i] > s[j] })
}
