// Package timeman turns a UCI `go` command's time controls into the soft
// and hard budgets iterative deepening polls against: soft bounds when a
// new depth may start, hard bounds when a node in progress must abandon
// ship regardless of depth.
package timeman

import "time"

// NodesTimeInterval is how often (in nodes examined) the search re-reads
// the clock, amortizing the syscall over many node visits rather than
// checking on every one (spec.md §9's time-polling guidance).
const NodesTimeInterval = 1024

// reserve is subtracted from the hard limit so the engine never returns
// a move so late the GUI's own clock has already expired it.
const reserve = 100 * time.Millisecond

// scoreDropCP is the centipawn drop from the previous iteration's score
// that triggers a soft-limit extension: the position just got worse, so
// it is worth spending more time confirming the new best move is sound.
const scoreDropCP = 33

// Limits carries a UCI `go` command's time-control fields, zero-valued
// when not supplied. WhiteTime/BlackTime/WhiteIncrement/BlackIncrement
// are the clocks; MovesToGo, when nonzero, overrides the moves-remaining
// estimate. MoveTime, Depth, Nodes, and Infinite are the fixed-limit
// overrides that skip the soft/hard estimation entirely.
type Limits struct {
	WhiteTime, BlackTime           time.Duration
	WhiteIncrement, BlackIncrement time.Duration
	MovesToGo                      int

	MoveTime time.Duration
	Depth    int
	Nodes    uint64
	Infinite bool
}

// hasFixedLimit reports whether any of movetime/depth/nodes/infinite was
// supplied, which per spec.md §4.7 skips the movesRemaining estimation.
func (l Limits) hasFixedLimit() bool {
	return l.MoveTime > 0 || l.Depth > 0 || l.Nodes > 0 || l.Infinite
}

// Manager tracks one search's elapsed time against its soft and hard
// budgets. A single Manager is built per `go` command and lives for that
// search only.
type Manager struct {
	limits Limits
	start  time.Time

	soft, hard time.Duration
	unbounded  bool // depth/nodes/infinite search with no clock to race

	havePrevScore bool
	prevScore     int32
}

// New computes a Manager's soft/hard budgets for the side to move, given
// occupancy (the number of pawns and pieces still on the board, used to
// estimate how many moves remain in the game).
func New(limits Limits, whiteToMove bool, occupancy int) *Manager {
	m := &Manager{limits: limits, start: time.Now()}

	timeRemaining, increment := limits.BlackTime, limits.BlackIncrement
	if whiteToMove {
		timeRemaining, increment = limits.WhiteTime, limits.WhiteIncrement
	}

	if limits.MoveTime > 0 {
		m.soft, m.hard = limits.MoveTime, limits.MoveTime
		return m
	}
	if timeRemaining <= 0 || limits.hasFixedLimit() {
		// depth/nodes/infinite search, or a `go` with no clock at all:
		// nothing here should stop the search on time.
		m.unbounded = true
		return m
	}

	movesRemaining := limits.MovesToGo
	if movesRemaining <= 0 {
		movesRemaining = occupancy * 160 / 128
		if movesRemaining < 8 {
			movesRemaining = 8
		}
	}

	soft := (timeRemaining + time.Duration(movesRemaining)*increment) / time.Duration(movesRemaining)
	hard := soft * 512 / 128 // 4x
	if ceiling := timeRemaining - reserve; hard > ceiling {
		hard = ceiling
	}
	if hard < 0 {
		hard = 0
	}
	if soft > hard {
		soft = hard
	}
	m.soft, m.hard = soft, hard
	return m
}

// Elapsed is how long this Manager's search has been running.
func (m *Manager) Elapsed() time.Duration { return time.Since(m.start) }

// ShouldStopBeforeDepth reports whether a new iterative-deepening
// iteration should NOT be started: elapsed time has already consumed
// more than 70% of the soft budget.
func (m *Manager) ShouldStopBeforeDepth() bool {
	if m.unbounded || m.limits.Infinite {
		return false
	}
	return float64(m.Elapsed())/float64(m.soft) > 0.70
}

// ShouldStopNode reports whether the current node must abandon its
// search immediately: the hard budget is exhausted. Depth/nodes/infinite
// searches are never stopped here -- the search loop itself enforces
// Limits.Depth/Limits.Nodes, and `stop` is a separate signal.
func (m *Manager) ShouldStopNode() bool {
	if m.unbounded || m.limits.Infinite {
		return false
	}
	return m.Elapsed() >= m.hard
}

// OnIterationComplete records the completed iteration's score and
// extends the soft budget by 25% (never past the hard budget) if the
// score dropped scoreDropCP or more from the previous iteration.
func (m *Manager) OnIterationComplete(score int32) {
	if m.havePrevScore && m.prevScore-score >= scoreDropCP {
		extended := m.soft + m.soft/4
		if extended > m.hard {
			extended = m.hard
		}
		m.soft = extended
	}
	m.prevScore = score
	m.havePrevScore = true
}
