package search

import (
	"math"
	"math/rand"
	"time"

	"github.com/ekmadsen/madchess/move"
)

// Strength configures limited-strength mode (spec.md §4.8): an Elo target
// that throttles the search's node rate and, once the best move is
// found, sometimes substitutes a nearby-scoring alternative (or an
// outright blunder) instead of always playing the objectively best move.
type Strength struct {
	Elo int // clamped to [600, 2400]
	rng *rand.Rand

	throttleFrom time.Time
	throttleNode uint64
}

// NewStrength builds a Strength target for elo, clamped to UCI_Elo's
// documented [600, 2400] range. seed controls the blunder/move-choice
// RNG, not the search's own move-ordering (which has none).
func NewStrength(elo int, seed int64) *Strength {
	if elo < 600 {
		elo = 600
	}
	if elo > 2400 {
		elo = 2400
	}
	return &Strength{Elo: elo, rng: rand.New(rand.NewSource(seed))}
}

// nonLinearBonus is the shape shared by every limited-strength curve:
// a constant floor plus a power curve over the normalized Elo fraction.
func nonLinearBonus(x, scale, power, constant float64) float64 {
	return constant + scale*math.Pow(x, power)
}

// fraction normalizes Elo onto [0, 1] over the documented range.
func (st *Strength) fraction() float64 { return float64(st.Elo-600) / (2400 - 600) }

// NodesPerSecond is the throttled NPS budget the search busy-waits to.
func (st *Strength) NodesPerSecond() float64 {
	return nonLinearBonus(st.fraction(), 512_000, 4, 100)
}

// inverseFraction is how far below the top of the Elo range the target
// sits -- the error curves grow as this grows, so a weaker target plays
// more loosely.
func (st *Strength) inverseFraction() float64 { return 1 - st.fraction() }

func (st *Strength) moveErrorCP() int32 {
	return int32(nonLinearBonus(st.inverseFraction(), 120, 2, 0))
}

func (st *Strength) blunderErrorCP() int32 {
	return int32(nonLinearBonus(st.inverseFraction(), 400, 2, 0))
}

func (st *Strength) blunderPer128() int {
	v := int(nonLinearBonus(st.inverseFraction(), 32, 2, 0))
	if v > 128 {
		v = 128
	}
	return v
}

// ChooseMove substitutes, with the probability and tolerance its Elo
// target implies, an inferior root move for the objectively best one.
// rootMoves must already be sorted by descending score.
func (st *Strength) ChooseMove(rootMoves []RootMove) move.Move {
	if len(rootMoves) == 0 {
		return move.Null
	}
	best := rootMoves[0].Score
	errorCP := st.moveErrorCP()
	if st.rng.Intn(128) < st.blunderPer128() {
		errorCP = st.blunderErrorCP()
	}

	var candidates []move.Move
	for _, rm := range rootMoves {
		if best-rm.Score <= errorCP {
			candidates = append(candidates, rm.Move)
		}
	}
	return candidates[st.rng.Intn(len(candidates))]
}

// throttle busy-waits, in small slices, until the search's measured node
// rate falls at or under NodesPerSecond -- but never past the time
// manager's soft budget (softLeft reports whether budget remains), so
// throttling can't make the engine flag.
func (st *Strength) throttle(nodes uint64, softLeft func() bool) {
	if st.throttleFrom.IsZero() {
		st.throttleFrom = time.Now()
		st.throttleNode = nodes
	}
	for {
		elapsed := time.Since(st.throttleFrom)
		if elapsed <= 0 {
			return
		}
		rate := float64(nodes-st.throttleNode) / elapsed.Seconds()
		if rate <= st.NodesPerSecond() {
			return
		}
		if softLeft != nil && !softLeft() {
			return
		}
		time.Sleep(time.Millisecond)
	}
}
