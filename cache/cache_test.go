package cache

import (
	"testing"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/eval"
	"github.com/ekmadsen/madchess/move"
)

func TestPackRoundTrip(t *testing.T) {
	best := move.New(board.SE2, board.SE4, move.WhitePawn).SetPromotedPiece(move.None)
	data := Pack(12, best, 257, Exact, 5)

	var e Entry
	e.Data = data

	if got := e.ToHorizon(); got != 12 {
		t.Fatalf("ToHorizon round-trip: got %d", got)
	}
	if got := e.DynamicScore(); got != 257 {
		t.Fatalf("DynamicScore round-trip: got %d", got)
	}
	if got := e.Precision(); got != Exact {
		t.Fatalf("Precision round-trip: got %v", got)
	}
	if got := e.Generation(); got != 5 {
		t.Fatalf("Generation round-trip: got %d", got)
	}
	if got := e.BestMove(); !move.Equal(got, best) {
		t.Fatalf("BestMove round-trip: got %+v, want %+v", got, best)
	}
}

func TestPackNegativeScore(t *testing.T) {
	data := Pack(3, move.Null, -eval.Max, LowerBound, 1)
	var e Entry
	e.Data = data
	if got := e.DynamicScore(); got != -eval.Max {
		t.Fatalf("expected -eval.Max to round-trip, got %d", got)
	}
	if got := e.BestMove(); got != move.Null {
		t.Fatalf("expected no cached move to decode as Null, got %+v", got)
	}
}

func TestCacheGetSetRoundTrip(t *testing.T) {
	c := New(1)
	key := uint64(0xDEADBEEFCAFEBABE)
	data := Pack(10, move.Null, 42, Exact, c.Generation())

	if _, ok := c.Get(key); ok {
		t.Fatalf("expected a miss before any Set")
	}

	c.Set(key, data)
	e, ok := c.Get(key)
	if !ok {
		t.Fatalf("expected a hit after Set")
	}
	if e.DynamicScore() != 42 {
		t.Fatalf("expected the stored score to round-trip, got %d", e.DynamicScore())
	}
}

func TestCacheSetOverwritesSameKey(t *testing.T) {
	c := New(1)
	key := uint64(123456789)
	c.Set(key, Pack(5, move.Null, 10, Exact, c.Generation()))
	c.Set(key, Pack(8, move.Null, 20, Exact, c.Generation()))

	e, ok := c.Get(key)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if e.ToHorizon() != 8 || e.DynamicScore() != 20 {
		t.Fatalf("expected the later Set to overwrite the same-key slot, got toHorizon=%d score=%d", e.ToHorizon(), e.DynamicScore())
	}
}

func TestCacheHashfullTracksOccupancy(t *testing.T) {
	c := New(1)
	if c.Hashfull() != 0 {
		t.Fatalf("expected an empty cache to report 0 hashfull")
	}
	// One slot of 65536 rounds down to 0 permille, so fill 100 slots
	// (keys below 2^32 hash to themselves, one per bucket) to reach 1.
	for key := uint64(1); key <= 100; key++ {
		c.Set(key, Pack(1, move.Null, 0, Exact, 0))
	}
	if c.Hashfull() == 0 {
		t.Fatalf("expected hashfull to rise after a Set")
	}
}

func TestCacheAgingEvictsColdestSlot(t *testing.T) {
	c := New(1)

	// Keys below 2^32 hash to themselves (hash32 XORs in zero upper bits),
	// so multiples of c.buckets all collide into bucket 0 alongside key 0.
	stride := uint64(c.buckets)
	k1, k2, k3, k4 := stride, 2*stride, 3*stride, 4*stride

	c.Set(k1, Pack(1, move.Null, 0, Exact, 0))
	c.Set(k2, Pack(1, move.Null, 0, Exact, 200))
	c.Set(k3, Pack(1, move.Null, 0, Exact, 100))
	c.Set(k4, Pack(1, move.Null, 0, Exact, 50))

	// key 0 also maps to this bucket; the coldest occupied slot (k1,
	// generation 0) should be evicted to make room.
	c.Set(0, Pack(1, move.Null, 0, Exact, 255))

	if _, ok := c.Get(k1); ok {
		t.Fatalf("expected the coldest slot (k1) to be evicted")
	}
	if _, ok := c.Get(k2); !ok {
		t.Fatalf("expected k2 (warmer) to survive eviction")
	}
}

func TestCacheResizeClearsEntries(t *testing.T) {
	c := New(1)
	c.Set(99, Pack(1, move.Null, 0, Exact, 0))
	c.Resize(1)
	if _, ok := c.Get(99); ok {
		t.Fatalf("expected Resize to forget prior entries")
	}
}
