package magic

import (
	"math/rand/v2"
	"testing"
)

func TestMain(m *testing.M) {
	Init()
	m.Run()
}

func TestKnightAttacksCorner(t *testing.T) {
	// A knight on a8 (square 0) only reaches b6 and c7.
	got := KnightAttacks(0)
	want := uint64(1)<<17 | uint64(1)<<10
	if got != want {
		t.Fatalf("got %#x want %#x", got, want)
	}
}

func TestKingAttacksCorner(t *testing.T) {
	got := KingAttacks(63) // h1
	want := uint64(1)<<62 | uint64(1)<<55 | uint64(1)<<54
	if got != want {
		t.Fatalf("got %#x want %#x", got, want)
	}
}

func TestPawnAttacksWhiteAdvancesTowardLowIndices(t *testing.T) {
	// White pawn on e2 (square 52) attacks d3 (43) and f3 (45).
	got := PawnAttacks(52, White)
	want := uint64(1)<<43 | uint64(1)<<45
	if got != want {
		t.Fatalf("got %#x want %#x", got, want)
	}
}

func TestRookAttacksOpenBoard(t *testing.T) {
	got := RookAttacks(63, 0) // h1 on an empty board
	if bitCountOf(got) != 14 {
		t.Fatalf("expected 14 reachable squares, got %d", bitCountOf(got))
	}
}

func TestBishopAttacksBlocked(t *testing.T) {
	occ := uint64(1) << 54 // g2 blocks h1-bishop's diagonal
	got := BishopAttacks(63, occ)
	if got&occ == 0 {
		t.Fatalf("expected the blocker square itself to be included")
	}
	if got&(uint64(1)<<45) != 0 {
		t.Fatalf("expected the ray to stop at the first blocker")
	}
}

func TestFindMagicFindsNonZeroMagic(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	square := 27 // d5, a high relevant-occupancy square
	found, trials := FindMagic(square, bishopBitCount[square], bishopOccupancy[square], genBishopAttacks, rng)
	if trials <= 0 {
		t.Fatalf("expected at least one trial")
	}
	if found == 0 {
		t.Fatalf("expected a non-zero magic")
	}
}
