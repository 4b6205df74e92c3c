//go:build !debug

package move

// assertRoundTrip is a no-op in release builds; see debug_assert.go for the
// -tags debug variant that verifies every setter's round trip.
func assertRoundTrip(Move, uint, uint64, uint64) {}
