//go:build debug

package move

// assertRoundTrip panics if setting a field and reading it back does not
// reproduce the value that was just written. Compiled only with -tags
// debug: the search hot path cannot afford this check in release builds.
func assertRoundTrip(m Move, shift uint, mask, want uint64) {
	if get(m, shift, mask) != want&mask {
		panic("move: setter round-trip failed")
	}
}
