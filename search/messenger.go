package search

import (
	"time"

	"github.com/ekmadsen/madchess/move"
)

// Info is one iterative-deepening iteration's progress report, shaped
// directly onto UCI's `info depth ... score ... nodes ... pv ...` line.
type Info struct {
	Depth        int
	SelDepth     int
	Nodes        uint64
	Elapsed      time.Duration
	Score        int32
	IsMate       bool
	MateDistance int
	Hashfull     int
	PV           []move.Move
}

// Messenger receives progress reports during a search. Implementations
// translate Info into whatever the caller's protocol wants (UCI's `info`
// lines, a test spy that just records calls, ...).
type Messenger interface {
	SendInfo(Info)
}
