package uci

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/search"
)

// output is the single serialized sink every reply -- the main goroutine's
// direct responses (uciok, readyok, bestmove, showboard, ...) and the
// worker goroutine's info lines -- writes through, per spec.md §5's "a
// single lock around console writes" rule.
type output struct {
	w  io.Writer
	mu sync.Mutex
}

func (o *output) printf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.w, format+"\n", args...)
}

// errorf reports a protocol error as a single info string line (spec.md
// §7): it aborts only the command that triggered it, never the engine.
func (o *output) errorf(format string, args ...any) {
	o.printf("info string error: %s", fmt.Sprintf(format, args...))
}

// messenger adapts output to search.Messenger, translating an iteration's
// Info into a UCI `info` line.
type messenger struct {
	out *output
	b   *board.Board
}

func (m *messenger) SendInfo(info search.Info) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d seldepth %d", info.Depth, info.SelDepth)
	if info.IsMate {
		fmt.Fprintf(&sb, " score mate %d", info.MateDistance)
	} else {
		fmt.Fprintf(&sb, " score cp %d", info.Score)
	}
	fmt.Fprintf(&sb, " nodes %d", info.Nodes)
	ms := info.Elapsed.Milliseconds()
	fmt.Fprintf(&sb, " time %d", ms)
	if ms > 0 {
		fmt.Fprintf(&sb, " nps %d", info.Nodes*1000/uint64(ms))
	}
	fmt.Fprintf(&sb, " hashfull %d", info.Hashfull)
	if len(info.PV) > 0 {
		sb.WriteString(" pv")
		for _, mv := range info.PV {
			sb.WriteByte(' ')
			sb.WriteString(board.MoveToUCI(mv))
		}
	}
	m.out.printf("%s", sb.String())
}
