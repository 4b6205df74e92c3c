// Package uci implements the engine's external interface: a stdin/stdout
// command loop speaking the Universal Chess Interface protocol, plus the
// extended debugging commands (spec.md §6). One goroutine (the caller of
// Run) owns engine state between searches; one long-lived worker
// goroutine, started by NewEngine, owns every search for its lifetime
// (spec.md §5).
package uci

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/cache"
	"github.com/ekmadsen/madchess/eval"
	"github.com/ekmadsen/madchess/heuristics"
)

const (
	defaultHashMB  = 64
	minHashMB      = 1
	maxHashMB      = 1024
	defaultMultiPV = 1
	maxMultiPV     = 10
	minElo         = 600
	maxElo         = 2400
	defaultElo     = maxElo
)

// Engine holds everything a UCI session needs between commands: the
// position, the persistent cache and heuristic tables, the evaluator, and
// the option values `setoption` can change. It is not safe to call
// HandleLine from more than one goroutine concurrently; Run drives it
// from a single goroutine, as the protocol assumes.
type Engine struct {
	out *output

	board  *board.Board
	cache  *cache.Cache
	tables *heuristics.Tables
	eval   eval.Evaluator

	hashMB        int
	multiPV       int
	analyseMode   bool
	limitStrength bool
	elo           int
	logEnabled    bool

	stop   *stopFlag
	workCh chan goRequest

	busyMu sync.Mutex
	done   chan struct{} // non-nil while a go-command search is in flight
}

// NewEngine builds an idle Engine at the standard starting position and
// starts its worker goroutine. out receives every protocol reply.
func NewEngine(out io.Writer) *Engine {
	e := &Engine{
		out:     &output{w: out},
		board:   board.New(),
		cache:   cache.New(defaultHashMB),
		tables:  &heuristics.Tables{},
		eval:    eval.Classical{},
		hashMB:  defaultHashMB,
		multiPV: defaultMultiPV,
		elo:     defaultElo,
		stop:    newStopFlag(),
		workCh:  make(chan goRequest),
	}
	go e.workerLoop()
	return e
}

// Run reads newline-delimited UCI commands from in until `quit` is
// received or in is exhausted.
func (e *Engine) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if e.HandleLine(scanner.Text()) {
			return
		}
	}
}

// HandleLine parses and dispatches one command line. It reports whether
// the engine should stop reading further input (a `quit` command).
func (e *Engine) HandleLine(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	args := fields[1:]

	switch fields[0] {
	case "uci":
		e.handleUCI()
	case "isready":
		e.out.printf("readyok")
	case "setoption":
		e.handleSetOption(args)
	case "ucinewgame":
		e.handleNewGame()
	case "position":
		e.handlePosition(args)
	case "go":
		e.handleGo(args)
	case "stop":
		e.stopAndWait()
	case "quit":
		e.stopAndWait()
		return true
	case "showboard":
		e.handleShowBoard()
	case "findmagics":
		e.handleFindMagics(args)
	case "countmoves":
		e.handleCountMoves(args)
	case "dividemoves":
		e.handleDivideMoves(args)
	case "listmoves":
		e.handleListMoves()
	case "staticscore":
		e.handleStaticScore()
	case "exchangescore":
		e.handleExchangeScore(args)
	case "testpositions", "analyzepositions", "tune", "tunewinscale":
		e.out.errorf("%s requires an external PSO tuner, not included in this build", fields[0])
	case "help":
		e.handleHelp()
	default:
		e.out.errorf("unknown command %q", fields[0])
	}
	return false
}

func (e *Engine) handleUCI() {
	e.out.printf("id name MadChess")
	e.out.printf("id author madchess contributors")
	e.out.printf("option name Log type check default false")
	e.out.printf("option name Hash type spin default %d min %d max %d", defaultHashMB, minHashMB, maxHashMB)
	e.out.printf("option name ClearHash type button")
	e.out.printf("option name UCI_AnalyseMode type check default false")
	e.out.printf("option name MultiPV type spin default %d min 1 max %d", defaultMultiPV, maxMultiPV)
	e.out.printf("option name UCI_LimitStrength type check default false")
	e.out.printf("option name UCI_Elo type spin default %d min %d max %d", defaultElo, minElo, maxElo)
	e.out.printf("uciok")
}

func (e *Engine) handleNewGame() {
	e.stopAndWait()
	e.cache.Reset()
	e.tables.Clear()
	e.board.SetPosition(board.InitialFEN, false)
}

// handleSetOption applies `setoption name X [value V]`. Options that touch
// state the worker goroutine reads (Hash, ClearHash) stop and wait for any
// in-flight search first, per spec.md §5's "reset/resize only while the
// worker is idle" rule.
func (e *Engine) handleSetOption(args []string) {
	name, value, _ := parseSetOption(args)
	switch {
	case strings.EqualFold(name, "Log"):
		e.logEnabled = parseUCIBool(value)
	case strings.EqualFold(name, "Hash"):
		mb, err := strconv.Atoi(value)
		if err != nil {
			e.out.errorf("setoption Hash value %q is not an integer", value)
			return
		}
		mb = clampInt(mb, minHashMB, maxHashMB)
		e.stopAndWait()
		e.hashMB = mb
		e.cache.Resize(mb)
	case strings.EqualFold(name, "ClearHash"):
		e.stopAndWait()
		e.cache.Reset()
	case strings.EqualFold(name, "UCI_AnalyseMode"):
		e.analyseMode = parseUCIBool(value)
	case strings.EqualFold(name, "MultiPV"):
		n, err := strconv.Atoi(value)
		if err != nil {
			e.out.errorf("setoption MultiPV value %q is not an integer", value)
			return
		}
		e.multiPV = clampInt(n, 1, maxMultiPV)
	case strings.EqualFold(name, "UCI_LimitStrength"):
		e.limitStrength = parseUCIBool(value)
	case strings.EqualFold(name, "UCI_Elo"):
		elo, err := strconv.Atoi(value)
		if err != nil {
			e.out.errorf("setoption UCI_Elo value %q is not an integer", value)
			return
		}
		e.elo = clampInt(elo, minElo, maxElo)
	default:
		e.out.errorf("unknown option %q", name)
	}
}

// parseSetOption splits `name X... value V...` into its name and value
// halves. MadChess's options all have single-word names, but the parser
// accepts multi-word ones as the protocol allows.
func parseSetOption(args []string) (name, value string, hasValue bool) {
	var nameParts, valueParts []string
	section := 0 // 0 = before "name", 1 = in name, 2 = in value
	for _, a := range args {
		switch strings.ToLower(a) {
		case "name":
			section = 1
			continue
		case "value":
			section = 2
			hasValue = true
			continue
		}
		switch section {
		case 1:
			nameParts = append(nameParts, a)
		case 2:
			valueParts = append(valueParts, a)
		}
	}
	return strings.Join(nameParts, " "), strings.Join(valueParts, " "), hasValue
}

func parseUCIBool(s string) bool { return strings.EqualFold(s, "true") }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
