package uci

import (
	"math/rand/v2"
	"strconv"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/internal/perft"
	"github.com/ekmadsen/madchess/magic"
	"github.com/ekmadsen/madchess/search"
)

// handleListMoves prints every legal move at the current position in
// long-algebraic form, one per info string line.
func (e *Engine) handleListMoves() {
	e.stopAndWait()
	legal := e.legalMoves()
	e.out.printf("info string %d legal moves", len(legal))
	for _, m := range legal {
		e.out.printf("info string %s", board.MoveToUCI(m))
	}
}

// handleStaticScore evaluates the current position and reports the
// side-to-move-relative centipawn score.
func (e *Engine) handleStaticScore() {
	e.stopAndWait()
	score, drawnEndgame := e.eval.Evaluate(e.board.Current())
	e.out.printf("info string staticscore %d drawnendgame %t", score, drawnEndgame)
}

// handleExchangeScore runs static-exchange evaluation on the move named
// by a UCI long-algebraic token (`exchangescore e2e4`).
func (e *Engine) handleExchangeScore(args []string) {
	if len(args) == 0 {
		e.out.errorf("exchangescore requires a move")
		return
	}
	e.stopAndWait()
	legal := e.legalMoves()
	m, ok := board.ParseUCIMove(args[0], legal)
	if !ok {
		e.out.errorf("exchangescore: %q is not a legal move", args[0])
		return
	}
	s := search.NewSearcher(e.board, e.cache, e.tables, e.eval, nil, nil, nil)
	e.out.printf("info string exchangescore %d", s.ExchangeScore(m))
}

// handleCountMoves reports perft(depth) from the current position.
func (e *Engine) handleCountMoves(args []string) {
	depth, ok := parseDepthArg(args)
	if !ok {
		e.out.errorf("countmoves requires a depth")
		return
	}
	e.stopAndWait()
	e.out.printf("info string nodes %d", perft.Count(e.board, depth))
}

// handleDivideMoves reports perft(depth) split by root move, then the
// total, matching the standard perft "divide" debugging format.
func (e *Engine) handleDivideMoves(args []string) {
	depth, ok := parseDepthArg(args)
	if !ok {
		e.out.errorf("dividemoves requires a depth")
		return
	}
	e.stopAndWait()
	splits := perft.Divide(e.board, depth)
	var total uint64
	for _, s := range splits {
		e.out.printf("info string %s %d", board.MoveToUCI(s.Move), s.Nodes)
		total += s.Nodes
	}
	e.out.printf("info string total %d", total)
}

func parseDepthArg(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	d, err := strconv.Atoi(args[0])
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}

// handleFindMagics re-derives a magic multiplier for every square's
// bishop and rook attack table by random search and reports the total
// trial counts; the results are not compared with the hard-coded
// BishopMagics/RookMagics tables. A debugging tool only -- normal play
// never calls this.
func (e *Engine) handleFindMagics(args []string) {
	var seed uint64 = 1
	if len(args) > 0 {
		if s, err := strconv.ParseUint(args[0], 10, 64); err == nil {
			seed = s
		}
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	var bishopTrials, rookTrials int
	for sq := 0; sq < 64; sq++ {
		_, trials := magic.FindMagic(sq, magic.BishopBitCount(sq), magic.BishopOccupancy(sq), magic.GenBishopAttacks, rng)
		bishopTrials += trials
		_, trials = magic.FindMagic(sq, magic.RookBitCount(sq), magic.RookOccupancy(sq), magic.GenRookAttacks, rng)
		rookTrials += trials
	}
	e.out.printf("info string findmagics done: bishop trials %d, rook trials %d", bishopTrials, rookTrials)
}

func (e *Engine) handleHelp() {
	for _, line := range []string{
		"info string uci, isready, setoption, ucinewgame, position, go, stop, quit",
		"info string showboard, listmoves, staticscore, exchangescore <move>",
		"info string findmagics, countmoves <depth>, dividemoves <depth>",
		"info string testpositions, analyzepositions, tune, tunewinscale: require an external PSO tuner, not included",
	} {
		e.out.printf("%s", line)
	}
}
