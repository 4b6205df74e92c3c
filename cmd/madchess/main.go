// Command madchess is the engine's process entry point: it wires the
// board, evaluator, cache, heuristic tables and search into a uci.Engine
// and speaks UCI over stdin/stdout.
package main

import (
	"os"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/magic"
	"github.com/ekmadsen/madchess/uci"
)

func main() {
	magic.Init()
	board.InitZobristKeys()

	engine := uci.NewEngine(os.Stdout)
	engine.Run(os.Stdin)
}
