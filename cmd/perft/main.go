// Command perft walks the move-generation tree to a fixed depth and
// counts (or divides) the leaf nodes, for validating movegen against
// known perft results and for profiling the move generator in isolation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/internal/perft"
	"github.com/ekmadsen/madchess/magic"
)

func main() {
	magic.Init()
	board.InitZobristKeys()

	depth := flag.Int("depth", 5, "perft depth")
	fen := flag.String("fen", board.InitialFEN, "starting position, in FEN")
	divide := flag.Bool("divide", false, "print the per-root-move node count instead of just the total")
	cpuprofile := flag.String("cpuprofile", "", "file to write a cpu profile")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	b := board.New()
	b.SetPosition(*fen, false)

	start := time.Now()
	if *divide {
		splits := perft.Divide(b, *depth)
		var total uint64
		for _, s := range splits {
			fmt.Printf("%s %d\n", board.MoveToUCI(s.Move), s.Nodes)
			total += s.Nodes
		}
		log.Printf("Total nodes: %d", total)
	} else {
		nodes := perft.Count(b, *depth)
		log.Printf("Nodes: %d", nodes)
	}
	log.Printf("Elapsed: %s", time.Since(start))
}
