// Fixed-depth search benchmark over a small FEN suite. The pprof flags make
// it double as the profiling entry point.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"heron/engine"
)

var suite = []string{
	dragontoothmg.Startpos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

func main() {
	depth := flag.Int("depth", 8, "search depth per position")
	fen := flag.String("fen", "", "single FEN to search instead of the suite")
	threads := flag.Int("threads", 1, "worker thread count")
	hash := flag.Int("hash", engine.DefaultHashMB, "hash size in MB")
	repeat := flag.Int("repeat", 1, "passes over the suite")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write heap profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalf("create cpu profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("start cpu profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	eng := engine.NewEngine()
	eng.Threads = *threads
	eng.HashMB = *hash

	fens := suite
	if *fen != "" {
		fens = []string{*fen}
	}

	var totalNodes uint64
	start := time.Now()
	for pass := 0; pass < *repeat; pass++ {
		for _, f := range fens {
			eng.ResetForNewGame()
			board := dragontoothmg.ParseFen(f)
			result := eng.Search(&board, engine.SearchLimits{Depth: *depth})
			totalNodes += result.Stats.Nodes
			fmt.Printf("bestmove %s depth %d score %d nodes %d ebf %.2f\n",
				result.BestMove.String(), result.Depth, result.Score,
				result.Stats.Nodes, result.Stats.EffectiveBranchingFactor())
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("total nodes %d time %dms nps %.0f\n",
		totalNodes, elapsed.Milliseconds(), float64(totalNodes)/elapsed.Seconds())

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatalf("create heap profile: %v", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("write heap profile: %v", err)
		}
	}
}
