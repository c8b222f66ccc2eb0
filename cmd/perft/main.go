// Movegen sanity harness: node counts per depth, with an optional per-move
// breakdown for hunting down disagreements with reference counts.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/dylhunn/dragontoothmg"
)

func main() {
	fen := flag.String("fen", dragontoothmg.Startpos, "position to count from")
	depth := flag.Int("depth", 5, "maximum depth")
	divide := flag.Bool("divide", false, "print per-move counts at the top level")
	flag.Parse()

	board := dragontoothmg.ParseFen(*fen)

	if *divide {
		var total uint64
		for _, m := range board.GenerateLegalMoves() {
			undo := board.Apply(m)
			nodes := perft(&board, *depth-1)
			undo()
			total += nodes
			fmt.Printf("%s: %d\n", m.String(), nodes)
		}
		fmt.Printf("total: %d\n", total)
		return
	}

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		nodes := perft(&board, d)
		elapsed := time.Since(start)
		fmt.Printf("depth %d nodes %d time %dms nps %.0f\n",
			d, nodes, elapsed.Milliseconds(),
			float64(nodes)/Maxf(elapsed.Seconds(), 0.001))
	}
}

func perft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += perft(b, depth-1)
		undo()
	}
	return nodes
}

func Maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
