package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"chessmind/gamestate"
)

func main() {
	fen := flag.String("fen", gamestate.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	state, err := gamestate.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := gamestate.PerftDivide(state, *depth)
		moves := make([]string, 0, len(div))
		for mv := range div {
			moves = append(moves, mv)
		}
		sort.Strings(moves)
		var total uint64
		for _, mv := range moves {
			fmt.Printf("%s: %d\n", mv, div[mv])
			total += div[mv]
		}
		fmt.Printf("total: %d\n", total)
		return
	}

	var nodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		nodes = gamestate.Perft(state, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(nodes) * float64(*repeat) / elapsed.Seconds()
	fmt.Printf("depth %d nodes %d time %s nps %.0f\n", *depth, nodes, elapsed, nps)
}
