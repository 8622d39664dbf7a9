package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	gm "gander-engine/gandermg"
)

func main() {
	fen := flag.String("fen", gm.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := gm.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := gm.PerftDivide(board, *depth)
		// Sort moves for stable output
		type kv struct {
			m gm.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m.String() < arr[j].m.String() })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m.String(), x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	nodes := gm.Perft(board, *depth)
	elapsed := time.Since(start)
	nps := float64(nodes) / elapsed.Seconds()

	fmt.Printf("depth %d \tnodes %d \ttime %s \tnps %.0f\n", *depth, nodes, elapsed, nps)
}
