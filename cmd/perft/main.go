// Command perft runs the leaf-count correctness harness against a FEN position, the
// standard move-generation regression check (spec §8.3).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/perft"
)

func main() {
	position := flag.String("fen", fen.Initial, "FEN position to search from")
	depth := flag.Int("depth", 5, "perft depth")
	divide := flag.Bool("divide", false, "print a per-root-move breakdown instead of a single total")
	flag.Parse()

	b, turn, _, _, err := fen.Decode(*position)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid FEN:", err)
		os.Exit(1)
	}

	start := time.Now()
	if *divide {
		counts := perft.Divide(b, turn, *depth)
		var total uint64
		for move, n := range counts {
			fmt.Printf("%v: %v\n", move, n)
			total += n
		}
		fmt.Printf("\ntotal: %v (%v)\n", total, time.Since(start))
		return
	}

	n := perft.Count(b, turn, *depth)
	fmt.Printf("perft(%v) = %v (%v)\n", *depth, n, time.Since(start))
}
