package main

import (
	"flag"
	"fmt"
	"log"
	"slices"
	"time"

	"chess3d/internal/chess3d"
	"chess3d/internal/engine"
)

func main() {
	fen := flag.String("fen", "", "position to inspect; empty uses the initial layout")
	depth := flag.Int("depth", 2, "perft depth")
	divide := flag.Bool("divide", false, "split the perft count by root move")
	flag.Parse()

	pos := chess3d.NewInitialPosition()
	if *fen != "" {
		var err error
		if pos, err = chess3d.DecodePosition(*fen); err != nil {
			log.Fatalf("decode: %v", err)
		}
	}

	fmt.Println("FEN:", pos.Encode())
	fmt.Println("Pieces:", pos.PieceCount())
	fmt.Println("Pseudo legal moves:", len(pos.GeneratePseudoMovesForSide(pos.SideToMove)))
	fmt.Println("Legal moves:", len(pos.GenerateLegalMoves()))
	st := pos.EvaluateGameStatus(pos.SideToMove)
	fmt.Printf("Status: %s winner=%s\n", st.State, st.Winner)
	fmt.Println("Eval (white):", engine.Evaluate(pos))

	if *divide {
		counts := pos.Divide(*depth)
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		var total uint64
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, counts[k])
			total += counts[k]
		}
		fmt.Printf("Total: %d\n", total)
		return
	}

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		n := pos.Perft(d)
		fmt.Printf("perft(%d) = %d (%v)\n", d, n, time.Since(start))
	}
}
