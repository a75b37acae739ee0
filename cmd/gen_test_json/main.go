package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"slices"

	"chess3d/internal/chess3d"
)

// TestCase records one position of a random game with everything a second
// move generator needs to be checked against this one.
type TestCase struct {
	Game       int                `json:"game"`
	Ply        int                `json:"ply"`
	FEN        string             `json:"fen"`
	ToMove     chess3d.Color      `json:"to_move"`
	Status     chess3d.GameStatus `json:"status"`
	LegalMoves []string           `json:"legal_moves"`
	Perft2     uint64             `json:"perft2,omitempty"`
	Played     string             `json:"played,omitempty"`
}

func main() {
	numGames := flag.Int("games", 10, "random games to record")
	maxPlies := flag.Int("plies", 120, "plies per game at most")
	seed := flag.Uint64("seed", 1, "random seed")
	perftEvery := flag.Int("perft-every", 10, "record perft(2) every n plies; 0 disables")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		pos := chess3d.NewInitialPosition()
		for ply := 0; ply < *maxPlies; ply++ {
			legal := pos.GenerateLegalMoves()
			notation := make([]string, len(legal))
			for i, mv := range legal {
				notation[i] = mv.String()
			}
			slices.Sort(notation)

			tc := TestCase{
				Game:       g,
				Ply:        ply,
				FEN:        pos.Encode(),
				ToMove:     pos.SideToMove,
				Status:     pos.EvaluateGameStatus(pos.SideToMove),
				LegalMoves: notation,
			}
			if *perftEvery > 0 && ply%*perftEvery == 0 {
				tc.Perft2 = pos.Perft(2)
			}
			if tc.Status.State.Over() || len(legal) == 0 {
				testCases = append(testCases, tc)
				break
			}

			chosen := legal[rng.IntN(len(legal))]
			tc.Played = chosen.String()
			testCases = append(testCases, tc)

			next, err := pos.ApplyMove(chosen)
			if err != nil {
				log.Fatalf("game %d ply %d: apply %v: %v", g, ply, chosen, err)
			}
			pos = next
		}
	}

	data, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
