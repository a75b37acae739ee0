package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"chess3d/internal/engine"
)

func main() {
	totalGames := flag.Int("games", 10, "number of games to play")
	parallel := flag.Int("parallel", 4, "games played at once")
	maxPlies := flag.Int("maxplies", 200, "plies before a game is scored as a draw")
	moveTime := flag.Duration("time", time.Second, "time limit per move")
	aDepth := flag.Int("a-depth", 2, "player A search depth")
	aQuiesce := flag.Bool("a-quiesce", false, "player A uses quiescence")
	bDepth := flag.Int("b-depth", 3, "player B search depth")
	bQuiesce := flag.Bool("b-quiesce", true, "player B uses quiescence")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	playerA := newPlayer("A", engine.SearchConfig{MaxDepth: *aDepth, TimeLimit: *moveTime, Quiescence: *aQuiesce})
	playerB := newPlayer("B", engine.SearchConfig{MaxDepth: *bDepth, TimeLimit: *moveTime, Quiescence: *bQuiesce})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results := make([]gameResult, *totalGames)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*parallel, 1))
	for i := range results {
		white, black := playerA, playerB
		if i%2 == 1 {
			white, black = playerB, playerA
		}
		g.Go(func() error {
			res, err := playGame(ctx, white, black, *maxPlies, *verbose)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = res
			log.Printf("game %d: white [%s] vs black [%s]: %s", i+1, white.Name, black.Name, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	sc := tally(results)
	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", playerA.Name, sc.wins[playerA.Name])
	fmt.Printf("%s: %d\n", playerB.Name, sc.wins[playerB.Name])
	fmt.Printf("Draws: %d\n", sc.draws)
	fmt.Printf("Average plies: %.1f\n", sc.avgPlies)
}
