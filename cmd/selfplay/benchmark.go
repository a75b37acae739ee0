package main

import (
	"context"
	"fmt"
	"log"

	"chess3d/internal/chess3d"
	"chess3d/internal/engine"
)

type PlayerConfig struct {
	Name string
	Cfg  engine.SearchConfig
}

func newPlayer(label string, cfg engine.SearchConfig) PlayerConfig {
	name := fmt.Sprintf("%s: alpha-beta depth %d", label, cfg.MaxDepth)
	if cfg.Quiescence {
		name += " +quiescence"
	}
	return PlayerConfig{Name: name, Cfg: cfg}
}

type gameResult struct {
	Winner string // player name, empty on a draw
	End    chess3d.GameState
	Plies  int
}

func (r gameResult) String() string {
	if r.Winner == "" {
		return fmt.Sprintf("draw (%s) after %d plies", r.End, r.Plies)
	}
	return fmt.Sprintf("%s wins by %s after %d plies", r.Winner, r.End, r.Plies)
}

// playGame runs one game with a fresh engine per side so the tables of one
// player never help the other.
func playGame(ctx context.Context, white, black PlayerConfig, maxPlies int, verbose bool) (gameResult, error) {
	players := map[chess3d.Color]PlayerConfig{chess3d.White: white, chess3d.Black: black}
	engines := map[chess3d.Color]*engine.Engine{chess3d.White: engine.NewEngine(), chess3d.Black: engine.NewEngine()}

	pos := chess3d.NewInitialPosition()
	for ply := 0; ply < maxPlies; ply++ {
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}
		status := pos.EvaluateGameStatus(pos.SideToMove)
		if status.State.Over() {
			res := gameResult{End: status.State, Plies: ply}
			if status.Winner != chess3d.NoColor {
				res.Winner = players[status.Winner].Name
			}
			return res, nil
		}

		side := pos.SideToMove
		res := engines[side].Search(ctx, pos, players[side].Cfg)
		mv := res.BestMove
		if !res.Found {
			var ok bool
			if mv, ok = engine.FallbackMove(pos); !ok {
				return gameResult{}, fmt.Errorf("no move for %v in %s", side, pos.Encode())
			}
		}
		if verbose {
			log.Printf("ply %d %v: %v score=%d depth=%d nodes=%d time=%v",
				ply+1, side, mv, res.Score, res.Depth, res.Nodes, res.TimeUsed)
		}

		next, err := pos.ApplyMove(mv)
		if err != nil {
			return gameResult{}, fmt.Errorf("apply %v: %w", mv, err)
		}
		pos = next
	}
	return gameResult{End: chess3d.StateNormal, Plies: maxPlies}, nil
}

type score struct {
	wins     map[string]int
	draws    int
	avgPlies float64
}

func tally(results []gameResult) score {
	sc := score{wins: map[string]int{}}
	total := 0
	for _, r := range results {
		total += r.Plies
		if r.Winner == "" {
			sc.draws++
			continue
		}
		sc.wins[r.Winner]++
	}
	if len(results) > 0 {
		sc.avgPlies = float64(total) / float64(len(results))
	}
	return sc
}
