package engine

import (
	"context"
	"sync"
	"time"

	"chess3d/internal/chess3d"
)

// Engine owns the transposition table shared by successive searches. One
// search runs at a time per Engine; concurrent callers are serialized.
type Engine struct {
	mu sync.Mutex
	tt map[uint64]ttEntry
}

func NewEngine() *Engine {
	return &Engine{
		tt: make(map[uint64]ttEntry, 1<<16),
	}
}

// BestMove searches for side and reports false only when side has no legal
// move. If the budget runs out before depth 1 completes it falls back to the
// first move in heuristic order.
func (e *Engine) BestMove(ctx context.Context, pos *chess3d.Position, side chess3d.Color, maxDepth int, timeLimit time.Duration) (chess3d.Move, bool) {
	work := pos
	if pos.SideToMove != side {
		work = pos.Clone()
		work.SideToMove = side
		work.Hash = work.CalculateHash()
	}

	res := e.Search(ctx, work, SearchConfig{MaxDepth: maxDepth, TimeLimit: timeLimit})
	if res.Found {
		return res.BestMove, true
	}
	return FallbackMove(work)
}

// FallbackMove is the first legal move in heuristic order, for callers whose
// search budget ran out before depth 1 completed.
func FallbackMove(pos *chess3d.Position) (chess3d.Move, bool) {
	moves := pos.GenerateLegalMoves()
	if len(moves) == 0 {
		return chess3d.Move{}, false
	}
	orderMoves(pos, moves, chess3d.Move{})
	return moves[0], true
}
