package game

import (
	"sync"
	"time"

	"chess3d/internal/chess3d"
	"chess3d/internal/engine"
)

type GameState struct {
	ID         string
	OwnerToken string
	CreatedAt  time.Time

	mu        sync.RWMutex
	pos       *chess3d.Position
	history   []chess3d.Move
	status    chess3d.GameStatus
	updatedAt time.Time

	// thinkMu serializes searches so the engine's table is never shared.
	thinkMu sync.Mutex
	engine  *engine.Engine
}

// Snapshot is a consistent copy of a game, safe to hand to encoders.
type Snapshot struct {
	ID         string
	Position   *chess3d.Position
	ToMove     chess3d.Color
	Status     chess3d.GameStatus
	LegalMoves []chess3d.Move
	History    []chess3d.Move
	UpdatedAt  time.Time
}

func (g *GameState) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshotLocked()
}

func (g *GameState) snapshotLocked() Snapshot {
	pos := g.pos.Clone()
	var legal []chess3d.Move
	if !g.status.State.Over() {
		legal = pos.GenerateLegalMoves()
	}
	return Snapshot{
		ID:         g.ID,
		Position:   pos,
		ToMove:     pos.SideToMove,
		Status:     g.status,
		LegalMoves: legal,
		History:    append([]chess3d.Move(nil), g.history...),
		UpdatedAt:  g.updatedAt,
	}
}

// applyLocked plays m, which must already be a generated legal move.
func (g *GameState) applyLocked(m chess3d.Move) error {
	next, err := g.pos.ApplyMove(m)
	if err != nil {
		return err
	}
	g.pos = next
	g.history = append(g.history, m)
	g.status = next.EvaluateGameStatus(next.SideToMove)
	g.updatedAt = time.Now()
	return nil
}
