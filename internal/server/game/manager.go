package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"chess3d/internal/chess3d"
	"chess3d/internal/engine"
)

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

// NewGame registers a game from the standard layout. The owner token is the
// only credential for playing moves in it.
func (m *Manager) NewGame() *GameState {
	return m.add(chess3d.NewInitialPosition())
}

// NewGameFrom registers a game starting from an encoded position.
func (m *Manager) NewGameFrom(fen string) (*GameState, error) {
	pos, err := chess3d.DecodePosition(fen)
	if err != nil {
		return nil, err
	}
	return m.add(pos), nil
}

func (m *Manager) add(pos *chess3d.Position) *GameState {
	now := time.Now()
	g := &GameState{
		ID:         uuid.NewString(),
		OwnerToken: uuid.NewString(),
		CreatedAt:  now,
		pos:        pos,
		status:     pos.EvaluateGameStatus(pos.SideToMove),
		updatedAt:  now,
		engine:     engine.NewEngine(),
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func (m *Manager) authorized(id, token string) (*GameState, error) {
	g, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	if token != g.OwnerToken {
		return nil, ErrForbidden
	}
	return g, nil
}

// Play applies the legal move from -> to for the owner of the game.
func (m *Manager) Play(id, token string, from, to chess3d.Square) (Snapshot, error) {
	g, err := m.authorized(id, token)
	if err != nil {
		return Snapshot{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status.State.Over() {
		return Snapshot{}, ErrGameOver
	}
	mv, ok := g.pos.IsLegal(chess3d.Move{From: from, To: to})
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %v%v", chess3d.ErrInvalidMove, from, to)
	}
	if err := g.applyLocked(mv); err != nil {
		return Snapshot{}, err
	}
	return g.snapshotLocked(), nil
}

// Think searches the current position of a game. When the search completes
// no depth, BestMove falls back to the first move in heuristic order and
// Found stays false. With play set the owner token is checked and the move
// is applied, unless another move was played while the search ran.
func (m *Manager) Think(ctx context.Context, id, token string, cfg engine.SearchConfig, play bool) (engine.SearchResult, Snapshot, error) {
	var (
		g   *GameState
		err error
	)
	if play {
		g, err = m.authorized(id, token)
	} else {
		g, err = m.Get(id)
	}
	if err != nil {
		return engine.SearchResult{}, Snapshot{}, err
	}

	g.thinkMu.Lock()
	defer g.thinkMu.Unlock()

	g.mu.RLock()
	pos := g.pos.Clone()
	plies := len(g.history)
	over := g.status.State.Over()
	g.mu.RUnlock()
	if over {
		return engine.SearchResult{}, g.Snapshot(), ErrGameOver
	}

	res := g.engine.Search(ctx, pos, cfg)
	if !res.Found {
		mv, ok := engine.FallbackMove(pos)
		if !ok {
			return res, g.Snapshot(), nil
		}
		res.BestMove = mv
	}
	if !play {
		return res, g.Snapshot(), nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.history) != plies {
		return res, g.snapshotLocked(), ErrPositionChanged
	}
	if err := g.applyLocked(res.BestMove); err != nil {
		return res, g.snapshotLocked(), err
	}
	return res, g.snapshotLocked(), nil
}
