package engine

import (
	"context"

	"chess3d/internal/chess3d"
)

// Forced-mate probe: the attacker may only play checking moves, the
// defender may play anything. It proves short mating attacks the
// alpha-beta search would need a full-width tree to see.

const (
	mateProbeDepthCap       = 9
	mateProbeDefaultDepth   = 5
	mateProbeNodeBudgetBase = 20000
	mateProbeNodeBudgetPly  = 5000
)

const (
	mateModeAttack uint64 = 0xA5A5A5A5A5A5A5A5
	mateModeDefend uint64 = 0x5A5A5A5A5A5A5A5A
)

type mateTTEntry struct {
	Depth  int
	Result bool
	Move   chess3d.Move
}

type mateContext struct {
	ctx        context.Context
	attacker   chess3d.Color
	tt         map[uint64]mateTTEntry
	inPath     map[uint64]bool
	nodes      int
	nodeBudget int
}

type MateResult struct {
	Found bool
	Move  chess3d.Move
	Plies int // attacker and defender plies until the game ends
	Nodes int
}

// FindMate looks for a forced win by checks for the side to move within
// maxPlies plies. A check that leaves an uncapturable double check counts as
// a win like mate does.
func (e *Engine) FindMate(ctx context.Context, pos *chess3d.Position, maxPlies int) MateResult {
	if maxPlies <= 0 {
		maxPlies = mateProbeDefaultDepth
	}
	maxPlies = min(maxPlies, mateProbeDepthCap)
	if ctx == nil {
		ctx = context.Background()
	}

	mc := &mateContext{
		ctx:        ctx,
		attacker:   pos.SideToMove,
		tt:         make(map[uint64]mateTTEntry, 1<<12),
		inPath:     make(map[uint64]bool, 1<<6),
		nodeBudget: mateProbeNodeBudgetBase + maxPlies*mateProbeNodeBudgetPly,
	}
	work := pos.Clone()
	work.EnsureHash()

	for d := 1; d <= maxPlies; d += 2 {
		if mv, ok := mc.attackerCanForce(work, d); ok {
			return MateResult{Found: true, Move: mv, Plies: d, Nodes: mc.nodes}
		}
		if mc.exhausted() {
			break
		}
	}
	return MateResult{Nodes: mc.nodes}
}

func (mc *mateContext) exhausted() bool {
	if mc.nodes > mc.nodeBudget {
		return true
	}
	return mc.ctx.Err() != nil
}

// wins reports whether the defender to move in pos has already lost.
func (mc *mateContext) wins(pos *chess3d.Position) bool {
	st := pos.EvaluateGameStatus(pos.SideToMove)
	return st.State.Over() && st.Winner == mc.attacker
}

func (mc *mateContext) attackerCanForce(pos *chess3d.Position, depth int) (chess3d.Move, bool) {
	if depth <= 0 {
		return chess3d.Move{}, false
	}
	mc.nodes++
	if mc.exhausted() {
		return chess3d.Move{}, false
	}
	key := pos.Hash ^ mateModeAttack
	if mc.inPath[key] {
		return chess3d.Move{}, false
	}
	if entry, ok := mc.tt[key]; ok && entry.Depth >= depth {
		return entry.Move, entry.Result
	}
	mc.inPath[key] = true
	defer delete(mc.inPath, key)

	moves := pos.GenerateLegalMoves()
	hint := chess3d.Move{}
	if entry, ok := mc.tt[key]; ok {
		hint = entry.Move
	}
	orderMoves(pos, moves, hint)

	result := false
	var best chess3d.Move
	defender := mc.attacker.Opposite()
	for _, mv := range moves {
		u, err := pos.MakeMove(mv)
		if err != nil {
			continue
		}
		forced := false
		if pos.IsKingInCheck(defender) {
			forced = mc.wins(pos) || !mc.defenderCanEscape(pos, depth-1)
		}
		pos.UndoMove(u)
		if forced {
			result, best = true, mv
			break
		}
	}
	mc.tt[key] = mateTTEntry{Depth: depth, Result: result, Move: best}
	return best, result
}

func (mc *mateContext) defenderCanEscape(pos *chess3d.Position, depth int) bool {
	if depth <= 0 {
		return true
	}
	mc.nodes++
	if mc.exhausted() {
		return true
	}
	key := pos.Hash ^ mateModeDefend
	if mc.inPath[key] {
		return true
	}
	if entry, ok := mc.tt[key]; ok && entry.Depth >= depth {
		return entry.Result
	}
	mc.inPath[key] = true
	defer delete(mc.inPath, key)

	result := false
	var best chess3d.Move
	for _, mv := range pos.GenerateLegalMoves() {
		u, err := pos.MakeMove(mv)
		if err != nil {
			continue
		}
		_, lost := mc.attackerCanForce(pos, depth-1)
		pos.UndoMove(u)
		if !lost {
			result, best = true, mv
			break
		}
	}
	mc.tt[key] = mateTTEntry{Depth: depth, Result: result, Move: best}
	return result
}
