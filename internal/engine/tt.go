package engine

import "chess3d/internal/chess3d"

const ttMaxEntries = 1_000_000

// ttEntry only feeds move ordering; scores are never cut on.
type ttEntry struct {
	Key   uint64
	Depth int
	Score int
	Move  chess3d.Move
}

func (e *Engine) storeTT(key uint64, depth int, score int, mv chess3d.Move) {
	if len(e.tt) > ttMaxEntries {
		e.tt = make(map[uint64]ttEntry, 1<<16)
	}
	old, ok := e.tt[key]
	if !ok || depth >= old.Depth {
		e.tt[key] = ttEntry{
			Key:   key,
			Depth: depth,
			Score: score,
			Move:  mv,
		}
	}
}

func (e *Engine) ttMove(key uint64) chess3d.Move {
	if entry, ok := e.tt[key]; ok {
		return entry.Move
	}
	return chess3d.Move{}
}

// principalVariation follows stored best moves from pos, checking each for
// legality, for at most depth plies.
func (e *Engine) principalVariation(pos *chess3d.Position, first chess3d.Move, depth int) []chess3d.Move {
	work := pos.Clone()
	pv := make([]chess3d.Move, 0, depth)
	next := first
	seen := make(map[uint64]bool, depth)
	for len(pv) < depth {
		mv, ok := work.IsLegal(next)
		if !ok || seen[work.Hash] {
			break
		}
		seen[work.Hash] = true
		if _, err := work.MakeMove(mv); err != nil {
			break
		}
		pv = append(pv, mv)
		next = e.ttMove(work.Hash)
		if next.PieceID == chess3d.NoPiece {
			break
		}
	}
	return pv
}
