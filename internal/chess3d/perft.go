package chess3d

// Perft counts leaf nodes of the legal move tree to the given depth.
func (p *Position) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	return p.Clone().perft(depth)
}

func (p *Position) perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		u, err := p.MakeMove(m)
		if err != nil {
			continue
		}
		nodes += p.perft(depth - 1)
		p.UndoMove(u)
	}
	return nodes
}

// Divide is Perft split by root move, keyed by Move.String().
func (p *Position) Divide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	work := p.Clone()
	for _, m := range work.GenerateLegalMoves() {
		u, err := work.MakeMove(m)
		if err != nil {
			continue
		}
		out[m.String()] += work.perft(depth - 1)
		work.UndoMove(u)
	}
	return out
}
