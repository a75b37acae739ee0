package chess3d

func genPawnMoves(p *Position, pc *Piece, moves *[]Move) {
	dir := pawnDir(pc.Color)
	from := pc.Square
	last := pawnLastFile(pc.Color)

	add := func(m Move) {
		if m.To.File == last {
			m.Promotion = Queen
		}
		*moves = append(*moves, m)
	}

	one := Square{File: from.File + dir, Rank: from.Rank, Level: from.Level}
	if !one.Valid() {
		return
	}

	if !p.occupied(one) {
		add(newMove(pc, one, nil))

		if !pc.HasMoved && from.File == pawnStartFile(pc.Color) {
			two := Square{File: from.File + 2*dir, Rank: from.Rank, Level: from.Level}
			if two.Valid() && !p.occupied(two) {
				m := newMove(pc, two, nil)
				m.DoubleStep = true
				add(m)
			}
		}
	}

	// forward step plus one rank or level shift, enemy-occupied only
	for _, s := range pawnSideShifts {
		to := one.add(s)
		if !to.Valid() {
			continue
		}
		if target := p.at(to); target != nil && target.Color != pc.Color {
			add(newMove(pc, to, target))
		}
	}

	if m, ok := enPassantMove(p, pc); ok {
		add(m)
	}
}

// enPassantMove captures a pawn that just double-stepped to a square beside
// this pawn (same file, one rank or one level away). The capturer lands on
// the square the victim skipped; the victim is removed by id.
func enPassantMove(p *Position, pc *Piece) (Move, bool) {
	lm := p.LastMove
	if !lm.DoubleStep {
		return Move{}, false
	}
	victim, ok := p.Piece(lm.PieceID)
	if !ok || victim.Type != Pawn || victim.Color == pc.Color || victim.Square != lm.To {
		return Move{}, false
	}
	if victim.Square.File != pc.Square.File {
		return Move{}, false
	}
	if abs(victim.Square.Rank-pc.Square.Rank)+abs(victim.Square.Level-pc.Square.Level) != 1 {
		return Move{}, false
	}
	to := Square{File: pc.Square.File + pawnDir(pc.Color), Rank: victim.Square.Rank, Level: victim.Square.Level}
	if !to.Valid() || p.occupied(to) {
		return Move{}, false
	}
	m := newMove(pc, to, nil)
	m.Captured = victim.ID
	m.EnPassant = true
	return m, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
