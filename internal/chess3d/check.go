package chess3d

// forEachAttacker calls fn for every piece of color by that attacks sq,
// stopping early when fn returns false. It scans outward from the target
// instead of generating every enemy move.
func (p *Position) forEachAttacker(sq Square, by Color, fn func(PieceID) bool) {
	if !sq.Valid() {
		return
	}
	visit := func(from Square, types ...PieceType) bool {
		if !from.Valid() {
			return true
		}
		pc := p.at(from)
		if pc == nil || pc.Color != by {
			return true
		}
		for _, t := range types {
			if pc.Type == t {
				return fn(pc.ID)
			}
		}
		return true
	}

	// a pawn of `by` one file behind sq, shifted by one rank or level
	behind := Square{File: sq.File - pawnDir(by), Rank: sq.Rank, Level: sq.Level}
	for _, s := range pawnSideShifts {
		if !visit(behind.add(s), Pawn) {
			return
		}
	}

	for _, d := range knightLeaps {
		if !visit(sq.add(d), Knight) {
			return
		}
	}

	for _, d := range queenDirs {
		if !visit(sq.add(d), King) {
			return
		}
	}

	for i, d := range queenDirs {
		diagonal := i >= len(rookDirs)
		for cur := sq.add(d); cur.Valid(); cur = cur.add(d) {
			if !p.occupied(cur) {
				continue
			}
			var ok bool
			if diagonal {
				ok = visit(cur, Bishop, Queen)
			} else {
				ok = visit(cur, Rook, Queen)
			}
			if !ok {
				return
			}
			break
		}
	}
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	attacked := false
	p.forEachAttacker(sq, by, func(PieceID) bool {
		attacked = true
		return false
	})
	return attacked
}

// Attackers lists the ids of every piece of color by attacking sq.
func (p *Position) Attackers(sq Square, by Color) []PieceID {
	var out []PieceID
	p.forEachAttacker(sq, by, func(id PieceID) bool {
		out = append(out, id)
		return true
	})
	return out
}

// IsKingInCheck is true if any king of color c is attacked.
func (p *Position) IsKingInCheck(c Color) bool {
	opp := c.Opposite()
	for _, pc := range p.pieces {
		if pc.Type == King && pc.Color == c && p.IsSquareAttacked(pc.Square, opp) {
			return true
		}
	}
	return false
}

// IsAttackedByPawn is the cheap pawn-only variant used by move ordering.
func (p *Position) IsAttackedByPawn(sq Square, by Color) bool {
	behind := Square{File: sq.File - pawnDir(by), Rank: sq.Rank, Level: sq.Level}
	for _, s := range pawnSideShifts {
		from := behind.add(s)
		if !from.Valid() {
			continue
		}
		if pc := p.at(from); pc != nil && pc.Color == by && pc.Type == Pawn {
			return true
		}
	}
	return false
}
