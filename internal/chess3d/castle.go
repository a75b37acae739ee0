package chess3d

// longCastleBlockers is keyed by white's king start and long-castle landing
// square. The value must be empty for the long landing to be offered. Black
// positions are looked up through the file mirror.
var longCastleBlockers = map[[2]Square]Square{
	// along the rank axis
	{Sq(7, 3, 0), Sq(7, 1, 0)}: Sq(6, 1, 0),
	{Sq(7, 3, 1), Sq(7, 1, 1)}: Sq(6, 1, 1),
	{Sq(7, 3, 2), Sq(7, 1, 2)}: Sq(6, 1, 2),
	{Sq(7, 3, 3), Sq(7, 1, 3)}: Sq(6, 1, 3),
	{Sq(7, 0, 0), Sq(7, 2, 0)}: Sq(6, 2, 0),
	{Sq(7, 0, 1), Sq(7, 2, 1)}: Sq(6, 2, 1),
	{Sq(7, 0, 2), Sq(7, 2, 2)}: Sq(6, 2, 2),
	{Sq(7, 0, 3), Sq(7, 2, 3)}: Sq(6, 2, 3),
	// along the level axis
	{Sq(7, 0, 0), Sq(7, 0, 2)}: Sq(6, 0, 2),
	{Sq(7, 1, 0), Sq(7, 1, 2)}: Sq(6, 1, 2),
	{Sq(7, 2, 0), Sq(7, 2, 2)}: Sq(6, 2, 2),
	{Sq(7, 3, 0), Sq(7, 3, 2)}: Sq(6, 3, 2),
	{Sq(7, 0, 3), Sq(7, 0, 1)}: Sq(6, 0, 1),
	{Sq(7, 1, 3), Sq(7, 1, 1)}: Sq(6, 1, 1),
	{Sq(7, 2, 3), Sq(7, 2, 1)}: Sq(6, 2, 1),
	{Sq(7, 3, 3), Sq(7, 3, 1)}: Sq(6, 3, 1),
}

func longCastleBlocker(kingFrom, kingTo Square) (Square, bool) {
	if sq, ok := longCastleBlockers[[2]Square{kingFrom, kingTo}]; ok {
		return sq, true
	}
	if sq, ok := longCastleBlockers[[2]Square{kingFrom.mirror(), kingTo.mirror()}]; ok {
		return sq.mirror(), true
	}
	return Square{}, false
}

// genCastleMoves: king and rook on the same file, both unmoved, lined up
// along the rank axis (same level) or the level axis (same rank).
//
//	distance 2: king steps onto the square between, rook lands on the king's start.
//	distance 3: king goes two squares, rook lands on the square the king crossed.
//
// The king's start and every square it touches must not be attacked.
func genCastleMoves(p *Position, king *Piece, moves *[]Move) {
	if king.HasMoved {
		return
	}
	opp := king.Color.Opposite()
	kingAttacked := -1 // lazily computed

	for i := range p.pieces {
		rook := &p.pieces[i]
		if rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		if rook.Square.File != king.Square.File {
			continue
		}

		var axis vec
		var dist int
		switch {
		case rook.Square.Level == king.Square.Level && rook.Square.Rank != king.Square.Rank:
			dist = rook.Square.Rank - king.Square.Rank
			axis = vec{0, sign(dist), 0}
		case rook.Square.Rank == king.Square.Rank && rook.Square.Level != king.Square.Level:
			dist = rook.Square.Level - king.Square.Level
			axis = vec{0, 0, sign(dist)}
		default:
			continue
		}
		dist = abs(dist)
		if dist != 2 && dist != 3 {
			continue
		}

		if kingAttacked < 0 {
			kingAttacked = 0
			if p.IsSquareAttacked(king.Square, opp) {
				kingAttacked = 1
			}
		}
		if kingAttacked == 1 {
			return
		}

		step1 := king.Square.add(axis)
		if p.occupied(step1) || p.IsSquareAttacked(step1, opp) {
			continue
		}

		if dist == 2 {
			*moves = append(*moves, Move{
				PieceID: king.ID,
				From:    king.Square,
				To:      step1,
				Castle:  &CastleInfo{RookID: rook.ID, RookFrom: rook.Square, RookTo: king.Square},
			})
			continue
		}

		step2 := step1.add(axis)
		if p.occupied(step2) || p.IsSquareAttacked(step2, opp) {
			continue
		}
		blocker, ok := longCastleBlocker(king.Square, step2)
		if !ok || p.occupied(blocker) {
			continue
		}
		*moves = append(*moves, Move{
			PieceID: king.ID,
			From:    king.Square,
			To:      step2,
			Castle:  &CastleInfo{RookID: rook.ID, RookFrom: rook.Square, RookTo: step1},
		})
	}
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
