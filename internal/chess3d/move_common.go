package chess3d

func newMove(pc *Piece, to Square, target *Piece) Move {
	m := Move{PieceID: pc.ID, From: pc.Square, To: to}
	if target != nil {
		m.Captured = target.ID
	}
	return m
}

// genSliderMoves casts rays until the first occupied square; an enemy there
// is a capture, a friend is not.
func genSliderMoves(p *Position, pc *Piece, dirs []vec, moves *[]Move) {
	for _, d := range dirs {
		for to := pc.Square.add(d); to.Valid(); to = to.add(d) {
			target := p.at(to)
			if target == nil {
				*moves = append(*moves, newMove(pc, to, nil))
				continue
			}
			if target.Color != pc.Color {
				*moves = append(*moves, newMove(pc, to, target))
			}
			break
		}
	}
}

func genRookMoves(p *Position, pc *Piece, moves *[]Move)   { genSliderMoves(p, pc, rookDirs, moves) }
func genBishopMoves(p *Position, pc *Piece, moves *[]Move) { genSliderMoves(p, pc, bishopDirs, moves) }
func genQueenMoves(p *Position, pc *Piece, moves *[]Move)  { genSliderMoves(p, pc, queenDirs, moves) }

// genStepMoves covers the leapers: one hop per offset, no blocking.
func genStepMoves(p *Position, pc *Piece, offsets []vec, moves *[]Move) {
	for _, d := range offsets {
		to := pc.Square.add(d)
		if !to.Valid() {
			continue
		}
		target := p.at(to)
		if target != nil && target.Color == pc.Color {
			continue
		}
		*moves = append(*moves, newMove(pc, to, target))
	}
}

// King: one step in all 14 directions plus castling. A castling move that
// lands where a plain step lands replaces the step.
func genKingMoves(p *Position, pc *Piece, moves *[]Move) {
	start := len(*moves)
	genStepMoves(p, pc, queenDirs, moves)

	var castles []Move
	genCastleMoves(p, pc, &castles)
	for _, cm := range castles {
		merged := false
		for i := start; i < len(*moves); i++ {
			if (*moves)[i].To == cm.To {
				(*moves)[i].Castle = cm.Castle
				merged = true
				break
			}
		}
		if !merged {
			*moves = append(*moves, cm)
		}
	}
}
