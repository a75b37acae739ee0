package chess3d

func genPieceMoves(p *Position, pc *Piece, moves *[]Move) {
	switch pc.Type {
	case Pawn:
		genPawnMoves(p, pc, moves)
	case Knight:
		genKnightMoves(p, pc, moves)
	case Bishop:
		genBishopMoves(p, pc, moves)
	case Rook:
		genRookMoves(p, pc, moves)
	case Queen:
		genQueenMoves(p, pc, moves)
	case King:
		genKingMoves(p, pc, moves)
	}
}

// PseudoLegalMoves lists geometry-valid moves of one piece, ignoring
// whether they leave the mover's own king in check.
func (p *Position) PseudoLegalMoves(id PieceID) []Move {
	i := p.indexOf(id)
	if i < 0 {
		return nil
	}
	var moves []Move
	genPieceMoves(p, &p.pieces[i], &moves)
	return moves
}

// GeneratePseudoMovesForSide enumerates pseudo-legal moves for every piece of c.
func (p *Position) GeneratePseudoMovesForSide(c Color) []Move {
	moves := make([]Move, 0, 64)
	for i := range p.pieces {
		if p.pieces[i].Color != c {
			continue
		}
		genPieceMoves(p, &p.pieces[i], &moves)
	}
	return moves
}

// LegalMoves drops every pseudo-legal move of c that leaves a king of c
// attacked. The receiver is not modified.
func (p *Position) LegalMoves(c Color) []Move {
	work := p.Clone()
	if work.SideToMove != c {
		work.SideToMove = c
		work.Hash ^= zobristSide
	}
	pseudo := work.GeneratePseudoMovesForSide(c)
	out := pseudo[:0]
	for _, m := range pseudo {
		u, err := work.MakeMove(m)
		if err != nil {
			continue
		}
		safe := !work.IsKingInCheck(c)
		work.UndoMove(u)
		if safe {
			out = append(out, m)
		}
	}
	return out
}

// GenerateLegalMoves is LegalMoves for the side to move.
func (p *Position) GenerateLegalMoves() []Move {
	return p.LegalMoves(p.SideToMove)
}

// GenerateLegalCaptures keeps only the capturing legal moves.
func (p *Position) GenerateLegalCaptures() []Move {
	moves := p.GenerateLegalMoves()
	out := moves[:0]
	for _, m := range moves {
		if m.IsCapture() {
			out = append(out, m)
		}
	}
	return out
}

// IsLegal reports whether m is one of the legal moves of the side to move
// and returns the generated move, which carries the full metadata.
func (p *Position) IsLegal(m Move) (Move, bool) {
	for _, lm := range p.GenerateLegalMoves() {
		if lm.From == m.From && lm.To == m.To && (m.PieceID == NoPiece || lm.PieceID == m.PieceID) {
			return lm, true
		}
	}
	return Move{}, false
}
