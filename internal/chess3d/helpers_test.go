package chess3d

import (
	"math/rand/v2"
	"testing"
)

func place(t *testing.T, p *Position, pt PieceType, c Color, sq Square) PieceID {
	t.Helper()
	id, err := p.Place(pt, c, sq)
	if err != nil {
		t.Fatalf("place %v %v on %v: %v", c, pt, sq, err)
	}
	p.Hash = p.CalculateHash()
	return id
}

func placeMoved(t *testing.T, p *Position, pt PieceType, c Color, sq Square) PieceID {
	t.Helper()
	id := place(t, p, pt, c, sq)
	if err := p.SetMoved(id); err != nil {
		t.Fatalf("set moved: %v", err)
	}
	return id
}

func movesOf(moves []Move, id PieceID) []Move {
	var out []Move
	for _, m := range moves {
		if m.PieceID == id {
			out = append(out, m)
		}
	}
	return out
}

func findMove(moves []Move, id PieceID, to Square) (Move, bool) {
	for _, m := range moves {
		if m.PieceID == id && m.To == to {
			return m, true
		}
	}
	return Move{}, false
}

// playout walks a deterministic random game and calls visit before each ply.
func playout(t *testing.T, plies int, visit func(ply int, p *Position, legal []Move)) {
	t.Helper()
	rng := rand.New(rand.NewPCG(7, 11))
	pos := NewInitialPosition()
	for ply := 0; ply < plies; ply++ {
		legal := pos.GenerateLegalMoves()
		if len(legal) == 0 {
			return
		}
		visit(ply, pos, legal)
		mv := legal[rng.IntN(len(legal))]
		if _, err := pos.MakeMove(mv); err != nil {
			t.Fatalf("ply %d: make %v: %v", ply, mv, err)
		}
	}
}
