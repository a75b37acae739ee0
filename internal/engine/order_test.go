package engine

import (
	"testing"

	"chess3d/internal/chess3d"
)

func TestOrderMovesPutsBestCapturesFirst(t *testing.T) {
	pos := buildPosition(t, chess3d.White,
		placement{chess3d.King, chess3d.White, chess3d.Sq(7, 3, 3)},
		placement{chess3d.King, chess3d.Black, chess3d.Sq(0, 0, 3)},
		placement{chess3d.Pawn, chess3d.White, chess3d.Sq(5, 1, 1)},
		placement{chess3d.Queen, chess3d.Black, chess3d.Sq(4, 2, 1)},
		placement{chess3d.Rook, chess3d.White, chess3d.Sq(2, 0, 0)},
		placement{chess3d.Pawn, chess3d.Black, chess3d.Sq(2, 3, 0)},
		placement{chess3d.Pawn, chess3d.Black, chess3d.Sq(1, 1, 1)},
	)
	moves := pos.GenerateLegalMoves()
	orderMoves(pos, moves, chess3d.Move{})

	if moves[0].To != chess3d.Sq(4, 2, 1) {
		t.Fatalf("pawn takes queen should lead, got %v", moves[0])
	}
	if moves[1].To != chess3d.Sq(2, 3, 0) {
		t.Fatalf("rook takes pawn should be second, got %v", moves[1])
	}
	for i := 1; i < len(moves); i++ {
		if moves[i-1].Score < moves[i].Score {
			t.Fatalf("not sorted at %d: %d < %d", i, moves[i-1].Score, moves[i].Score)
		}
	}
	guarded, ok := findTo(moves, chess3d.Sq(2, 1, 0))
	if !ok || guarded.Score != -pawnAttackedPenalty {
		t.Fatalf("rook step onto a pawn-guarded square should be penalized, got %+v", guarded)
	}
	if last := moves[len(moves)-1]; last.Score != -pawnAttackedPenalty {
		t.Fatalf("penalized moves should sort last, got %v (%d)", last, last.Score)
	}
}

func TestOrderMovesHonoursFirstMove(t *testing.T) {
	pos := chess3d.NewInitialPosition()
	moves := pos.GenerateLegalMoves()
	want := moves[len(moves)-1]
	orderMoves(pos, moves, want)
	if !moves[0].SameAs(want) {
		t.Fatalf("hinted move should be first, got %v want %v", moves[0], want)
	}
}

func TestPromotionIsBoosted(t *testing.T) {
	pos := buildPosition(t, chess3d.White,
		placement{chess3d.King, chess3d.White, chess3d.Sq(7, 3, 3)},
		placement{chess3d.King, chess3d.Black, chess3d.Sq(3, 3, 3)},
		placement{chess3d.Pawn, chess3d.White, chess3d.Sq(1, 0, 0)},
	)
	moves := pos.GenerateLegalMoves()
	orderMoves(pos, moves, chess3d.Move{})
	if moves[0].Promotion != chess3d.Queen {
		t.Fatalf("promotion should be ordered first, got %v", moves[0])
	}
}

func findTo(moves []chess3d.Move, to chess3d.Square) (chess3d.Move, bool) {
	for _, m := range moves {
		if m.To == to {
			return m, true
		}
	}
	return chess3d.Move{}, false
}
