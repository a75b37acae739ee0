package chess3d

import (
	"errors"
	"testing"
)

func TestMakeUndoRestoresPosition(t *testing.T) {
	playout(t, 80, func(ply int, pos *Position, legal []Move) {
		before := pos.Clone()
		for _, m := range legal {
			u, err := pos.MakeMove(m)
			if err != nil {
				t.Fatalf("ply %d: make %v: %v", ply, m, err)
			}
			if pos.Hash != pos.CalculateHash() {
				t.Fatalf("ply %d: incremental hash drifted after %v", ply, m)
			}
			if u.Move().PieceID != m.PieceID {
				t.Fatalf("undo record lost its move")
			}
			pos.UndoMove(u)
			if !pos.Equal(before) {
				t.Fatalf("ply %d: undo of %v did not restore the position", ply, m)
			}
		}
	})
}

func TestApplyMoveLeavesReceiverUntouched(t *testing.T) {
	pos := NewInitialPosition()
	before := pos.Clone()
	m := pos.GenerateLegalMoves()[0]
	next, err := pos.ApplyMove(m)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !pos.Equal(before) {
		t.Fatalf("ApplyMove mutated its receiver")
	}
	if next.SideToMove != Black {
		t.Fatalf("side to move after white's move: %v", next.SideToMove)
	}
	if pc, _ := next.Piece(m.PieceID); pc.Square != m.To || !pc.HasMoved {
		t.Fatalf("mover not relocated: %+v", pc)
	}
}

func TestApplyMoveRejectsBadMoves(t *testing.T) {
	pos := NewInitialPosition()
	before := pos.Clone()

	black := pos.LegalMoves(Black)[0]
	white := pos.GenerateLegalMoves()[0]
	wrongFrom := white
	wrongFrom.From = Sq(3, 3, 3)

	cases := map[string]Move{
		"unknown piece":   {PieceID: 999, From: Sq(0, 0, 0), To: Sq(1, 0, 0)},
		"wrong side":      black,
		"stale origin":    wrongFrom,
		"off board":       {PieceID: white.PieceID, From: white.From, To: Sq(9, 0, 0)},
		"capture own man": {PieceID: white.PieceID, From: white.From, To: Sq(7, 0, 0)},
	}
	for name, m := range cases {
		if _, err := pos.ApplyMove(m); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("%s: expected ErrInvalidMove, got %v", name, err)
		}
		if _, err := pos.MakeMove(m); err == nil {
			t.Fatalf("%s: MakeMove accepted the move", name)
		}
		if !pos.Equal(before) {
			t.Fatalf("%s: rejected move modified the position", name)
		}
	}
}

func TestCaptureRemovesVictimAndUndoRestoresOrder(t *testing.T) {
	p := NewEmptyPosition(White)
	place(t, p, King, White, Sq(7, 3, 3))
	r := place(t, p, Rook, White, Sq(4, 0, 0))
	victim := place(t, p, Knight, Black, Sq(4, 2, 0))
	place(t, p, King, Black, Sq(0, 0, 3))

	m, ok := findMove(p.GenerateLegalMoves(), r, Sq(4, 2, 0))
	if !ok || m.Captured != victim {
		t.Fatalf("capture not generated: %+v", m)
	}
	before := p.Clone()
	u, err := p.MakeMove(m)
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	if p.PieceCount() != 3 {
		t.Fatalf("victim still on board")
	}
	if _, ok := p.Piece(victim); ok {
		t.Fatalf("victim id still resolves")
	}
	p.UndoMove(u)
	if !p.Equal(before) {
		t.Fatalf("undo of capture did not restore the position")
	}
}
