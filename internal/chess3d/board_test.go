package chess3d

import "testing"

func TestInitialPositionLayout(t *testing.T) {
	pos := NewInitialPosition()

	if got := pos.PieceCount(); got != 64 {
		t.Fatalf("piece count: got %d want 64", got)
	}
	seenID := map[PieceID]bool{}
	seenSq := map[Square]bool{}
	counts := map[Color]map[PieceType]int{White: {}, Black: {}}
	for _, pc := range pos.Pieces() {
		if seenID[pc.ID] {
			t.Fatalf("duplicate id %d", pc.ID)
		}
		seenID[pc.ID] = true
		if !pc.Square.Valid() {
			t.Fatalf("piece %d out of bounds: %+v", pc.ID, pc.Square)
		}
		if seenSq[pc.Square] {
			t.Fatalf("two pieces on %v", pc.Square)
		}
		seenSq[pc.Square] = true
		if pc.HasMoved {
			t.Fatalf("piece %d starts moved", pc.ID)
		}
		counts[pc.Color][pc.Type]++
	}
	for _, c := range []Color{White, Black} {
		if counts[c][Pawn] != 16 {
			t.Fatalf("%v pawns: got %d want 16", c, counts[c][Pawn])
		}
		if counts[c][King] != 1 {
			t.Fatalf("%v kings: got %d want 1", c, counts[c][King])
		}
	}
	if pos.Hash != pos.CalculateHash() {
		t.Fatalf("initial hash mismatch")
	}
	if pos.SideToMove != White {
		t.Fatalf("white should move first")
	}
}

func TestInitialPositionIsFileMirrored(t *testing.T) {
	pos := NewInitialPosition()
	for _, pc := range pos.Pieces() {
		if pc.Color != White {
			continue
		}
		other, ok := pos.PieceAt(pc.Square.mirror())
		if !ok {
			t.Fatalf("no piece mirrors %v", pc.Square)
		}
		if other.Color != Black || other.Type != pc.Type {
			t.Fatalf("mirror of %v %v on %v is %v %v", pc.Color, pc.Type, pc.Square, other.Color, other.Type)
		}
	}
}

func TestSquareStringRoundTrip(t *testing.T) {
	for i := 0; i < NumSquares; i++ {
		sq := squareAt(i)
		if sq.Index() != i {
			t.Fatalf("index round trip: %d -> %+v -> %d", i, sq, sq.Index())
		}
		got, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("parse %q: %v", sq.String(), err)
		}
		if got != sq {
			t.Fatalf("parse %q: got %+v want %+v", sq.String(), got, sq)
		}
	}
	if got := Sq(3, 1, 1).String(); got != "2b4" {
		t.Fatalf("notation: got %q want 2b4", got)
	}
	for _, bad := range []string{"", "5a1", "1e1", "1a9", "1a0", "xyz"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestPlaceRejectsBadInput(t *testing.T) {
	p := NewEmptyPosition(White)
	place(t, p, Rook, White, Sq(0, 0, 0))
	if _, err := p.Place(Knight, Black, Sq(0, 0, 0)); err == nil {
		t.Fatalf("expected occupied square error")
	}
	if _, err := p.Place(Knight, Black, Sq(8, 0, 0)); err == nil {
		t.Fatalf("expected out of bounds error")
	}
	if _, err := p.Place(PieceNone, Black, Sq(1, 0, 0)); err == nil {
		t.Fatalf("expected bad piece error")
	}
}
