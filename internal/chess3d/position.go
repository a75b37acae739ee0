package chess3d

import (
	"fmt"
	"slices"
)

func NewEmptyPosition(side Color) *Position {
	p := &Position{
		SideToMove: side,
		nextID:     1,
	}
	p.Hash = p.CalculateHash()
	return p
}

// Place adds a new piece with a fresh id. Intended for building start or
// test positions; play goes through MakeMove.
func (p *Position) Place(t PieceType, c Color, sq Square) (PieceID, error) {
	if t <= PieceNone || t > King || (c != White && c != Black) {
		return NoPiece, fmt.Errorf("%w: bad piece %v/%v", ErrInvalidPosition, t, c)
	}
	if !sq.Valid() {
		return NoPiece, fmt.Errorf("%w: square %v out of bounds", ErrInvalidPosition, sq)
	}
	if p.board[sq.Index()] != NoPiece {
		return NoPiece, fmt.Errorf("%w: square %v occupied", ErrInvalidPosition, sq)
	}
	if p.nextID == NoPiece {
		p.nextID = 1
	}
	id := p.nextID
	p.nextID++
	p.pieces = append(p.pieces, Piece{ID: id, Type: t, Color: c, Square: sq})
	p.board[sq.Index()] = id
	p.Hash ^= pieceHashKey(c, t, sq)
	return id, nil
}

// SetMoved marks a placed piece as having moved already.
func (p *Position) SetMoved(id PieceID) error {
	i := p.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: no piece %d", ErrInvalidPosition, id)
	}
	p.pieces[i].HasMoved = true
	return nil
}

// Clone returns an independent copy.
func (p *Position) Clone() *Position {
	np := *p
	np.pieces = slices.Clone(p.pieces)
	return &np
}

// Pieces returns a copy of the live pieces ordered by id.
func (p *Position) Pieces() []Piece { return slices.Clone(p.pieces) }

func (p *Position) PieceCount() int { return len(p.pieces) }

// EachPiece calls fn for every live piece in id order without copying.
func (p *Position) EachPiece(fn func(Piece)) {
	for _, pc := range p.pieces {
		fn(pc)
	}
}

func (p *Position) Piece(id PieceID) (Piece, bool) {
	i := p.indexOf(id)
	if i < 0 {
		return Piece{}, false
	}
	return p.pieces[i], true
}

func (p *Position) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	id := p.board[sq.Index()]
	if id == NoPiece {
		return Piece{}, false
	}
	return p.Piece(id)
}

func (p *Position) occupied(sq Square) bool { return p.board[sq.Index()] != NoPiece }

func (p *Position) at(sq Square) *Piece {
	id := p.board[sq.Index()]
	if id == NoPiece {
		return nil
	}
	return &p.pieces[p.indexOf(id)]
}

func (p *Position) indexOf(id PieceID) int {
	i, ok := slices.BinarySearchFunc(p.pieces, id, func(pc Piece, id PieceID) int {
		return int(pc.ID) - int(id)
	})
	if !ok {
		return -1
	}
	return i
}

// Kings returns the squares of every king of color c. Non-standard play can
// leave more than one.
func (p *Position) Kings(c Color) []Square {
	var out []Square
	for _, pc := range p.pieces {
		if pc.Type == King && pc.Color == c {
			out = append(out, pc.Square)
		}
	}
	return out
}

func (p *Position) KingExists(c Color) bool {
	for _, pc := range p.pieces {
		if pc.Type == King && pc.Color == c {
			return true
		}
	}
	return false
}

// Equal reports whether two positions hold the same state, hash included.
func (p *Position) Equal(o *Position) bool {
	return p.SideToMove == o.SideToMove &&
		p.LastMove == o.LastMove &&
		p.Hash == o.Hash &&
		p.board == o.board &&
		slices.Equal(p.pieces, o.pieces)
}
