package chess3d

import (
	"fmt"
	"slices"
)

// Undo holds what MakeMove overwrote. UndoMove restores it exactly.
type Undo struct {
	move Move

	moverType  PieceType
	moverMoved bool

	captured    Piece
	capturedIdx int // -1 if nothing was captured

	rookMoved bool

	lastMove LastMove
	side     Color
	hash     uint64
}

func (u Undo) Move() Move { return u.move }

// ApplyMove returns the position after m; the receiver is untouched.
func (p *Position) ApplyMove(m Move) (*Position, error) {
	np := p.Clone()
	if _, err := np.MakeMove(m); err != nil {
		return nil, err
	}
	return np, nil
}

// MakeMove plays m in place. Captures are removed by id for en passant and
// by square otherwise; castling moves the rook in the same step. Nothing is
// modified when an error is returned.
func (p *Position) MakeMove(m Move) (Undo, error) {
	mi := p.indexOf(m.PieceID)
	if mi < 0 {
		return Undo{}, fmt.Errorf("%w: no piece with id %d", ErrInvalidMove, m.PieceID)
	}
	mover := p.pieces[mi]
	if mover.Color != p.SideToMove {
		return Undo{}, fmt.Errorf("%w: piece %d is %v, %v to move", ErrInvalidMove, m.PieceID, mover.Color, p.SideToMove)
	}
	if mover.Square != m.From {
		return Undo{}, fmt.Errorf("%w: piece %d is on %v, not %v", ErrInvalidMove, m.PieceID, mover.Square, m.From)
	}
	if !m.To.Valid() || m.To == m.From {
		return Undo{}, fmt.Errorf("%w: bad destination %v", ErrInvalidMove, m.To)
	}

	victimID := p.board[m.To.Index()]
	if m.EnPassant {
		if victimID != NoPiece {
			return Undo{}, fmt.Errorf("%w: en passant landing %v occupied", ErrInvalidMove, m.To)
		}
		victimID = m.Captured
	}
	if victimID != NoPiece {
		v, ok := p.Piece(victimID)
		if !ok {
			return Undo{}, fmt.Errorf("%w: captured piece %d missing", ErrInvalidMove, victimID)
		}
		if v.Color == mover.Color {
			return Undo{}, fmt.Errorf("%w: %v cannot capture own piece on %v", ErrInvalidMove, mover.Color, v.Square)
		}
	}
	if m.Castle != nil {
		r, ok := p.Piece(m.Castle.RookID)
		if !ok || r.Type != Rook || r.Color != mover.Color || r.Square != m.Castle.RookFrom || !m.Castle.RookTo.Valid() {
			return Undo{}, fmt.Errorf("%w: bad castling rook %d", ErrInvalidMove, m.Castle.RookID)
		}
	}

	u := Undo{
		move:        m,
		moverType:   mover.Type,
		moverMoved:  mover.HasMoved,
		capturedIdx: -1,
		lastMove:    p.LastMove,
		side:        p.SideToMove,
		hash:        p.Hash,
	}
	h := p.Hash ^ lastMoveHashKey(p.LastMove)

	if victimID != NoPiece {
		vi := p.indexOf(victimID)
		v := p.pieces[vi]
		p.board[v.Square.Index()] = NoPiece
		h ^= pieceHashKey(v.Color, v.Type, v.Square)
		p.pieces = slices.Delete(p.pieces, vi, vi+1)
		u.captured = v
		u.capturedIdx = vi
	}

	mi = p.indexOf(m.PieceID)
	pc := &p.pieces[mi]
	p.board[m.From.Index()] = NoPiece
	h ^= pieceHashKey(pc.Color, pc.Type, m.From)
	if m.Promotion != PieceNone && pc.Type == Pawn {
		pc.Type = m.Promotion
	}
	pc.Square = m.To
	pc.HasMoved = true
	p.board[m.To.Index()] = pc.ID
	h ^= pieceHashKey(pc.Color, pc.Type, m.To)

	if m.Castle != nil {
		rook := &p.pieces[p.indexOf(m.Castle.RookID)]
		u.rookMoved = rook.HasMoved
		p.board[m.Castle.RookFrom.Index()] = NoPiece
		h ^= pieceHashKey(rook.Color, rook.Type, m.Castle.RookFrom)
		rook.Square = m.Castle.RookTo
		rook.HasMoved = true
		p.board[m.Castle.RookTo.Index()] = rook.ID
		h ^= pieceHashKey(rook.Color, rook.Type, m.Castle.RookTo)
	}

	if m.DoubleStep && u.moverType == Pawn {
		p.LastMove = LastMove{DoubleStep: true, PieceID: m.PieceID, From: m.From, To: m.To}
	} else {
		p.LastMove = LastMove{}
	}
	h ^= lastMoveHashKey(p.LastMove)

	p.SideToMove = p.SideToMove.Opposite()
	h ^= zobristSide
	p.Hash = h
	return u, nil
}

// UndoMove reverts the MakeMove that produced u. Undos must be applied in
// reverse order.
func (p *Position) UndoMove(u Undo) {
	m := u.move

	if m.Castle != nil {
		rook := &p.pieces[p.indexOf(m.Castle.RookID)]
		p.board[m.Castle.RookTo.Index()] = NoPiece
		rook.Square = m.Castle.RookFrom
		rook.HasMoved = u.rookMoved
		p.board[m.Castle.RookFrom.Index()] = rook.ID
	}

	pc := &p.pieces[p.indexOf(m.PieceID)]
	if p.board[m.To.Index()] == pc.ID {
		p.board[m.To.Index()] = NoPiece
	}
	pc.Square = m.From
	pc.Type = u.moverType
	pc.HasMoved = u.moverMoved
	p.board[m.From.Index()] = pc.ID

	if u.capturedIdx >= 0 {
		p.pieces = slices.Insert(p.pieces, u.capturedIdx, u.captured)
		p.board[u.captured.Square.Index()] = u.captured.ID
	}

	p.LastMove = u.lastMove
	p.SideToMove = u.side
	p.Hash = u.hash
}
