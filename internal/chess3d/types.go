package chess3d

import "fmt"

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	switch string(b) {
	case "white", "w":
		*c = White
	case "black", "b":
		*c = Black
	case "none", "":
		*c = NoColor
	default:
		return fmt.Errorf("unknown color %q", b)
	}
	return nil
}

type PieceType int8

const (
	PieceNone PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (t PieceType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *PieceType) UnmarshalText(b []byte) error {
	for i, name := range pieceTypeNames {
		if name == string(b) {
			*t = PieceType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", b)
}

func (t PieceType) String() string {
	if t < 0 || int(t) >= len(pieceTypeNames) {
		return "none"
	}
	return pieceTypeNames[t]
}

// PieceID is assigned once when a piece is placed and never reused.
type PieceID int16

const NoPiece PieceID = 0

type Piece struct {
	ID       PieceID   `json:"id"`
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Square   Square    `json:"square"`
	HasMoved bool      `json:"has_moved"`
}

// CastleInfo is the rook half of a castling move.
type CastleInfo struct {
	RookID   PieceID `json:"rook_id"`
	RookFrom Square  `json:"rook_from"`
	RookTo   Square  `json:"rook_to"`
}

type Move struct {
	PieceID    PieceID     `json:"piece_id"`
	From       Square      `json:"from"`
	To         Square      `json:"to"`
	Captured   PieceID     `json:"captured,omitempty"`
	EnPassant  bool        `json:"en_passant,omitempty"`
	Castle     *CastleInfo `json:"castle,omitempty"`
	DoubleStep bool        `json:"double_step,omitempty"`
	Promotion  PieceType   `json:"promotion,omitempty"`
	Score      int         `json:"-"` // ordering only
}

func (m Move) IsCapture() bool { return m.Captured != NoPiece }

func (m Move) IsCastle() bool { return m.Castle != nil }

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != PieceNone {
		s += "=" + m.Promotion.String()
	}
	return s
}

// SameAs compares the identity of two moves and ignores the ordering score.
func (m Move) SameAs(o Move) bool {
	return m.PieceID == o.PieceID && m.From == o.From && m.To == o.To
}

// LastMove holds only what en passant needs. It is reset after every move
// that is not a pawn double-step.
type LastMove struct {
	DoubleStep bool    `json:"double_step"`
	PieceID    PieceID `json:"piece_id,omitempty"`
	From       Square  `json:"from"`
	To         Square  `json:"to"`
}

// Position is the canonical game state. Piece squares and has-moved flags
// change only through MakeMove/UndoMove/ApplyMove.
type Position struct {
	pieces     []Piece // live pieces sorted by ID
	board      [NumSquares]PieceID
	nextID     PieceID
	SideToMove Color
	LastMove   LastMove
	Hash       uint64
}
