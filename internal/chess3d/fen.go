package chess3d

import (
	"fmt"
	"strings"
	"unicode"
)

// Position text form, FEN-like:
//
//	<level0>|<level1>|<level2>|<level3> <w|b> <en passant square|->
//
// A level is four ranks joined by '/', a rank lists files 1..8 with digits
// for runs of empty squares. Upper case is white. A trailing ' marks a piece
// that has moved. The en passant field names the square of the pawn that
// just double-stepped.

var letterToPieceType = map[rune]PieceType{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

func pieceToChar(pc Piece) rune {
	var base rune
	for k, v := range letterToPieceType {
		if v == pc.Type {
			base = k
			break
		}
	}
	if base == 0 {
		return '.'
	}
	if pc.Color == White {
		return unicode.ToUpper(base)
	}
	return base
}

func (p *Position) Encode() string {
	var sb strings.Builder
	for l := 0; l < Levels; l++ {
		if l > 0 {
			sb.WriteByte('|')
		}
		for r := 0; r < Ranks; r++ {
			if r > 0 {
				sb.WriteByte('/')
			}
			empty := 0
			for f := 0; f < Files; f++ {
				pc, ok := p.PieceAt(Sq(f, r, l))
				if !ok {
					empty++
					continue
				}
				if empty > 0 {
					sb.WriteByte(byte('0' + empty))
					empty = 0
				}
				sb.WriteRune(pieceToChar(pc))
				if pc.HasMoved {
					sb.WriteByte('\'')
				}
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
			}
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteByte(' ')
	if p.LastMove.DoubleStep {
		sb.WriteString(p.LastMove.To.String())
	} else {
		sb.WriteByte('-')
	}
	return sb.String()
}

func (p *Position) String() string { return p.Encode() }

// DecodePosition parses Encode's format. Piece ids are assigned in scan
// order, so they only match the encoded position's ids when that position
// was itself decoded.
func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, ErrInvalidFEN
	}
	levels := strings.Split(parts[0], "|")
	if len(levels) != Levels {
		return nil, fmt.Errorf("%w: want %d levels, got %d", ErrInvalidFEN, Levels, len(levels))
	}

	var side Color
	switch parts[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return nil, fmt.Errorf("%w: side %q", ErrInvalidFEN, parts[1])
	}
	p := NewEmptyPosition(side)

	for l, level := range levels {
		ranks := strings.Split(level, "/")
		if len(ranks) != Ranks {
			return nil, fmt.Errorf("%w: level %d has %d ranks", ErrInvalidFEN, l+1, len(ranks))
		}
		for r, rank := range ranks {
			f := 0
			var last PieceID
			for _, ch := range rank {
				switch {
				case ch >= '1' && ch <= '8':
					f += int(ch - '0')
					last = NoPiece
					continue
				case ch == '\'':
					if last == NoPiece {
						return nil, fmt.Errorf("%w: stray moved marker", ErrInvalidFEN)
					}
					if err := p.SetMoved(last); err != nil {
						return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
					}
					continue
				}
				pt, ok := letterToPieceType[unicode.ToLower(ch)]
				if !ok {
					return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
				}
				if f >= Files {
					return nil, fmt.Errorf("%w: rank too long", ErrInvalidFEN)
				}
				c := Black
				if unicode.IsUpper(ch) {
					c = White
				}
				id, err := p.Place(pt, c, Sq(f, r, l))
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
				}
				last = id
				f++
			}
			if f != Files {
				return nil, fmt.Errorf("%w: level %d rank %d has %d files", ErrInvalidFEN, l+1, r+1, f)
			}
		}
	}

	if len(parts) > 2 && parts[2] != "-" {
		to, err := ParseSquare(parts[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
		}
		pc, ok := p.PieceAt(to)
		if !ok || pc.Type != Pawn || pc.Color != side.Opposite() {
			return nil, fmt.Errorf("%w: no %v pawn on en passant square %v", ErrInvalidFEN, side.Opposite(), to)
		}
		from := Square{File: to.File - 2*pawnDir(pc.Color), Rank: to.Rank, Level: to.Level}
		crossed := Square{File: to.File - pawnDir(pc.Color), Rank: to.Rank, Level: to.Level}
		if !from.Valid() || p.occupied(from) || p.occupied(crossed) {
			return nil, fmt.Errorf("%w: %v cannot follow a double step", ErrInvalidFEN, to)
		}
		p.LastMove = LastMove{DoubleStep: true, PieceID: pc.ID, From: from, To: to}
	}

	p.Hash = p.CalculateHash()
	return p, nil
}
