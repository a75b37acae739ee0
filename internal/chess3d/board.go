package chess3d

import (
	"fmt"
	"strconv"
)

const (
	Files  = 8
	Ranks  = 4
	Levels = 4

	NumSquares = Files * Ranks * Levels
)

type Square struct {
	File  int `json:"file"`
	Rank  int `json:"rank"`
	Level int `json:"level"`
}

func Sq(file, rank, level int) Square { return Square{File: file, Rank: rank, Level: level} }

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < Files &&
		s.Rank >= 0 && s.Rank < Ranks &&
		s.Level >= 0 && s.Level < Levels
}

func (s Square) Index() int { return s.Level*Files*Ranks + s.Rank*Files + s.File }

func squareAt(idx int) Square {
	return Square{
		File:  idx % Files,
		Rank:  (idx / Files) % Ranks,
		Level: idx / (Files * Ranks),
	}
}

func (s Square) add(d vec) Square {
	return Square{File: s.File + d.df, Rank: s.Rank + d.dr, Level: s.Level + d.dl}
}

// mirror reflects the square across the file axis (white <-> black side).
func (s Square) mirror() Square {
	return Square{File: Files - 1 - s.File, Rank: s.Rank, Level: s.Level}
}

// String renders <level><rank letter><file>, e.g. "2b4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%d%c%d", s.Level+1, 'a'+s.Rank, s.File+1)
}

func ParseSquare(str string) (Square, error) {
	if len(str) != 3 {
		return Square{}, fmt.Errorf("bad square %q", str)
	}
	level, err := strconv.Atoi(str[:1])
	if err != nil {
		return Square{}, fmt.Errorf("bad square %q", str)
	}
	file, err := strconv.Atoi(str[2:])
	if err != nil {
		return Square{}, fmt.Errorf("bad square %q", str)
	}
	s := Square{File: file - 1, Rank: int(str[1] - 'a'), Level: level - 1}
	if !s.Valid() {
		return Square{}, fmt.Errorf("square %q out of bounds", str)
	}
	return s, nil
}

type vec struct{ df, dr, dl int }

var (
	// axis directions
	rookDirs = []vec{
		{-1, 0, 0}, {+1, 0, 0},
		{0, -1, 0}, {0, +1, 0},
		{0, 0, -1}, {0, 0, +1},
	}
	// diagonals of the file-rank and file-level planes
	bishopDirs = []vec{
		{-1, -1, 0}, {-1, +1, 0}, {+1, -1, 0}, {+1, +1, 0},
		{-1, 0, -1}, {-1, 0, +1}, {+1, 0, -1}, {+1, 0, +1},
	}
	queenDirs = append(append([]vec{}, rookDirs...), bishopDirs...)

	// (1,2) leaps confined to the file-rank or the file-level plane
	knightLeaps = []vec{
		{-2, -1, 0}, {-2, +1, 0}, {+2, -1, 0}, {+2, +1, 0},
		{-1, -2, 0}, {-1, +2, 0}, {+1, -2, 0}, {+1, +2, 0},
		{-2, 0, -1}, {-2, 0, +1}, {+2, 0, -1}, {+2, 0, +1},
		{-1, 0, -2}, {-1, 0, +2}, {+1, 0, -2}, {+1, 0, +2},
	}

	// rank/level shifts that turn a pawn step into a capture
	pawnSideShifts = []vec{{0, -1, 0}, {0, +1, 0}, {0, 0, -1}, {0, 0, +1}}
)

// Pawn forward direction along the file axis: white -1, black +1.
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return +1
}

func pawnStartFile(c Color) int {
	if c == White {
		return Files - 2
	}
	return 1
}

func pawnLastFile(c Color) int {
	if c == White {
		return 0
	}
	return Files - 1
}

func homeFile(c Color) int {
	if c == White {
		return Files - 1
	}
	return 0
}

// backRank is white's home-file layout, indexed [level][rank]. Black is the
// file mirror of it.
var backRank = [Levels][Ranks]PieceType{
	{Rook, Knight, Knight, Rook},
	{Rook, Bishop, Queen, King},
	{Bishop, Knight, Knight, Bishop},
	{Rook, Queen, Bishop, Rook},
}

// NewInitialPosition places white's 32 pieces (ids 1..32) and then black's.
func NewInitialPosition() *Position {
	p := NewEmptyPosition(White)
	for _, c := range []Color{White, Black} {
		for l := 0; l < Levels; l++ {
			for r := 0; r < Ranks; r++ {
				p.mustPlace(backRank[l][r], c, Sq(homeFile(c), r, l))
			}
		}
		for l := 0; l < Levels; l++ {
			for r := 0; r < Ranks; r++ {
				p.mustPlace(Pawn, c, Sq(pawnStartFile(c), r, l))
			}
		}
	}
	p.Hash = p.CalculateHash()
	return p
}

func (p *Position) mustPlace(t PieceType, c Color, sq Square) {
	if _, err := p.Place(t, c, sq); err != nil {
		panic(err)
	}
}
