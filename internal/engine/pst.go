package engine

import "chess3d/internal/chess3d"

// Piece-square tables, indexed [advance][rank] where advance is the file
// distance from the owner's home file. Reading by advance mirrors the tables
// for black.
type pieceSquareTable [chess3d.Files][chess3d.Ranks]int

var pawnTable = pieceSquareTable{
	{0, 0, 0, 0},
	{0, 0, 0, 0},
	{5, 10, 10, 5},
	{10, 20, 20, 10},
	{15, 25, 25, 15},
	{25, 35, 35, 25},
	{50, 50, 50, 50},
	{0, 0, 0, 0},
}

var knightTable = pieceSquareTable{
	{-40, -20, -20, -40},
	{-20, 0, 0, -20},
	{-10, 10, 10, -10},
	{-5, 15, 15, -5},
	{-5, 15, 15, -5},
	{-10, 10, 10, -10},
	{-20, 0, 0, -20},
	{-40, -20, -20, -40},
}

var bishopTable = pieceSquareTable{
	{-10, -5, -5, -10},
	{-5, 5, 5, -5},
	{0, 10, 10, 0},
	{0, 10, 10, 0},
	{0, 10, 10, 0},
	{0, 5, 5, 0},
	{-5, 0, 0, -5},
	{-10, -5, -5, -10},
}

var rookTable = pieceSquareTable{
	{0, 5, 5, 0},
	{0, 0, 0, 0},
	{0, 0, 0, 0},
	{0, 0, 0, 0},
	{0, 0, 0, 0},
	{0, 0, 0, 0},
	{10, 15, 15, 10},
	{0, 5, 5, 0},
}

var queenTable = pieceSquareTable{
	{-10, -5, -5, -10},
	{-5, 0, 0, -5},
	{-5, 5, 5, -5},
	{-5, 5, 5, -5},
	{-5, 5, 5, -5},
	{-5, 5, 5, -5},
	{-5, 0, 0, -5},
	{-10, -5, -5, -10},
}

// kingMiddleTable keeps the king home while material is on the board. It
// fades out as the opponent's pieces come off.
var kingMiddleTable = pieceSquareTable{
	{20, 30, 30, 20},
	{10, 10, 10, 10},
	{-10, -20, -20, -10},
	{-30, -40, -40, -30},
	{-30, -40, -40, -30},
	{-30, -40, -40, -30},
	{-30, -40, -40, -30},
	{-30, -40, -40, -30},
}

// inner levels give minor pieces and the queen more targets
var levelBonus = [chess3d.Levels]int{0, 5, 5, 0}

func advance(c chess3d.Color, sq chess3d.Square) int {
	if c == chess3d.White {
		return chess3d.Files - 1 - sq.File
	}
	return sq.File
}

func (t *pieceSquareTable) read(c chess3d.Color, sq chess3d.Square) int {
	return t[advance(c, sq)][sq.Rank]
}

func pieceSquareBonus(pc chess3d.Piece) int {
	switch pc.Type {
	case chess3d.Pawn:
		return pawnTable.read(pc.Color, pc.Square)
	case chess3d.Knight:
		return knightTable.read(pc.Color, pc.Square) + levelBonus[pc.Square.Level]
	case chess3d.Bishop:
		return bishopTable.read(pc.Color, pc.Square) + levelBonus[pc.Square.Level]
	case chess3d.Rook:
		return rookTable.read(pc.Color, pc.Square)
	case chess3d.Queen:
		return queenTable.read(pc.Color, pc.Square) + levelBonus[pc.Square.Level]
	}
	return 0
}
