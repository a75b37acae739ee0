package engine

import "chess3d/internal/chess3d"

var pieceValue = [...]int{
	chess3d.PieceNone: 0,
	chess3d.Pawn:      100,
	chess3d.Knight:    300,
	chess3d.Bishop:    320,
	chess3d.Rook:      500,
	chess3d.Queen:     900,
	chess3d.King:      0,
}

// endgameMaterialStart is the non-pawn material at which the endgame ramp
// begins: two rooks, a bishop and a knight.
var endgameMaterialStart = 2*pieceValue[chess3d.Rook] + pieceValue[chess3d.Bishop] + pieceValue[chess3d.Knight]

// endgamePhaseWeight is 0 with at least endgameMaterialStart of non-pawn
// material left and grows linearly to 1 as it disappears.
func endgamePhaseWeight(nonPawnMaterial int) float64 {
	return 1 - min(1, float64(nonPawnMaterial)/float64(endgameMaterialStart))
}

type sideEval struct {
	material int
	nonPawn  int
	squares  int
	kings    []chess3d.Square
}

// Evaluate scores pos from white's point of view: material plus
// piece-square bonuses, with each king's table value faded by how far the
// opponent has traded into the endgame.
func Evaluate(pos *chess3d.Position) int {
	var sides [2]sideEval
	pos.EachPiece(func(pc chess3d.Piece) {
		se := &sides[pc.Color]
		v := pieceValue[pc.Type]
		se.material += v
		if pc.Type != chess3d.Pawn {
			se.nonPawn += v
		}
		if pc.Type == chess3d.King {
			se.kings = append(se.kings, pc.Square)
			return
		}
		se.squares += pieceSquareBonus(pc)
	})

	var total [2]int
	for c := chess3d.White; c <= chess3d.Black; c++ {
		se := sides[c]
		oppWeight := endgamePhaseWeight(sides[c.Opposite()].nonPawn)
		v := se.material + se.squares
		for _, k := range se.kings {
			v += int(float64(kingMiddleTable.read(c, k)) * (1 - oppWeight))
		}
		total[c] = v
	}
	return total[chess3d.White] - total[chess3d.Black]
}

// relativeEval is Evaluate from the side to move's point of view.
func relativeEval(pos *chess3d.Position) int {
	if pos.SideToMove == chess3d.Black {
		return -Evaluate(pos)
	}
	return Evaluate(pos)
}
