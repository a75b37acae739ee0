package chess3d

// Knight leaps stay inside one plane: the file-rank plane (level fixed) or
// the file-level plane (rank fixed). Nothing blocks a leap.
func genKnightMoves(p *Position, pc *Piece, moves *[]Move) {
	genStepMoves(p, pc, knightLeaps, moves)
}
