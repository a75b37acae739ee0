package engine

import "chess3d/internal/chess3d"

const (
	capturedValueMultiplier = 10
	pawnAttackedPenalty     = 350
	firstMoveBonus          = 1 << 30
)

// scoreMove is the ordering heuristic: most valuable victim by least
// valuable attacker, promotions boosted by a queen, and non-pawn moves onto
// squares an enemy pawn attacks pushed back.
func scoreMove(pos *chess3d.Position, m chess3d.Move) int {
	mover, ok := pos.Piece(m.PieceID)
	if !ok {
		return 0
	}
	score := 0
	if m.Captured != chess3d.NoPiece {
		if victim, ok := pos.Piece(m.Captured); ok {
			score = capturedValueMultiplier*pieceValue[victim.Type] - pieceValue[mover.Type]
		}
	}
	if mover.Type == chess3d.Pawn {
		if m.Promotion != chess3d.PieceNone {
			score += pieceValue[chess3d.Queen]
		}
	} else if pos.IsAttackedByPawn(m.To, mover.Color.Opposite()) {
		score -= pawnAttackedPenalty
	}
	return score
}

// orderMoves sorts moves by descending score with a stable insertion sort.
// first, when it matches a move, is put in front.
func orderMoves(pos *chess3d.Position, moves []chess3d.Move, first chess3d.Move) {
	for i := range moves {
		moves[i].Score = scoreMove(pos, moves[i])
		if first.PieceID != chess3d.NoPiece && moves[i].SameAs(first) {
			moves[i].Score += firstMoveBonus
		}
	}
	for i := 1; i < len(moves); i++ {
		mv := moves[i]
		j := i - 1
		for j >= 0 && moves[j].Score < mv.Score {
			moves[j+1] = moves[j]
			j--
		}
		moves[j+1] = mv
	}
}
