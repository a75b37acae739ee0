package chess3d

import "sync"

const zobristPieceTypes = int(King) + 1

var (
	zobristOnce sync.Once

	zobristPieces    [2][zobristPieceTypes][NumSquares]uint64
	zobristEnPassant [NumSquares]uint64
	zobristSide      uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		// splitmix64; fixed seed keeps hashes stable across runs
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for c := 0; c < 2; c++ {
			for pt := 1; pt < zobristPieceTypes; pt++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[c][pt][sq] = next()
				}
			}
		}
		for sq := 0; sq < NumSquares; sq++ {
			zobristEnPassant[sq] = next()
		}
		zobristSide = next()
	})
}

func pieceHashKey(c Color, t PieceType, sq Square) uint64 {
	initZobrist()
	if c != White && c != Black {
		return 0
	}
	if t <= PieceNone || int(t) >= zobristPieceTypes || !sq.Valid() {
		return 0
	}
	return zobristPieces[c][t][sq.Index()]
}

func lastMoveHashKey(lm LastMove) uint64 {
	initZobrist()
	if !lm.DoubleStep || !lm.To.Valid() {
		return 0
	}
	return zobristEnPassant[lm.To.Index()]
}

// CalculateHash recomputes the Zobrist hash from scratch.
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for _, pc := range p.pieces {
		h ^= pieceHashKey(pc.Color, pc.Type, pc.Square)
	}
	h ^= lastMoveHashKey(p.LastMove)
	if p.SideToMove == Black {
		h ^= zobristSide
	}
	return h
}

// EnsureHash fills in Position.Hash if it is unset and returns it.
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
