package engine

import (
	"context"
	"time"

	"chess3d/internal/chess3d"
)

const (
	scoreInf = 1_000_000_000

	// mateScore is the loss constant; a mate n plies away scores mateScore-n.
	mateScore = 999_999
	mateBound = mateScore - 1000

	defaultMaxDepth    = 3
	maxQuiescencePlies = 8
)

type SearchConfig struct {
	MaxDepth   int           // plies; <= 0 means defaultMaxDepth
	TimeLimit  time.Duration // 0 means no limit
	Quiescence bool          // extend leaves with captures only
}

type SearchResult struct {
	BestMove chess3d.Move
	Found    bool // false when no depth produced a move
	Score    int  // side to move's point of view
	Depth    int  // deepest completed iteration
	Nodes    int64
	TimeUsed time.Duration
	PV       []chess3d.Move
}

// searcher is the per-call search state. It is never shared between calls.
type searcher struct {
	e        *Engine
	ctx      context.Context
	deadline time.Time
	quiesce  bool
	nodes    int64
	stopped  bool
}

func (s *searcher) expired() bool {
	if s.stopped {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.stopped = true
		return true
	}
	select {
	case <-s.ctx.Done():
		s.stopped = true
	default:
	}
	return s.stopped
}

// Search runs iterative deepening negamax from depth 1 to cfg.MaxDepth.
// Only completed iterations are adopted; a cut-off iteration is used only
// when nothing shallower finished. pos is not modified.
func (e *Engine) Search(ctx context.Context, pos *chess3d.Position, cfg SearchConfig) SearchResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	start := time.Now()
	s := &searcher{e: e, ctx: ctx, quiesce: cfg.Quiescence}
	if cfg.TimeLimit > 0 {
		s.deadline = start.Add(cfg.TimeLimit)
	}

	work := pos.Clone()
	work.EnsureHash()

	var res SearchResult
	if len(work.GenerateLegalMoves()) == 0 {
		res.Score = s.terminalScore(work, 0)
		res.TimeUsed = time.Since(start)
		return res
	}

	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		if s.expired() {
			break
		}
		score, move, complete := s.root(work, depth, res.BestMove)
		if !complete {
			if !res.Found && move.PieceID != chess3d.NoPiece {
				res.BestMove, res.Score, res.Found = move, score, true
			}
			break
		}
		res.BestMove, res.Score, res.Depth, res.Found = move, score, depth, true
		if score >= mateBound || score <= -mateBound {
			break
		}
	}

	res.Nodes = s.nodes
	res.TimeUsed = time.Since(start)
	if res.Found {
		res.PV = e.principalVariation(work, res.BestMove, max(res.Depth, 1))
	}
	return res
}

// root searches every move at full width. complete is false when the
// iteration was cut off; the returned move is then the best among the moves
// that were fully searched, if any.
func (s *searcher) root(pos *chess3d.Position, depth int, prevBest chess3d.Move) (int, chess3d.Move, bool) {
	s.nodes++
	moves := pos.GenerateLegalMoves()
	first := prevBest
	if first.PieceID == chess3d.NoPiece {
		first = s.e.ttMove(pos.Hash)
	}
	orderMoves(pos, moves, first)

	alpha, beta := -scoreInf, scoreInf
	bestScore := -scoreInf
	var bestMove chess3d.Move
	for _, mv := range moves {
		u, err := pos.MakeMove(mv)
		if err != nil {
			continue
		}
		score := -s.negamax(pos, depth-1, 1, -beta, -alpha)
		pos.UndoMove(u)
		if s.stopped {
			return bestScore, bestMove, false
		}
		if score > bestScore {
			bestScore, bestMove = score, mv
		}
		if score > alpha {
			alpha = score
		}
	}
	s.e.storeTT(pos.Hash, depth, bestScore, bestMove)
	return bestScore, bestMove, true
}

func (s *searcher) negamax(pos *chess3d.Position, depth, ply int, alpha, beta int) int {
	s.nodes++

	// a shorter mate already found makes this subtree irrelevant
	alpha = max(alpha, -mateScore+ply)
	beta = min(beta, mateScore-ply)
	if alpha >= beta {
		return alpha
	}
	if s.expired() {
		return 0
	}

	if depth <= 0 {
		if s.quiesce {
			return s.quiescence(pos, 0, alpha, beta)
		}
		return relativeEval(pos)
	}

	moves := pos.GenerateLegalMoves()
	if len(moves) == 0 {
		return s.terminalScore(pos, ply)
	}
	if pos.LosesByDoubleCheck(moves) {
		return -mateScore + ply
	}
	orderMoves(pos, moves, s.e.ttMove(pos.Hash))

	best := -scoreInf
	var bestMove chess3d.Move
	for _, mv := range moves {
		u, err := pos.MakeMove(mv)
		if err != nil {
			continue
		}
		score := -s.negamax(pos, depth-1, ply+1, -beta, -alpha)
		pos.UndoMove(u)
		if s.stopped {
			return 0
		}
		if score > best {
			best, bestMove = score, mv
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	s.e.storeTT(pos.Hash, depth, best, bestMove)
	return best
}

// quiescence resolves pending captures so leaves are not scored mid-exchange.
func (s *searcher) quiescence(pos *chess3d.Position, qply int, alpha, beta int) int {
	s.nodes++
	if s.expired() {
		return 0
	}

	standPat := relativeEval(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qply >= maxQuiescencePlies {
		return alpha
	}

	captures := pos.GenerateLegalCaptures()
	orderMoves(pos, captures, chess3d.Move{})
	for _, mv := range captures {
		u, err := pos.MakeMove(mv)
		if err != nil {
			continue
		}
		score := -s.quiescence(pos, qply+1, -beta, -alpha)
		pos.UndoMove(u)
		if s.stopped {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// terminalScore scores a node with no legal moves: a loss when in check,
// otherwise the static evaluation.
func (s *searcher) terminalScore(pos *chess3d.Position, ply int) int {
	if pos.IsKingInCheck(pos.SideToMove) {
		return -mateScore + ply
	}
	return relativeEval(pos)
}
