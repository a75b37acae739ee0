package httpserver

import (
	"time"

	"chess3d/internal/chess3d"
	"chess3d/internal/engine"
	"chess3d/internal/server/game"
)

// MoveDTO is a move as the client sees it. Squares use the board notation,
// e.g. "2b4" for level 2, rank b, file 4.
type MoveDTO struct {
	PieceID   chess3d.PieceID `json:"piece_id"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Capture   bool            `json:"capture,omitempty"`
	EnPassant bool            `json:"en_passant,omitempty"`
	Castle    bool            `json:"castle,omitempty"`
	Promotion string          `json:"promotion,omitempty"`
}

func moveToDTO(m chess3d.Move) MoveDTO {
	d := MoveDTO{
		PieceID:   m.PieceID,
		From:      m.From.String(),
		To:        m.To.String(),
		Capture:   m.IsCapture(),
		EnPassant: m.EnPassant,
		Castle:    m.IsCastle(),
	}
	if m.Promotion != chess3d.PieceNone {
		d.Promotion = m.Promotion.String()
	}
	return d
}

func movesToDTO(ms []chess3d.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func movesToNotation(ms []chess3d.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

type GameResponse struct {
	GameID     string             `json:"game_id"`
	Position   string             `json:"position"`
	ToMove     chess3d.Color      `json:"to_move"`
	Status     chess3d.GameStatus `json:"status"`
	LegalMoves []MoveDTO          `json:"legal_moves"`
	History    []string           `json:"history"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func snapshotToDTO(s game.Snapshot) GameResponse {
	return GameResponse{
		GameID:     s.ID,
		Position:   s.Position.Encode(),
		ToMove:     s.ToMove,
		Status:     s.Status,
		LegalMoves: movesToDTO(s.LegalMoves),
		History:    movesToNotation(s.History),
		UpdatedAt:  s.UpdatedAt,
	}
}

type NewGameRequest struct {
	Position string `json:"position"` // optional start position
}

type NewGameResponse struct {
	OwnerToken string `json:"owner_token"`
	GameResponse
}

type PlayRequest struct {
	From       string `json:"from"`
	To         string `json:"to"`
	OwnerToken string `json:"owner_token"`
}

// SearchRequest carries the thinking budget shared by the AI, analyze and
// websocket endpoints. Zero values fall back to the server defaults.
type SearchRequest struct {
	MaxDepth   int   `json:"max_depth"`
	TimeMs     int64 `json:"time_ms"`
	Quiescence *bool `json:"quiescence,omitempty"`
	MatePlies  int   `json:"mate_plies,omitempty"`
}

type AiRequest struct {
	SearchRequest
	Play       bool   `json:"play"`
	OwnerToken string `json:"owner_token"`
}

type SearchDTO struct {
	BestMove *MoveDTO `json:"best_move"`
	Found    bool     `json:"found"`
	Fallback bool     `json:"fallback,omitempty"`
	Score    int      `json:"score"`
	Depth    int      `json:"depth"`
	Nodes    int64    `json:"nodes"`
	TimeMs   int64    `json:"time_ms"`
	PV       []string `json:"pv"`
}

func searchToDTO(r engine.SearchResult) SearchDTO {
	d := SearchDTO{
		Found:  r.Found,
		Score:  r.Score,
		Depth:  r.Depth,
		Nodes:  r.Nodes,
		TimeMs: r.TimeUsed.Milliseconds(),
		PV:     movesToNotation(r.PV),
	}
	if r.BestMove.PieceID != chess3d.NoPiece {
		mv := moveToDTO(r.BestMove)
		d.BestMove = &mv
		d.Fallback = !r.Found
	}
	return d
}

type MateDTO struct {
	Found bool     `json:"found"`
	Move  *MoveDTO `json:"move,omitempty"`
	Plies int      `json:"plies,omitempty"`
	Nodes int      `json:"nodes"`
}

func mateToDTO(r engine.MateResult) *MateDTO {
	d := &MateDTO{Found: r.Found, Plies: r.Plies, Nodes: r.Nodes}
	if r.Found {
		mv := moveToDTO(r.Move)
		d.Move = &mv
	}
	return d
}

type AiResponse struct {
	Search SearchDTO    `json:"search"`
	Mate   *MateDTO     `json:"mate,omitempty"`
	Game   GameResponse `json:"game"`
}

type AnalyzeRequest struct {
	SearchRequest
	Position string `json:"position"`
	Search   bool   `json:"search"`
}

type AnalyzeResponse struct {
	Position   string             `json:"position"`
	ToMove     chess3d.Color      `json:"to_move"`
	Status     chess3d.GameStatus `json:"status"`
	LegalMoves []MoveDTO          `json:"legal_moves"`
	Search     *SearchDTO         `json:"search,omitempty"`
	Mate       *MateDTO           `json:"mate,omitempty"`
}
