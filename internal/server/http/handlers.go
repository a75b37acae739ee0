package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"chess3d/internal/chess3d"
	"chess3d/internal/engine"
	"chess3d/internal/server/game"
)

func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "bad json")
	}
	return nil
}

// searchConfig clamps a request's budget to the server limits.
func (s *Server) searchConfig(r SearchRequest) engine.SearchConfig {
	cfg := engine.SearchConfig{
		MaxDepth:   r.MaxDepth,
		TimeLimit:  time.Duration(r.TimeMs) * time.Millisecond,
		Quiescence: s.cfg.Quiescence,
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = s.cfg.DefaultDepth
	}
	cfg.MaxDepth = min(cfg.MaxDepth, maxSearchDepth)
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = s.cfg.DefaultTime
	}
	cfg.TimeLimit = min(cfg.TimeLimit, maxSearchTime)
	if r.Quiescence != nil {
		cfg.Quiescence = *r.Quiescence
	}
	return cfg
}

func probeMate(ctx context.Context, pos *chess3d.Position, plies int) *MateDTO {
	if plies <= 0 {
		return nil
	}
	res := engine.NewEngine().FindMate(ctx, pos, min(plies, maxMatePlies))
	return mateToDTO(res)
}

func (s *Server) handleNewGame(c *fiber.Ctx) error {
	var req NewGameRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var g *game.GameState
	if req.Position == "" {
		g = s.games.NewGame()
	} else {
		var err error
		if g, err = s.games.NewGameFrom(req.Position); err != nil {
			return err
		}
	}
	return c.Status(fiber.StatusCreated).JSON(NewGameResponse{
		OwnerToken:   g.OwnerToken,
		GameResponse: snapshotToDTO(g.Snapshot()),
	})
}

func (s *Server) handleGetGame(c *fiber.Ctx) error {
	g, err := s.games.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(snapshotToDTO(g.Snapshot()))
}

func (s *Server) handlePlay(c *fiber.Ctx) error {
	var req PlayRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	snap, err := s.playNotation(c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(snapshotToDTO(snap))
}

func (s *Server) playNotation(id string, req PlayRequest) (game.Snapshot, error) {
	from, err := chess3d.ParseSquare(req.From)
	if err != nil {
		return game.Snapshot{}, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("from: %v", err))
	}
	to, err := chess3d.ParseSquare(req.To)
	if err != nil {
		return game.Snapshot{}, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("to: %v", err))
	}
	return s.games.Play(id, req.OwnerToken, from, to)
}

func (s *Server) handleAi(c *fiber.Ctx) error {
	var req AiRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := s.think(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// think backs both the AI endpoint and websocket searches. The mate probe
// runs on the position before any move is played.
func (s *Server) think(ctx context.Context, id string, req AiRequest) (AiResponse, error) {
	g, err := s.games.Get(id)
	if err != nil {
		return AiResponse{}, err
	}
	var mate *MateDTO
	if snap := g.Snapshot(); !snap.Status.State.Over() {
		mate = probeMate(ctx, snap.Position, req.MatePlies)
	}

	res, snap, err := s.games.Think(ctx, id, req.OwnerToken, s.searchConfig(req.SearchRequest), req.Play)
	if err != nil {
		return AiResponse{}, err
	}
	return AiResponse{
		Search: searchToDTO(res),
		Mate:   mate,
		Game:   snapshotToDTO(snap),
	}, nil
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	pos := chess3d.NewInitialPosition()
	if req.Position != "" {
		var err error
		if pos, err = chess3d.DecodePosition(req.Position); err != nil {
			return err
		}
	}

	status := pos.EvaluateGameStatus(pos.SideToMove)
	resp := AnalyzeResponse{
		Position:   pos.Encode(),
		ToMove:     pos.SideToMove,
		Status:     status,
		LegalMoves: movesToDTO(pos.GenerateLegalMoves()),
	}
	ctx := c.UserContext()
	if req.Search && !status.State.Over() {
		res := engine.NewEngine().Search(ctx, pos, s.searchConfig(req.SearchRequest))
		if !res.Found {
			res.BestMove, _ = engine.FallbackMove(pos)
		}
		d := searchToDTO(res)
		resp.Search = &d
	}
	if !status.State.Over() {
		resp.Mate = probeMate(ctx, pos, req.MatePlies)
	}
	return c.JSON(resp)
}
