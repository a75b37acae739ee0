package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"chess3d/internal/chess3d"
	"chess3d/internal/server/game"
)

const (
	maxSearchDepth = 8
	maxSearchTime  = 30 * time.Second
	maxMatePlies   = 9
)

type Config struct {
	AllowOrigins string        // cors origins, comma separated
	DefaultDepth int           // used when a request gives none
	DefaultTime  time.Duration // used when a request gives none
	Quiescence   bool
	WebDir       string // desktop client assets; empty disables static routes
	MobileDir    string
	AccessLog    bool
}

func (c Config) withDefaults() Config {
	if c.AllowOrigins == "" {
		c.AllowOrigins = "*"
	}
	if c.DefaultDepth <= 0 {
		c.DefaultDepth = 3
	}
	if c.DefaultTime <= 0 {
		c.DefaultTime = 3 * time.Second
	}
	return c
}

type Server struct {
	app   *fiber.App
	games *game.Manager
	cfg   Config
}

func New(cfg Config, games *game.Manager) *Server {
	s := &Server{
		games: games,
		cfg:   cfg.withDefaults(),
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "chess3d",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	if s.cfg.AccessLog {
		s.app.Use(logger.New())
	}
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "games": s.games.Len()})
	})

	api := s.app.Group("/api")
	api.Post("/games", s.handleNewGame)
	api.Get("/games/:id", s.handleGetGame)
	api.Post("/games/:id/moves", s.handlePlay)
	api.Post("/games/:id/ai", s.handleAi)
	api.Post("/analyze", s.handleAnalyze)

	s.app.Use("/ws", s.requireUpgrade)
	s.app.Get("/ws/games/:id", websocket.New(s.handleSocket))

	if s.cfg.WebDir != "" {
		registerStaticRoutes(s.app, s.cfg.WebDir, s.cfg.MobileDir)
	}
	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	log.Printf("listening on %s", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, game.ErrGameNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, game.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrPositionChanged):
		code = fiber.StatusConflict
	case errors.Is(err, chess3d.ErrInvalidMove), errors.Is(err, chess3d.ErrInvalidFEN):
		code = fiber.StatusBadRequest
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
