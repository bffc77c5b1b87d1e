package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/segmentio/ksuid"

	"cameo/pkg/character"
	"cameo/pkg/flight"
	"cameo/pkg/schema"
)

// Characters is the profile and chat core the HTTP layer delegates to.
type Characters interface {
	GetProfile(ctx context.Context, name string, forceTool bool) (schema.Profile, error)
	Chat(ctx context.Context, in character.ChatInput) (character.ChatOutput, error)
}

// Portraits resolves a character name to an image URL.
type Portraits interface {
	Portrait(ctx context.Context, name string) (string, error)
}

type Options struct {
	AllowOrigins []string
	PortraitTTL  time.Duration
}

type Server struct {
	Echo       *echo.Echo
	Characters Characters
	Ctx        context.Context

	portraits *flight.Cache[string, string]
}

func NewServer(ctx context.Context, chars Characters, portraits Portraits, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ksuid.New().String() },
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))

	s := &Server{
		Echo:       e,
		Characters: chars,
		Ctx:        ctx,
		portraits:  newPortraitCache(portraits, opts.PortraitTTL),
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)

	s.Echo.POST("/character", s.handlePostCharacter)
	s.Echo.POST("/chat", s.handlePostChat)

	api := s.Echo.Group("/api")
	api.GET("/portrait", s.handleGetPortrait)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")
	return s.Echo.Shutdown(ctx)
}
