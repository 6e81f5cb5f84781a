package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"xiangqi/internal/config"
	"xiangqi/internal/server/game"
)

// NewRouter 挂好 /api、/ws 和（可选）静态页面
func NewRouter(log zerolog.Logger, games *game.Manager, cfg config.Config) http.Handler {
	h := NewHandler(log, games, cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(log))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.handlePing)
		r.Post("/new_game", h.handleNewGame)
		r.Post("/state", h.handleState)
		r.Post("/play", h.handlePlay)
		r.Post("/ai_move", h.handleAiMove)
		r.Post("/analyze", h.handleAnalyze)
	})
	r.Get("/ws/match", h.handleMatchWS)

	if cfg.WebDir != "" {
		RegisterStaticRoutes(r, cfg.WebDir)
	}
	return r
}
