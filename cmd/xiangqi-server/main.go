package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"xiangqi/internal/config"
	"xiangqi/internal/logx"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
)

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file (empty = defaults)")
		addr       = flag.String("addr", "", "listen address, overrides config")
		depth      = flag.Int("depth", 0, "search depth for the AI, overrides config")
		eval       = flag.String("eval", "", "evaluator: positional / material, overrides config")
		opponent   = flag.String("opponent", "", "default AI strategy: search / random, overrides config")
		webDir     = flag.String("web", "", "directory with index.html / js, overrides config")
		logLevel   = flag.String("log-level", "", "debug / info / warn, overrides config")
	)
	flag.Parse()

	logger := logx.NewLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *configPath).Msg("load config")
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *depth > 0 {
		cfg.SearchDepth = *depth
	}
	if *eval != "" {
		cfg.Evaluator = *eval
	}
	if *opponent != "" {
		cfg.OpponentKind = *opponent
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if logger, err = logx.WithLevel(logger, cfg.LogLevel); err != nil {
		logger.Fatal().Err(err).Msg("invalid log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	games := game.NewManager(logger.With().Str("component", "games").Logger())
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      httpserver.NewRouter(logger, games, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Int("depth", cfg.SearchDepth).
			Str("eval", cfg.Evaluator).
			Str("opponent", cfg.OpponentKind).
			Msg("xiangqi server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Int("games", games.Len()).Msg("bye")
}
