package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"xiangqi/internal/agent"
	"xiangqi/internal/engine"
	"xiangqi/internal/logx"
	"xiangqi/internal/xiangqi"
)

func main() {
	var (
		totalGames = flag.Int("games", 10, "number of games to play")
		depth      = flag.Int("depth", 2, "alpha-beta search depth")
		evalName   = flag.String("eval", engine.EvaluatorPositional, "evaluator: positional / material")
		redKind    = flag.String("red", string(agent.KindSearch), "red strategy: search / random")
		blackKind  = flag.String("black", string(agent.KindRandom), "black strategy: search / random")
		seed       = flag.Int64("seed", 1, "random seed (0 = time based)")
		maxTurns   = flag.Int("max-turns", agent.DefaultMaxTurns, "plies before a game is a draw")
		bench      = flag.Bool("bench", false, "compare pruned vs unpruned search instead of playing")
		benchN     = flag.Int("bench-positions", 6, "positions to compare with -bench")
		logLevel   = flag.String("log-level", "info", "debug prints every move")
	)
	flag.Parse()

	logger, err := logx.WithLevel(logx.NewLogger(), *logLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("log level")
	}
	ev, err := engine.EvaluatorByName(*evalName)
	if err != nil {
		logger.Fatal().Err(err).Msg("evaluator")
	}

	if *bench {
		if err := runBenchmark(logger, ev, *depth, *seed, *benchN); err != nil {
			logger.Error().Err(err).Msg("benchmark failed")
			os.Exit(1)
		}
		return
	}

	newAgent := func(kind string, seed int64) agent.Agent {
		k, err := agent.ParseKind(kind)
		if err != nil {
			logger.Fatal().Err(err).Msg("strategy")
		}
		a, err := agent.New(agent.Config{Kind: k, Depth: *depth, Evaluator: ev, Seed: seed})
		if err != nil {
			logger.Fatal().Err(err).Msg("agent")
		}
		return a
	}
	blackSeed := *seed
	if blackSeed != 0 {
		blackSeed++
	}
	red := newAgent(*redKind, *seed)
	black := newAgent(*blackKind, blackSeed)

	var redWins, blackWins, draws, totalPlies int
	start := time.Now()
	for g := 1; g <= *totalGames; g++ {
		gameLog := logger.With().Int("game", g).Logger()
		res, err := agent.Match(context.Background(), agent.MatchConfig{
			Red:      red,
			Black:    black,
			MaxTurns: *maxTurns,
			OnMove: func(ply int, side xiangqi.Side, tr agent.Trace, _ *xiangqi.Position) {
				gameLog.Debug().
					Int("ply", ply).
					Str("side", side.String()).
					Str("move", tr.Move.String()).
					Float64("score", tr.Score).
					Int64("nodes", tr.Nodes).
					Msg("move")
			},
		})
		if err != nil {
			gameLog.Error().Err(err).Msg("game aborted")
			continue
		}

		switch res.Winner {
		case xiangqi.Red:
			redWins++
		case xiangqi.Black:
			blackWins++
		default:
			draws++
		}
		totalPlies += res.Plies
		gameLog.Info().
			Str("winner", res.Winner.String()).
			Int("plies", res.Plies).
			Str("reason", res.Reason).
			Msg("game finished")
	}

	summary(logger, *totalGames, redWins, blackWins, draws, totalPlies, time.Since(start), *redKind, *blackKind)
}

func summary(log zerolog.Logger, games, red, black, draws, plies int, elapsed time.Duration, redKind, blackKind string) {
	if games <= 0 {
		return
	}
	pct := func(n int) float64 { return float64(n) * 100 / float64(games) }
	log.Info().
		Int("games", games).
		Str("red", redKind).
		Str("black", blackKind).
		Int("red_wins", red).
		Float64("red_pct", pct(red)).
		Int("black_wins", black).
		Float64("black_pct", pct(black)).
		Int("draws", draws).
		Float64("avg_plies", float64(plies)/float64(games)).
		Dur("elapsed", elapsed).
		Msg("selfplay finished")
}
