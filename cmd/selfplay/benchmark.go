package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"xiangqi/internal/agent"
	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// benchPositions 用随机对局生成中局样本，第 i 个走 8+6i 步
func benchPositions(seed int64, n int) ([]*xiangqi.Position, error) {
	out := []*xiangqi.Position{xiangqi.NewInitialPosition()}
	for i := 1; i < n; i++ {
		res, err := agent.Match(context.Background(), agent.MatchConfig{
			Red:      agent.NewRandomAgent(seed + int64(2*i)),
			Black:    agent.NewRandomAgent(seed + int64(2*i+1)),
			MaxTurns: 8 + 6*i,
		})
		if err != nil {
			return nil, err
		}
		if res.Final.IsGameOver() {
			continue
		}
		out = append(out, res.Final)
	}
	return out, nil
}

// runBenchmark 同一局面分别用剪枝和不剪枝搜索，结果必须一致
func runBenchmark(log zerolog.Logger, ev engine.Evaluator, depth int, seed int64, n int) error {
	positions, err := benchPositions(seed, n)
	if err != nil {
		return err
	}
	pruned := engine.NewEngine(engine.WithEvaluator(ev))
	full := engine.NewEngine(engine.WithEvaluator(ev), engine.WithPruning(false))

	var nodesPruned, nodesFull int64
	for i, pos := range positions {
		a := pruned.Search(pos, engine.SearchConfig{MaxDepth: depth})
		b := full.Search(pos, engine.SearchConfig{MaxDepth: depth})
		nodesPruned += a.Nodes
		nodesFull += b.Nodes

		log.Info().
			Int("position", i).
			Str("fen", pos.Encode()).
			Str("move", a.Move.String()).
			Float64("score", a.Score).
			Int64("nodes_ab", a.Nodes).
			Int64("nodes_minimax", b.Nodes).
			Dur("time_ab", a.Elapsed).
			Dur("time_minimax", b.Elapsed).
			Msg("bench")

		if a.Move != b.Move || a.Score != b.Score {
			return fmt.Errorf("position %d (%s): alpha-beta %v/%v, minimax %v/%v",
				i, pos.Encode(), a.Move, a.Score, b.Move, b.Score)
		}
	}

	ratio := 0.0
	if nodesFull > 0 {
		ratio = float64(nodesPruned) / float64(nodesFull)
	}
	log.Info().
		Int("positions", len(positions)).
		Int("depth", depth).
		Int64("nodes_ab", nodesPruned).
		Int64("nodes_minimax", nodesFull).
		Float64("ratio", ratio).
		Msg("benchmark finished")
	return nil
}
