package engine

import (
	"math"
	"time"

	"xiangqi/internal/xiangqi"
)

// 搜索配置
type SearchConfig struct {
	MaxDepth int // 最大搜索深度（ply），小于 1 按 1 处理
}

// 搜索结果
type SearchResult struct {
	Move       xiangqi.Move   // 最佳着法，HasMove=false 时无意义
	HasMove    bool           // false 表示轮到的一方无子可动（判负）
	Score      float64        // 搜索方视角的分数
	LegalMoves []xiangqi.Move // 根节点的合法着法
	Depth      int            // 实际搜索深度
	Nodes      int64          // 节点数
	EvalHits   int64          // 评估缓存命中数
	Elapsed    time.Duration  // 花费时间
}

// 单次搜索的状态
type searcher struct {
	eval    Evaluator
	player  xiangqi.Side // 搜索方，叶子评估都站在它的角度
	pruning bool
	cache   *evalCache
	nodes   int64
}

func (e *Engine) newSearcher(player xiangqi.Side) *searcher {
	s := &searcher{
		eval:    e.eval,
		player:  player,
		pruning: e.pruning,
	}
	if e.evalCache {
		s.cache = newEvalCache()
	}
	return s
}

func (s *searcher) evaluate(pos *xiangqi.Position) float64 {
	if s.cache != nil {
		if v, ok := s.cache.get(pos); ok {
			return v
		}
	}
	v := s.eval.Score(pos, s.player)
	if s.cache != nil {
		s.cache.store(pos, v)
	}
	return v
}

// BestMove 返回最佳着法；ok=false 表示没有合法着法
func (e *Engine) BestMove(pos *xiangqi.Position, maxDepth int) (xiangqi.Move, bool) {
	res := e.Search(pos, SearchConfig{MaxDepth: maxDepth})
	return res.Move, res.HasMove
}

// Search 根节点：至少展开一层，不对根节点本身做静态评估。
// 同分时保留生成顺序里的第一个着法。
func (e *Engine) Search(pos *xiangqi.Position, cfg SearchConfig) SearchResult {
	depth := cfg.MaxDepth
	if depth < 1 {
		depth = 1
	}
	start := time.Now()
	s := e.newSearcher(pos.SideToMove())

	moves := pos.LegalMoves()
	res := SearchResult{
		LegalMoves: moves,
		Depth:      depth,
	}

	if len(moves) == 0 {
		res.Score = s.evaluate(pos)
	} else {
		alpha, beta := math.Inf(-1), math.Inf(1)
		for _, mv := range moves {
			child, err := pos.ApplyMove(mv)
			if err != nil {
				continue
			}
			score := s.alphaBeta(child, depth-1, alpha, beta)
			if !res.HasMove || score > res.Score {
				res.Move = mv
				res.Score = score
				res.HasMove = true
			}
			if s.pruning && res.Score > alpha {
				alpha = res.Score
			}
		}
	}

	res.Nodes = s.nodes
	if s.cache != nil {
		res.EvalHits = s.cache.hits
	}
	res.Elapsed = time.Since(start)

	e.log.Debug().
		Str("side", pos.SideToMove().String()).
		Int("depth", depth).
		Bool("has_move", res.HasMove).
		Str("move", res.Move.String()).
		Float64("score", res.Score).
		Int64("nodes", res.Nodes).
		Int64("eval_hits", res.EvalHits).
		Dur("elapsed", res.Elapsed).
		Msg("search finished")

	return res
}

// 内部递归：fail-soft alpha-beta，轮到搜索方时取极大，否则取极小
func (s *searcher) alphaBeta(pos *xiangqi.Position, depth int, alpha, beta float64) float64 {
	s.nodes++

	if depth <= 0 {
		return s.evaluate(pos)
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return s.evaluate(pos)
	}

	if pos.SideToMove() == s.player {
		best := math.Inf(-1)
		for _, mv := range moves {
			child, err := pos.ApplyMove(mv)
			if err != nil {
				continue
			}
			score := s.alphaBeta(child, depth-1, alpha, beta)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if s.pruning && beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, mv := range moves {
		child, err := pos.ApplyMove(mv)
		if err != nil {
			continue
		}
		score := s.alphaBeta(child, depth-1, alpha, beta)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if s.pruning && beta <= alpha {
			break
		}
	}
	return best
}
