package agent

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// Agent 是外部（服务端、对弈脚本）使用引擎的唯一入口
type Agent interface {
	// SelectMove ok=false 表示轮到的一方没有合法着法
	SelectMove(pos *xiangqi.Position) (xiangqi.Move, bool)
	SelectMoveWithTrace(pos *xiangqi.Position) Trace
	Kind() Kind
}

// Trace 记录一次选着的过程
type Trace struct {
	Move          xiangqi.Move   `json:"move"`
	Score         float64        `json:"score"`
	LegalMoves    []xiangqi.Move `json:"legal_moves"`
	HadLegalMoves bool           `json:"had_legal_moves"`
	Depth         int            `json:"depth,omitempty"`
	Nodes         int64          `json:"nodes,omitempty"`
}

type Kind string

const (
	KindSearch Kind = "search"
	KindRandom Kind = "random"
)

var ErrUnknownStrategy = errors.New("agent: unknown strategy")

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSearch, KindRandom:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

const DefaultDepth = 2

type Config struct {
	Kind      Kind
	Depth     int              // 仅 search
	Evaluator engine.Evaluator // 仅 search，nil 用默认
	EvalCache *bool            // 仅 search，nil 用引擎默认
	Seed      int64            // 仅 random，0 用当前时间
	Logger    *zerolog.Logger  // nil 不打日志
}

func New(cfg Config) (Agent, error) {
	switch cfg.Kind {
	case KindSearch:
		opts := []engine.Option{engine.WithEvaluator(cfg.Evaluator)}
		if cfg.Logger != nil {
			opts = append(opts, engine.WithLogger(*cfg.Logger))
		}
		if cfg.EvalCache != nil {
			opts = append(opts, engine.WithEvalCache(*cfg.EvalCache))
		}
		return NewSearchAgent(engine.NewEngine(opts...), cfg.Depth), nil
	case KindRandom:
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewRandomAgent(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Kind)
}
