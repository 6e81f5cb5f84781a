package engine

import (
	"github.com/rs/zerolog"
)

// Engine 只保存配置，每次搜索的状态放在 searcher 里，
// 所以同一个 Engine 可以被多个调用方同时使用。
type Engine struct {
	eval      Evaluator
	log       zerolog.Logger
	evalCache bool
	pruning   bool
}

type Option func(*Engine)

func WithEvaluator(ev Evaluator) Option {
	return func(e *Engine) {
		if ev != nil {
			e.eval = ev
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithEvalCache 开关单次搜索内的评估缓存
func WithEvalCache(on bool) Option {
	return func(e *Engine) { e.evalCache = on }
}

// WithPruning(false) 退化成不剪枝的极小极大，用于对比
func WithPruning(on bool) Option {
	return func(e *Engine) { e.pruning = on }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		eval:      PositionalEvaluator{},
		log:       zerolog.Nop(),
		evalCache: true,
		pruning:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Evaluator() Evaluator { return e.eval }
