package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"xiangqi/internal/agent"
	"xiangqi/internal/engine"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Addr         string `json:"addr"`
	SearchDepth  int    `json:"search_depth"`
	Evaluator    string `json:"evaluator"`     // "positional" / "material"
	OpponentKind string `json:"opponent_kind"` // 服务端 AI 默认策略："search" / "random"
	RandomSeed   int64  `json:"random_seed"`   // 0 用当前时间
	MaxTurns     int    `json:"max_turns"`
	EvalCache    bool   `json:"eval_cache"`
	LogLevel     string `json:"log_level"`
	WebDir       string `json:"web_dir"` // 静态页面目录，空则不挂载
}

func Default() Config {
	return Config{
		Addr:         ":2888",
		SearchDepth:  agent.DefaultDepth,
		Evaluator:    engine.EvaluatorPositional,
		OpponentKind: string(agent.KindSearch),
		MaxTurns:     agent.DefaultMaxTurns,
		EvalCache:    true,
		LogLevel:     "info",
	}
}

// Load 读取 JSON 配置；文件里没写的字段保留默认值。path 为空直接返回默认值。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty addr", ErrInvalidConfig)
	}
	if c.SearchDepth < 1 {
		return fmt.Errorf("%w: search_depth %d < 1", ErrInvalidConfig, c.SearchDepth)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("%w: max_turns %d < 1", ErrInvalidConfig, c.MaxTurns)
	}
	if _, err := engine.EvaluatorByName(c.Evaluator); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := agent.ParseKind(c.OpponentKind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// AgentConfig 按配置生成 AI 的 agent.Config
func (c Config) AgentConfig(kind agent.Kind) (agent.Config, error) {
	ev, err := engine.EvaluatorByName(c.Evaluator)
	if err != nil {
		return agent.Config{}, err
	}
	cache := c.EvalCache
	return agent.Config{
		Kind:      kind,
		Depth:     c.SearchDepth,
		Evaluator: ev,
		EvalCache: &cache,
		Seed:      c.RandomSeed,
	}, nil
}
