package agent

import (
	"context"
	"fmt"

	"xiangqi/internal/xiangqi"
)

// DefaultMaxTurns 超过这个步数的对局记为和棋
const DefaultMaxTurns = 200

const (
	ReasonNoMoves  = "no_moves"
	ReasonMaxTurns = "max_turns"
)

type MatchConfig struct {
	Red, Black Agent
	MaxTurns   int               // <=0 用 DefaultMaxTurns
	Start      *xiangqi.Position // nil 从开局开始

	// OnMove 每走一步回调一次，ply 从 1 开始
	OnMove func(ply int, side xiangqi.Side, tr Trace, next *xiangqi.Position)
}

type MatchResult struct {
	Winner xiangqi.Side      `json:"winner"` // NoSide 为和棋
	Plies  int               `json:"plies"`
	Moves  []xiangqi.Move    `json:"moves"`
	Reason string            `json:"reason"`
	Final  *xiangqi.Position `json:"-"`
}

// Match 让两个 Agent 对下，直到一方无着可走或步数用完。
// ctx 只在两步之间检查。
func Match(ctx context.Context, cfg MatchConfig) (MatchResult, error) {
	pos := cfg.Start
	if pos == nil {
		pos = xiangqi.NewInitialPosition()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	var res MatchResult
	for res.Plies < maxTurns {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		side := pos.SideToMove()
		a := cfg.Red
		if side == xiangqi.Black {
			a = cfg.Black
		}
		tr := a.SelectMoveWithTrace(pos)
		if !tr.HadLegalMoves {
			break
		}
		next, err := pos.ApplyMove(tr.Move)
		if err != nil {
			return res, fmt.Errorf("ply %d (%v %v): %w", res.Plies+1, side, tr.Move, err)
		}
		pos = next
		res.Plies++
		res.Moves = append(res.Moves, tr.Move)
		if cfg.OnMove != nil {
			cfg.OnMove(res.Plies, side, tr, pos)
		}
	}

	res.Final = pos
	if w := pos.Winner(); w != xiangqi.NoSide {
		res.Winner = w
		res.Reason = ReasonNoMoves
	} else {
		res.Reason = ReasonMaxTurns
	}
	return res, nil
}
