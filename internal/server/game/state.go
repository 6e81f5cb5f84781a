package game

import (
	"time"

	"xiangqi/internal/agent"
	"xiangqi/internal/xiangqi"
)

const (
	StatusOngoing = "ongoing"
	StatusNoMoves = "no_moves" // 轮到的一方无着可走，判负
)

// GameState 是某一时刻的快照；Position 不可变，可以放心交给调用方
type GameState struct {
	ID           string
	Pos          *xiangqi.Position
	OpponentKind agent.Kind
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (g GameState) Status() string {
	if g.Pos.Winner() != xiangqi.NoSide {
		return StatusNoMoves
	}
	return StatusOngoing
}
