package engine

import (
	"errors"
	"fmt"

	"xiangqi/internal/xiangqi"
)

// Evaluator 静态评估：分数越大对 perspective 越有利
type Evaluator interface {
	Score(pos *xiangqi.Position, perspective xiangqi.Side) float64
}

const (
	EvaluatorPositional = "positional"
	EvaluatorMaterial   = "material"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

func EvaluatorByName(name string) (Evaluator, error) {
	switch name {
	case "", EvaluatorPositional:
		return PositionalEvaluator{}, nil
	case EvaluatorMaterial:
		return MaterialEvaluator{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
}

// ======= 子力 + 位置分 + 将的安全 =======

var pieceValue = [8]float64{
	xiangqi.PieceSoldier:  30,
	xiangqi.PieceHorse:    270,
	xiangqi.PieceCannon:   285,
	xiangqi.PieceChariot:  600,
	xiangqi.PieceElephant: 120,
	xiangqi.PieceAdvisor:  120,
	xiangqi.PieceGeneral:  6000,
}

// 一些权重，可之后慢慢调
const (
	defensePenalty = 40  // 士或相不满两个
	checkPenalty   = 100 // 将正被攻击
)

// PositionalEvaluator 是默认评估：子力 + 位置表 + 缺士相 / 被将军扣分
type PositionalEvaluator struct{}

func (PositionalEvaluator) Score(pos *xiangqi.Position, perspective xiangqi.Side) float64 {
	var (
		total     [2]float64
		advisors  [2]int
		elephants [2]int
	)

	board := pos.Board()
	for sq, pc := range board.Squares {
		if pc == 0 {
			continue
		}
		side := pc.Side()
		pt := pc.Type()
		i := sideIdx(side)
		total[i] += pieceValue[pt] + float64(pieceSquare[pt][tableSquare(side, sq)])

		switch pt {
		case xiangqi.PieceAdvisor:
			advisors[i]++
		case xiangqi.PieceElephant:
			elephants[i]++
		}
	}

	for _, side := range [2]xiangqi.Side{xiangqi.Red, xiangqi.Black} {
		i := sideIdx(side)
		if advisors[i] < 2 || elephants[i] < 2 {
			total[i] -= defensePenalty
		}
		if pos.IsInCheck(side) {
			total[i] -= checkPenalty
		}
	}

	own := sideIdx(perspective)
	return total[own] - total[1-own]
}

// ======= 最早版本：只算子力 =======

var materialOnlyValue = [8]float64{
	xiangqi.PieceGeneral:  1000,
	xiangqi.PieceChariot:  9,
	xiangqi.PieceCannon:   4.5,
	xiangqi.PieceHorse:    4,
	xiangqi.PieceAdvisor:  2,
	xiangqi.PieceElephant: 2,
	xiangqi.PieceSoldier:  1,
}

// MaterialEvaluator 只数子力，保留用于对比测试
type MaterialEvaluator struct{}

func (MaterialEvaluator) Score(pos *xiangqi.Position, perspective xiangqi.Side) float64 {
	score := 0.0
	board := pos.Board()
	for _, pc := range board.Squares {
		if pc == 0 {
			continue
		}
		v := materialOnlyValue[pc.Type()]
		if pc.Side() == perspective {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

func sideIdx(s xiangqi.Side) int {
	if s == xiangqi.Black {
		return 1
	}
	return 0
}
