package xiangqi

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// 楚河汉界在第 4、5 行之间
	riverTopRow    = 4
	riverBottomRow = 5
)

func Square(row, col int) int { return row*Cols + col }
func RowOf(sq int) int        { return sq / Cols }
func ColOf(sq int) int        { return sq % Cols }

func OnBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func validSquare(sq int) bool { return sq >= 0 && sq < NumSquares }

// 兵的前进方向：红向上(-1)，黑向下(+1)
func soldierDir(side Side) int {
	if side == Red {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

// 是否已经过河
func crossedRiver(side Side, row int) bool {
	if side == Red {
		return row <= riverTopRow
	}
	if side == Black {
		return row >= riverBottomRow
	}
	return false
}

// 是否在本方半场（相/象不能过河）
func onOwnHalf(side Side, row int) bool {
	if side == Red {
		return row >= riverBottomRow
	}
	if side == Black {
		return row <= riverTopRow
	}
	return false
}

// 是否在九宫
func inPalace(side Side, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	if side == Black {
		return row >= 0 && row <= 2
	}
	if side == Red {
		return row >= 7 && row <= 9
	}
	return false
}

// String 按行打印棋盘，调试用
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sb.WriteRune(pieceToChar(b.Squares[Square(r, c)]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

const InitialFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"

func NewInitialPosition() *Position {
	pos, err := DecodePosition(InitialFEN)
	if err != nil {
		panic("xiangqi: bad initial FEN: " + err.Error())
	}
	return pos
}

var ErrInvalidPosition = errors.New("invalid position")

// maxPieces 是标准开局每方的子力上限
var maxPieces = [numPieceTypes]int{
	PieceSoldier:  5,
	PieceHorse:    2,
	PieceCannon:   2,
	PieceChariot:  2,
	PieceElephant: 2,
	PieceAdvisor:  2,
	PieceGeneral:  1,
}

// NewPosition 从任意棋盘构造局面，并拒绝违反不变量的输入。
// 搜索过程中不再做这些检查，所以外部输入只能从这里进来。
func NewPosition(b Board, side Side) (*Position, error) {
	if side != Red && side != Black {
		return nil, fmt.Errorf("%w: side to move %d", ErrInvalidPosition, side)
	}
	var counts [2][numPieceTypes]int
	for sq, pc := range b.Squares {
		if pc == 0 {
			continue
		}
		pt := pc.Type()
		if pt <= PieceNone || pt > PieceGeneral {
			return nil, fmt.Errorf("%w: bad piece code %d at %d", ErrInvalidPosition, pc, sq)
		}
		idx := sideIndex(pc.Side())
		counts[idx][pt]++
		if counts[idx][pt] > maxPieces[pt] {
			return nil, fmt.Errorf("%w: too many %s %ss", ErrInvalidPosition, pc.Side(), pt)
		}
		if pt == PieceGeneral && !inPalace(pc.Side(), RowOf(sq), ColOf(sq)) {
			return nil, fmt.Errorf("%w: %s general outside palace at %s", ErrInvalidPosition, pc.Side(), squareName(sq))
		}
	}
	pos := &Position{
		board:      b,
		sideToMove: side,
	}
	pos.hash = pos.CalculateHash()
	return pos, nil
}

func sideIndex(s Side) int {
	if s == Black {
		return 1
	}
	return 0
}
