package engine

import "xiangqi/internal/xiangqi"

// 位置分表，按红方视角书写：第 0 行是黑方底线，第 9 行是红方底线。
// 黑方查表时上下翻转。表左右对称，所以不需要左右翻转。
var pieceSquare = [8][xiangqi.NumSquares]int16{
	xiangqi.PieceSoldier: {
		0, 3, 6, 9, 12, 9, 6, 3, 0,
		18, 26, 36, 44, 50, 44, 36, 26, 18,
		14, 22, 30, 38, 42, 38, 30, 22, 14,
		10, 18, 24, 28, 30, 28, 24, 18, 10,
		6, 12, 18, 18, 20, 18, 18, 12, 6,
		2, 0, 8, 0, 8, 0, 8, 0, 2,
		0, 0, -2, 0, 4, 0, -2, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
	xiangqi.PieceHorse: {
		4, 8, 16, 12, 4, 12, 16, 8, 4,
		4, 10, 28, 16, 8, 16, 28, 10, 4,
		12, 14, 16, 20, 18, 20, 16, 14, 12,
		8, 24, 18, 24, 20, 24, 18, 24, 8,
		6, 16, 14, 18, 16, 18, 14, 16, 6,
		4, 12, 16, 14, 12, 14, 16, 12, 4,
		2, 6, 8, 6, 10, 6, 8, 6, 2,
		4, 2, 8, 8, 4, 8, 8, 2, 4,
		0, 2, 4, 4, -2, 4, 4, 2, 0,
		0, -4, 0, 0, 0, 0, 0, -4, 0,
	},
	xiangqi.PieceCannon: {
		6, 4, 0, -10, -12, -10, 0, 4, 6,
		2, 2, 0, -4, -14, -4, 0, 2, 2,
		2, 2, 0, -10, -8, -10, 0, 2, 2,
		0, 0, -2, 4, 10, 4, -2, 0, 0,
		0, 0, 0, 2, 8, 2, 0, 0, 0,
		-2, 0, 4, 2, 6, 2, 4, 0, -2,
		0, 0, 0, 2, 4, 2, 0, 0, 0,
		4, 0, 8, 6, 10, 6, 8, 0, 4,
		0, 2, 4, 6, 6, 6, 4, 2, 0,
		0, 0, 2, 6, 6, 6, 2, 0, 0,
	},
	xiangqi.PieceChariot: {
		14, 14, 12, 18, 16, 18, 12, 14, 14,
		16, 20, 18, 24, 26, 24, 18, 20, 16,
		12, 12, 12, 18, 18, 18, 12, 12, 12,
		12, 18, 16, 22, 22, 22, 16, 18, 12,
		12, 14, 12, 18, 18, 18, 12, 14, 12,
		12, 16, 14, 20, 20, 20, 14, 16, 12,
		6, 10, 8, 14, 14, 14, 8, 10, 6,
		4, 8, 6, 14, 12, 14, 6, 8, 4,
		8, 4, 8, 16, 8, 16, 8, 4, 8,
		-2, 10, 6, 14, 12, 14, 6, 10, -2,
	},
	xiangqi.PieceElephant: {
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, -2, 0, 0, 0, -2, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		-2, 0, 0, 0, 3, 0, 0, 0, -2,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
	xiangqi.PieceAdvisor: {
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 3, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
	xiangqi.PieceGeneral: {
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, -9, -9, -9, 0, 0, 0,
		0, 0, 0, -8, -8, -8, 0, 0, 0,
		0, 0, 0, 1, 5, 1, 0, 0, 0,
	},
}

// tableSquare 把棋盘格子换成查表用的下标（黑方上下翻转）
func tableSquare(side xiangqi.Side, sq int) int {
	if side == xiangqi.Black {
		return xiangqi.Square(xiangqi.Rows-1-xiangqi.RowOf(sq), xiangqi.ColOf(sq))
	}
	return sq
}
