package xiangqi

import (
	"errors"
	"fmt"
)

// moveLog 是不可变的单链表：子局面共享父局面的历史
type moveLog struct {
	prev *moveLog
	mv   Move
	n    int
}

// Position = 棋盘 + 轮到谁走 + 走子记录。
// 创建之后不再修改，ApplyMove 总是返回新的 Position。
type Position struct {
	board      Board
	sideToMove Side
	hash       uint64
	log        *moveLog
}

func (p *Position) Board() Board     { return p.board }
func (p *Position) SideToMove() Side { return p.sideToMove }
func (p *Position) Hash() uint64     { return p.hash }

// PieceAt 越界返回 0，走法生成会大量探测棋盘外的格子
func (p *Position) PieceAt(sq int) Piece {
	if !validSquare(sq) {
		return 0
	}
	return p.board.Squares[sq]
}

func (p *Position) PieceAtRC(row, col int) Piece {
	if !OnBoard(row, col) {
		return 0
	}
	return p.board.Squares[Square(row, col)]
}

// Ply 已走的步数
func (p *Position) Ply() int {
	if p.log == nil {
		return 0
	}
	return p.log.n
}

// MoveLog 按先后顺序返回走子记录（新切片）
func (p *Position) MoveLog() []Move {
	out := make([]Move, p.Ply())
	for l := p.log; l != nil; l = l.prev {
		out[l.n-1] = l.mv
	}
	return out
}

// FindGeneral 找到 side 的帅/将；ok=false 表示已经被吃
func (p *Position) FindGeneral(side Side) (int, bool) {
	want := MakePiece(side, PieceGeneral)
	if want == 0 {
		return -1, false
	}
	for sq, pc := range p.board.Squares {
		if pc == want {
			return sq, true
		}
	}
	return -1, false
}

var ErrOutOfRangeMove = errors.New("move out of range")

// ApplyMove 走一步：起点的子搬到终点（终点有子即被吃），轮换走子方。
// 不检查合法性，只检查坐标是否在棋盘内。
func (p *Position) ApplyMove(m Move) (*Position, error) {
	if !validSquare(m.From) || !validSquare(m.To) {
		return nil, fmt.Errorf("%w: %d->%d", ErrOutOfRangeMove, m.From, m.To)
	}
	pc := p.board.Squares[m.From]
	captured := p.board.Squares[m.To]

	np := &Position{
		board:      p.board,
		sideToMove: p.sideToMove.Opponent(),
		log:        &moveLog{prev: p.log, mv: m, n: p.Ply() + 1},
	}
	np.board.Squares[m.To] = pc
	np.board.Squares[m.From] = 0

	// 增量 Zobrist：移除 from 的子、移除被吃子（若有）、加入 to 的子、切换走子方。
	h := p.hash
	h ^= pieceHashKey(pc, m.From)
	h ^= pieceHashKey(captured, m.To)
	h ^= pieceHashKey(pc, m.To)
	h ^= zobrist.black
	np.hash = h

	return np, nil
}

// mustApply 只在内部使用：走法来自生成器，一定在棋盘内
func (p *Position) mustApply(m Move) *Position {
	np, err := p.ApplyMove(m)
	if err != nil {
		panic(err)
	}
	return np
}

// GeneralExists 对应 FindGeneral 的布尔版本
func (p *Position) GeneralExists(side Side) bool {
	_, ok := p.FindGeneral(side)
	return ok
}
