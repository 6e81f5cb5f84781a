package xiangqi

// 方向顺序是走法生成顺序的一部分，搜索的同分取舍依赖它
var (
	orthoDirs = [4][2]int{{0, +1}, {0, -1}, {+1, 0}, {-1, 0}}
	diagDirs  = [4][2]int{{+1, +1}, {+1, -1}, {-1, +1}, {-1, -1}}
	elephDirs = [4][2]int{{-2, -2}, {-2, +2}, {+2, -2}, {+2, +2}}
)

// 目标格为空或为敌子时可以落子
func canLand(p *Position, to int, side Side) bool {
	dst := p.board.Squares[to]
	return dst == 0 || dst.Side() != side
}

// 车：横竖随便走，遇子即停
func genChariotMoves(p *Position, from int, moves *[]Move) {
	row, col := RowOf(from), ColOf(from)
	side := p.board.Squares[from].Side()
	for _, d := range orthoDirs {
		r, c := row+d[0], col+d[1]
		for OnBoard(r, c) {
			to := Square(r, c)
			pc := p.board.Squares[to]
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：车走法 + 隔一子吃
func genCannonMoves(p *Position, from int, moves *[]Move) {
	row, col := RowOf(from), ColOf(from)
	side := p.board.Squares[from].Side()
	for _, d := range orthoDirs {
		r, c := row+d[0], col+d[1]

		// 走子阶段：直到第一个棋子（炮架）
		for OnBoard(r, c) {
			to := Square(r, c)
			if p.board.Squares[to] == 0 {
				*moves = append(*moves, Move{From: from, To: to})
				r += d[0]
				c += d[1]
				continue
			}
			r += d[0]
			c += d[1]
			break
		}

		// 吃子阶段：越过炮架，遇到的第一个子若是敌子可吃
		for OnBoard(r, c) {
			to := Square(r, c)
			pc := p.board.Squares[to]
			if pc != 0 {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 相：田字 + 塞象眼 + 不过河
func genElephantMoves(p *Position, from int, moves *[]Move) {
	row, col := RowOf(from), ColOf(from)
	side := p.board.Squares[from].Side()
	for _, d := range elephDirs {
		r := row + d[0]
		c := col + d[1]
		if !OnBoard(r, c) || !onOwnHalf(side, r) {
			continue
		}
		if p.board.Squares[Square(row+d[0]/2, col+d[1]/2)] != 0 {
			continue
		}
		to := Square(r, c)
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

// 士：九宫内斜走一格
func genAdvisorMoves(p *Position, from int, moves *[]Move) {
	genPalaceStep(p, from, diagDirs, moves)
}

// 将：九宫内上下左右一格（对脸由合法性过滤处理）
func genGeneralMoves(p *Position, from int, moves *[]Move) {
	genPalaceStep(p, from, orthoDirs, moves)
}

func genPalaceStep(p *Position, from int, dirs [4][2]int, moves *[]Move) {
	row, col := RowOf(from), ColOf(from)
	side := p.board.Squares[from].Side()
	for _, d := range dirs {
		r := row + d[0]
		c := col + d[1]
		if !OnBoard(r, c) || !inPalace(side, r, c) {
			continue
		}
		to := Square(r, c)
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
