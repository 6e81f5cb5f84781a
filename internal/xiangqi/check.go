package xiangqi

// IsAttacked 判断 sq 这个格子是否被 bySide 这一方攻击。
// 采用走法模拟：只要对方任何一个棋子的伪合法走法能到这个位置，就说明该位置被攻击。
func (p *Position) IsAttacked(sq int, bySide Side) bool {
	var buf [24]Move
	for s, pc := range p.board.Squares {
		if pc == 0 || pc.Side() != bySide {
			continue
		}
		moves := buf[:0]
		genPieceMoves(p, s, &moves)
		for _, mv := range moves {
			if mv.To == sq {
				return true
			}
		}
	}
	return false
}

// IsInCheck 判断 side 这一方的将是否被攻击；将不在棋盘上时返回 false
func (p *Position) IsInCheck(side Side) bool {
	sq, ok := p.FindGeneral(side)
	if !ok {
		return false
	}
	return p.IsAttacked(sq, side.Opponent())
}

// GeneralsFacing 两将同列且中间无子
func (p *Position) GeneralsFacing() bool {
	red, okRed := p.FindGeneral(Red)
	black, okBlack := p.FindGeneral(Black)
	if !okRed || !okBlack {
		// 有一方将已经没了：对局终结，但不存在“对脸”问题
		return false
	}

	col := ColOf(red)
	if col != ColOf(black) {
		return false
	}

	top, bottom := RowOf(black), RowOf(red)
	if top > bottom {
		top, bottom = bottom, top
	}
	for r := top + 1; r < bottom; r++ {
		if p.board.Squares[Square(r, col)] != 0 {
			return false
		}
	}
	return true
}
