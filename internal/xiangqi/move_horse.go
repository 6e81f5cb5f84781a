package xiangqi

// 马的 8 种“日”字：终点 + 马腿
var horseLegMoves = [8]struct {
	Dr, Dc int // 终点
	Br, Bc int // 马腿
}{
	{+2, +1, +1, 0},
	{+2, -1, +1, 0},
	{-2, +1, -1, 0},
	{-2, -1, -1, 0},
	{+1, +2, 0, +1},
	{-1, +2, 0, +1},
	{+1, -2, 0, -1},
	{-1, -2, 0, -1},
}

func genHorseMoves(p *Position, from int, moves *[]Move) {
	row, col := RowOf(from), ColOf(from)
	side := p.board.Squares[from].Side()

	for _, m := range horseLegMoves {
		r := row + m.Dr
		c := col + m.Dc
		if !OnBoard(r, c) {
			continue
		}
		if p.board.Squares[Square(row+m.Br, col+m.Bc)] != 0 {
			continue // 蹩马腿
		}
		to := Square(r, c)
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
