package xiangqi

// 兵：未过河只能前进一格；过河后可以左右平移
func genSoldierMoves(p *Position, from int, moves *[]Move) {
	row, col := RowOf(from), ColOf(from)
	pc := p.board.Squares[from]
	if pc == 0 {
		return
	}
	side := pc.Side()

	targets := [3][2]int{{row + soldierDir(side), col}}
	n := 1
	if crossedRiver(side, row) {
		targets[1] = [2]int{row, col + 1}
		targets[2] = [2]int{row, col - 1}
		n = 3
	}

	for _, t := range targets[:n] {
		if !OnBoard(t[0], t[1]) {
			continue
		}
		to := Square(t[0], t[1])
		if canLand(p, to, side) {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
