package xiangqi

// genPieceMoves 按棋子类型分派；归属看棋子本身的符号，不看 sideToMove
func genPieceMoves(p *Position, sq int, moves *[]Move) {
	switch p.board.Squares[sq].Type() {
	case PieceChariot:
		genChariotMoves(p, sq, moves)
	case PieceCannon:
		genCannonMoves(p, sq, moves)
	case PieceHorse:
		genHorseMoves(p, sq, moves)
	case PieceElephant:
		genElephantMoves(p, sq, moves)
	case PieceAdvisor:
		genAdvisorMoves(p, sq, moves)
	case PieceGeneral:
		genGeneralMoves(p, sq, moves)
	case PieceSoldier:
		genSoldierMoves(p, sq, moves)
	}
}

// PseudoMovesFrom 某一格棋子的伪合法走法（不考虑自己被将军）
func (p *Position) PseudoMovesFrom(sq int) []Move {
	if p.PieceAt(sq) == 0 {
		return nil
	}
	var moves []Move
	genPieceMoves(p, sq, &moves)
	return moves
}

// 生成指定一方的伪合法走法，按格子序号（行优先）扫描
func (p *Position) PseudoMovesForSide(side Side) []Move {
	var moves []Move
	for sq, pc := range p.board.Squares {
		if pc == 0 || pc.Side() != side {
			continue
		}
		genPieceMoves(p, sq, &moves)
	}
	return moves
}

func (p *Position) PseudoMoves() []Move {
	return p.PseudoMovesForSide(p.sideToMove)
}

// LegalMoves 生成合法走法：逐个模拟伪合法走法，
// 走完后自己的将被攻击或者两将对脸的都丢掉。
func (p *Position) LegalMoves() []Move {
	pseudo := p.PseudoMoves()
	out := make([]Move, 0, len(pseudo))
	mover := p.sideToMove
	for _, mv := range pseudo {
		if p.isLegalPseudo(mv, mover) {
			out = append(out, mv)
		}
	}
	return out
}

// 检查的是走子一方（走完后已不是 sideToMove）的将
func (p *Position) isLegalPseudo(mv Move, mover Side) bool {
	np := p.mustApply(mv)
	if np.IsInCheck(mover) {
		return false
	}
	return !np.GeneralsFacing()
}

// IsLegal 判断一步棋在当前局面是否合法
func (p *Position) IsLegal(mv Move) bool {
	if !validSquare(mv.From) || !validSquare(mv.To) {
		return false
	}
	pc := p.board.Squares[mv.From]
	if pc == 0 || pc.Side() != p.sideToMove {
		return false
	}
	var moves []Move
	genPieceMoves(p, mv.From, &moves)
	for _, m := range moves {
		if m == mv {
			return p.isLegalPseudo(mv, p.sideToMove)
		}
	}
	return false
}

// IsGameOver 轮到的一方无合法走法（将死或困毙，象棋里都算输）
func (p *Position) IsGameOver() bool {
	return len(p.LegalMoves()) == 0
}

// Winner 对局未结束返回 NoSide
func (p *Position) Winner() Side {
	if !p.GeneralExists(p.sideToMove) {
		return p.sideToMove.Opponent()
	}
	if !p.GeneralExists(p.sideToMove.Opponent()) {
		return p.sideToMove
	}
	if p.IsGameOver() {
		return p.sideToMove.Opponent()
	}
	return NoSide
}

// Perft 统计 depth 层合法走法树的叶子数，用来校验走法生成
func (p *Position) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, mv := range moves {
		n += p.mustApply(mv).Perft(depth - 1)
	}
	return n
}
