package xiangqi

import "math/rand/v2"

// 棋子编码 -7..7 平移到 0..14 作下标，0 号（空格）不用
const pieceCodeSpan = 2*int(PieceGeneral) + 1

type zobristTable struct {
	squares [NumSquares][pieceCodeSpan]uint64
	black   uint64 // 黑方走棋
}

// 固定种子，同一局面在不同进程里哈希一致
var zobrist = newZobristTable(0x5851F42D4C957F2D, 0x14057B7EF767814F)

func newZobristTable(seed1, seed2 uint64) *zobristTable {
	rng := rand.New(rand.NewPCG(seed1, seed2))
	t := &zobristTable{}
	for sq := range t.squares {
		for code := range t.squares[sq] {
			if code == int(PieceGeneral) {
				continue
			}
			t.squares[sq][code] = nonZero(rng)
		}
	}
	t.black = nonZero(rng)
	return t
}

func nonZero(rng *rand.Rand) uint64 {
	for {
		if k := rng.Uint64(); k != 0 {
			return k
		}
	}
}

func pieceHashKey(pc Piece, sq int) uint64 {
	if pc == 0 || !validSquare(sq) {
		return 0
	}
	code := int(pc) + int(PieceGeneral)
	if code < 0 || code >= pieceCodeSpan {
		return 0
	}
	return zobrist.squares[sq][code]
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希。
func (p *Position) CalculateHash() uint64 {
	var h uint64
	for sq, pc := range p.board.Squares {
		h ^= pieceHashKey(pc, sq)
	}
	if p.sideToMove == Black {
		h ^= zobrist.black
	}
	return h
}
