package xiangqi

// Side is the owner of a piece; its value is the sign of the piece code.
type Side int8

const (
	NoSide Side = 0
	Red    Side = 1  // 红方，在下（7..9 行），先走
	Black  Side = -1 // 黑方，在上（0..2 行）
)

func (s Side) Opponent() Side { return -s }

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "none"
	}
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceSoldier            // 兵 / 卒
	PieceHorse              // 马
	PieceCannon             // 炮
	PieceChariot            // 车
	PieceElephant           // 相 / 象
	PieceAdvisor            // 仕 / 士
	PieceGeneral            // 帅 / 将

	numPieceTypes = 8
)

var pieceTypeNames = [numPieceTypes]string{
	"none", "soldier", "horse", "cannon", "chariot", "elephant", "advisor", "general",
}

func (pt PieceType) String() string {
	if pt < 0 || int(pt) >= numPieceTypes {
		return "invalid"
	}
	return pieceTypeNames[pt]
}

type Piece int8 // 0=空；>0 红；<0 黑；abs=PieceType

func MakePiece(side Side, pt PieceType) Piece {
	if pt == PieceNone || side == NoSide {
		return 0
	}
	return Piece(int8(side) * int8(pt))
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	switch {
	case p > 0:
		return Red
	case p < 0:
		return Black
	default:
		return NoSide
	}
}

type Board struct {
	Squares [NumSquares]Piece
}

// Move 只记录起点和终点，吃子信息由局面推出
type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}
