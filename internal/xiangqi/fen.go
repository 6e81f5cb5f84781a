package xiangqi

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var letterToPieceType = map[rune]PieceType{
	'r': PieceChariot,  // 车
	'n': PieceHorse,    // 马
	'h': PieceHorse,    // 马（别名）
	'b': PieceElephant, // 相 / 象
	'e': PieceElephant, // 相（别名）
	'a': PieceAdvisor,  // 仕 / 士
	'k': PieceGeneral,  // 帅 / 将
	'c': PieceCannon,   // 炮
	'p': PieceSoldier,  // 兵 / 卒
}

// 输出时用固定字母，按 PieceType 下标查表
var pieceTypeToLetter = [numPieceTypes]rune{
	PieceSoldier:  'p',
	PieceHorse:    'n',
	PieceCannon:   'c',
	PieceChariot:  'r',
	PieceElephant: 'b',
	PieceAdvisor:  'a',
	PieceGeneral:  'k',
}

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	pt := p.Type()
	if pt <= PieceNone || pt > PieceGeneral {
		return '?'
	}
	base := pieceTypeToLetter[pt]
	if p.Side() == Red {
		return unicode.ToUpper(base)
	}
	return base
}

// Encode 标准象棋 FEN：第 0 行（黑方底线）在前，空位用数字压缩；空格后 w/b 表示先后
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.board.Squares[Square(r, c)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.sideToMove == Red {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	return sb.String()
}

var ErrInvalidFEN = errors.New("invalid FEN")

// DecodePosition 解析 FEN；语法错误返回 ErrInvalidFEN，
// 棋盘本身不合规（两个帅、帅出九宫等）返回 ErrInvalidPosition。
func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: %d ranks", ErrInvalidFEN, len(rows))
	}
	var b Board
	for r := 0; r < Rows; r++ {
		c := 0
		for _, ch := range rows[r] {
			if c >= Cols {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, r)
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = Red
			}
			b.Squares[Square(r, c)] = MakePiece(side, pt)
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, r, c)
		}
	}
	stm := Red
	if len(parts) > 1 {
		switch parts[1] {
		case "w", "r":
			stm = Red
		case "b":
			stm = Black
		default:
			return nil, fmt.Errorf("%w: side %q", ErrInvalidFEN, parts[1])
		}
	}
	return NewPosition(b, stm)
}
