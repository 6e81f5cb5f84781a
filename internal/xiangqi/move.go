package xiangqi

import (
	"errors"
	"fmt"
)

const files = "abcdefghi"

// squareName 用 ICCS 坐标：列 a..i，行从红方底线 0 数到 9
func squareName(sq int) string {
	if !validSquare(sq) {
		return "??"
	}
	return fmt.Sprintf("%c%d", files[ColOf(sq)], Rows-1-RowOf(sq))
}

// String 例如 "h2e2"（当头炮）
func (m Move) String() string {
	return squareName(m.From) + squareName(m.To)
}

var ErrBadMoveText = errors.New("bad move text")

func parseSquare(s string) (int, error) {
	if len(s) != 2 {
		return -1, ErrBadMoveText
	}
	f, r := s[0], s[1]
	if f < 'a' || f > 'i' || r < '0' || r > '9' {
		return -1, ErrBadMoveText
	}
	return Square(Rows-1-int(r-'0'), int(f-'a')), nil
}

// ParseMove 解析 ICCS 形式的着法
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMoveText, s)
	}
	from, err := parseSquare(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMoveText, s)
	}
	to, err := parseSquare(s[2:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMoveText, s)
	}
	return Move{From: from, To: to}, nil
}
