package xiangqi

import (
	"math/rand"
	"testing"
)

func mustDecode(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return pos
}

func mv(fromRow, fromCol, toRow, toCol int) Move {
	return Move{From: Square(fromRow, fromCol), To: Square(toRow, toCol)}
}

func containsMove(moves []Move, m Move) bool {
	for _, x := range moves {
		if x == m {
			return true
		}
	}
	return false
}

func TestInitialLegalMoveCount(t *testing.T) {
	pos := NewInitialPosition()
	if got := len(pos.LegalMoves()); got != 44 {
		t.Fatalf("initial legal moves: got=%d want=44", got)
	}
	black := mustDecode(t, "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR b")
	if got := len(black.LegalMoves()); got != 44 {
		t.Fatalf("initial legal moves for black: got=%d want=44", got)
	}
}

func TestPerftFromInitial(t *testing.T) {
	pos := NewInitialPosition()
	want := []uint64{1, 44, 1920}
	for depth, w := range want {
		if got := pos.Perft(depth); got != w {
			t.Fatalf("perft(%d): got=%d want=%d", depth, got, w)
		}
	}
}

func TestGenerationOrderIsRowMajor(t *testing.T) {
	pos := NewInitialPosition()
	moves := pos.LegalMoves()
	// 红方第一个棋子是 (6,0) 的兵，只能前进一格
	if moves[0] != mv(6, 0, 5, 0) {
		t.Fatalf("first move: got=%v want=%v", moves[0], mv(6, 0, 5, 0))
	}
	last := -1
	for _, m := range moves {
		if m.From < last {
			t.Fatalf("moves not grouped by ascending source square: %v", moves)
		}
		last = m.From
	}
}

func TestCannonScreen(t *testing.T) {
	cannon := Square(9, 0)
	target := Square(2, 0)

	t.Run("one screen captures", func(t *testing.T) {
		pos := mustDecode(t, "4k4/9/r8/9/9/p8/9/9/9/C2K5 w")
		for _, moves := range [][]Move{pos.PseudoMovesFrom(cannon), pos.LegalMoves()} {
			if !containsMove(moves, Move{From: cannon, To: target}) {
				t.Fatalf("cannon should capture over one screen: %v", moves)
			}
			for _, r := range []int{3, 4, 5} {
				if containsMove(moves, Move{From: cannon, To: Square(r, 0)}) {
					t.Fatalf("cannon must not stop at row %d behind/on the screen", r)
				}
			}
		}
	})

	t.Run("no screen cannot capture", func(t *testing.T) {
		pos := mustDecode(t, "4k4/9/9/9/9/r8/9/9/9/C2K5 w")
		moves := pos.PseudoMovesFrom(cannon)
		if containsMove(moves, Move{From: cannon, To: Square(5, 0)}) {
			t.Fatalf("cannon captured without a screen: %v", moves)
		}
		for r := 0; r < 5; r++ {
			if containsMove(moves, Move{From: cannon, To: Square(r, 0)}) {
				t.Fatalf("cannon moved past a piece to row %d", r)
			}
		}
		if !containsMove(moves, Move{From: cannon, To: Square(6, 0)}) {
			t.Fatalf("cannon should slide up to the blocking piece: %v", moves)
		}
	})

	t.Run("two screens cannot capture", func(t *testing.T) {
		pos := mustDecode(t, "4k4/9/r8/9/9/P8/P8/9/9/C2K5 w")
		moves := pos.PseudoMovesFrom(cannon)
		for r := 0; r <= 6; r++ {
			if containsMove(moves, Move{From: cannon, To: Square(r, 0)}) {
				t.Fatalf("cannon reached row %d through two pieces: %v", r, moves)
			}
		}
	})
}

func TestElephantEyeBlocked(t *testing.T) {
	pos := mustDecode(t, "3k5/9/9/9/9/9/9/9/3p5/2B1K4 w")
	from := Square(9, 2)
	blocked := Move{From: from, To: Square(7, 4)}
	open := Move{From: from, To: Square(7, 0)}

	pseudo := pos.PseudoMovesFrom(from)
	if containsMove(pseudo, blocked) {
		t.Fatalf("blocked elephant move generated: %v", pseudo)
	}
	if !containsMove(pseudo, open) {
		t.Fatalf("open elephant move missing: %v", pseudo)
	}
	legal := pos.LegalMoves()
	if containsMove(legal, blocked) {
		t.Fatalf("blocked elephant move in legal set")
	}
	if !containsMove(legal, open) {
		t.Fatalf("open elephant move missing from legal set")
	}
}

func TestElephantCannotCrossRiver(t *testing.T) {
	pos := mustDecode(t, "3k5/9/9/9/9/2B6/9/9/9/4K4 w")
	for _, m := range pos.PseudoMovesFrom(Square(5, 2)) {
		if RowOf(m.To) < 5 {
			t.Fatalf("elephant crossed the river: %v", m)
		}
	}
}

func TestHorseLegBlocked(t *testing.T) {
	pos := mustDecode(t, "3k5/9/9/9/4p4/4N4/9/9/9/4K4 w")
	moves := pos.PseudoMovesFrom(Square(5, 4))
	for _, m := range []Move{mv(5, 4, 3, 3), mv(5, 4, 3, 5)} {
		if containsMove(moves, m) {
			t.Fatalf("horse jumped over its leg: %v", m)
		}
	}
	if len(moves) != 6 {
		t.Fatalf("horse moves: got=%d want=6 (%v)", len(moves), moves)
	}
}

func TestSoldierSidewaysAfterRiver(t *testing.T) {
	pos := mustDecode(t, "3k5/9/9/9/4P4/9/P8/9/9/4K4 w")

	home := pos.PseudoMovesFrom(Square(6, 0))
	if len(home) != 1 || home[0] != mv(6, 0, 5, 0) {
		t.Fatalf("soldier before river: %v", home)
	}

	crossed := pos.PseudoMovesFrom(Square(4, 4))
	want := []Move{mv(4, 4, 3, 4), mv(4, 4, 4, 5), mv(4, 4, 4, 3)}
	if len(crossed) != len(want) {
		t.Fatalf("soldier after river: got=%v want=%v", crossed, want)
	}
	for i := range want {
		if crossed[i] != want[i] {
			t.Fatalf("soldier order: got=%v want=%v", crossed, want)
		}
	}

	black := mustDecode(t, "3k5/9/9/9/9/4p4/9/9/9/4K4 b")
	got := black.PseudoMovesFrom(Square(5, 4))
	if len(got) != 3 || got[0] != mv(5, 4, 6, 4) {
		t.Fatalf("black soldier after river: %v", got)
	}
}

// 合法性检查的是“刚走完的一方”的将，而不是轮到走的一方
func TestLegalityChecksMoversGeneral(t *testing.T) {
	pos := mustDecode(t, "3k5/4r4/9/9/9/4R4/9/9/9/R3K4 w")
	legal := pos.LegalMoves()

	for c := 0; c < Cols; c++ {
		if c == 4 {
			continue
		}
		if containsMove(legal, mv(5, 4, 5, c)) {
			t.Fatalf("pinned chariot left the file: %v", mv(5, 4, 5, c))
		}
	}
	if !containsMove(legal, mv(5, 4, 1, 4)) {
		t.Fatalf("pinned chariot should capture along the pin")
	}
	// 将军对方是合法的
	if !containsMove(legal, mv(9, 0, 0, 0)) {
		t.Fatalf("checking move rejected")
	}
	// 走到与黑将同列且中间无子：对脸
	if containsMove(legal, mv(9, 4, 9, 3)) {
		t.Fatalf("general move into facing position accepted")
	}
}

func TestLoneGeneralCheckmated(t *testing.T) {
	pos := mustDecode(t, "R3k4/8R/9/9/9/9/9/9/9/3K5 b")
	if moves := pos.LegalMoves(); len(moves) != 0 {
		t.Fatalf("expected no legal moves, got %v", moves)
	}
	if !pos.IsGameOver() {
		t.Fatalf("IsGameOver should be true")
	}
	if w := pos.Winner(); w != Red {
		t.Fatalf("winner: got=%v want=red", w)
	}
	if !pos.IsInCheck(Black) {
		t.Fatalf("black general should be in check")
	}
}

func TestWinnerOngoing(t *testing.T) {
	if w := NewInitialPosition().Winner(); w != NoSide {
		t.Fatalf("winner at start: %v", w)
	}
}

func TestGeneralsFacing(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{"4k4/9/9/9/9/9/9/9/9/4K4 w", true},
		{"4k4/9/9/9/4p4/9/9/9/9/4K4 w", false},
		{"3k5/9/9/9/9/9/9/9/9/4K4 w", false},
		{"9/9/9/9/9/9/9/9/9/4K4 w", false},
	}
	for _, tc := range cases {
		if got := mustDecode(t, tc.fen).GeneralsFacing(); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.fen, got, tc.want)
		}
	}
}

func TestIsLegalMatchesLegalMoves(t *testing.T) {
	pos := mustDecode(t, "3k5/4r4/9/9/9/4R4/9/9/9/R3K4 w")
	legal := pos.LegalMoves()
	for _, m := range pos.PseudoMoves() {
		if got, want := pos.IsLegal(m), containsMove(legal, m); got != want {
			t.Fatalf("IsLegal(%v)=%v, in LegalMoves=%v", m, got, want)
		}
	}
	if pos.IsLegal(Move{From: Square(0, 3), To: Square(0, 4)}) {
		t.Fatalf("moving the opponent's general must not be legal")
	}
}

// 随机对局：每一步的合法走法都满足不被将、不对脸，且 IsGameOver 与空集等价
func TestRandomPlayoutInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 4; game++ {
		pos := NewInitialPosition()
		for ply := 0; ply < 80; ply++ {
			moves := pos.LegalMoves()
			if pos.IsGameOver() != (len(moves) == 0) {
				t.Fatalf("IsGameOver disagrees with LegalMoves at ply %d", ply)
			}
			if len(moves) == 0 {
				break
			}
			mover := pos.SideToMove()
			for _, m := range moves {
				child, err := pos.ApplyMove(m)
				if err != nil {
					t.Fatalf("apply %v: %v", m, err)
				}
				if child.IsInCheck(mover) {
					t.Fatalf("legal move %v leaves %v in check\n%s", m, mover, pos.Board())
				}
				if child.GeneralsFacing() {
					t.Fatalf("legal move %v leaves generals facing\n%s", m, pos.Board())
				}
			}
			next, err := pos.ApplyMove(moves[rng.Intn(len(moves))])
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			pos = next
		}
	}
}
