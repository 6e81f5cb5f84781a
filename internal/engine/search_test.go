package engine

import (
	"math"
	"testing"

	"xiangqi/internal/xiangqi"
)

func TestSearchCapturesHangingChariot(t *testing.T) {
	pos := decode(t, "3k5/9/9/9/9/r8/9/9/9/R3K4 w")
	want := xiangqi.Move{From: xiangqi.Square(9, 0), To: xiangqi.Square(5, 0)}
	e := NewEngine()
	for depth := 1; depth <= 3; depth++ {
		mv, ok := e.BestMove(pos, depth)
		if !ok || mv != want {
			t.Fatalf("depth %d: got=%v ok=%v want=%v", depth, mv, ok, want)
		}
	}
}

func TestSearchNoMoveWhenMated(t *testing.T) {
	pos := decode(t, "R3k4/8R/9/9/9/9/9/9/9/3K5 b")
	e := NewEngine()
	if _, ok := e.BestMove(pos, 3); ok {
		t.Fatalf("mated side should have no move")
	}
	res := e.Search(pos, SearchConfig{MaxDepth: 2})
	if res.HasMove || len(res.LegalMoves) != 0 {
		t.Fatalf("search result for mated side: %+v", res)
	}
}

func TestSearchDepthAtLeastOne(t *testing.T) {
	res := NewEngine().Search(xiangqi.NewInitialPosition(), SearchConfig{MaxDepth: 0})
	if !res.HasMove || res.Depth != 1 {
		t.Fatalf("depth 0 search: has=%v depth=%d", res.HasMove, res.Depth)
	}
	if res.Nodes != int64(len(res.LegalMoves)) {
		t.Fatalf("one ply should visit one node per root move: nodes=%d moves=%d", res.Nodes, len(res.LegalMoves))
	}
}

// 剪枝只能减少节点数，不能改变结果（包括同分时选中的着法）
func TestPruningMatchesMinimax(t *testing.T) {
	type fixture struct {
		name  string
		pos   *xiangqi.Position
		depth int
	}
	fixtures := []fixture{
		{"initial", xiangqi.NewInitialPosition(), 2},
		{"endgame", decode(t, "3ak4/4a4/9/9/2c6/9/9/4C4/4A4/3AK1R2 w"), 3},
		{"playout-a", playout(t, 11, 24), 2},
		{"playout-b", playout(t, 23, 41), 2},
	}
	for _, f := range fixtures {
		for _, ev := range []Evaluator{PositionalEvaluator{}, MaterialEvaluator{}} {
			pruned := NewEngine(WithEvaluator(ev)).Search(f.pos, SearchConfig{MaxDepth: f.depth})
			full := NewEngine(WithEvaluator(ev), WithPruning(false)).Search(f.pos, SearchConfig{MaxDepth: f.depth})
			if pruned.HasMove != full.HasMove {
				t.Fatalf("%s/%T: has move differs", f.name, ev)
			}
			if pruned.Score != full.Score {
				t.Fatalf("%s/%T: score pruned=%v minimax=%v", f.name, ev, pruned.Score, full.Score)
			}
			if pruned.Move != full.Move {
				t.Fatalf("%s/%T: move pruned=%v minimax=%v", f.name, ev, pruned.Move, full.Move)
			}
			if pruned.Nodes > full.Nodes {
				t.Fatalf("%s/%T: pruning visited more nodes (%d > %d)", f.name, ev, pruned.Nodes, full.Nodes)
			}
		}
	}
}

func TestChosenMoveHasOptimalMinimaxValue(t *testing.T) {
	pos := playout(t, 5, 16)
	const depth = 2
	best := NewEngine().Search(pos, SearchConfig{MaxDepth: depth})
	if !best.HasMove {
		t.Fatalf("expected a move")
	}

	ref := NewEngine(WithPruning(false))
	child, err := pos.ApplyMove(best.Move)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	// 子局面上用搜索方视角做 depth-1 的完整极小极大
	s := ref.newSearcher(pos.SideToMove())
	chosen := s.alphaBeta(child, depth-1, math.Inf(-1), math.Inf(1))
	for _, mv := range best.LegalMoves {
		c, _ := pos.ApplyMove(mv)
		s := ref.newSearcher(pos.SideToMove())
		if v := s.alphaBeta(c, depth-1, math.Inf(-1), math.Inf(1)); v > chosen {
			t.Fatalf("move %v has value %v > chosen %v (%v)", mv, v, best.Move, chosen)
		}
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	pos := playout(t, 99, 20)
	e := NewEngine()
	a := e.Search(pos, SearchConfig{MaxDepth: 2})
	b := e.Search(pos, SearchConfig{MaxDepth: 2})
	if a.Move != b.Move || a.Score != b.Score || a.Nodes != b.Nodes {
		t.Fatalf("two searches differ: %v/%v/%d vs %v/%v/%d", a.Move, a.Score, a.Nodes, b.Move, b.Score, b.Nodes)
	}
}

func TestEvalCacheDoesNotChangeResult(t *testing.T) {
	pos := playout(t, 3, 18)
	cached := NewEngine().Search(pos, SearchConfig{MaxDepth: 2})
	plain := NewEngine(WithEvalCache(false)).Search(pos, SearchConfig{MaxDepth: 2})
	if cached.Move != plain.Move || cached.Score != plain.Score {
		t.Fatalf("eval cache changed result: %v/%v vs %v/%v", cached.Move, cached.Score, plain.Move, plain.Score)
	}
	if plain.EvalHits != 0 {
		t.Fatalf("disabled cache reported %d hits", plain.EvalHits)
	}
}

// 所有着法同分时选生成顺序的第一个
func TestTieKeepsFirstMove(t *testing.T) {
	// 只剩两个将，子力分恒为 0；e0d0 会将帅对面，合法着法只有 e0f0 e0e1
	pos := decode(t, "3k5/9/9/9/9/9/9/9/9/4K4 w")
	eng := NewEngine(WithEvaluator(MaterialEvaluator{}))
	for depth := 1; depth <= 3; depth++ {
		res := eng.Search(pos, SearchConfig{MaxDepth: depth})
		if !res.HasMove || len(res.LegalMoves) != 2 {
			t.Fatalf("depth %d: hasMove=%v legal=%v", depth, res.HasMove, res.LegalMoves)
		}
		if res.Score != 0 {
			t.Fatalf("depth %d: score=%v want 0", depth, res.Score)
		}
		if res.Move != res.LegalMoves[0] {
			t.Fatalf("depth %d tie-break: got=%v want first=%v", depth, res.Move, res.LegalMoves[0])
		}
	}
}
