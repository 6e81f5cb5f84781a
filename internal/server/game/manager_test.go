package game

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"xiangqi/internal/agent"
	"xiangqi/internal/xiangqi"
)

func newManager() *Manager { return NewManager(zerolog.Nop()) }

func TestNewGameAndGet(t *testing.T) {
	m := newManager()
	g := m.NewGame(agent.NewRandomAgent(1))
	if g.ID == "" || g.Pos.Ply() != 0 || g.OpponentKind != agent.KindRandom {
		t.Fatalf("new game: %+v", g)
	}
	if g.Status() != StatusOngoing {
		t.Fatalf("status=%s", g.Status())
	}
	got, err := m.Get(g.ID)
	if err != nil || got.ID != g.ID || got.Pos != g.Pos {
		t.Fatalf("Get: %+v %v", got, err)
	}
	if _, err := m.Get("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("missing game: err=%v", err)
	}
	m.Delete(g.ID)
	if m.Len() != 0 {
		t.Fatalf("Len after delete = %d", m.Len())
	}
}

func TestPlayValidatesMoves(t *testing.T) {
	m := newManager()
	g := m.NewGame(agent.NewRandomAgent(1))

	// 炮二平五
	mv, err := xiangqi.ParseMove("h2e2")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	g2, err := m.Play(g.ID, mv)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g2.Pos.SideToMove() != xiangqi.Black || g2.Pos.Ply() != 1 {
		t.Fatalf("after play: side=%v ply=%d", g2.Pos.SideToMove(), g2.Pos.Ply())
	}

	// 现在轮到黑方，红方的着法不合法
	if _, err := m.Play(g.ID, xiangqi.Move{From: xiangqi.Square(9, 0), To: xiangqi.Square(8, 0)}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("wrong side move: err=%v", err)
	}
	if _, err := m.Play(g.ID, xiangqi.Move{From: -1, To: 200}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("out of range move: err=%v", err)
	}
	if _, err := m.Play("nope", mv); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("missing game: err=%v", err)
	}
	if cur, _ := m.Get(g.ID); cur.Pos != g2.Pos {
		t.Fatalf("rejected moves must not change the game")
	}
}

func TestAIMove(t *testing.T) {
	m := newManager()
	g := m.NewGame(agent.NewSearchAgent(nil, 1))
	g2, tr, err := m.AIMove(g.ID)
	if err != nil {
		t.Fatalf("AIMove: %v", err)
	}
	if !tr.HadLegalMoves || len(tr.LegalMoves) != 44 {
		t.Fatalf("trace: %+v", tr)
	}
	if log := g2.Pos.MoveLog(); len(log) != 1 || log[0] != tr.Move {
		t.Fatalf("move log %v, trace move %v", log, tr.Move)
	}
	if _, _, err := m.AIMove("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("missing game: err=%v", err)
	}
}

func TestConcurrentMoves(t *testing.T) {
	m := newManager()
	g := m.NewGame(agent.NewRandomAgent(9))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if _, _, err := m.AIMove(g.ID); err != nil {
					t.Errorf("AIMove: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
	cur, _ := m.Get(g.ID)
	if n := cur.Pos.Ply(); n > 40 {
		t.Fatalf("ply=%d", n)
	}
	// 每一步都合法地接在上一步后面
	pos := xiangqi.NewInitialPosition()
	for _, mv := range cur.Pos.MoveLog() {
		if !pos.IsLegal(mv) {
			t.Fatalf("illegal move %v in log", mv)
		}
		pos, _ = pos.ApplyMove(mv)
	}
}
