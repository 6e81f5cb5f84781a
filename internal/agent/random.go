package agent

import (
	"math/rand"
	"sync"

	"xiangqi/internal/xiangqi"
)

// RandomAgent 在合法着法里均匀随机选一个。
// 自带随机源，同一个种子在同一局面序列上给出同样的选择。
type RandomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) Kind() Kind { return KindRandom }

func (a *RandomAgent) SelectMove(pos *xiangqi.Position) (xiangqi.Move, bool) {
	tr := a.SelectMoveWithTrace(pos)
	return tr.Move, tr.HadLegalMoves
}

func (a *RandomAgent) SelectMoveWithTrace(pos *xiangqi.Position) Trace {
	moves := pos.LegalMoves()
	tr := Trace{LegalMoves: moves}
	if len(moves) == 0 {
		return tr
	}
	a.mu.Lock()
	i := a.rng.Intn(len(moves))
	a.mu.Unlock()
	tr.Move = moves[i]
	tr.HadLegalMoves = true
	return tr
}
