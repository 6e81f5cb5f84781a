package agent

import (
	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// SearchAgent 固定深度的 alpha-beta
type SearchAgent struct {
	eng   *engine.Engine
	depth int
}

func NewSearchAgent(eng *engine.Engine, depth int) *SearchAgent {
	if eng == nil {
		eng = engine.NewEngine()
	}
	if depth < 1 {
		depth = DefaultDepth
	}
	return &SearchAgent{eng: eng, depth: depth}
}

func (a *SearchAgent) Kind() Kind             { return KindSearch }
func (a *SearchAgent) Depth() int             { return a.depth }
func (a *SearchAgent) Engine() *engine.Engine { return a.eng }

func (a *SearchAgent) SelectMove(pos *xiangqi.Position) (xiangqi.Move, bool) {
	return a.eng.BestMove(pos, a.depth)
}

func (a *SearchAgent) SelectMoveWithTrace(pos *xiangqi.Position) Trace {
	res := a.eng.Search(pos, engine.SearchConfig{MaxDepth: a.depth})
	return Trace{
		Move:          res.Move,
		Score:         res.Score,
		LegalMoves:    res.LegalMoves,
		HadLegalMoves: res.HasMove,
		Depth:         res.Depth,
		Nodes:         res.Nodes,
	}
}
