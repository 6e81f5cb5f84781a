package httpserver

import "xiangqi/internal/xiangqi"

// 前端用的招法结构
type MoveDTO struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	ICCS string `json:"iccs,omitempty"` // 例如 "h2e2"，只在返回里填
}

var noMoveDTO = MoveDTO{From: -1, To: -1}

func dtoToMove(m MoveDTO) xiangqi.Move {
	return xiangqi.Move{From: m.From, To: m.To}
}

func moveToDTO(m xiangqi.Move) MoveDTO {
	return MoveDTO{From: m.From, To: m.To, ICCS: m.String()}
}

func movesToDTO(ms []xiangqi.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// 0=红, 1=黑, -1=无
func sideToInt(s xiangqi.Side) int {
	switch s {
	case xiangqi.Red:
		return 0
	case xiangqi.Black:
		return 1
	default:
		return -1
	}
}

// NewGame 请求，字段都可以省略，省略时用服务端配置
type NewGameRequest struct {
	Opponent  string `json:"opponent"` // "search" / "random"
	Depth     int    `json:"depth"`
	Evaluator string `json:"evaluator"`
}

type NewGameResponse struct {
	GameID     string    `json:"game_id"`
	Opponent   string    `json:"opponent"`
	Position   string    `json:"position"`    // FEN 字符串
	ToMove     int       `json:"to_move"`     // 0=红(w),1=黑(b)
	LegalMoves []MoveDTO `json:"legal_moves"` // 当前所有可走棋
}

// State 请求：前端刷新时用 game_id 来要当前盘面
type StateRequest struct {
	GameID string `json:"game_id"`
}

type StateResponse struct {
	Position   string    `json:"position"`
	ToMove     int       `json:"to_move"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	Status     string    `json:"status"` // "ongoing" / "no_moves"
	Winner     int       `json:"winner"` // 同 to_move，-1 表示未分胜负
	Ply        int       `json:"ply"`
	InCheck    bool      `json:"in_check"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type AiMoveRequest struct {
	GameID string `json:"game_id"`
}

type AiMoveResponse struct {
	BestMove   MoveDTO `json:"best_move"` // 无着可走时为 {-1,-1}
	Score      float64 `json:"score"`
	Depth      int     `json:"depth"`
	Nodes      int64   `json:"nodes"`
	LegalCount int     `json:"legal_count"` // 走之前的合法着法数
	TimeMs     int64   `json:"time_ms"`
	StateResponse
}

// Analyze 请求：不关联对局，直接对一个 FEN 做搜索
type AnalyzeRequest struct {
	Position  string `json:"position"`
	Depth     int    `json:"depth"`
	Evaluator string `json:"evaluator"`
}

type AnalyzeResponse struct {
	BestMove   MoveDTO   `json:"best_move"`
	HasMove    bool      `json:"has_move"`
	Score      float64   `json:"score"`
	Depth      int       `json:"depth"`
	Nodes      int64     `json:"nodes"`
	EvalHits   int64     `json:"eval_hits"`
	TimeMs     int64     `json:"time_ms"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	Status     string    `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func stateToDTO(pos *xiangqi.Position, status string) StateResponse {
	return StateResponse{
		Position:   pos.Encode(),
		ToMove:     sideToInt(pos.SideToMove()),
		LegalMoves: movesToDTO(pos.LegalMoves()),
		Status:     status,
		Winner:     sideToInt(pos.Winner()),
		Ply:        pos.Ply(),
		InCheck:    pos.IsInCheck(pos.SideToMove()),
	}
}
