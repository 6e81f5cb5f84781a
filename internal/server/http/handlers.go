package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"xiangqi/internal/agent"
	"xiangqi/internal/config"
	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// 单个请求允许的最大搜索深度
const maxRequestDepth = 5

// Handler 持有 /api/* 和 /ws/* 用到的依赖
type Handler struct {
	games *game.Manager
	cfg   config.Config
	log   zerolog.Logger
}

func NewHandler(log zerolog.Logger, games *game.Manager, cfg config.Config) *Handler {
	return &Handler{games: games, cfg: cfg, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody 允许空 body（所有字段取默认值）
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// gameError 把 game 包的错误映射成状态码
func (h *Handler) gameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, game.ErrIllegalMove):
		writeError(w, http.StatusBadRequest, "illegal move")
	default:
		h.log.Error().Err(err).Msg("game operation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// agentConfig 用请求里的参数覆盖服务端配置
func (h *Handler) agentConfig(kind string, depth int, evaluator string) (agent.Config, error) {
	if kind == "" {
		kind = h.cfg.OpponentKind
	}
	k, err := agent.ParseKind(kind)
	if err != nil {
		return agent.Config{}, err
	}
	ac, err := h.cfg.AgentConfig(k)
	if err != nil {
		return agent.Config{}, err
	}
	if depth > 0 {
		if depth > maxRequestDepth {
			depth = maxRequestDepth
		}
		ac.Depth = depth
	}
	if evaluator != "" {
		ev, err := engine.EvaluatorByName(evaluator)
		if err != nil {
			return agent.Config{}, err
		}
		ac.Evaluator = ev
	}
	log := h.log.With().Str("component", "search").Logger()
	ac.Logger = &log
	return ac, nil
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": h.games.Len()})
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	ac, err := h.agentConfig(req.Opponent, req.Depth, req.Evaluator)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	opp, err := agent.New(ac)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g := h.games.NewGame(opp)
	writeJSON(w, http.StatusOK, NewGameResponse{
		GameID:     g.ID,
		Opponent:   string(g.OpponentKind),
		Position:   g.Pos.Encode(),
		ToMove:     sideToInt(g.Pos.SideToMove()),
		LegalMoves: movesToDTO(g.Pos.LegalMoves()),
	})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		h.gameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateToDTO(g.Pos, g.Status()))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	g, err := h.games.Play(req.GameID, dtoToMove(req.Move))
	if err != nil {
		h.gameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateToDTO(g.Pos, g.Status()))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	start := time.Now()
	g, tr, err := h.games.AIMove(req.GameID)
	if err != nil {
		h.gameError(w, err)
		return
	}

	resp := AiMoveResponse{
		BestMove:      noMoveDTO,
		Score:         tr.Score,
		Depth:         tr.Depth,
		Nodes:         tr.Nodes,
		LegalCount:    len(tr.LegalMoves),
		TimeMs:        time.Since(start).Milliseconds(),
		StateResponse: stateToDTO(g.Pos, g.Status()),
	}
	if tr.HadLegalMoves {
		resp.BestMove = moveToDTO(tr.Move)
	} else {
		resp.Status = game.StatusNoMoves
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Position == "" {
		writeError(w, http.StatusBadRequest, "missing position")
		return
	}
	pos, err := xiangqi.DecodePosition(req.Position)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ac, err := h.agentConfig(string(agent.KindSearch), req.Depth, req.Evaluator)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := []engine.Option{engine.WithEvaluator(ac.Evaluator)}
	if ac.Logger != nil {
		opts = append(opts, engine.WithLogger(*ac.Logger))
	}
	if ac.EvalCache != nil {
		opts = append(opts, engine.WithEvalCache(*ac.EvalCache))
	}
	res := engine.NewEngine(opts...).Search(pos, engine.SearchConfig{MaxDepth: ac.Depth})

	resp := AnalyzeResponse{
		BestMove:   noMoveDTO,
		HasMove:    res.HasMove,
		Score:      res.Score,
		Depth:      res.Depth,
		Nodes:      res.Nodes,
		EvalHits:   res.EvalHits,
		TimeMs:     res.Elapsed.Milliseconds(),
		LegalMoves: movesToDTO(res.LegalMoves),
		Status:     game.StatusOngoing,
	}
	if res.HasMove {
		resp.BestMove = moveToDTO(res.Move)
	} else {
		resp.Status = game.StatusNoMoves
	}
	writeJSON(w, http.StatusOK, resp)
}
