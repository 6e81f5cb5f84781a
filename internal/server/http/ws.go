package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"xiangqi/internal/agent"
	"xiangqi/internal/xiangqi"
)

const wsIdlePingInterval = 30 * time.Second

type wsMessage struct {
	Type    string          `json:"type"` // start / move / result / ping
	Payload json.RawMessage `json:"payload,omitempty"`
}

type matchStartPayload struct {
	Red      string `json:"red"`
	Black    string `json:"black"`
	Position string `json:"position"`
	MaxTurns int    `json:"max_turns"`
}

type matchMovePayload struct {
	Ply        int     `json:"ply"`
	Side       int     `json:"side"`
	Move       MoveDTO `json:"move"`
	Score      float64 `json:"score"`
	Nodes      int64   `json:"nodes"`
	LegalCount int     `json:"legal_count"`
	Position   string  `json:"position"` // 走完之后
}

type matchResultPayload struct {
	Winner int       `json:"winner"`
	Plies  int       `json:"plies"`
	Reason string    `json:"reason"`
	Moves  []MoveDTO `json:"moves"`
	Error  string    `json:"error,omitempty"`
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

// matchAgents 解析 ?red=&black=&depth=&seed=
func (h *Handler) matchAgents(r *http.Request) (red, black agent.Agent, err error) {
	q := r.URL.Query()
	var depth int
	if v := q.Get("depth"); v != "" {
		if depth, err = strconv.Atoi(v); err != nil {
			return nil, nil, fmt.Errorf("bad depth %q", v)
		}
	}
	var seed int64
	if v := q.Get("seed"); v != "" {
		if seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, nil, fmt.Errorf("bad seed %q", v)
		}
	}

	build := func(kind, fallback string, seed int64) (agent.Agent, error) {
		if kind == "" {
			kind = fallback
		}
		ac, err := h.agentConfig(kind, depth, q.Get("eval"))
		if err != nil {
			return nil, err
		}
		if seed != 0 {
			ac.Seed = seed
		}
		return agent.New(ac)
	}

	red, err = build(q.Get("red"), string(agent.KindSearch), seed)
	if err != nil {
		return nil, nil, err
	}
	// 两边都是随机时错开种子
	blackSeed := seed
	if seed != 0 {
		blackSeed = seed + 1
	}
	black, err = build(q.Get("black"), string(agent.KindRandom), blackSeed)
	if err != nil {
		return nil, nil, err
	}
	return red, black, nil
}

// handleMatchWS 在连接上直播一局 agent 对 agent：
// 先发 start，每一步发一条 move，最后发 result 并关闭
func (h *Handler) handleMatchWS(w http.ResponseWriter, r *http.Request) {
	red, black, err := h.matchAgents(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxTurns := h.cfg.MaxTurns
	if v := r.URL.Query().Get("max_turns"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("bad max_turns %q", v))
			return
		}
		maxTurns = n
	}

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	send := make(chan []byte, 16)
	writeDone := make(chan error, 1)
	go func() {
		writeDone <- writeWSWithHeartbeat(conn, send)
		cancel()
	}()
	// 只为了发现对端断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	push := func(typ string, payload any) {
		data, err := json.Marshal(wsMessage{Type: typ, Payload: mustMarshal(payload)})
		if err != nil {
			return
		}
		select {
		case send <- data:
		case <-ctx.Done():
		}
	}

	log := h.log.With().
		Str("red", string(red.Kind())).
		Str("black", string(black.Kind())).
		Logger()
	log.Info().Int("max_turns", maxTurns).Msg("match stream started")

	start := xiangqi.NewInitialPosition()
	push("start", matchStartPayload{
		Red:      string(red.Kind()),
		Black:    string(black.Kind()),
		Position: start.Encode(),
		MaxTurns: maxTurns,
	})

	res, err := agent.Match(ctx, agent.MatchConfig{
		Red:      red,
		Black:    black,
		MaxTurns: maxTurns,
		Start:    start,
		OnMove: func(ply int, side xiangqi.Side, tr agent.Trace, next *xiangqi.Position) {
			push("move", matchMovePayload{
				Ply:        ply,
				Side:       sideToInt(side),
				Move:       moveToDTO(tr.Move),
				Score:      tr.Score,
				Nodes:      tr.Nodes,
				LegalCount: len(tr.LegalMoves),
				Position:   next.Encode(),
			})
		},
	})

	result := matchResultPayload{
		Winner: sideToInt(res.Winner),
		Plies:  res.Plies,
		Reason: res.Reason,
		Moves:  movesToDTO(res.Moves),
	}
	if err != nil {
		result.Error = err.Error()
		log.Warn().Err(err).Int("plies", res.Plies).Msg("match stream aborted")
	} else {
		log.Info().
			Str("winner", res.Winner.String()).
			Int("plies", res.Plies).
			Str("reason", res.Reason).
			Msg("match stream finished")
	}
	push("result", result)
	close(send)

	if err := <-writeDone; err != nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}
