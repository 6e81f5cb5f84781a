package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"xiangqi/internal/agent"
	"xiangqi/internal/xiangqi"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrIllegalMove  = errors.New("illegal move")
)

type entry struct {
	mu       sync.Mutex // 串行化同一局的落子和 AI 思考
	state    GameState
	opponent agent.Agent
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*entry
	log   zerolog.Logger
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		games: make(map[string]*entry),
		log:   log,
	}
}

// NewGame 从开局开始一局，opponent 负责 AIMove
func (m *Manager) NewGame(opponent agent.Agent) GameState {
	now := time.Now()
	e := &entry{
		state: GameState{
			ID:           uuid.NewString(),
			Pos:          xiangqi.NewInitialPosition(),
			OpponentKind: opponent.Kind(),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		opponent: opponent,
	}

	m.mu.Lock()
	m.games[e.state.ID] = e
	n := len(m.games)
	m.mu.Unlock()

	m.log.Info().
		Str("game", e.state.ID).
		Str("opponent", string(opponent.Kind())).
		Int("games", n).
		Msg("game created")
	return e.state
}

func (m *Manager) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return e, nil
}

func (m *Manager) Get(id string) (GameState, error) {
	e, err := m.lookup(id)
	if err != nil {
		return GameState{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, nil
}

// Play 走人类的一步，必须是当前局面的合法着法之一
func (m *Manager) Play(id string, mv xiangqi.Move) (GameState, error) {
	e, err := m.lookup(id)
	if err != nil {
		return GameState{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Pos.IsLegal(mv) {
		return e.state, fmt.Errorf("%w: %v", ErrIllegalMove, mv)
	}
	next, err := e.state.Pos.ApplyMove(mv)
	if err != nil {
		return e.state, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	e.state.Pos = next
	e.state.UpdatedAt = time.Now()
	return e.state, nil
}

// AIMove 让这局的 opponent 替轮到的一方走一步。
// 无着可走时返回 HadLegalMoves=false 的 Trace，局面不变。
func (m *Manager) AIMove(id string) (GameState, agent.Trace, error) {
	e, err := m.lookup(id)
	if err != nil {
		return GameState{}, agent.Trace{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	tr := e.opponent.SelectMoveWithTrace(e.state.Pos)
	if !tr.HadLegalMoves {
		m.log.Info().Str("game", id).Str("side", e.state.Pos.SideToMove().String()).Msg("no legal moves")
		return e.state, tr, nil
	}
	next, err := e.state.Pos.ApplyMove(tr.Move)
	if err != nil {
		return e.state, tr, err
	}
	e.state.Pos = next
	e.state.UpdatedAt = time.Now()
	return e.state, tr, nil
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.games, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
