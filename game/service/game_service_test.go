package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/focus-game/game/engine"
	"github.com/wricardo/focus-game/game/service"
)

var errSessionNotFound = errors.New("session not found")

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, a, b engine.PlayerSpec, cfg *service.ConfigInfo) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	game, err := engine.NewGame(a, b, engine.WithRules(cfg.Rules))
	if err != nil {
		return nil, err
	}

	session := service.NewSession(id, game, cfg, time.Now())

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.Touch(time.Now())
		return nil
	}
	return errSessionNotFound
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*service.ConfigInfo
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*service.ConfigInfo{
			"standard": {
				ConfigID: "standard",
				Name:     "Standard",
				Rules:    engine.DefaultRules(),
			},
			"quick": {
				ConfigID: "quick",
				Name:     "Quick",
				Rules:    engine.Rules{MaxStackHeight: 5, CapturesToWin: 1},
			},
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*service.ConfigInfo, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, service.ErrConfigNotFound
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for _, config := range m.configs {
		result = append(result, config)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ConfigID < result[j].ConfigID })
	return result, nil
}

func (m *MockConfigManager) GetDefault() *service.ConfigInfo {
	return m.configs["standard"]
}

func pos(row, col int) engine.Position {
	return engine.Position{Row: row, Col: col}
}

func newTestService(t *testing.T) (service.GameService, *service.GameInfo) {
	t.Helper()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager(), nil)
	info, err := svc.CreateGame(context.Background(), service.CreateGameRequest{
		ID:      "g1",
		PlayerA: engine.PlayerSpec{Name: "PlayerA", Color: "Red"},
		PlayerB: engine.PlayerSpec{Name: "PlayerB", Color: "Green"},
	})
	require.NoError(t, err)
	return svc, info
}

// Test cases
func TestGameService_CreateGame(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager(), nil)

	tests := []struct {
		name       string
		configName string
		wantRules  engine.Rules
		wantErr    bool
	}{
		{
			name:       "create with default config",
			configName: "",
			wantRules:  engine.DefaultRules(),
		},
		{
			name:       "create with specific config",
			configName: "quick",
			wantRules:  engine.Rules{MaxStackHeight: 5, CapturesToWin: 1},
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.CreateGame(ctx, service.CreateGameRequest{
				PlayerA: engine.PlayerSpec{Name: "a", Color: "red"},
				PlayerB: engine.PlayerSpec{Name: "b", Color: "green"},
				Config:  tt.configName,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, service.ErrConfigNotFound)
				assert.Contains(t, err.Error(), "quick")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRules, info.Rules)
			assert.Len(t, info.Players, 2)
			assert.Empty(t, info.CurrentTurn, "no turn before the first move")
			assert.Equal(t, []engine.Color{"RED"}, info.Board[0][0])
		})
	}

	t.Run("invalid players", func(t *testing.T) {
		_, err := svc.CreateGame(ctx, service.CreateGameRequest{
			PlayerA: engine.PlayerSpec{Name: "a", Color: "red"},
			PlayerB: engine.PlayerSpec{Name: "A", Color: "green"},
		})
		assert.ErrorIs(t, err, engine.ErrDuplicatePlayer)
	})
}

func TestGameService_MovePiece(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	result, err := svc.MovePiece(ctx, info.ID, "PlayerA", pos(0, 0), pos(0, 1), 1)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Successfully moved", result.Message)
	require.NotNil(t, result.Move)
	assert.Equal(t, 1, result.Move.Number)
	require.Len(t, result.Events, 1)
	assert.Equal(t, service.EventMove, result.Events[0].Type)
	assert.Equal(t, "PLAYERB", result.Game.CurrentTurn)
	assert.Equal(t, []engine.Color{"RED", "RED"}, result.Game.Board[0][1])

	t.Run("rule violation is not an error", func(t *testing.T) {
		result, err := svc.MovePiece(ctx, info.ID, "PlayerA", pos(0, 1), pos(0, 2), 1)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Not your turn", result.Message)
		assert.ErrorIs(t, result.Err, engine.ErrWrongTurn)
		assert.Nil(t, result.Move)
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := svc.MovePiece(ctx, "missing", "PlayerA", pos(0, 0), pos(0, 1), 1)
		assert.ErrorIs(t, err, errSessionNotFound)
	})
}

func TestGameService_ReservedMove(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	result, err := svc.ReservedMove(ctx, info.ID, "PlayerA", pos(0, 0))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No pieces in reserve", result.Message)

	_, err = svc.ReservedMove(ctx, "missing", "PlayerA", pos(0, 0))
	assert.Error(t, err)
}

func TestGameService_QuickWin(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager(), nil)
	info, err := svc.CreateGame(ctx, service.CreateGameRequest{
		PlayerA: engine.PlayerSpec{Name: "PlayerA", Color: "Red"},
		PlayerB: engine.PlayerSpec{Name: "PlayerB", Color: "Green"},
		Config:  "quick",
	})
	require.NoError(t, err)

	steps := []struct {
		player   string
		from, to engine.Position
	}{
		{"PlayerA", pos(0, 1), pos(0, 2)}, // (0,2) = G R
		{"PlayerB", pos(1, 1), pos(1, 2)}, // (1,2) = R G
		{"PlayerA", pos(0, 0), pos(1, 0)},
		{"PlayerB", pos(0, 3), pos(0, 2)}, // (0,2) = G R G
		{"PlayerA", pos(1, 0), pos(0, 0)},
		{"PlayerB", pos(1, 2), pos(0, 2)}, // (0,2) = G R G G
		{"PlayerA", pos(1, 2), pos(0, 2)}, // (0,2) = G R G G R
		{"PlayerB", pos(1, 4), pos(1, 5)},
		{"PlayerA", pos(1, 3), pos(0, 3)},
		{"PlayerB", pos(1, 5), pos(1, 4)},
	}
	for i, s := range steps {
		result, err := svc.MovePiece(ctx, info.ID, s.player, s.from, s.to, 1)
		require.NoError(t, err)
		require.True(t, result.Success, "step %d: %s", i, result.Message)
		require.False(t, result.Game.GameOver)
	}

	// Sixth piece pushes the bottom GREEN off the stack
	result, err := svc.MovePiece(ctx, info.ID, "PlayerA", pos(0, 3), pos(0, 2), 1)
	require.NoError(t, err)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "PlayerA Wins", result.Message)
	assert.Equal(t, 1, result.Move.Captured)

	types := make([]string, 0, len(result.Events))
	for _, e := range result.Events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{service.EventMove, service.EventCapture, service.EventWin}, types)
	assert.True(t, result.Game.GameOver)
	assert.Equal(t, "PLAYERA", result.Game.Winner)

	result, err = svc.MovePiece(ctx, info.ID, "PlayerB", pos(2, 2), pos(2, 3), 1)
	require.NoError(t, err)
	assert.Equal(t, "Game is over", result.Message)
}

func TestGameService_Queries(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	pieces, err := svc.ShowPieces(ctx, info.ID, pos(0, 2))
	require.NoError(t, err)
	assert.Equal(t, []engine.Color{"GREEN"}, pieces)

	_, err = svc.ShowPieces(ctx, info.ID, pos(6, 0))
	assert.ErrorIs(t, err, engine.ErrInvalidPosition)

	reserve, err := svc.ShowReserve(ctx, info.ID, "playera")
	require.NoError(t, err)
	assert.Zero(t, reserve)

	_, err = svc.ShowCaptured(ctx, info.ID, "PlayerC")
	assert.ErrorIs(t, err, engine.ErrUnknownPlayer)

	_, err = svc.ShowReserve(ctx, "missing", "PlayerA")
	assert.ErrorIs(t, err, errSessionNotFound)
}

func TestGameService_GetHistory(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	moves := []struct {
		player   string
		from, to engine.Position
	}{
		{"PlayerA", pos(0, 0), pos(0, 1)},
		{"PlayerB", pos(0, 2), pos(0, 3)},
		{"PlayerA", pos(2, 0), pos(2, 1)},
	}
	for _, m := range moves {
		result, err := svc.MovePiece(ctx, info.ID, m.player, m.from, m.to, 1)
		require.NoError(t, err)
		require.True(t, result.Success)
	}

	tests := []struct {
		name        string
		opts        service.HistoryOptions
		wantNumbers []int
		wantPages   int
		wantNext    bool
	}{
		{"defaults are newest first", service.HistoryOptions{}, []int{3, 2, 1}, 1, false},
		{"ascending", service.HistoryOptions{Order: "asc"}, []int{1, 2, 3}, 1, false},
		{"first page", service.HistoryOptions{Limit: 2, Order: "asc"}, []int{1, 2}, 2, true},
		{"second page desc", service.HistoryOptions{Page: 2, Limit: 2}, []int{1}, 2, false},
		{"past the end", service.HistoryOptions{Page: 5, Limit: 2}, []int{}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetHistory(ctx, info.ID, tt.opts)
			require.NoError(t, err)

			numbers := []int{}
			for _, m := range resp.Moves {
				numbers = append(numbers, m.Number)
			}
			assert.Equal(t, tt.wantNumbers, numbers)
			assert.Equal(t, 3, resp.TotalMoves)
			assert.Equal(t, tt.wantPages, resp.TotalPages)
			assert.Equal(t, tt.wantNext, resp.HasNext)
		})
	}
}

func TestGameService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	games, err := svc.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, info.ID, games[0].ID)
	assert.Equal(t, "standard", games[0].ConfigName)

	got, err := svc.GetGame(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, info.ID, got.ID)

	require.NoError(t, svc.DeleteGame(ctx, info.ID))
	_, err = svc.GetGame(ctx, info.ID)
	assert.ErrorIs(t, err, errSessionNotFound)
	assert.Error(t, svc.DeleteGame(ctx, info.ID))

	configs, err := svc.ListConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, configs, 2)
}

func TestGameService_CancelledContext(t *testing.T) {
	svc, info := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CreateGame(ctx, service.CreateGameRequest{
		ID:      "g2",
		PlayerA: engine.PlayerSpec{Name: "PlayerA", Color: "Red"},
		PlayerB: engine.PlayerSpec{Name: "PlayerB", Color: "Green"},
	})
	assert.ErrorIs(t, err, context.Canceled)

	result, err := svc.MovePiece(ctx, info.ID, "PlayerA", pos(0, 0), pos(0, 1), 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)

	_, err = svc.ReservedMove(ctx, info.ID, "PlayerA", pos(0, 0))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = svc.GetGame(ctx, info.ID)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.ListGames(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.ShowPieces(ctx, info.ID, pos(0, 0))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.ShowReserve(ctx, info.ID, "PlayerA")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.ShowCaptured(ctx, info.ID, "PlayerA")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.GetHistory(ctx, info.ID, service.HistoryOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.ListConfigs(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, svc.DeleteGame(ctx, info.ID), context.Canceled)

	// nothing was applied or removed
	got, err := svc.GetGame(context.Background(), info.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MoveCount)
	assert.Empty(t, got.CurrentTurn)
	assert.Equal(t, []engine.Color{"RED"}, got.Board[0][0])

	games, err := svc.ListGames(context.Background())
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestNewSession(t *testing.T) {
	game, err := engine.NewGame(
		engine.PlayerSpec{Name: "PlayerA", Color: "Red"},
		engine.PlayerSpec{Name: "PlayerB", Color: "Green"},
	)
	require.NoError(t, err)

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	sess := service.NewSession("s1", game, nil, now)
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, now, sess.CreatedAt)
	assert.Equal(t, now, sess.LastAccessed())

	var got *engine.Game
	require.NoError(t, sess.Do(func(g *engine.Game) error {
		got = g
		return nil
	}))
	assert.Same(t, game, got)

	boom := errors.New("boom")
	assert.ErrorIs(t, sess.Do(func(*engine.Game) error { return boom }), boom)
}
