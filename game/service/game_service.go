package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/focus-game/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Game Management
	CreateGame(ctx context.Context, req CreateGameRequest) (*GameInfo, error)
	GetGame(ctx context.Context, gameID string) (*GameInfo, error)
	ListGames(ctx context.Context) ([]*GameInfo, error)
	DeleteGame(ctx context.Context, gameID string) error

	// Game Operations
	MovePiece(ctx context.Context, gameID, player string, from, to engine.Position, count int) (*MoveResult, error)
	ReservedMove(ctx context.Context, gameID, player string, to engine.Position) (*MoveResult, error)

	// Queries
	ShowPieces(ctx context.Context, gameID string, pos engine.Position) ([]engine.Color, error)
	ShowReserve(ctx context.Context, gameID, player string) (int, error)
	ShowCaptured(ctx context.Context, gameID, player string) (int, error)
	GetHistory(ctx context.Context, gameID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, a, b engine.PlayerSpec, cfg *ConfigInfo) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles rules preset loading
type ConfigManager interface {
	LoadConfig(name string) (*ConfigInfo, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *ConfigInfo
}

// Session represents one running game. The game is only reachable
// through Do.
type Session struct {
	ID             string
	Config         *ConfigInfo
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu   sync.Mutex
	game *engine.Game
}

// NewSession wraps game in a session created at now
func NewSession(id string, game *engine.Game, cfg *ConfigInfo, now time.Time) *Session {
	return &Session{
		ID:             id,
		Config:         cfg,
		CreatedAt:      now,
		LastAccessedAt: now,
		game:           game,
	}
}

// Do runs fn with exclusive access to the session's game
func (s *Session) Do(fn func(g *engine.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// Touch records an access at t
func (s *Session) Touch(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastAccessedAt = t
}

// LastAccessed returns the time of the latest access
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastAccessedAt
}
