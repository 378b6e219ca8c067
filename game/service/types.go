package service

import (
	"time"

	"github.com/wricardo/focus-game/game/engine"
)

// CreateGameRequest describes a new game
type CreateGameRequest struct {
	ID      string            `json:"id,omitempty"` // generated when empty
	PlayerA engine.PlayerSpec `json:"player_a"`
	PlayerB engine.PlayerSpec `json:"player_b"`
	Config  string            `json:"config,omitempty"` // rules preset, default when empty
}

// Board is a snapshot of every stack, bottom to top
type Board = [engine.BoardSize][engine.BoardSize][]engine.Color

// PlayerInfo is a snapshot of one player
type PlayerInfo struct {
	Name     string       `json:"name"`
	Label    string       `json:"label"`
	Color    engine.Color `json:"color"`
	Reserved int          `json:"reserved"`
	Captured int          `json:"captured"`
}

// GameInfo provides information about a game session
type GameInfo struct {
	ID             string       `json:"id"`
	ConfigName     string       `json:"config_name"`
	Rules          engine.Rules `json:"rules"`
	Players        []PlayerInfo `json:"players"`
	CurrentTurn    string       `json:"current_turn,omitempty"`
	Winner         string       `json:"winner,omitempty"`
	GameOver       bool         `json:"game_over"`
	MoveCount      int          `json:"move_count"`
	Board          Board        `json:"board"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
}

// MoveResult contains the result of a move operation. Rule violations are
// reported through Success and Message, not as a returned error.
type MoveResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Move    *engine.Move `json:"move,omitempty"`
	Events  []GameEvent  `json:"events,omitempty"`
	Game    *GameInfo    `json:"game"`

	// Err is the rule violation behind a failed move
	Err error `json:"-"`
}

// Event types
const (
	EventMove    = "move"
	EventReserve = "reserve"
	EventCapture = "capture"
	EventWin     = "win"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.Move `json:"moves"`
	TotalMoves  int           `json:"total_moves"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	TotalPages  int           `json:"total_pages"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

// ConfigInfo describes a rules preset
type ConfigInfo struct {
	Filename    string       `json:"filename,omitempty"`
	ConfigID    string       `json:"config_id"` // The identifier to use for game creation
	Name        string       `json:"name"`      // Display name
	Description string       `json:"description"`
	Rules       engine.Rules `json:"rules"`
}
