package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/focus-game/game/engine"
)

// ErrConfigNotFound is returned when a requested rules preset does not exist
var ErrConfigNotFound = errors.New("configuration not found")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	now      func() time.Time
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateGame starts a new game session
func (s *gameServiceImpl) CreateGame(ctx context.Context, req CreateGameRequest) (*GameInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := s.resolveConfig(req.Config)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create(req.ID, req.PlayerA, req.PlayerB, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.logger.Info("game created",
		zap.String("game_id", sess.ID),
		zap.String("config", cfg.ConfigID),
		zap.String("player_a", req.PlayerA.Name),
		zap.String("player_b", req.PlayerB.Name),
	)

	var info *GameInfo
	_ = sess.Do(func(g *engine.Game) error {
		info = newGameInfo(sess, g)
		return nil
	})
	return info, nil
}

// GetGame retrieves game information
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID string) (*GameInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.session(gameID)
	if err != nil {
		return nil, err
	}

	var info *GameInfo
	_ = sess.Do(func(g *engine.Game) error {
		info = newGameInfo(sess, g)
		return nil
	})
	return info, nil
}

// ListGames returns all active games
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*GameInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sessions := s.sessions.List()
	result := make([]*GameInfo, 0, len(sessions))

	for _, sess := range sessions {
		_ = sess.Do(func(g *engine.Game) error {
			result = append(result, newGameInfo(sess, g))
			return nil
		})
	}

	return result, nil
}

// DeleteGame removes a game session
func (s *gameServiceImpl) DeleteGame(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.sessions.Delete(gameID); err != nil {
		return err
	}
	s.logger.Info("game deleted", zap.String("game_id", gameID))
	return nil
}

// MovePiece moves a stack of pieces for a player
func (s *gameServiceImpl) MovePiece(ctx context.Context, gameID, player string, from, to engine.Position, count int) (*MoveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.session(gameID)
	if err != nil {
		return nil, err
	}

	var result *MoveResult
	err = sess.Do(func(g *engine.Game) error {
		// the caller may have given up while waiting for the lock
		if err := ctx.Err(); err != nil {
			return err
		}
		move, err := g.MovePiece(player, from, to, count)
		result = s.moveResult(sess, g, move, err)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logMove(gameID, player, result,
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Int("count", count),
	)
	return result, nil
}

// ReservedMove places one reserve piece for a player
func (s *gameServiceImpl) ReservedMove(ctx context.Context, gameID, player string, to engine.Position) (*MoveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.session(gameID)
	if err != nil {
		return nil, err
	}

	var result *MoveResult
	err = sess.Do(func(g *engine.Game) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		move, err := g.ReservedMove(player, to)
		result = s.moveResult(sess, g, move, err)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logMove(gameID, player, result, zap.Stringer("to", to))
	return result, nil
}

// ShowPieces returns the stack at pos, bottom to top
func (s *gameServiceImpl) ShowPieces(ctx context.Context, gameID string, pos engine.Position) ([]engine.Color, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.session(gameID)
	if err != nil {
		return nil, err
	}

	var pieces []engine.Color
	err = sess.Do(func(g *engine.Game) error {
		pieces, err = g.ShowPieces(pos)
		return err
	})
	return pieces, err
}

// ShowReserve returns a player's reserve count
func (s *gameServiceImpl) ShowReserve(ctx context.Context, gameID, player string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	sess, err := s.session(gameID)
	if err != nil {
		return 0, err
	}

	var n int
	err = sess.Do(func(g *engine.Game) error {
		n, err = g.ShowReserve(player)
		return err
	})
	return n, err
}

// ShowCaptured returns a player's capture count
func (s *gameServiceImpl) ShowCaptured(ctx context.Context, gameID, player string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	sess, err := s.session(gameID)
	if err != nil {
		return 0, err
	}

	var n int
	err = sess.Do(func(g *engine.Game) error {
		n, err = g.ShowCaptured(player)
		return err
	})
	return n, err
}

// GetHistory returns paginated move history
func (s *gameServiceImpl) GetHistory(ctx context.Context, gameID string, opts HistoryOptions) (*HistoryResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.session(gameID)
	if err != nil {
		return nil, err
	}

	var history []engine.Move
	_ = sess.Do(func(g *engine.Game) error {
		history = g.History()
		return nil
	})
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.Move{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns the available rules presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.configs.ListConfigs()
}

// session looks up a game and marks it as accessed
func (s *gameServiceImpl) session(gameID string) (*Session, error) {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game %q: %w", gameID, err)
	}
	_ = s.sessions.UpdateLastAccessed(gameID)
	return sess, nil
}

// resolveConfig loads a preset by name, or the default preset for ""
func (s *gameServiceImpl) resolveConfig(name string) (*ConfigInfo, error) {
	if name == "" {
		return s.configs.GetDefault(), nil
	}

	cfg, err := s.configs.LoadConfig(name)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config %s: %w", name, err)
	}

	// Provide helpful error message with available options
	available, listErr := s.configs.ListConfigs()
	if listErr == nil && len(available) > 0 {
		ids := make([]string, 0, len(available))
		for _, c := range available {
			ids = append(ids, c.ConfigID)
		}
		return nil, fmt.Errorf("config '%s' not found, available configs: %v: %w", name, ids, err)
	}
	return nil, fmt.Errorf("config '%s': %w", name, err)
}

// moveResult builds the outcome of a move attempt. Must be called inside
// Session.Do.
func (s *gameServiceImpl) moveResult(sess *Session, g *engine.Game, move *engine.Move, err error) *MoveResult {
	result := &MoveResult{Game: newGameInfo(sess, g)}
	if err != nil {
		result.Message = engine.StatusText(err)
		result.Err = err
		return result
	}

	result.Success = true
	result.Message = move.Message()
	result.Move = move
	result.Events = s.moveEvents(move)
	return result
}

// moveEvents describes what an applied move did
func (s *gameServiceImpl) moveEvents(move *engine.Move) []GameEvent {
	now := s.now()
	to := move.To
	var events []GameEvent

	switch move.Kind {
	case engine.KindReserve:
		events = append(events, GameEvent{
			Type:      EventReserve,
			Message:   fmt.Sprintf("%s placed a reserve piece on %s", move.Player, move.To),
			Timestamp: now,
			Position:  &to,
		})
	default:
		events = append(events, GameEvent{
			Type:      EventMove,
			Message:   fmt.Sprintf("%s moved %d from %s to %s", move.Player, move.Count, move.From, move.To),
			Timestamp: now,
			Position:  &to,
		})
	}

	if move.Captured > 0 || move.Reserved > 0 {
		events = append(events, GameEvent{
			Type:      EventCapture,
			Message:   fmt.Sprintf("%s captured %d and reserved %d", move.Player, move.Captured, move.Reserved),
			Timestamp: now,
			Position:  &to,
		})
	}

	if move.Status == engine.StatusWon {
		events = append(events, GameEvent{
			Type:      EventWin,
			Message:   move.Message(),
			Timestamp: now,
		})
	}

	return events
}

func (s *gameServiceImpl) logMove(gameID, player string, result *MoveResult, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("game_id", gameID),
		zap.String("player", player),
		zap.Bool("success", result.Success),
		zap.String("message", result.Message),
	}, fields...)

	switch {
	case !result.Success:
		s.logger.Debug("move rejected", fields...)
	case result.Move.Status == engine.StatusWon:
		s.logger.Info("game won", fields...)
	default:
		s.logger.Debug("move applied", fields...)
	}
}

// newGameInfo snapshots a session. Must be called inside Session.Do.
func newGameInfo(sess *Session, g *engine.Game) *GameInfo {
	info := &GameInfo{
		ID:             sess.ID,
		Rules:          g.Rules(),
		GameOver:       g.IsGameOver(),
		MoveCount:      len(g.History()),
		Board:          g.Board(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}
	if sess.Config != nil {
		info.ConfigName = sess.Config.ConfigID
	}

	for _, p := range g.Players() {
		info.Players = append(info.Players, PlayerInfo{
			Name:     p.Name(),
			Label:    p.Label(),
			Color:    p.Color(),
			Reserved: p.Reserved(),
			Captured: p.Captured(),
		})
	}
	if p, ok := g.CurrentTurn(); ok {
		info.CurrentTurn = p.Name()
	}
	if p, ok := g.Winner(); ok {
		info.Winner = p.Name()
	}

	return info
}
