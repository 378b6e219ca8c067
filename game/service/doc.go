// Package service provides the business logic layer for Focus games.
//
// The service package implements:
//   - Multi-game management keyed by game ID
//   - Rules preset selection
//   - Move processing with player-facing outcome messages
//   - Move history with pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles game creation, retrieval, and lifecycle.
// ConfigManager resolves rules presets by name.
//
// Architecture:
//
// The service layer sits between the callers (MCP tools, playbook runner,
// command line) and the game engine. Each Session owns one engine.Game and a
// mutex; every operation on a game runs inside Session.Do, so concurrent
// callers see moves applied one at a time.
//
// Rule violations are not errors at this layer: MovePiece and ReservedMove
// return a MoveResult with Success false and the message shown to players.
// Errors are reserved for unknown games and failed lookups.
//
// Usage:
//
//	sessions := session.NewManager(logger)
//	configs := config.NewBuiltinManager(logger)
//	svc := service.NewGameService(sessions, configs, logger)
//
//	info, err := svc.CreateGame(ctx, service.CreateGameRequest{
//		PlayerA: engine.PlayerSpec{Name: "PlayerA", Color: "Red"},
//		PlayerB: engine.PlayerSpec{Name: "PlayerB", Color: "Green"},
//	})
//	result, err := svc.MovePiece(ctx, info.ID, "PlayerA",
//		engine.Position{Row: 0, Col: 0}, engine.Position{Row: 0, Col: 1}, 1)
package service
