// Package mcp exposes Focus games to AI agents over the Model Context Protocol.
//
// MCP Tools:
//   - new_game: Start a game between two players with distinct colors
//   - list_games / delete_game: Manage active games
//   - game_state: Board, turn, reserves and captures
//   - move_piece / reserved_move: Play a turn
//   - show_pieces / show_reserve / show_captured: Queries
//   - move_history: Applied moves with pagination
//   - list_configs: Available rules presets
//   - game_rules: Complete rules text
//
// Positions are passed as [row, col] arrays. Rejected moves are not tool
// errors: the result reports the rule that was broken together with the
// unchanged game state, so an agent can correct itself.
//
// Usage:
//
//	server := mcp.NewServer(gameService, version, logger)
//	if err := server.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
