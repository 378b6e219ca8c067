package mcp

import (
	"context"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/wricardo/focus-game/game/engine"
	"github.com/wricardo/focus-game/game/service"
)

// Server exposes a GameService as MCP tools
type Server struct {
	svc       service.GameService
	logger    *zap.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server backed by svc
func NewServer(svc service.GameService, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		svc:    svc,
		logger: logger,
	}

	s.initMCPServer(version)
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer(version string) {
	s.mcpServer = server.NewMCPServer(
		"Focus",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Focus (Domination) - MCP Interface

Two players move stacks of pieces on a 6x6 board. Capture enough of your
opponent's pieces to win.

AVAILABLE TOOLS:
- new_game: Start a game between two named players with distinct colors
- list_games: List all active games
- delete_game: End and remove a game
- game_state: Board, turn, reserves and captures of a game
- move_piece: Move the top pieces of a stack in a straight line
- reserved_move: Place one piece from your reserve on any space
- show_pieces: Stack at a position, bottom to top
- show_reserve / show_captured: A player's counters
- move_history: Applied moves, newest first
- list_configs: Available rules presets
- game_rules: Complete rules

Positions are [row, col] pairs, each from 0 to 5.`),
	)

	// Register all tools
	s.registerTools()
}

// GetMCPServer returns the underlying MCP server
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin/stdout until the input closes
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

func gameIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Game ID returned by new_game",
	}
}

func playerProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func positionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description + " as [row, col]",
		"items":       map[string]interface{}{"type": "integer", "minimum": 0, "maximum": engine.BoardSize - 1},
		"minItems":    2,
		"maxItems":    2,
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Game management
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game. The first player owns the cells of the standard layout marked for player A.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_a":       playerProperty("Name of the first player"),
				"player_a_color": playerProperty("Color of the first player"),
				"player_b":       playerProperty("Name of the second player"),
				"player_b_color": playerProperty("Color of the second player"),
				"config": map[string]interface{}{
					"type":        "string",
					"description": "Rules preset from list_configs (optional)",
				},
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Custom game ID (optional, generated when empty)",
				},
			},
			Required: []string{"player_a", "player_a_color", "player_b", "player_b_color"},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListGames)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_game",
		Description: "End and remove a game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameIDProperty()},
			Required:   []string{"game_id"},
		},
	}, s.handleDeleteGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, whose turn it is, and each player's reserve and captures",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"game_id": gameIDProperty()},
			Required:   []string{"game_id"},
		},
	}, s.handleGameState)

	// Moves
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move_piece",
		Description: "Move the top count pieces of a stack you control exactly count spaces up, down, left or right",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
				"player":  playerProperty("Name of the moving player"),
				"from":    positionProperty("Origin space"),
				"to":      positionProperty("Destination space"),
				"count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of pieces to move, equal to the distance",
					"minimum":     1,
				},
			},
			Required: []string{"game_id", "player", "from", "to", "count"},
		},
	}, s.handleMovePiece)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reserved_move",
		Description: "Place one piece from your reserve on any space",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
				"player":  playerProperty("Name of the moving player"),
				"to":      positionProperty("Destination space"),
			},
			Required: []string{"game_id", "player", "to"},
		},
	}, s.handleReservedMove)

	// Queries
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "show_pieces",
		Description: "Show the stack at a position, bottom to top",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id":  gameIDProperty(),
				"position": positionProperty("Space to inspect"),
			},
			Required: []string{"game_id", "position"},
		},
	}, s.handleShowPieces)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "show_reserve",
		Description: "Show how many pieces a player holds in reserve",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
				"player":  playerProperty("Player name"),
			},
			Required: []string{"game_id", "player"},
		},
	}, s.handleShowReserve)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "show_captured",
		Description: "Show how many opponent pieces a player has captured",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
				"player":  playerProperty("Player name"),
			},
			Required: []string{"game_id", "player"},
		},
	}, s.handleShowCaptured)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the applied moves of a game with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": gameIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Moves per page (default 20, max 100)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"description": "desc (newest first, default) or asc",
					"enum":        []string{"desc", "asc"},
				},
			},
			Required: []string{"game_id"},
		},
	}, s.handleMoveHistory)

	// Info
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available rules presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListConfigs)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the complete rules of Focus",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameRules)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// intArg reads a whole number in the int32 range; JSON numbers arrive as
// float64
func intArg(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return n, true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// positionArg reads a [row, col] pair
func positionArg(args map[string]interface{}, key string) (engine.Position, error) {
	raw, ok := args[key].([]interface{})
	if !ok || len(raw) != 2 {
		return engine.Position{}, fmt.Errorf("%s must be a [row, col] array", key)
	}
	row, okRow := intArg(raw[0])
	col, okCol := intArg(raw[1])
	if !okRow || !okCol {
		return engine.Position{}, fmt.Errorf("%s must contain two integers", key)
	}
	return engine.Position{Row: row, Col: col}, nil
}

// errorResult reports a failed call. Rule violations use their player-facing text.
func (s *Server) errorResult(tool string, err error) *mcp.CallToolResult {
	if engine.IsRuleViolation(err) {
		return mcp.NewToolResultError(engine.StatusText(err))
	}
	s.logger.Debug("tool call failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	req := service.CreateGameRequest{}
	req.PlayerA.Name, _ = args["player_a"].(string)
	req.PlayerA.Color, _ = args["player_a_color"].(string)
	req.PlayerB.Name, _ = args["player_b"].(string)
	req.PlayerB.Color, _ = args["player_b_color"].(string)
	req.Config, _ = args["config"].(string)
	req.ID, _ = args["game_id"].(string)

	info, err := s.svc.CreateGame(ctx, req)
	if err != nil {
		return s.errorResult("new_game", err), nil
	}

	result := fmt.Sprintf("Created game: %s\nConfig: %s\n\n%s", info.ID, info.ConfigName, formatGameInfo(info))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	games, err := s.svc.ListGames(ctx)
	if err != nil {
		return s.errorResult("list_games", err), nil
	}

	result := fmt.Sprintf("Active Games (%d):\n\n", len(games))
	for _, g := range games {
		result += formatGameLine(g) + "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleDeleteGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gameID, _ := arguments(request)["game_id"].(string)

	if err := s.svc.DeleteGame(ctx, gameID); err != nil {
		return s.errorResult("delete_game", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted game: %s", gameID)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gameID, _ := arguments(request)["game_id"].(string)

	info, err := s.svc.GetGame(ctx, gameID)
	if err != nil {
		return s.errorResult("game_state", err), nil
	}
	return mcp.NewToolResultText(formatGameInfo(info)), nil
}

func (s *Server) handleMovePiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)
	player, _ := args["player"].(string)

	from, err := positionArg(args, "from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := positionArg(args, "to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count, ok := intArg(args["count"])
	if !ok {
		return mcp.NewToolResultError("count must be an integer"), nil
	}

	result, err := s.svc.MovePiece(ctx, gameID, player, from, to, count)
	if err != nil {
		return s.errorResult("move_piece", err), nil
	}
	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (s *Server) handleReservedMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)
	player, _ := args["player"].(string)

	to, err := positionArg(args, "to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.ReservedMove(ctx, gameID, player, to)
	if err != nil {
		return s.errorResult("reserved_move", err), nil
	}
	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (s *Server) handleShowPieces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)

	pos, err := positionArg(args, "position")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pieces, err := s.svc.ShowPieces(ctx, gameID, pos)
	if err != nil {
		return s.errorResult("show_pieces", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s", pos, formatStack(pieces))), nil
}

func (s *Server) handleShowReserve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)
	player, _ := args["player"].(string)

	n, err := s.svc.ShowReserve(ctx, gameID, player)
	if err != nil {
		return s.errorResult("show_reserve", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s reserve: %d", player, n)), nil
}

func (s *Server) handleShowCaptured(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)
	player, _ := args["player"].(string)

	n, err := s.svc.ShowCaptured(ctx, gameID, player)
	if err != nil {
		return s.errorResult("show_captured", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s captured: %d", player, n)), nil
}

func (s *Server) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)

	opts := service.HistoryOptions{}
	if page, ok := intArg(args["page"]); ok {
		opts.Page = page
	}
	if limit, ok := intArg(args["limit"]); ok {
		opts.Limit = limit
	}
	opts.Order, _ = args["order"].(string)
	if opts.Order != "" && opts.Order != "asc" && opts.Order != "desc" {
		return mcp.NewToolResultError(`order must be "asc" or "desc"`), nil
	}

	history, err := s.svc.GetHistory(ctx, gameID, opts)
	if err != nil {
		return s.errorResult("move_history", err), nil
	}
	return mcp.NewToolResultText(formatHistory(history)), nil
}

func (s *Server) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configs, err := s.svc.ListConfigs(ctx)
	if err != nil {
		return s.errorResult("list_configs", err), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Stack height: %d, Captures to win: %d\n\n",
			config.ConfigID, config.Name, config.Description,
			config.Rules.MaxStackHeight, config.Rules.CapturesToWin)
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(rulesText), nil
}
