package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/focus-game/game/engine"
	"github.com/wricardo/focus-game/game/service"
)

const rulesText = `Focus (Domination) - Complete Rules

OBJECTIVE:
Capture enough of your opponent's pieces. The standard rules need 6 captures.

SETUP:
• The 6x6 board starts with one piece on every space, 18 per player
• Rows alternate in pairs between the two colors
• The turn marker is unset until someone moves; either player may open

MOVING A STACK:
• You control a stack when its top piece is your color
• Move the top N pieces of a stack you control exactly N spaces
• Moves go straight up, down, left or right, never diagonally
• N may not exceed the height of the stack
• The moved pieces keep their order and land on top of the destination

OVERFLOW:
• A stack may hold at most 5 pieces under the standard rules
• Extra pieces are removed from the bottom of the stack
• Your own removed pieces go to your reserve
• Opponent pieces removed are captured by you

RESERVE MOVES:
• Instead of moving a stack, place one reserve piece on any space
• Placement counts as your turn and can overflow the target stack

TURNS:
• Players alternate; a rejected move does not use up your turn
• The game ends as soon as a player reaches the capture target

POSITIONS:
• Positions are [row, col] pairs from [0, 0] to [5, 5]
• show_pieces lists a stack bottom to top

MESSAGES:
• "Successfully moved" - the move was applied
• "<name> Wins" - the move won the game
• "Not your turn", "Invalid location", "Invalid number of pieces",
  "No pieces in reserve", "Unknown player", "Game is over" - the move was rejected`

// formatStack renders a stack bottom to top
func formatStack(pieces []engine.Color) string {
	parts := make([]string, 0, len(pieces))
	for _, p := range pieces {
		parts = append(parts, string(p))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func boardSymbols(info *service.GameInfo) map[engine.Color]string {
	if len(info.Players) != 2 {
		return map[engine.Color]string{}
	}
	return engine.ColorSymbols(info.Players[0].Color, info.Players[1].Color)
}

// formatGameLine is the one-line summary used by list_games
func formatGameLine(info *service.GameInfo) string {
	names := make([]string, 0, len(info.Players))
	for _, p := range info.Players {
		names = append(names, p.Label)
	}

	status := "waiting for first move"
	switch {
	case info.GameOver:
		status = "won by " + info.Winner
	case info.CurrentTurn != "":
		status = "turn: " + info.CurrentTurn
	}
	return fmt.Sprintf("• %s [%s] %s - %d moves, %s",
		info.ID, info.ConfigName, strings.Join(names, " vs "), info.MoveCount, status)
}

// formatGameInfo renders the full state of a game
func formatGameInfo(info *service.GameInfo) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Game %s\n", info.ID)
	fmt.Fprintf(&sb, "Rules: stacks of %d, %d captures to win\n",
		info.Rules.MaxStackHeight, info.Rules.CapturesToWin)

	switch {
	case info.GameOver:
		fmt.Fprintf(&sb, "GAME OVER - winner: %s\n", info.Winner)
	case info.CurrentTurn == "":
		sb.WriteString("Turn: either player may open\n")
	default:
		fmt.Fprintf(&sb, "Turn: %s\n", info.CurrentTurn)
	}
	fmt.Fprintf(&sb, "Moves: %d\n\n", info.MoveCount)

	symbols := boardSymbols(info)
	sb.WriteString(engine.RenderBoard(info.Board, symbols, info.Rules.MaxStackHeight))
	sb.WriteString("\n")

	for _, p := range info.Players {
		fmt.Fprintf(&sb, "%s = %s (%s): reserved %d, captured %d\n",
			symbols[p.Color], p.Label, p.Color, p.Reserved, p.Captured)
	}
	return sb.String()
}

// formatMoveResult renders the outcome of move_piece or reserved_move
func formatMoveResult(result *service.MoveResult) string {
	var sb strings.Builder

	if !result.Success {
		fmt.Fprintf(&sb, "✗ %s\n", result.Message)
	} else {
		fmt.Fprintf(&sb, "✓ %s\n", result.Message)
		for _, event := range result.Events {
			fmt.Fprintf(&sb, "  - %s\n", event.Message)
		}
	}

	if result.Game != nil {
		sb.WriteString("\n")
		sb.WriteString(formatGameInfo(result.Game))
	}
	return sb.String()
}

func formatMove(m engine.Move) string {
	var action string
	if m.Kind == engine.KindReserve {
		action = fmt.Sprintf("%s places a reserve piece on %s", m.Player, m.To)
	} else {
		from := "?"
		if m.From != nil {
			from = m.From.String()
		}
		action = fmt.Sprintf("%s moves %d %s->%s", m.Player, m.Count, from, m.To)
	}
	if m.Reserved > 0 || m.Captured > 0 {
		action += fmt.Sprintf(" (reserved %d, captured %d)", m.Reserved, m.Captured)
	}
	if m.Status == engine.StatusWon {
		action += " - WIN"
	}
	return action
}

// formatHistory renders one page of move history
func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	if len(history.Moves) == 0 {
		return result + "No moves yet.\n"
	}

	for _, move := range history.Moves {
		result += fmt.Sprintf("%d. %s\n", move.Number, formatMove(move))
	}

	if history.HasPrevious || history.HasNext {
		result += "\n"
		if history.HasPrevious {
			result += fmt.Sprintf("Previous: page %d\n", history.Page-1)
		}
		if history.HasNext {
			result += fmt.Sprintf("Next: page %d\n", history.Page+1)
		}
	}
	return result
}
