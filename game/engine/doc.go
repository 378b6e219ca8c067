// Package engine provides the core rules for Focus (also sold as Domination).
//
// The engine package implements the game mechanics including:
//   - The 6x6 board of piece stacks and its fixed starting layout
//   - Move validation for stack moves and reserve placements
//   - Overflow resolution into reserved and captured pieces
//   - Turn management and win detection
//   - An in-memory move history
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by Game. A Space is the ordered stack of pieces on one cell,
// bottom to top. Player carries the identity and the reserved/captured
// counters of one participant; only the engine changes those counters.
//
// Usage:
//
//	game, err := engine.NewGame(
//		engine.PlayerSpec{Name: "PlayerA", Color: "Red"},
//		engine.PlayerSpec{Name: "PlayerB", Color: "Green"},
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	move, err := game.MovePiece("PlayerA", engine.Position{Row: 0, Col: 0}, engine.Position{Row: 0, Col: 1}, 1)
//	if err != nil {
//		fmt.Println(engine.StatusText(err))
//	}
//	fmt.Println(move.Message())
//
// Game Rules:
//
// A player may move the top n pieces of a stack whose top piece is their own
// color exactly n cells in a straight line, landing on any stack. When a stack
// grows past five pieces the extra pieces are removed from the bottom: pieces
// of the mover's color go to the mover's reserve, the rest are captured. A
// reserve piece can later be placed on any cell instead of a regular move. The
// first player to capture six pieces wins.
//
// Game is not safe for concurrent use; callers serialize access.
package engine
