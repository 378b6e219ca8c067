package engine

import "fmt"

// findPlayer resolves a name case-insensitively, or returns nil
func (g *Game) findPlayer(name string) *Player {
	key := normalize(name)
	for _, p := range g.players {
		if p.name == key {
			return p
		}
	}
	return nil
}

// opponent returns the other player
func (g *Game) opponent(p *Player) *Player {
	if p == g.players[0] {
		return g.players[1]
	}
	return g.players[0]
}

// isCorrectTurn reports whether p may move now
func (g *Game) isCorrectTurn(p *Player) bool {
	return g.turn == nil || g.turn == p
}

// space assumes pos is valid
func (g *Game) space(pos Position) *Space {
	return g.board[pos.Row][pos.Col]
}

// validateLocation checks the shape of a stack move: both cells on the board,
// the mover's piece on top of the origin, a straight line, and a distance
// equal to the number of pieces moved.
func (g *Game) validateLocation(p *Player, from, to Position, count int) error {
	if !from.Valid() {
		return fmt.Errorf("%w: origin %s is off the board", ErrInvalidLocation, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: destination %s is off the board", ErrInvalidLocation, to)
	}

	top, ok := g.space(from).Top()
	if !ok {
		return fmt.Errorf("%w: origin %s is empty", ErrInvalidLocation, from)
	}
	if top != p.color {
		return fmt.Errorf("%w: origin %s is topped by %s", ErrInvalidLocation, from, top)
	}

	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col
	if (rowDiff != 0) == (colDiff != 0) {
		return fmt.Errorf("%w: %s to %s is not a straight move", ErrInvalidLocation, from, to)
	}

	if distance := abs(rowDiff) + abs(colDiff); distance != count {
		return fmt.Errorf("%w: moving %d pieces requires a distance of %d, got %d",
			ErrInvalidLocation, count, count, distance)
	}

	return nil
}

// transfer lifts the top n pieces of orig and sets them down on dest with
// their order kept, so the old top of orig becomes the new top of dest.
func transfer(orig, dest *Space, n int) {
	moved := orig.DrainFromTop(n)
	for i := len(moved) - 1; i >= 0; i-- {
		dest.Push(moved[i])
	}
}

// resolveOverflow trims dest back to the stack limit. Pieces of the mover's
// color go to the mover's reserve, all others are captured by the mover.
func (g *Game) resolveOverflow(dest *Space, p *Player) (reserved, captured int) {
	if dest.Len() <= g.rules.MaxStackHeight {
		return 0, 0
	}
	for _, piece := range dest.DrainFromBottomAbove(g.rules.MaxStackHeight) {
		if piece == p.color {
			p.addReserved()
			reserved++
		} else {
			p.addCaptured()
			captured++
		}
	}
	return reserved, captured
}

// hasWon checks the capture threshold for p
func (g *Game) hasWon(p *Player) bool {
	return p.captured >= g.rules.CapturesToWin
}

// finishMove runs the shared post-processing of both move kinds: overflow at
// the destination, the win check, the turn change and the history entry.
func (g *Game) finishMove(p *Player, kind MoveKind, from *Position, to Position, count int) *Move {
	reserved, captured := g.resolveOverflow(g.space(to), p)

	move := Move{
		Number:      len(g.history) + 1,
		Kind:        kind,
		Player:      p.name,
		Color:       p.color,
		From:        from,
		To:          to,
		Count:       count,
		Reserved:    reserved,
		Captured:    captured,
		Status:      StatusMoved,
		Timestamp:   g.now().Unix(),
		winnerLabel: p.label,
	}

	if g.hasWon(p) {
		g.winner = p
		move.Status = StatusWon
	} else {
		g.turn = g.opponent(p)
	}

	g.history = append(g.history, move)
	return &move
}
