package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Moves
	MovePiece(playerName string, from, to Position, count int) (*Move, error)
	ReservedMove(playerName string, to Position) (*Move, error)

	// Queries
	ShowPieces(pos Position) ([]Color, error)
	ShowReserve(playerName string) (int, error)
	ShowCaptured(playerName string) (int, error)

	// Game state
	CurrentTurn() (Player, bool)
	Winner() (Player, bool)
	IsGameOver() bool
	Players() [2]Player
	Board() [BoardSize][BoardSize][]Color
	PieceCount() int
	Rules() Rules

	// History
	History() []Move
	LastMove() *Move
}

// Game implements the Engine interface
type Game struct {
	board   [BoardSize][BoardSize]*Space
	players [2]*Player
	turn    *Player // nil until the first successful move
	winner  *Player
	rules   Rules
	history []Move
	now     func() time.Time
}

var _ Engine = (*Game)(nil)

// NewGame creates a game between two players with the standard starting
// layout. The first spec's color fills the cells marked for player A.
func NewGame(a, b PlayerSpec, opts ...Option) (*Game, error) {
	if err := ValidatePlayers(a, b); err != nil {
		return nil, err
	}

	g := &Game{
		players: [2]*Player{newPlayer(a), newPlayer(b)},
		rules:   DefaultRules(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := ValidateRules(g.rules); err != nil {
		return nil, err
	}

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			g.board[row][col] = NewSpace(g.players[startingOwner[row][col]].color)
		}
	}

	return g, nil
}

// MovePiece moves the top count pieces from one space to another.
// On any error the game is left unchanged.
func (g *Game) MovePiece(playerName string, from, to Position, count int) (*Move, error) {
	player := g.findPlayer(playerName)
	if player == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, playerName)
	}
	if g.winner != nil {
		return nil, fmt.Errorf("%w: %s already won", ErrGameOver, g.winner.name)
	}
	if !g.isCorrectTurn(player) {
		return nil, fmt.Errorf("%w: waiting for %s", ErrWrongTurn, g.turn.name)
	}
	if err := g.validateLocation(player, from, to, count); err != nil {
		return nil, err
	}

	orig := g.space(from)
	if count > orig.Len() {
		return nil, fmt.Errorf("%w: %d requested, %d on %s", ErrInvalidPieceCount, count, orig.Len(), from)
	}

	dest := g.space(to)
	transfer(orig, dest, count)

	origin := from
	return g.finishMove(player, KindMove, &origin, to, count), nil
}

// ReservedMove places one piece from the player's reserve on a space
func (g *Game) ReservedMove(playerName string, to Position) (*Move, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %s is off the board", ErrInvalidLocation, to)
	}

	player := g.findPlayer(playerName)
	if player == nil {
		return nil, fmt.Errorf("%w: unknown player %q", ErrNoReserve, playerName)
	}
	if player.reserved == 0 {
		return nil, fmt.Errorf("%w: %s has none", ErrNoReserve, player.name)
	}
	if g.winner != nil {
		return nil, fmt.Errorf("%w: %s already won", ErrGameOver, g.winner.name)
	}
	if !g.isCorrectTurn(player) {
		return nil, fmt.Errorf("%w: waiting for %s", ErrWrongTurn, g.turn.name)
	}

	g.space(to).Push(player.color)
	player.takeReserved()

	return g.finishMove(player, KindReserve, nil, to, 1), nil
}

// ShowPieces returns the stack at pos, bottom-to-top
func (g *Game) ShowPieces(pos Position) ([]Color, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	return g.space(pos).Pieces(), nil
}

// ShowReserve returns the reserved piece count of a player
func (g *Game) ShowReserve(playerName string) (int, error) {
	player := g.findPlayer(playerName)
	if player == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlayer, playerName)
	}
	return player.reserved, nil
}

// ShowCaptured returns the captured piece count of a player
func (g *Game) ShowCaptured(playerName string) (int, error) {
	player := g.findPlayer(playerName)
	if player == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlayer, playerName)
	}
	return player.captured, nil
}

// CurrentTurn returns the player who must move next. ok is false before the
// first move, when either player may start.
func (g *Game) CurrentTurn() (Player, bool) {
	if g.turn == nil {
		return Player{}, false
	}
	return *g.turn, true
}

// Winner returns the winning player once the game is over
func (g *Game) Winner() (Player, bool) {
	if g.winner == nil {
		return Player{}, false
	}
	return *g.winner, true
}

// IsGameOver returns whether a player has won
func (g *Game) IsGameOver() bool {
	return g.winner != nil
}

// Players returns copies of both players in construction order
func (g *Game) Players() [2]Player {
	return [2]Player{*g.players[0], *g.players[1]}
}

// Board returns a copy of every stack on the board
func (g *Game) Board() [BoardSize][BoardSize][]Color {
	var out [BoardSize][BoardSize][]Color
	for row := range g.board {
		for col := range g.board[row] {
			out[row][col] = g.board[row][col].Pieces()
		}
	}
	return out
}

// PieceCount returns the pieces on the board plus every player's reserved
// and captured pieces. It equals InitialPieceCount for the whole game.
func (g *Game) PieceCount() int {
	total := 0
	for _, row := range g.board {
		for _, space := range row {
			total += space.Len()
		}
	}
	for _, p := range g.players {
		total += p.reserved + p.captured
	}
	return total
}

// Rules returns the rules this game is played with
func (g *Game) Rules() Rules {
	return g.rules
}

// History returns every applied move in order
func (g *Game) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

// LastMove returns the last move made, or nil if no moves
func (g *Game) LastMove() *Move {
	if len(g.history) == 0 {
		return nil
	}
	last := g.history[len(g.history)-1]
	return &last
}
