package engine

import "fmt"

// Color is a piece token. It always holds the upper-cased color of one of
// the two players.
type Color string

const (
	// BoardSize is the number of rows and columns on the board
	BoardSize = 6

	// Rule defaults and validation bounds
	DefaultMaxStackHeight = 5
	DefaultCapturesToWin  = 6
	MinRuleValue          = 1
	MaxRuleValue          = BoardSize * BoardSize
)

// Position represents row,col coordinates on the board
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether both coordinates are on the board
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// MoveKind distinguishes stack moves from reserve placements
type MoveKind string

const (
	KindMove    MoveKind = "move"
	KindReserve MoveKind = "reserve"
)

// Status is the outcome of an applied move
type Status string

const (
	StatusMoved Status = "moved"
	StatusWon   Status = "won"
)

// Move records one applied move. Failed moves are never recorded.
type Move struct {
	Number    int       `json:"number"`
	Kind      MoveKind  `json:"kind"`
	Player    string    `json:"player"`
	Color     Color     `json:"color"`
	From      *Position `json:"from,omitempty"` // nil for reserve placements
	To        Position  `json:"to"`
	Count     int       `json:"count"`
	Reserved  int       `json:"reserved"` // own pieces sent to reserve by overflow
	Captured  int       `json:"captured"` // opponent pieces captured by overflow
	Status    Status    `json:"status"`
	Timestamp int64     `json:"timestamp"`

	winnerLabel string
}

// Message returns the user-facing text for the move
func (m *Move) Message() string {
	if m.Status == StatusWon {
		return m.winnerLabel + " Wins"
	}
	return "Successfully moved"
}

// PlayerSpec is the caller-supplied identity of a player at construction
type PlayerSpec struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
