package engine

import (
	"fmt"
	"strings"
	"time"
)

// Rules holds the tunable thresholds of a game
type Rules struct {
	MaxStackHeight int `json:"max_stack_height"`
	CapturesToWin  int `json:"captures_to_win"`
}

// DefaultRules returns the standard Focus rules: stacks of at most five
// pieces and six captures to win.
func DefaultRules() Rules {
	return Rules{
		MaxStackHeight: DefaultMaxStackHeight,
		CapturesToWin:  DefaultCapturesToWin,
	}
}

// ValidateRules checks that every threshold is within bounds
func ValidateRules(rules Rules) error {
	if rules.MaxStackHeight < MinRuleValue || rules.MaxStackHeight > MaxRuleValue {
		return fmt.Errorf("rules validation: max_stack_height must be between %d and %d, got %d",
			MinRuleValue, MaxRuleValue, rules.MaxStackHeight)
	}
	if rules.CapturesToWin < MinRuleValue || rules.CapturesToWin > MaxRuleValue {
		return fmt.Errorf("rules validation: captures_to_win must be between %d and %d, got %d",
			MinRuleValue, MaxRuleValue, rules.CapturesToWin)
	}
	return nil
}

// ValidatePlayers checks the two player specs before a game is built.
// Names and colors are compared case-insensitively.
func ValidatePlayers(a, b PlayerSpec) error {
	for i, spec := range []PlayerSpec{a, b} {
		if strings.TrimSpace(spec.Name) == "" {
			return fmt.Errorf("%w: player %d name is required", ErrInvalidPlayer, i+1)
		}
		if strings.TrimSpace(spec.Color) == "" {
			return fmt.Errorf("%w: player %d color is required", ErrInvalidPlayer, i+1)
		}
	}
	if normalize(a.Name) == normalize(b.Name) {
		return fmt.Errorf("%w: %q", ErrDuplicatePlayer, normalize(a.Name))
	}
	if normalize(a.Color) == normalize(b.Color) {
		return fmt.Errorf("%w: %q", ErrDuplicateColor, normalize(a.Color))
	}
	return nil
}

// Option customizes a Game at construction
type Option func(*Game)

// WithRules replaces the default rules. The rules are validated by NewGame.
func WithRules(rules Rules) Option {
	return func(g *Game) {
		g.rules = rules
	}
}

// WithClock sets the time source used for move history timestamps
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		if now != nil {
			g.now = now
		}
	}
}

// startingOwner gives the index of the player owning the single starting
// piece on each cell: 0 for the first player, 1 for the second.
var startingOwner = [BoardSize][BoardSize]int{
	{0, 0, 1, 1, 0, 0},
	{1, 1, 0, 0, 1, 1},
	{0, 0, 1, 1, 0, 0},
	{1, 1, 0, 0, 1, 1},
	{0, 0, 1, 1, 0, 0},
	{1, 1, 0, 0, 1, 1},
}

// InitialPieceCount is the number of pieces on the board at setup
const InitialPieceCount = BoardSize * BoardSize
