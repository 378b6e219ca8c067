package engine

import "errors"

// Rule violations. The game state is unchanged whenever one is returned.
var (
	ErrWrongTurn         = errors.New("not your turn")
	ErrInvalidLocation   = errors.New("invalid location")
	ErrInvalidPieceCount = errors.New("invalid number of pieces")
	ErrNoReserve         = errors.New("no pieces in reserve")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrInvalidPosition   = errors.New("invalid position")
	ErrGameOver          = errors.New("game is over")
)

// Construction errors
var (
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrDuplicatePlayer = errors.New("duplicate player name")
	ErrDuplicateColor  = errors.New("duplicate player color")
)

// StatusText maps a rule violation to the message shown to players.
// Errors that are not rule violations are returned as-is.
func StatusText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrWrongTurn):
		return "Not your turn"
	case errors.Is(err, ErrInvalidLocation):
		return "Invalid location"
	case errors.Is(err, ErrInvalidPieceCount):
		return "Invalid number of pieces"
	case errors.Is(err, ErrNoReserve):
		return "No pieces in reserve"
	case errors.Is(err, ErrUnknownPlayer):
		return "Unknown player"
	case errors.Is(err, ErrInvalidPosition):
		return "Invalid position"
	case errors.Is(err, ErrGameOver):
		return "Game is over"
	default:
		return err.Error()
	}
}

// IsRuleViolation reports whether err is an expected, recoverable outcome of
// an illegal move or query rather than a failure.
func IsRuleViolation(err error) bool {
	for _, target := range []error{
		ErrWrongTurn, ErrInvalidLocation, ErrInvalidPieceCount, ErrNoReserve,
		ErrUnknownPlayer, ErrInvalidPosition, ErrGameOver,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
