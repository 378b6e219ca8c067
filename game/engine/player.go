package engine

import "strings"

// Player is one participant. Values handed out by Game are copies; the
// counters only change through the engine.
type Player struct {
	name     string
	label    string
	color    Color
	captured int
	reserved int
}

func newPlayer(spec PlayerSpec) *Player {
	return &Player{
		name:  normalize(spec.Name),
		label: strings.TrimSpace(spec.Name),
		color: Color(normalize(spec.Color)),
	}
}

// Name returns the upper-cased player name
func (p Player) Name() string { return p.name }

// Label returns the name as it was supplied when the game was created
func (p Player) Label() string { return p.label }

// Color returns the player's piece token
func (p Player) Color() Color { return p.color }

// Captured returns the number of opponent pieces captured
func (p Player) Captured() int { return p.captured }

// Reserved returns the number of own pieces available for reserve moves
func (p Player) Reserved() int { return p.reserved }

func (p *Player) addReserved() { p.reserved++ }

// takeReserved assumes reserved > 0
func (p *Player) takeReserved() { p.reserved-- }

func (p *Player) addCaptured() { p.captured++ }

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
