package engine

import "fmt"

// Space is the stack of pieces on one board cell.
// Pieces are ordered bottom-to-top (index 0 is the bottom, the last index is the top).
type Space struct {
	pieces []Color
}

// NewSpace creates a space holding the given pieces, bottom first
func NewSpace(pieces ...Color) *Space {
	s := &Space{pieces: make([]Color, 0, DefaultMaxStackHeight+1)}
	s.pieces = append(s.pieces, pieces...)
	return s
}

// Push adds a piece on top of the stack
func (s *Space) Push(c Color) {
	s.pieces = append(s.pieces, c)
}

// PopTop removes and returns the top piece. ok is false when the stack is empty.
func (s *Space) PopTop() (c Color, ok bool) {
	if len(s.pieces) == 0 {
		return "", false
	}
	c = s.pieces[len(s.pieces)-1]
	s.pieces = s.pieces[:len(s.pieces)-1]
	return c, true
}

// Top returns the top piece without removing it
func (s *Space) Top() (Color, bool) {
	if len(s.pieces) == 0 {
		return "", false
	}
	return s.pieces[len(s.pieces)-1], true
}

// DrainFromBottomAbove removes pieces from the bottom until at most limit
// remain. The removed pieces are returned in removal order, so the first
// element is the original bottom piece.
func (s *Space) DrainFromBottomAbove(limit int) []Color {
	extra := len(s.pieces) - limit
	if extra <= 0 {
		return nil
	}
	drained := make([]Color, extra)
	copy(drained, s.pieces[:extra])
	s.pieces = append(s.pieces[:0], s.pieces[extra:]...)
	return drained
}

// DrainFromTop removes exactly n pieces from the top and returns them
// top-first. n must not exceed Len; the engine checks this before calling.
func (s *Space) DrainFromTop(n int) []Color {
	if n < 0 || n > len(s.pieces) {
		panic(fmt.Sprintf("engine: cannot drain %d pieces from a stack of %d", n, len(s.pieces)))
	}
	drained := make([]Color, 0, n)
	for i := 0; i < n; i++ {
		c, _ := s.PopTop()
		drained = append(drained, c)
	}
	return drained
}

// Len returns the number of pieces on the space
func (s *Space) Len() int {
	return len(s.pieces)
}

// IsEmpty reports whether the space holds no pieces
func (s *Space) IsEmpty() bool {
	return len(s.pieces) == 0
}

// Pieces returns a copy of the stack, bottom-to-top
func (s *Space) Pieces() []Color {
	out := make([]Color, len(s.pieces))
	copy(out, s.pieces)
	return out
}
