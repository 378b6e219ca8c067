package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// CountColor counts the pieces of one color on a board snapshot
func CountColor(board [BoardSize][BoardSize][]Color, c Color) int {
	count := 0
	for _, row := range board {
		for _, stack := range row {
			for _, piece := range stack {
				if piece == c {
					count++
				}
			}
		}
	}
	return count
}

// Symbols picks a one-character symbol for each player's color
func Symbols(players [2]Player) map[Color]string {
	return ColorSymbols(players[0].Color(), players[1].Color())
}

// ColorSymbols uses the first letter of each color, or A and B when those
// letters clash.
func ColorSymbols(a, b Color) map[Color]string {
	ra, _ := utf8.DecodeRuneInString(string(a))
	rb, _ := utf8.DecodeRuneInString(string(b))
	if ra == rb {
		return map[Color]string{a: "A", b: "B"}
	}
	return map[Color]string{a: string(ra), b: string(rb)}
}

// RenderBoard draws a board snapshot as text. Each cell lists its stack
// bottom-to-top using symbols, padded to width; empty cells show a dot.
func RenderBoard(board [BoardSize][BoardSize][]Color, symbols map[Color]string, width int) string {
	var sb strings.Builder

	sb.WriteString("   ")
	for col := 0; col < BoardSize; col++ {
		fmt.Fprintf(&sb, " %-*d", width, col)
	}
	sb.WriteString("\n")

	for row := 0; row < BoardSize; row++ {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := 0; col < BoardSize; col++ {
			cell := "."
			if stack := board[row][col]; len(stack) > 0 {
				var cb strings.Builder
				for _, piece := range stack {
					cb.WriteString(symbols[piece])
				}
				cell = cb.String()
			}
			fmt.Fprintf(&sb, " %-*s", width, cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatBoard renders the game's board followed by one summary line per player
func FormatBoard(g Engine) string {
	players := g.Players()
	symbols := Symbols(players)

	var sb strings.Builder
	sb.WriteString(RenderBoard(g.Board(), symbols, g.Rules().MaxStackHeight))
	for _, p := range players {
		fmt.Fprintf(&sb, "%s = %s (%s): reserved %d, captured %d\n",
			symbols[p.Color()], p.Name(), p.Color(), p.Reserved(), p.Captured())
	}
	return sb.String()
}

// Controlled counts the stacks topped by c on a board snapshot
func Controlled(board [BoardSize][BoardSize][]Color, c Color) int {
	n := 0
	for _, row := range board {
		for _, stack := range row {
			if len(stack) > 0 && stack[len(stack)-1] == c {
				n++
			}
		}
	}
	return n
}
