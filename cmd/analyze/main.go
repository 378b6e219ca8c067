// Command analyze prints quick, human-readable heuristics about Focus
// playbooks. It replays each move and reserve step and reports, per player,
// the stacks controlled, the pieces on the board and the pieces captured. Rejected steps are listed with the rule
// they broke.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/focus-game/game/config"
	"github.com/wricardo/focus-game/game/engine"
	"github.com/wricardo/focus-game/game/script"
)

// AnalysisRow describes the position after one move or reserve step
type AnalysisRow struct {
	Step       int
	Action     string
	Rejected   string // rule broken, empty when the step was applied
	Won        bool
	Controlled [2]int
	OnBoard    [2]int
	Captured   [2]int
}

// Analysis is the replay of one playbook
type Analysis struct {
	Name    string
	Rules   engine.Rules
	Players [2]engine.Player
	Rows    []AnalysisRow
	Winner  string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <playbook.hcl>...\n", os.Args[0])
		os.Exit(2)
	}

	failed := false
	for _, path := range os.Args[1:] {
		fmt.Printf("\n=== Analyzing %s ===\n", path)
		if err := analyzeFile(os.Stdout, path); err != nil {
			fmt.Printf("Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func analyzeFile(w io.Writer, path string) error {
	pb, err := script.LoadFile(path)
	if err != nil {
		return err
	}

	rules, err := presetRules(pb.Config)
	if err != nil {
		return err
	}

	analysis, err := analyzePlaybook(pb, rules)
	if err != nil {
		return err
	}

	printAnalysis(w, analysis)
	return nil
}

// envConfigDir names a preset directory used instead of the built-in presets
const envConfigDir = "FOCUS_CONFIG_DIR"

// presetRules resolves a preset, the default one when name is empty
func presetRules(name string) (engine.Rules, error) {
	configs := config.NewBuiltinManager(nil)
	if dir := os.Getenv(envConfigDir); dir != "" {
		var err error
		if configs, err = config.NewManager(dir, nil); err != nil {
			return engine.Rules{}, err
		}
	}
	if name == "" {
		return configs.GetDefault().Rules, nil
	}
	preset, err := configs.LoadConfig(name)
	if err != nil {
		return engine.Rules{}, err
	}
	return preset.Rules, nil
}

// analyzePlaybook replays the move and reserve steps of pb. Query steps
// do not change the position and are skipped.
func analyzePlaybook(pb *script.Playbook, rules engine.Rules) (*Analysis, error) {
	g, err := engine.NewGame(pb.Players[0], pb.Players[1], engine.WithRules(rules))
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{Name: pb.Name, Rules: rules, Players: g.Players()}
	for _, step := range pb.Steps {
		var err error
		switch step.Kind {
		case script.StepMove:
			_, err = g.MovePiece(step.Player, step.From, step.To, step.Count)
		case script.StepReserve:
			_, err = g.ReservedMove(step.Player, step.To)
		default:
			continue
		}

		row := snapshot(g)
		row.Step = step.Index
		row.Action = step.String()
		if err != nil {
			row.Rejected = engine.StatusText(err)
		} else if last := g.LastMove(); last != nil && last.Status == engine.StatusWon {
			row.Won = true
		}
		analysis.Rows = append(analysis.Rows, row)
	}

	if winner, ok := g.Winner(); ok {
		analysis.Winner = winner.Label()
	}
	return analysis, nil
}

// snapshot measures both players on the current board
func snapshot(g *engine.Game) AnalysisRow {
	var row AnalysisRow
	board := g.Board()
	for i, p := range g.Players() {
		row.Controlled[i] = engine.Controlled(board, p.Color())
		row.OnBoard[i] = engine.CountColor(board, p.Color())
		row.Captured[i] = p.Captured()
	}
	return row
}

func printAnalysis(w io.Writer, a *Analysis) {
	symbols := engine.Symbols(a.Players)
	sa, sb := symbols[a.Players[0].Color()], symbols[a.Players[1].Color()]

	fmt.Fprintf(w, "Playbook: %s\n", a.Name)
	fmt.Fprintf(w, "Players: %s = %s, %s = %s\n", sa, a.Players[0].Label(), sb, a.Players[1].Label())
	fmt.Fprintf(w, "Rules: stack %d, captures %d\n\n", a.Rules.MaxStackHeight, a.Rules.CapturesToWin)

	pair := func(v [2]int) string { return fmt.Sprintf("%d/%d", v[0], v[1]) }
	fmt.Fprintf(w, "%-5s %-34s %-8s %-8s %-8s %s\n",
		"step", "action", "ctl", "board", "cap", "note")
	for _, r := range a.Rows {
		note := ""
		switch {
		case r.Rejected != "":
			note = "rejected: " + r.Rejected
		case r.Won:
			note = "WIN"
		}
		fmt.Fprintf(w, "%-5d %-34s %-8s %-8s %-8s %s\n",
			r.Step, r.Action, pair(r.Controlled), pair(r.OnBoard), pair(r.Captured), note)
	}

	applied, rejected := 0, 0
	for _, r := range a.Rows {
		if r.Rejected != "" {
			rejected++
		} else {
			applied++
		}
	}
	fmt.Fprintf(w, "\nApplied: %d, rejected: %d\n", applied, rejected)
	if a.Winner != "" {
		fmt.Fprintf(w, "Winner: %s\n", a.Winner)
	} else {
		fmt.Fprintln(w, "Winner: none")
	}
}
