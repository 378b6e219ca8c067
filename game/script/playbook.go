package script

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/wricardo/focus-game/game/engine"
)

// ErrInvalidPlaybook wraps every parse and validation failure
var ErrInvalidPlaybook = errors.New("invalid playbook")

// StepKind names the action a step performs
type StepKind string

const (
	StepMove         StepKind = "move"
	StepReserve      StepKind = "reserve"
	StepShowPieces   StepKind = "show_pieces"
	StepShowReserve  StepKind = "show_reserve"
	StepShowCaptured StepKind = "show_captured"
)

// Playbook is a scripted game: two players and an ordered list of steps
type Playbook struct {
	Name    string
	Config  string // rules preset, default when empty
	Players [2]engine.PlayerSpec
	Steps   []Step
}

// Step is one action of a playbook. Expect is cty.NilVal when the step
// carries no expectation.
type Step struct {
	Index  int // 1-based
	Kind   StepKind
	Player string
	From   engine.Position
	To     engine.Position
	At     engine.Position
	Count  int
	Expect cty.Value
}

// HasExpect reports whether the step declares an expected result
func (s Step) HasExpect() bool {
	return !s.Expect.IsNull()
}

// String describes the step for logs
func (s Step) String() string {
	switch s.Kind {
	case StepMove:
		return fmt.Sprintf("%s %s %s->%s x%d", s.Kind, s.Player, s.From, s.To, s.Count)
	case StepReserve:
		return fmt.Sprintf("%s %s %s", s.Kind, s.Player, s.To)
	case StepShowPieces:
		return fmt.Sprintf("%s %s", s.Kind, s.At)
	default:
		return fmt.Sprintf("%s %s", s.Kind, s.Player)
	}
}

// hclPlaybookFile represents the top-level structure of a playbook for decoding
type hclPlaybookFile struct {
	Name    string      `hcl:"name,optional"`
	Config  string      `hcl:"config,optional"`
	Players []hclPlayer `hcl:"player,block"`
	Steps   []hclStep   `hcl:"step,block"`
}

type hclPlayer struct {
	Name  string `hcl:"name"`
	Color string `hcl:"color"`
}

type hclStep struct {
	Kind   string    `hcl:"kind,label"`
	Player *string   `hcl:"player,optional"`
	From   []int     `hcl:"from,optional"`
	To     []int     `hcl:"to,optional"`
	At     []int     `hcl:"at,optional"`
	Count  *int      `hcl:"count,optional"`
	Expect cty.Value `hcl:"expect,optional"`
}

// LoadFile reads and parses a playbook file
func LoadFile(path string) (*Playbook, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read playbook: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes and validates a playbook
func Parse(src []byte, filename string) (*Playbook, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidPlaybook, filename, diags)
	}

	var parsed hclPlaybookFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrInvalidPlaybook, filename, diags)
	}

	if len(parsed.Players) != 2 {
		return nil, fmt.Errorf("%w: %s: need exactly 2 player blocks, got %d", ErrInvalidPlaybook, filename, len(parsed.Players))
	}

	pb := &Playbook{
		Name:   parsed.Name,
		Config: parsed.Config,
		Steps:  make([]Step, 0, len(parsed.Steps)),
	}
	for i, p := range parsed.Players {
		pb.Players[i] = engine.PlayerSpec{Name: p.Name, Color: p.Color}
	}
	if err := engine.ValidatePlayers(pb.Players[0], pb.Players[1]); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPlaybook, filename, err)
	}

	for i, hs := range parsed.Steps {
		step, err := newStep(i+1, hs)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPlaybook, filename, err)
		}
		pb.Steps = append(pb.Steps, step)
	}

	return pb, nil
}

// newStep checks that a decoded step has what its kind needs
func newStep(index int, hs hclStep) (Step, error) {
	step := Step{Index: index, Kind: StepKind(hs.Kind), Expect: hs.Expect}
	fail := func(format string, args ...any) (Step, error) {
		return Step{}, fmt.Errorf("step %d (%s): %s", index, hs.Kind, fmt.Sprintf(format, args...))
	}

	if step.HasExpect() && !step.Expect.IsWhollyKnown() {
		return fail("expect must be a constant")
	}

	var needPlayer, needFrom, needTo, needAt, needCount bool
	switch step.Kind {
	case StepMove:
		needPlayer, needFrom, needTo, needCount = true, true, true, true
	case StepReserve:
		needPlayer, needTo = true, true
	case StepShowPieces:
		needAt = true
	case StepShowReserve, StepShowCaptured:
		needPlayer = true
	default:
		return fail("unknown step kind")
	}

	if needPlayer {
		if hs.Player == nil || *hs.Player == "" {
			return fail("player is required")
		}
		step.Player = *hs.Player
	}
	if needCount {
		if hs.Count == nil {
			return fail("count is required")
		}
		step.Count = *hs.Count
	}

	var err error
	if needFrom {
		if step.From, err = position("from", hs.From); err != nil {
			return fail("%v", err)
		}
	}
	if needTo {
		if step.To, err = position("to", hs.To); err != nil {
			return fail("%v", err)
		}
	}
	if needAt {
		if step.At, err = position("at", hs.At); err != nil {
			return fail("%v", err)
		}
	}

	return step, nil
}

// position converts a [row, col] pair. Off-board values are allowed so that
// playbooks can exercise rejected moves.
func position(name string, pair []int) (engine.Position, error) {
	if pair == nil {
		return engine.Position{}, fmt.Errorf("%s is required", name)
	}
	if len(pair) != 2 {
		return engine.Position{}, fmt.Errorf("%s must be [row, col], got %d values", name, len(pair))
	}
	return engine.Position{Row: pair[0], Col: pair[1]}, nil
}
