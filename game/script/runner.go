package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"go.uber.org/zap"

	"github.com/wricardo/focus-game/game/engine"
	"github.com/wricardo/focus-game/game/service"
)

// StepResult is the outcome of one replayed step
type StepResult struct {
	Step   Step
	Output string    // transcript line
	Value  cty.Value // what the step produced, comparable with Step.Expect
	Passed bool      // true when the step has no expectation
}

// Report summarizes a replay
type Report struct {
	GameID  string
	Results []StepResult
	Failed  int
	Winner  string
}

// OK reports whether every expectation held
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Runner replays playbooks through a game service
type Runner struct {
	svc    service.GameService
	out    io.Writer
	logger *zap.Logger
}

// NewRunner creates a runner writing one transcript line per step to out
func NewRunner(svc service.GameService, out io.Writer, logger *zap.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{svc: svc, out: out, logger: logger}
}

// Run creates a fresh game for pb and replays every step. Rule violations
// are ordinary step outputs; only service failures abort the run.
func (r *Runner) Run(ctx context.Context, pb *Playbook) (*Report, error) {
	info, err := r.svc.CreateGame(ctx, service.CreateGameRequest{
		PlayerA: pb.Players[0],
		PlayerB: pb.Players[1],
		Config:  pb.Config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start playbook %q: %w", pb.Name, err)
	}

	logger := r.logger.With(zap.String("playbook", pb.Name), zap.String("game_id", info.ID))
	logger.Info("playbook started", zap.Int("steps", len(pb.Steps)))

	report := &Report{GameID: info.ID}
	for _, step := range pb.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		output, value, err := r.exec(ctx, info.ID, step)
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", step.Index, step.Kind, err)
		}

		result := StepResult{Step: step, Output: output, Value: value, Passed: true}
		line := output
		if step.HasExpect() && !Matches(step.Expect, value) {
			result.Passed = false
			report.Failed++
			line = fmt.Sprintf("%s\t# expected %s", output, Render(step.Expect))
			logger.Warn("expectation failed",
				zap.Int("step", step.Index),
				zap.Stringer("action", step),
				zap.String("got", output),
				zap.String("want", Render(step.Expect)),
			)
		} else {
			logger.Debug("step", zap.Int("step", step.Index), zap.Stringer("action", step), zap.String("output", output))
		}

		report.Results = append(report.Results, result)
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return report, fmt.Errorf("failed to write transcript: %w", err)
		}
	}

	final, err := r.svc.GetGame(ctx, info.ID)
	if err != nil {
		return report, err
	}
	report.Winner = final.Winner

	logger.Info("playbook finished",
		zap.Int("failed", report.Failed),
		zap.String("winner", report.Winner),
	)
	return report, nil
}

// exec runs one step, returning its transcript text and value
func (r *Runner) exec(ctx context.Context, gameID string, step Step) (string, cty.Value, error) {
	switch step.Kind {
	case StepMove:
		result, err := r.svc.MovePiece(ctx, gameID, step.Player, step.From, step.To, step.Count)
		if err != nil {
			return "", cty.NilVal, err
		}
		return result.Message, cty.StringVal(result.Message), nil

	case StepReserve:
		result, err := r.svc.ReservedMove(ctx, gameID, step.Player, step.To)
		if err != nil {
			return "", cty.NilVal, err
		}
		return result.Message, cty.StringVal(result.Message), nil

	case StepShowPieces:
		pieces, err := r.svc.ShowPieces(ctx, gameID, step.At)
		if err != nil {
			return violation(err)
		}
		value := piecesValue(pieces)
		return Render(value), value, nil

	case StepShowReserve:
		n, err := r.svc.ShowReserve(ctx, gameID, step.Player)
		if err != nil {
			return violation(err)
		}
		return fmt.Sprint(n), cty.NumberIntVal(int64(n)), nil

	case StepShowCaptured:
		n, err := r.svc.ShowCaptured(ctx, gameID, step.Player)
		if err != nil {
			return violation(err)
		}
		return fmt.Sprint(n), cty.NumberIntVal(int64(n)), nil
	}

	return "", cty.NilVal, fmt.Errorf("unknown step kind %q", step.Kind)
}

// violation turns a rule violation into step output and passes other errors on
func violation(err error) (string, cty.Value, error) {
	if !engine.IsRuleViolation(err) {
		return "", cty.NilVal, err
	}
	text := engine.StatusText(err)
	return text, cty.StringVal(text), nil
}

func piecesValue(pieces []engine.Color) cty.Value {
	if len(pieces) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, 0, len(pieces))
	for _, p := range pieces {
		vals = append(vals, cty.StringVal(string(p)))
	}
	return cty.ListVal(vals)
}

// Matches reports whether actual equals want once want is converted to
// actual's type, so a tuple literal matches a list of colors.
func Matches(want, actual cty.Value) bool {
	if want.IsNull() || actual.IsNull() {
		return want.IsNull() && actual.IsNull()
	}
	conv, err := convert.Convert(want, actual.Type())
	if err != nil || !conv.IsWhollyKnown() {
		return false
	}
	return conv.Equals(actual).True()
}

// Render formats a value the way transcripts show it
func Render(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case !v.IsKnown():
		return "unknown"
	}

	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return v.AsString()
	case ty.Equals(cty.Number):
		return v.AsBigFloat().Text('f', -1)
	case ty.Equals(cty.Bool):
		return fmt.Sprint(v.True())
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		parts := []string{}
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			parts = append(parts, Render(elem))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ty.FriendlyName()
}
