// Command focus plays the Focus (Domination) board game.
//
// Subcommands:
//  1. "play" replays an HCL playbook and prints one transcript line per step
//  2. "mcp" serves games to AI agents over an MCP stdio server
//  3. "configs" lists the available rules presets
//  4. "validate" checks presets and playbooks without running them
//
// Global flags select the log level and an optional directory of rules
// presets; both can also be set from the environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wricardo/focus-game/game/config"
	"github.com/wricardo/focus-game/game/script"
	"github.com/wricardo/focus-game/game/service"
	"github.com/wricardo/focus-game/game/session"
	"github.com/wricardo/focus-game/transport/mcp"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Focus"
)

// Environment variables backing the global flags
const (
	envLogLevel   = "FOCUS_LOG_LEVEL"
	envConfigDir  = "FOCUS_CONFIG_DIR"
	envSessionTTL = "FOCUS_SESSION_TTL"
)

// errPlaybookFailed is returned by play when an expectation does not hold
var errPlaybookFailed = errors.New("playbook expectations failed")

// main loads .env, then runs the command line.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the output streams shared by every subcommand
type app struct {
	stdout io.Writer
	stderr io.Writer
}

// newApp builds the command tree. Output goes to stdout; logs and
// summaries go to stderr so stdout stays clean for transcripts and MCP.
func newApp(stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr}

	return &cli.Command{
		Name:      "focus",
		Usage:     "play Focus (Domination) from playbooks or over MCP",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars(envLogLevel),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "directory of rules presets (built-in presets when empty)",
				Sources: cli.EnvVars(envConfigDir),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "play",
				Usage:     "replay a playbook and print its transcript",
				ArgsUsage: "<playbook.hcl>",
				Action:    a.play,
			},
			{
				Name:  "mcp",
				Usage: "serve games over an MCP stdio server",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "session-ttl",
						Value:   24 * time.Hour,
						Usage:   "remove games not accessed for this long",
						Sources: cli.EnvVars(envSessionTTL),
					},
				},
				Action: a.serveMCP,
			},
			{
				Name:   "configs",
				Usage:  "list rules presets",
				Action: a.listConfigs,
			},
			{
				Name:      "validate",
				Usage:     "check rules presets and playbooks",
				ArgsUsage: "<file.hcl>...",
				Action:    a.validate,
			},
		},
	}
}

// newLogger builds a console logger writing to w
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// newConfigManager loads presets from dir, or the built-in presets when dir is empty
func newConfigManager(dir string, logger *zap.Logger) (*config.Manager, error) {
	if dir == "" {
		return config.NewBuiltinManager(logger), nil
	}
	manager, err := config.NewManager(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	return manager, nil
}

// initializeServices wires the session and config managers into a game service
func (a *app) initializeServices(cmd *cli.Command) (service.GameService, *session.Manager, *zap.Logger, error) {
	logger, err := newLogger(cmd.String("log-level"), a.stderr)
	if err != nil {
		return nil, nil, nil, err
	}

	configManager, err := newConfigManager(cmd.String("config-dir"), logger)
	if err != nil {
		return nil, nil, nil, err
	}

	sessionManager := session.NewManager(logger)
	return service.NewGameService(sessionManager, configManager, logger), sessionManager, logger, nil
}

func (a *app) play(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("play needs exactly one playbook, got %d arguments", cmd.NArg())
	}

	pb, err := script.LoadFile(cmd.Args().First())
	if err != nil {
		return err
	}

	gameService, _, logger, err := a.initializeServices(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	report, err := script.NewRunner(gameService, a.stdout, logger).Run(ctx, pb)
	if err != nil {
		return err
	}

	winner := report.Winner
	if winner == "" {
		winner = "none"
	}
	fmt.Fprintf(a.stderr, "%s: %d steps, %d failed, winner: %s\n",
		pb.Name, len(report.Results), report.Failed, winner)

	if !report.OK() {
		return fmt.Errorf("%w: %d of %d", errPlaybookFailed, report.Failed, len(report.Results))
	}
	return nil
}

func (a *app) serveMCP(ctx context.Context, cmd *cli.Command) error {
	gameService, sessionManager, logger, err := a.initializeServices(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go sessionCleanupRoutine(ctx, sessionManager, cmd.Duration("session-ttl"), logger)

	logger.Info("starting", zap.String("app", AppName), zap.String("version", Version))
	return mcp.NewServer(gameService, Version, logger).ServeStdio()
}

// sessionCleanupRoutine periodically removes games that have not been accessed
// within ttl, until ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl time.Duration, logger *zap.Logger) {
	if ttl <= 0 {
		return
	}

	interval := ttl / 24
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				logger.Info("cleaned up expired games", zap.Int("removed", removed))
			}
		}
	}
}

func (a *app) listConfigs(ctx context.Context, cmd *cli.Command) error {
	gameService, _, _, err := a.initializeServices(cmd)
	if err != nil {
		return err
	}

	configs, err := gameService.ListConfigs(ctx)
	if err != nil {
		return err
	}
	for _, c := range configs {
		fmt.Fprintf(a.stdout, "%-10s %-20s stack %d, captures %d  %s\n",
			c.ConfigID, c.Name, c.Rules.MaxStackHeight, c.Rules.CapturesToWin, c.Description)
	}
	return nil
}

// validate parses every file as a playbook, falling back to a rules preset
func (a *app) validate(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errors.New("validate needs at least one file")
	}

	invalid := 0
	for _, path := range files {
		kind, err := validateFile(path)
		if err != nil {
			invalid++
			fmt.Fprintf(a.stdout, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(a.stdout, "ok   %s (%s)\n", path, kind)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d files invalid", invalid, len(files))
	}
	return nil
}

func validateFile(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	pb, playbookErr := script.Parse(src, path)
	if playbookErr == nil {
		return fmt.Sprintf("playbook, %d steps", len(pb.Steps)), nil
	}

	preset, presetErr := config.ParsePreset(src, path)
	if presetErr == nil {
		return fmt.Sprintf("preset %s", preset.ConfigID), nil
	}

	return "", fmt.Errorf("not a playbook (%v) nor a preset (%v)", playbookErr, presetErr)
}
