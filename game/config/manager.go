package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"

	"github.com/wricardo/focus-game/game/engine"
	"github.com/wricardo/focus-game/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultConfigID names the preset used when none is requested
const DefaultConfigID = "standard"

const presetExt = ".hcl"

//go:embed presets/*.hcl
var builtinPresets embed.FS

// Manager handles rules preset loading and caching
type Manager struct {
	fsys          fs.FS
	logger        *zap.Logger
	defaultConfig *service.ConfigInfo
	configs       map[string]*service.ConfigInfo
	mu            sync.RWMutex
}

var _ service.ConfigManager = (*Manager)(nil)

// NewManager creates a manager reading presets from configDir
func NewManager(configDir string, logger *zap.Logger) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}
	return newManager(os.DirFS(configDir), logger), nil
}

// NewBuiltinManager creates a manager over the presets compiled into the binary
func NewBuiltinManager(logger *zap.Logger) *Manager {
	sub, err := fs.Sub(builtinPresets, "presets")
	if err != nil {
		panic(err)
	}
	return newManager(sub, logger)
}

func newManager(fsys fs.FS, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		fsys:    fsys,
		logger:  logger,
		configs: make(map[string]*service.ConfigInfo),
	}
	m.defaultConfig = m.findDefault()
	return m
}

// LoadConfig loads a preset by name, with or without the .hcl extension
func (m *Manager) LoadConfig(name string) (*service.ConfigInfo, error) {
	name = strings.TrimSuffix(name, presetExt)

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, ErrConfigNotFound
	}

	filename := name + presetExt
	data, err := fs.ReadFile(m.fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := ParsePreset(data, filename)
	if err != nil {
		return nil, err
	}
	config.ConfigID = name
	config.Filename = filename

	m.configs[name] = config
	m.logger.Debug("config loaded",
		zap.String("config", name),
		zap.Int("max_stack_height", config.Rules.MaxStackHeight),
		zap.Int("captures_to_win", config.Rules.CapturesToWin),
	)
	return config, nil
}

// ListConfigs returns information about all valid presets, sorted by ID
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), presetExt) {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip invalid configs
			m.logger.Warn("skipping invalid config", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		configs = append(configs, config)
	}

	return configs, nil
}

// GetDefault returns the default preset
func (m *Manager) GetDefault() *service.ConfigInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default preset by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached preset and reloads the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*service.ConfigInfo)
	m.mu.Unlock()

	def := m.findDefault()

	m.mu.Lock()
	m.defaultConfig = def
	m.mu.Unlock()
}

// findDefault picks standard.hcl, else the first valid preset, else the
// built-in rules
func (m *Manager) findDefault() *service.ConfigInfo {
	if config, err := m.LoadConfig(DefaultConfigID); err == nil {
		return config
	}

	if configs, err := m.ListConfigs(); err == nil && len(configs) > 0 {
		return configs[0]
	}

	return createMinimalConfig()
}

// createMinimalConfig creates a preset with the default rules
func createMinimalConfig() *service.ConfigInfo {
	return &service.ConfigInfo{
		ConfigID:    DefaultConfigID,
		Name:        "Standard",
		Description: "Default rules",
		Rules:       engine.DefaultRules(),
	}
}

// hclPresetFile is the decoding target for a preset file
type hclPresetFile struct {
	Name        string    `hcl:"name"`
	Description string    `hcl:"description,optional"`
	Rules       *hclRules `hcl:"rules,block"`
}

type hclRules struct {
	MaxStackHeight *int `hcl:"max_stack_height,optional"`
	CapturesToWin  *int `hcl:"captures_to_win,optional"`
}

// ParsePreset decodes and validates one preset. Rules left out of the file
// keep their default values.
func ParsePreset(src []byte, filename string) (*service.ConfigInfo, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, filename, diags)
	}

	var parsed hclPresetFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrInvalidConfig, filename, diags)
	}

	if strings.TrimSpace(parsed.Name) == "" {
		return nil, fmt.Errorf("%w: %s: name must not be empty", ErrInvalidConfig, filename)
	}

	rules := engine.DefaultRules()
	if parsed.Rules != nil {
		if parsed.Rules.MaxStackHeight != nil {
			rules.MaxStackHeight = *parsed.Rules.MaxStackHeight
		}
		if parsed.Rules.CapturesToWin != nil {
			rules.CapturesToWin = *parsed.Rules.CapturesToWin
		}
	}
	if err := engine.ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filename, err)
	}

	return &service.ConfigInfo{
		ConfigID:    strings.TrimSuffix(filepath.Base(filename), presetExt),
		Filename:    filename,
		Name:        parsed.Name,
		Description: parsed.Description,
		Rules:       rules,
	}, nil
}
