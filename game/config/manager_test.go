package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/focus-game/game/engine"
)

const validPreset = `
name        = "Test Config"
description = "Test configuration"

rules {
  max_stack_height = 4
  captures_to_win  = 3
}
`

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".hcl"
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "standard", validPreset)

		manager, err := NewManager(dir, nil)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Test Config" {
			t.Errorf("Expected standard.hcl as default, got %q", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		if _, err := NewManager("/non/existent/path", nil); err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("missing default config", func(t *testing.T) {
		manager, err := NewManager(t.TempDir(), nil)
		if err != nil {
			t.Fatalf("NewManager should succeed even without config files, got error: %v", err)
		}
		if manager.GetDefault().Rules != engine.DefaultRules() {
			t.Errorf("Expected minimal default rules, got %+v", manager.GetDefault().Rules)
		}
	})

	t.Run("first valid preset as default", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "alpha", `name = "Alpha"`)
		writeConfigFile(t, dir, "beta", validPreset)

		manager, err := NewManager(dir, nil)
		require.NoError(t, err)
		assert.Equal(t, "alpha", manager.GetDefault().ConfigID)
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "test", validPreset)
	writeConfigFile(t, dir, "partial", `
name = "Partial"
rules {
  captures_to_win = 2
}
`)
	writeConfigFile(t, dir, "invalid", `
name = "Invalid"
rules {
  max_stack_height = 0
}
`)
	writeConfigFile(t, dir, "malformed", `name = "unterminated`)
	writeConfigFile(t, dir, "unknown", `
name  = "Unknown"
board = 8
`)

	manager, err := NewManager(dir, nil)
	require.NoError(t, err)

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("test")
		require.NoError(t, err)
		assert.Equal(t, "test", config.ConfigID)
		assert.Equal(t, "test.hcl", config.Filename)
		assert.Equal(t, "Test Config", config.Name)
		assert.Equal(t, engine.Rules{MaxStackHeight: 4, CapturesToWin: 3}, config.Rules)
	})

	t.Run("load with .hcl extension", func(t *testing.T) {
		config, err := manager.LoadConfig("test.hcl")
		require.NoError(t, err)
		assert.Equal(t, "Test Config", config.Name)
	})

	t.Run("load from cache", func(t *testing.T) {
		first, _ := manager.LoadConfig("test")
		second, _ := manager.LoadConfig("test")
		assert.Same(t, first, second)
	})

	t.Run("omitted rules keep defaults", func(t *testing.T) {
		config, err := manager.LoadConfig("partial")
		require.NoError(t, err)
		assert.Equal(t, engine.Rules{MaxStackHeight: 5, CapturesToWin: 2}, config.Rules)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		_, err := manager.LoadConfig("../test")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	for _, name := range []string{"invalid", "malformed", "unknown"} {
		t.Run("load "+name+" config", func(t *testing.T) {
			_, err := manager.LoadConfig(name)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "b", validPreset)
	writeConfigFile(t, dir, "a", `name = "A"`)
	writeConfigFile(t, dir, "broken", `name = `)
	writeConfigFile(t, dir, "notes.txt", "not a preset")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.hcl"), 0755))

	manager, err := NewManager(dir, nil)
	require.NoError(t, err)

	configs, err := manager.ListConfigs()
	require.NoError(t, err)

	ids := []string{}
	for _, c := range configs {
		ids = append(ids, c.ConfigID)
	}
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "standard", validPreset)

	manager, err := NewManager(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, manager.GetDefault().Rules.CapturesToWin)

	writeConfigFile(t, dir, "standard", `
name = "Updated"
rules {
  captures_to_win = 9
}
`)

	// Cached until refreshed
	cached, _ := manager.LoadConfig("standard")
	assert.Equal(t, "Test Config", cached.Name)

	manager.RefreshCache()
	assert.Equal(t, "Updated", manager.GetDefault().Name)
	assert.Equal(t, 9, manager.GetDefault().Rules.CapturesToWin)
}

func TestManager_SetDefault(t *testing.T) {
	manager := NewBuiltinManager(nil)

	require.NoError(t, manager.SetDefault("quick"))
	assert.Equal(t, "quick", manager.GetDefault().ConfigID)
	assert.ErrorIs(t, manager.SetDefault("missing"), ErrConfigNotFound)
	assert.Equal(t, "quick", manager.GetDefault().ConfigID)
}

func TestBuiltinPresets(t *testing.T) {
	manager := NewBuiltinManager(nil)

	def := manager.GetDefault()
	assert.Equal(t, DefaultConfigID, def.ConfigID)
	assert.Equal(t, engine.DefaultRules(), def.Rules)

	configs, err := manager.ListConfigs()
	require.NoError(t, err)

	byID := map[string]engine.Rules{}
	for _, c := range configs {
		byID[c.ConfigID] = c.Rules
		assert.NotEmpty(t, c.Description, c.ConfigID)
	}
	assert.Equal(t, map[string]engine.Rules{
		"quick":    {MaxStackHeight: 5, CapturesToWin: 1},
		"standard": {MaxStackHeight: 5, CapturesToWin: 6},
		"towers":   {MaxStackHeight: 7, CapturesToWin: 10},
	}, byID)
}

func TestParsePreset(t *testing.T) {
	config, err := ParsePreset([]byte(validPreset), "presets/custom.hcl")
	require.NoError(t, err)
	assert.Equal(t, "custom", config.ConfigID)

	_, err = ParsePreset([]byte(`name = "  "`), "blank.hcl")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParsePreset([]byte(`description = "no name"`), "noname.hcl")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewBuiltinManager(nil)

	var wg sync.WaitGroup
	errs := make(chan error, 60)
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("towers"); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := manager.ListConfigs(); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			manager.RefreshCache()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
}
