// Package config provides rules presets for Focus games.
//
// The config package handles:
//   - Loading presets from HCL files
//   - Preset validation
//   - Default preset selection
//   - Preset discovery and listing
//
// Preset Format:
//
// Each preset is one .hcl file. Rules left out keep their defaults.
//
//	name        = "Standard"
//	description = "Classic rules on the 6x6 board"
//
//	rules {
//	  max_stack_height = 5
//	  captures_to_win  = 6
//	}
//
// Built-in Presets:
//
// The binary embeds standard, quick and towers. A directory of presets can be
// used instead with NewManager.
//
// Usage:
//
//	manager := config.NewBuiltinManager(logger)
//
//	preset, err := manager.LoadConfig("quick")
//	if err != nil {
//		return err
//	}
//
//	configs, err := manager.ListConfigs()
package config
