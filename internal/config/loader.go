package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Loader search limits, stricter than what the board engine accepts:
// oversized boards render poorly in a terminal.
const (
	minConfigSize = 3
	maxConfigSize = 6
)

// validTargets lists the win tiles a configuration may ask for.
var validTargets = map[int]bool{1024: true, 2048: true, 4096: true}

// validThemes lists the selectable UI themes.
var validThemes = map[string]bool{"default": true, "monochrome": true, "dark": true}

// Load loads the game configuration.
// Search order: customPath -> ~/.t2048/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := Validate(cfg); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("t2048.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil && Validate(cfg) == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/t2048.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil && Validate(cfg) == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if
// home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "configs", filename)
}

// Validate checks a configuration for out-of-range values.
func Validate(cfg Config) error {
	if cfg.Board.Size < minConfigSize || cfg.Board.Size > maxConfigSize {
		return fmt.Errorf("board size must be %d..%d, got %d", minConfigSize, maxConfigSize, cfg.Board.Size)
	}
	if !validTargets[cfg.Board.Target] {
		return fmt.Errorf("target must be 1024, 2048 or 4096, got %d", cfg.Board.Target)
	}
	if cfg.Spawn.FourProbability < 0 || cfg.Spawn.FourProbability > 1 {
		return fmt.Errorf("four_probability must be in [0, 1], got %g", cfg.Spawn.FourProbability)
	}
	if cfg.Undo.HistoryLimit < 1 {
		return fmt.Errorf("undo history_limit must be positive, got %d", cfg.Undo.HistoryLimit)
	}
	if cfg.Undo.Budget < 0 {
		return fmt.Errorf("undo budget cannot be negative, got %d", cfg.Undo.Budget)
	}
	if !validThemes[cfg.UI.Theme] {
		return fmt.Errorf("unknown theme %q", cfg.UI.Theme)
	}
	if cfg.Autosave.Enabled && cfg.Autosave.IntervalSecs < 1 {
		return fmt.Errorf("autosave interval_secs must be positive, got %d", cfg.Autosave.IntervalSecs)
	}
	if cfg.Modes.Obstacles.Count < 0 || cfg.Modes.Obstacles.Count >= cfg.Board.Size*cfg.Board.Size-2 {
		return fmt.Errorf("obstacle count %d does not fit a %dx%d board", cfg.Modes.Obstacles.Count, cfg.Board.Size, cfg.Board.Size)
	}
	if cfg.Modes.Timed.MoveSeconds < 1 {
		return fmt.Errorf("timed move_seconds must be positive, got %d", cfg.Modes.Timed.MoveSeconds)
	}
	if cfg.Modes.Assist.Hints < 0 {
		return fmt.Errorf("assist hints cannot be negative, got %d", cfg.Modes.Assist.Hints)
	}
	if cfg.Modes.Assist.FourProbability < 0 || cfg.Modes.Assist.FourProbability > 1 {
		return fmt.Errorf("assist four_probability must be in [0, 1], got %g", cfg.Modes.Assist.FourProbability)
	}
	return nil
}

// BoardConfigFor translates the loaded settings into an engine
// configuration for the given mode.
func BoardConfigFor(cfg Config, assist bool) board.Config {
	bc := board.Config{
		Size:            cfg.Board.Size,
		Target:          cfg.Board.Target,
		FourProbability: cfg.Spawn.FourProbability,
		HistoryLimit:    cfg.Undo.HistoryLimit,
		UndoBudget:      cfg.Undo.Budget,
	}
	if assist {
		bc.FourProbability = cfg.Modes.Assist.FourProbability
	}
	return bc
}
