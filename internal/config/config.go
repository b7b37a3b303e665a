// Package config provides YAML-based game configuration loading and
// difficulty presets for the 2048 terminal game.
package config

// Config contains all user-tunable settings for the game.
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Undo     UndoConfig     `yaml:"undo"`
	UI       UIConfig       `yaml:"ui"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Modes    ModesConfig    `yaml:"modes"`
}

// BoardConfig defines the playing field.
type BoardConfig struct {
	Size   int `yaml:"size"`   // 3..6
	Target int `yaml:"target"` // 1024, 2048 or 4096
}

// SpawnConfig defines tile spawning behaviour.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"`
}

// UndoConfig bounds the undo system.
type UndoConfig struct {
	HistoryLimit int `yaml:"history_limit"` // snapshots kept
	Budget       int `yaml:"budget"`        // budgeted undos per game
}

// UIConfig defines presentation settings.
type UIConfig struct {
	Theme string `yaml:"theme"` // "default", "monochrome" or "dark"
}

// AutosaveConfig controls periodic background saving.
type AutosaveConfig struct {
	Enabled      bool `yaml:"enabled"`
	IntervalSecs int  `yaml:"interval_secs"`
}

// ModesConfig carries per-mode gameplay parameters.
type ModesConfig struct {
	Obstacles ObstaclesMode `yaml:"obstacles"`
	Timed     TimedMode     `yaml:"timed"`
	Assist    AssistMode    `yaml:"assist"`
}

// ObstaclesMode configures the obstacles variant.
type ObstaclesMode struct {
	Count int `yaml:"count"`
}

// TimedMode configures the per-move timer variant.
type TimedMode struct {
	MoveSeconds int `yaml:"move_seconds"`
}

// AssistMode configures the AI-assist variant.
type AssistMode struct {
	Hints           int     `yaml:"hints"`
	FourProbability float64 `yaml:"four_probability"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ValidPreset reports whether the preset is one of the named levels.
func ValidPreset(preset DifficultyPreset) bool {
	switch preset {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// ApplyPreset adjusts the undo depth and per-mode gameplay parameters
// for a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Undo.HistoryLimit = 15
		cfg.Undo.Budget = 10
		cfg.Modes.Obstacles.Count = 2
		cfg.Modes.Timed.MoveSeconds = 15
		cfg.Modes.Assist.Hints = 10
		cfg.Modes.Assist.FourProbability = 0.1
	case DifficultyNormal:
		cfg.Undo.HistoryLimit = 10
		cfg.Undo.Budget = 5
		cfg.Modes.Obstacles.Count = 4
		cfg.Modes.Timed.MoveSeconds = 10
		cfg.Modes.Assist.Hints = 5
		cfg.Modes.Assist.FourProbability = 0.2
	case DifficultyHard:
		cfg.Undo.HistoryLimit = 5
		cfg.Undo.Budget = 3
		cfg.Modes.Obstacles.Count = 6
		cfg.Modes.Timed.MoveSeconds = 5
		cfg.Modes.Assist.Hints = 3
		cfg.Modes.Assist.FourProbability = 0.3
	}
}
