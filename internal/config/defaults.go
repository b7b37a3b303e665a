package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultConfig returns the default game configuration.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Size:   4,
			Target: 2048,
		},
		Spawn: SpawnConfig{
			FourProbability: 0.1,
		},
		Undo: UndoConfig{
			HistoryLimit: 10,
			Budget:       5,
		},
		UI: UIConfig{
			Theme: "default",
		},
		Autosave: AutosaveConfig{
			Enabled:      true,
			IntervalSecs: 30,
		},
		Modes: ModesConfig{
			Obstacles: ObstaclesMode{Count: 4},
			Timed:     TimedMode{MoveSeconds: 10},
			Assist:    AssistMode{Hints: 5, FourProbability: 0.2},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
