package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded YAML diverges from DefaultConfig():\n%+v\nvs\n%+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yaml := `
board:
  size: 5
  target: 4096
spawn:
  four_probability: 0.2
undo:
  history_limit: 8
  budget: 3
ui:
  theme: dark
autosave:
  enabled: false
  interval_secs: 60
modes:
  obstacles:
    count: 6
  timed:
    move_seconds: 5
  assist:
    hints: 3
    four_probability: 0.3
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Size != 5 || cfg.Board.Target != 4096 {
		t.Errorf("board config not loaded: %+v", cfg.Board)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected dark theme, got %q", cfg.UI.Theme)
	}
	if cfg.Modes.Timed.MoveSeconds != 5 {
		t.Errorf("expected 5s move timer, got %d", cfg.Modes.Timed.MoveSeconds)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadRejectsInvalidCustomConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board:\n  size: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"size too small", func(c *Config) { c.Board.Size = 2 }},
		{"size too large", func(c *Config) { c.Board.Size = 7 }},
		{"bad target", func(c *Config) { c.Board.Target = 100 }},
		{"negative four probability", func(c *Config) { c.Spawn.FourProbability = -0.1 }},
		{"four probability above one", func(c *Config) { c.Spawn.FourProbability = 1.5 }},
		{"zero history limit", func(c *Config) { c.Undo.HistoryLimit = 0 }},
		{"negative undo budget", func(c *Config) { c.Undo.Budget = -1 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }},
		{"autosave without interval", func(c *Config) { c.Autosave.IntervalSecs = 0 }},
		{"too many obstacles", func(c *Config) { c.Board.Size = 3; c.Modes.Obstacles.Count = 7 }},
		{"zero move timer", func(c *Config) { c.Modes.Timed.MoveSeconds = 0 }},
		{"negative hints", func(c *Config) { c.Modes.Assist.Hints = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := Validate(cfg); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		history   int
		budget    int
		obstacles int
		seconds   int
		hints     int
	}{
		{DifficultyEasy, 15, 10, 2, 15, 10},
		{DifficultyNormal, 10, 5, 4, 10, 5},
		{DifficultyHard, 5, 3, 6, 5, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Undo.HistoryLimit != tt.history {
				t.Errorf("undo history = %d, want %d", cfg.Undo.HistoryLimit, tt.history)
			}
			if cfg.Undo.Budget != tt.budget {
				t.Errorf("undo budget = %d, want %d", cfg.Undo.Budget, tt.budget)
			}
			if cfg.Modes.Obstacles.Count != tt.obstacles {
				t.Errorf("obstacles = %d, want %d", cfg.Modes.Obstacles.Count, tt.obstacles)
			}
			if cfg.Modes.Timed.MoveSeconds != tt.seconds {
				t.Errorf("move seconds = %d, want %d", cfg.Modes.Timed.MoveSeconds, tt.seconds)
			}
			if cfg.Modes.Assist.Hints != tt.hints {
				t.Errorf("hints = %d, want %d", cfg.Modes.Assist.Hints, tt.hints)
			}
		})
	}
}

func TestBoardConfigFor(t *testing.T) {
	cfg := DefaultConfig()
	bc := BoardConfigFor(cfg, false)
	if bc.Size != 4 || bc.Target != 2048 || bc.FourProbability != 0.1 {
		t.Errorf("unexpected board config: %+v", bc)
	}

	assist := BoardConfigFor(cfg, true)
	if assist.FourProbability != 0.2 {
		t.Errorf("assist four probability = %g, want 0.2", assist.FourProbability)
	}
}

func TestValidPreset(t *testing.T) {
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		if !ValidPreset(p) {
			t.Errorf("%q should be valid", p)
		}
	}
	if ValidPreset("impossible") {
		t.Error("unknown preset should be invalid")
	}
}
