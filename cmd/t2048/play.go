package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/tui"
)

var (
	flagSize       int
	flagTarget     int
	flagDifficulty string
	flagPlayer     string
	flagLoad       string
	flagChallenge  string
	flagTheme      string
	flagNoColor    bool
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Controls:
  Arrows/WASD - Slide tiles
  U           - Undo last move
  X           - AI hint
  Ctrl+S      - Quicksave
  C           - Checkpoint
  Q/Ctrl+C    - Quit

Difficulty presets:
  easy   - Frequent 2-spawns, deep undo history
  normal - Default spawn odds and undo budget
  hard   - Frequent 4-spawns, shallow undo history

Examples:
  t2048 play classic
  t2048 play classic --size 5 --target 4096
  t2048 play timed --difficulty hard
  t2048 play challenge --challenge sprint-256
  t2048 play classic --load mygame.json`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size (3-6, 0 = config default)")
	playCmd.Flags().IntVar(&flagTarget, "target", 0, "Winning tile (1024, 2048 or 4096, 0 = config default)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for the scoreboard")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Resume from a save (name in the save dir, or a .json/.2048 path)")
	playCmd.Flags().StringVar(&flagChallenge, "challenge", "", "Challenge name (challenge mode only)")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: default, monochrome, dark")
	playCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colors (same as --theme monochrome)")
}

func runPlay(_ *cobra.Command, args []string) {
	modeID := args[0]

	if !game.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available modes.")
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: t2048 play needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		if !config.ValidPreset(preset) {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, normal, hard)\n", flagDifficulty)
			os.Exit(1)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagSize != 0 {
		cfg.Board.Size = flagSize
	}
	if flagTarget != 0 {
		cfg.Board.Target = flagTarget
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	saves, err := saveManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save directory: %v\n", err)
		os.Exit(1)
	}

	// Scores are optional: play on even when the database is unusable.
	store, err := openStore()
	if err != nil {
		log.Warn("scores database unavailable", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	env := game.Env{
		RNG:    newRNG(),
		Choice: flagChallenge,
		Opts: game.SessionOptions{
			Player:           flagPlayer,
			Saves:            saves,
			Store:            store,
			AutosaveInterval: autosaveInterval(cfg),
		},
	}
	mode, err := game.Create(modeID, cfg, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagLoad != "" {
		st, loadErr := loadSavedState(saves, flagLoad)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading save: %v\n", loadErr)
			os.Exit(1)
		}
		if restoreErr := mode.Session().Engine().Restore(st); restoreErr != nil {
			fmt.Fprintf(os.Stderr, "Error restoring save: %v\n", restoreErr)
			os.Exit(1)
		}
	}

	theme := flagTheme
	if flagNoColor {
		theme = "monochrome"
	}
	if cfgTheme := cfg.UI.Theme; theme == "" {
		theme = cfgTheme
	}

	if err := tui.Run(mode, tui.ThemeByName(theme), saves); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func autosaveInterval(cfg config.Config) time.Duration {
	if !cfg.Autosave.Enabled {
		return 0
	}
	return time.Duration(cfg.Autosave.IntervalSecs) * time.Second
}
