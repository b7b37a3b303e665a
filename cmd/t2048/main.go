// t2048 is a terminal 2048 game with AI assist, timed, obstacle,
// challenge and two-player modes, save files and statistics.
//
// Usage:
//
//	t2048 list               - List available modes
//	t2048 play <mode>        - Play a mode
//	t2048 scores [mode]      - Show high scores
//	t2048 stats              - Show aggregated statistics
//	t2048 saves <subcommand> - Manage save files
//	t2048 serve              - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>        - Set database path (default: ~/.t2048/scores.db)
//	--seed <value>     - Set RNG seed for reproducible games
//	--save-dir <path>  - Set save directory (default: ~/.t2048/saves)
//	--config <path>    - Path to a custom config YAML
//	--debug            - Verbose logging
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/save"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagDBPath  string
	flagSeed    int64
	flagSaveDir string
	flagConfig  string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal - with modes, saves and statistics",
	Long: `t2048 is a terminal take on the 2048 puzzle: slide tiles, merge
equal pairs, reach the target.

Available commands:
  list     - Show all game modes
  play     - Play a mode
  scores   - View high scores
  stats    - View aggregated statistics
  saves    - Manage save files
  serve    - Start SSH server for remote play

Examples:
  t2048 play classic
  t2048 play timed --difficulty hard
  t2048 play challenge --challenge no-undo-512
  t2048 scores classic
  t2048 saves list`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagDebug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagSaveDir, "save-dir", "", "Save directory (default: ~/.t2048/saves)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Verbose logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(serveCmd)
}

// newRNG builds the game RNG from --seed.
func newRNG() *rand.Rand {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// loadConfig loads the game configuration honoring --config.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}

// openStore opens the scores database from --db.
func openStore() (*storage.Store, error) {
	return storage.Open(flagDBPath)
}

// saveDir resolves the save directory from --save-dir.
func saveDir() (string, error) {
	if flagSaveDir != "" {
		return flagSaveDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, ".t2048", "saves"), nil
}

// saveManager opens the save manager rooted at the save directory.
func saveManager() (*save.Manager, error) {
	dir, err := saveDir()
	if err != nil {
		return nil, err
	}
	return save.NewManager(dir, nil)
}
