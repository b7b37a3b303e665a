package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/tui"
)

var (
	flagScoresLimit int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores, for one mode or across all modes.

Examples:
  t2048 scores
  t2048 scores classic
  t2048 scores timed --limit 25
  t2048 scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse scores in a full-screen table")
}

func runScores(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !game.Exists(mode) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
			fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available modes.")
			os.Exit(1)
		}
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		if err := tui.RunScoreboard(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	records, err := store.HighScores(mode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := "all modes"
	if mode != "" {
		title = mode
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play classic' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-9s  %-6s  %s\n", "Rank", "Player", "Score", "Max Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-9s  %-6s  %s\n", "----", "------", "-----", "--------", "-----", "----")
	for i, rec := range records {
		dateStr := rec.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-10d  %-9d  %-6d  %s\n", i+1, rec.Player, rec.Score, rec.MaxTile, rec.Moves, dateStr)
	}

	best, err := store.HighScore(mode)
	if err == nil && best > 0 {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}
