package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagStatsPlayer string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated statistics",
	Long: `Display per-mode statistics, and per-player statistics with a
move direction breakdown when --player is given.

Examples:
  t2048 stats
  t2048 stats --player alice`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsPlayer, "player", "", "Show statistics for one player")
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagStatsPlayer != "" {
		ps, err := store.GetPlayerStats(flagStatsPlayer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving player stats: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Statistics - %s\n", ps.Player)
		fmt.Println()
		if ps.GamesCount == 0 {
			fmt.Println("No games recorded yet.")
			return
		}
		fmt.Printf("  Games played:  %d\n", ps.GamesCount)
		fmt.Printf("  Wins:          %d\n", ps.Wins)
		fmt.Printf("  High score:    %d\n", ps.HighScore)
		fmt.Printf("  Average score: %.1f\n", ps.AvgScore)
		fmt.Printf("  Total score:   %d\n", ps.TotalScore)
		fmt.Printf("  Best tile:     %d\n", ps.BestTile)
		fmt.Printf("  Last played:   %s\n", ps.LastPlayed.Format("2006-01-02 15:04"))
		printMoveDistribution(store, flagStatsPlayer)
		return
	}

	modeStats, err := store.GetAllModeStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving mode stats: %v\n", err)
		os.Exit(1)
	}
	if len(modeStats) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	modes := make([]string, 0, len(modeStats))
	for mode := range modeStats {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	fmt.Println("Statistics by mode:")
	fmt.Println()
	fmt.Printf("  %-12s  %-6s  %-10s  %-10s  %s\n", "Mode", "Games", "Best", "Average", "Last Played")
	fmt.Printf("  %-12s  %-6s  %-10s  %-10s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, mode := range modes {
		ms := modeStats[mode]
		fmt.Printf("  %-12s  %-6d  %-10d  %-10.1f  %s\n",
			ms.Mode, ms.GamesCount, ms.HighScore, ms.AvgScore, ms.LastPlayed.Format("2006-01-02 15:04"))
	}
	printMoveDistribution(store, "")
}

func printMoveDistribution(store *storage.Store, player string) {
	dist, err := store.MoveDistribution(player)
	if err != nil || len(dist) == 0 {
		return
	}
	total := 0
	for _, n := range dist {
		total += n
	}
	fmt.Println()
	fmt.Println("Move distribution:")
	for _, dir := range []string{"up", "down", "left", "right"} {
		n := dist[dir]
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(n) / float64(total)
		}
		fmt.Printf("  %-6s %6d  (%.1f%%)\n", dir, n, pct)
	}
}
