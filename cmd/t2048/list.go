package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available game modes",
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := game.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	// Column width from the longest ID
	idWidth := 0
	for _, m := range modes {
		if len(m.ID) > idWidth {
			idWidth = len(m.ID)
		}
	}

	fmt.Println("Available modes:")
	fmt.Println()
	for _, m := range modes {
		padding := strings.Repeat(" ", idWidth-len(m.ID))
		fmt.Printf("  %s%s  %s - %s\n", m.ID, padding, m.Title, m.Description)
	}
	fmt.Println()

	fmt.Println("Challenges (for 'play challenge --challenge <name>'):")
	fmt.Println()
	for _, ch := range game.Challenges {
		fmt.Printf("  %-14s %s\n", ch.Name, ch.Description)
	}
	fmt.Println()
	fmt.Println("Play with: t2048 play <mode>")
}
