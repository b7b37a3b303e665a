// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and rendering.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollInterval is how often the model re-checks deadlines (move timer,
// autosave). Deadlines live in the session; the tick only polls them.
const pollInterval = 250 * time.Millisecond

// TickMsg is sent to trigger a deadline poll.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends the next tick.
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
