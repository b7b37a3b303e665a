package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/save"
)

const tileWidth = 6

// Model is the Bubble Tea model for playing one game mode.
type Model struct {
	mode  game.Mode
	theme Theme
	saves *save.Manager
	clock func() time.Time

	width    int
	height   int
	message  string // transient one-line feedback
	hint     string // last hint shown
	quitting bool
}

// NewModel creates a play model for the given mode.
func NewModel(mode game.Mode, theme Theme, saves *save.Manager) Model {
	return Model{
		mode:  mode,
		theme: theme,
		saves: saves,
		clock: time.Now,
	}
}

// Init starts the deadline poll loop.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()
	}

	if dir, ok := directionForKey(msg.String()); ok {
		return m.applyMove(dir)
	}

	session := m.mode.Session()
	switch msg.String() {
	case "u":
		if !session.UndoMove() {
			if !session.UndoAllowed() {
				m.message = "undo is disabled in this challenge"
			} else if session.Engine().HistoryDepth() == 0 {
				m.message = "nothing to undo"
			} else {
				m.message = "undo budget spent"
			}
		} else {
			m.message = fmt.Sprintf("undone (%d left)", session.Engine().RemainingUndos())
		}
		m.hint = ""

	case "x":
		if hinter, ok := m.mode.(game.Hinter); ok {
			if dir, ok := hinter.Hint(); ok {
				m.hint = fmt.Sprintf("hint: %s (%d left)", dir, hinter.HintsLeft())
			} else if hinter.HintsLeft() == 0 {
				m.hint = "no hints left"
			} else {
				m.hint = "no effective move"
			}
		} else if dir, ok := session.Hint(); ok {
			m.hint = "hint: " + dir.String()
		}

	case "ctrl+s":
		if m.saves != nil {
			if err := m.saves.Quicksave(session.Engine().State(), 1); err != nil {
				m.message = "quicksave failed"
			} else {
				m.message = "quicksaved to slot 1"
			}
		}

	case "c":
		if m.saves != nil {
			name, err := m.saves.Checkpoint(session.Engine().State(), m.mode.ID())
			if err != nil {
				m.message = "checkpoint failed"
			} else {
				m.message = "checkpoint " + name
			}
		}
	}

	return m, nil
}

// directionForKey maps movement keys to board directions.
func directionForKey(key string) (board.Direction, bool) {
	switch key {
	case "up", "w":
		return board.DirUp, true
	case "down", "s":
		return board.DirDown, true
	case "left", "a":
		return board.DirLeft, true
	case "right", "d":
		return board.DirRight, true
	}
	return 0, false
}

// applyMove forwards a move to the mode.
func (m Model) applyMove(dir board.Direction) (tea.Model, tea.Cmd) {
	m.message = ""
	m.hint = ""

	changed, err := m.mode.Move(dir)
	if err != nil {
		m.message = err.Error()
		return m, nil
	}
	if !changed && !m.mode.Session().Finished() {
		m.message = "that move changes nothing"
	}
	if m.mode.Session().Finished() {
		m.persist()
	}
	return m, nil
}

// handleTick polls the mode's deadlines.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.mode.Poll(now)
	if m.mode.Session().Finished() {
		m.persist()
	}
	return m, tickCmd()
}

// persist writes the final record; the session dedupes repeat calls.
func (m Model) persist() {
	//nolint:errcheck // Best-effort save, the game result is already on screen
	m.mode.Session().Persist()
}

// quit shuts the session down and leaves the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.mode.Session().Shutdown()
	m.persist()
	return m, tea.Quit
}

// View renders the board, status and help lines.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.theme.Title.Render(m.mode.Title()))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderBoards())
	sb.WriteString("\n")
	sb.WriteString(m.theme.Status.Render(m.statusLine()))
	sb.WriteString("\n")

	if banner := m.banner(); banner != "" {
		sb.WriteString(banner)
		sb.WriteString("\n")
	}
	if m.hint != "" {
		sb.WriteString(m.theme.Status.Render(m.hint))
		sb.WriteString("\n")
	}
	if m.message != "" {
		sb.WriteString(m.theme.Status.Render(m.message))
		sb.WriteString("\n")
	}

	sb.WriteString(m.theme.Help.Render("arrows/wasd move · u undo · x hint · ctrl+s quicksave · c checkpoint · q quit"))
	return sb.String()
}

// renderBoards draws one board, or both side by side for two-player.
func (m Model) renderBoards() string {
	if tp, ok := m.mode.(interface{ SessionAt(int) *game.Session }); ok {
		left := m.renderBoard(tp.SessionAt(0).Engine().Grid(), nil)
		right := m.renderBoard(tp.SessionAt(1).Engine().Grid(), nil)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	}

	var obstacles map[board.Cell]bool
	if om, ok := m.mode.(interface{ Obstacles() []board.Cell }); ok {
		obstacles = make(map[board.Cell]bool)
		for _, c := range om.Obstacles() {
			obstacles[c] = true
		}
	}
	return m.renderBoard(m.mode.Session().Engine().Grid(), obstacles)
}

// renderBoard draws a grid with the current theme.
func (m Model) renderBoard(g board.Grid, obstacles map[board.Cell]bool) string {
	n := g.Size()
	rows := make([]string, 0, n)
	for i := 0; i < n; i++ {
		cells := make([]string, 0, n)
		for j := 0; j < n; j++ {
			cells = append(cells, m.renderCell(g[i][j], obstacles[board.Cell{Row: i, Col: j}]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return m.theme.Board.Render(strings.Join(rows, "\n"))
}

func (m Model) renderCell(value int, blocked bool) string {
	switch {
	case blocked:
		return m.theme.Obstacle.Render(centerText("░░", tileWidth))
	case value == 0:
		return m.theme.Empty.Render(centerText("·", tileWidth))
	default:
		return m.theme.TileStyle(value).Render(centerText(fmt.Sprintf("%d", value), tileWidth))
	}
}

// statusLine summarizes score and the mode-specific counters.
func (m Model) statusLine() string {
	session := m.mode.Session()
	engine := session.Engine()

	parts := []string{
		fmt.Sprintf("score %d", engine.Score()),
		fmt.Sprintf("target %d", engine.Target()),
		fmt.Sprintf("undos %d", engine.RemainingUndos()),
	}
	if hinter, ok := m.mode.(game.Hinter); ok {
		parts = append(parts, fmt.Sprintf("hints %d", hinter.HintsLeft()))
	}
	if dl, ok := m.mode.(game.Deadliner); ok {
		left := time.Until(dl.Deadline()).Round(time.Second)
		if left < 0 {
			left = 0
		}
		parts = append(parts, fmt.Sprintf("move in %s", left))
	}
	if cm, ok := m.mode.(interface{ MovesLeft() int }); ok {
		if left := cm.MovesLeft(); left >= 0 {
			parts = append(parts, fmt.Sprintf("moves left %d", left))
		}
	}
	if tp, ok := m.mode.(interface{ Turn() int }); ok {
		parts = append(parts, fmt.Sprintf("player %d to move", tp.Turn()+1))
	}
	parts = append(parts, fmt.Sprintf("difficulty %.1f", board.EstimateDifficulty(engine.Grid(), engine.Target())))
	return strings.Join(parts, " · ")
}

// banner returns the win/lose line when the game has ended.
func (m Model) banner() string {
	switch m.mode.Status() {
	case game.StatusWon:
		if tp, ok := m.mode.(interface{ Winner() (int, bool) }); ok {
			if winner, decided := tp.Winner(); decided {
				return m.theme.Win.Render(fmt.Sprintf("player %d wins!", winner+1))
			}
		}
		return m.theme.Win.Render("you reached the target — keep going or press q")
	case game.StatusLost:
		return m.theme.Lose.Render("no moves left — game over (u to undo)")
	case game.StatusTimedOut:
		return m.theme.Lose.Render("out of time")
	}
	return ""
}

// centerText pads s to width, centered.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// Run starts the Bubble Tea program for a mode.
func Run(mode game.Mode, theme Theme, saves *save.Manager) error {
	p := tea.NewProgram(
		NewModel(mode, theme, saves),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
