package tui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game"
)

func testMode(t *testing.T) game.Mode {
	t.Helper()
	m, err := game.Create("classic", config.DefaultConfig(), game.Env{
		RNG: rand.New(rand.NewSource(3)),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return m
}

func TestDirectionForKey(t *testing.T) {
	tests := []struct {
		key  string
		dir  board.Direction
		want bool
	}{
		{"up", board.DirUp, true},
		{"w", board.DirUp, true},
		{"down", board.DirDown, true},
		{"s", board.DirDown, true},
		{"left", board.DirLeft, true},
		{"a", board.DirLeft, true},
		{"right", board.DirRight, true},
		{"d", board.DirRight, true},
		{"x", 0, false},
		{"enter", 0, false},
	}

	for _, tt := range tests {
		dir, ok := directionForKey(tt.key)
		if ok != tt.want || (ok && dir != tt.dir) {
			t.Errorf("directionForKey(%q) = (%v, %v), want (%v, %v)", tt.key, dir, ok, tt.dir, tt.want)
		}
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"default", "monochrome", "dark"} {
		if got := ThemeByName(name).Name; got != name {
			t.Errorf("ThemeByName(%q).Name = %q", name, got)
		}
	}
	if got := ThemeByName("neon").Name; got != "default" {
		t.Errorf("unknown theme should fall back to default, got %q", got)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("4", 6); got != "  4   " && got != "   4  " {
		t.Errorf("centerText misaligned: %q", got)
	}
	if got := centerText("123456", 4); got != "123456" {
		t.Errorf("oversized text should pass through, got %q", got)
	}
}

func TestModelViewShowsScoreAndBoard(t *testing.T) {
	m := NewModel(testMode(t), monochromeTheme(), nil)

	view := m.View()
	if !strings.Contains(view, "Classic") {
		t.Error("view should contain the mode title")
	}
	if !strings.Contains(view, "score 0") {
		t.Error("view should contain the score line")
	}
	if !strings.Contains(view, "target 2048") {
		t.Error("view should contain the target")
	}
}

func TestModelMoveKeyUpdatesBoard(t *testing.T) {
	m := NewModel(testMode(t), monochromeTheme(), nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	model := updated.(Model)

	// A fresh board always accepts at least one of the four moves; try
	// the rest if left changed nothing.
	if model.mode.Session().Tracker().MoveCount() == 0 {
		for _, key := range []tea.KeyMsg{
			{Type: tea.KeyUp}, {Type: tea.KeyRight}, {Type: tea.KeyDown},
		} {
			updated, _ = model.Update(key)
			model = updated.(Model)
			if model.mode.Session().Tracker().MoveCount() > 0 {
				break
			}
		}
	}
	if model.mode.Session().Tracker().MoveCount() == 0 {
		t.Error("no movement key changed a fresh board")
	}
}

func TestModelUndoKeyMessages(t *testing.T) {
	m := NewModel(testMode(t), monochromeTheme(), nil)

	// Empty history: the budget is untouched, so the message must say
	// there is nothing to undo, not that the budget is spent.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	model := updated.(Model)
	if model.message != "nothing to undo" {
		t.Errorf("undo on fresh board: message = %q, want %q", model.message, "nothing to undo")
	}

	// Spend the whole budget, then one more undo press reports it.
	session := model.mode.Session()
	for session.Engine().RemainingUndos() > 0 {
		moveUntilChanged(t, session)
		if !session.UndoMove() {
			t.Fatal("UndoMove failed with budget remaining")
		}
	}
	moveUntilChanged(t, session)
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	model = updated.(Model)
	if model.message != "undo budget spent" {
		t.Errorf("undo past budget: message = %q, want %q", model.message, "undo budget spent")
	}
}

func moveUntilChanged(t *testing.T, session *game.Session) {
	t.Helper()
	for _, dir := range board.Directions {
		changed, err := session.Move(dir)
		if err != nil {
			t.Fatalf("Move: %v", err)
		}
		if changed {
			return
		}
	}
	t.Fatal("no direction changed the board")
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(testMode(t), monochromeTheme(), nil)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	model := updated.(Model)
	if !model.quitting {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return tea.Quit")
	}
	if model.View() != "" {
		t.Error("view after quit should be empty")
	}
}
