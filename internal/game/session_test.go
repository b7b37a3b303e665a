package game

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/save"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// fakeClock returns a steppable clock for deadline tests.
func fakeClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func newTestSession(t *testing.T, opts SessionOptions) *Session {
	t.Helper()
	b, err := board.New(board.DefaultConfig(), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("board.New failed: %v", err)
	}
	return NewSession(b, opts)
}

// winningState is one merge away from the default 2048 target.
func winningState() board.State {
	g := board.NewGrid(4)
	g[0][0] = 1024
	g[0][1] = 1024
	g[1][0] = 2
	return board.State{Grid: g, Score: 1024, Size: 4}
}

func TestSessionTracksMoves(t *testing.T) {
	s := newTestSession(t, SessionOptions{Mode: "classic"})

	moved := false
	for _, dir := range board.Directions {
		changed, err := s.Move(dir)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if changed {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("no direction changed a fresh board")
	}
	if s.Tracker().MoveCount() != 1 {
		t.Errorf("MoveCount = %d, want 1", s.Tracker().MoveCount())
	}
	if s.Status() != StatusPlaying {
		t.Errorf("Status = %v, want playing", s.Status())
	}
}

func TestSessionWinStatus(t *testing.T) {
	s := newTestSession(t, SessionOptions{Mode: "classic"})
	if err := s.Engine().Restore(winningState()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	changed, err := s.Move(board.DirLeft)
	if err != nil || !changed {
		t.Fatalf("Move = (%v, %v), want effective", changed, err)
	}
	if s.Status() != StatusWon {
		t.Errorf("Status = %v, want won", s.Status())
	}
	if s.Finished() {
		t.Error("a won session should still accept moves")
	}
}

func TestSessionDisableUndo(t *testing.T) {
	s := newTestSession(t, SessionOptions{Mode: "classic"})
	if _, err := s.Move(board.DirLeft); err != nil {
		t.Fatal(err)
	}
	s.DisableUndo()

	if s.Undo() {
		t.Error("Undo should fail after DisableUndo")
	}
	if s.UndoMove() {
		t.Error("UndoMove should fail after DisableUndo")
	}
	if s.UndoAllowed() {
		t.Error("UndoAllowed should report false")
	}
}

func TestSessionAutosavePoll(t *testing.T) {
	clock, tick := fakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	saves, err := save.NewManager(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, SessionOptions{
		Mode:             "classic",
		Saves:            saves,
		AutosaveInterval: 30 * time.Second,
		Clock:            clock,
	})

	s.Poll(clock())
	if _, err := saves.LatestAutosave(); err == nil {
		t.Fatal("autosave written before the interval elapsed")
	}

	tick(31 * time.Second)
	s.Poll(clock())
	st, err := saves.LatestAutosave()
	if err != nil {
		t.Fatalf("expected an autosave after the interval: %v", err)
	}
	if st.Size != 4 {
		t.Errorf("autosaved size = %d, want 4", st.Size)
	}
}

func TestSessionShutdownAutosaves(t *testing.T) {
	saves, err := save.NewManager(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, SessionOptions{Mode: "classic", Saves: saves})

	s.Shutdown()
	if _, err := saves.LatestAutosave(); err != nil {
		t.Errorf("Shutdown should write an autosave: %v", err)
	}
}

func TestSessionPersist(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	s := newTestSession(t, SessionOptions{Mode: "classic", Player: "alice", Store: store})
	if _, err := s.Move(board.DirLeft); err != nil {
		t.Fatal(err)
	}

	if err := s.Persist(); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	// Second call is a no-op, not a duplicate row.
	if err := s.Persist(); err != nil {
		t.Fatalf("second Persist failed: %v", err)
	}

	records, err := store.HighScores("classic", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Player != "alice" || records[0].Size != 4 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}
