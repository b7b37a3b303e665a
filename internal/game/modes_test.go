package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

func testEnv(seed int64) Env {
	return Env{RNG: rand.New(rand.NewSource(seed))}
}

func TestRegistryListsAllModes(t *testing.T) {
	want := []string{"assist", "challenge", "classic", "obstacles", "timed", "twoplayer"}
	list := List()
	if len(list) != len(want) {
		t.Fatalf("List() returned %d modes, want %d", len(list), len(want))
	}
	for i, info := range list {
		if info.ID != want[i] {
			t.Errorf("List()[%d].ID = %q, want %q", i, info.ID, want[i])
		}
		if info.Title == "" || info.Description == "" {
			t.Errorf("mode %q is missing metadata", info.ID)
		}
		if !Exists(info.ID) {
			t.Errorf("Exists(%q) = false", info.ID)
		}
	}
}

func TestCreateUnknownMode(t *testing.T) {
	if _, err := Create("tetris", config.DefaultConfig(), testEnv(1)); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestClassicMode(t *testing.T) {
	m, err := Create("classic", config.DefaultConfig(), testEnv(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.ID() != "classic" || m.Status() != StatusPlaying {
		t.Errorf("unexpected mode state: id=%q status=%v", m.ID(), m.Status())
	}
	if m.Session().Mode() != "classic" {
		t.Errorf("session mode = %q, want classic", m.Session().Mode())
	}
}

func TestAssistHintBudget(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Modes.Assist.Hints = 2

	m, err := Create("assist", cfg, testEnv(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	hinter, ok := m.(Hinter)
	if !ok {
		t.Fatal("assist mode should implement Hinter")
	}

	for i := 0; i < 2; i++ {
		if _, ok := hinter.Hint(); !ok {
			t.Fatalf("hint %d failed on a fresh board", i+1)
		}
	}
	if hinter.HintsLeft() != 0 {
		t.Errorf("HintsLeft = %d, want 0", hinter.HintsLeft())
	}
	if _, ok := hinter.Hint(); ok {
		t.Error("hint granted past the budget")
	}
}

func TestAssistUsesAssistSpawnProbability(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Modes.Assist.FourProbability = 0.3

	bc := config.BoardConfigFor(cfg, true)
	if bc.FourProbability != 0.3 {
		t.Errorf("assist four probability = %g, want 0.3", bc.FourProbability)
	}
}

func TestTimedDeadline(t *testing.T) {
	clock, tick := fakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	cfg := config.DefaultConfig()
	cfg.Modes.Timed.MoveSeconds = 10

	env := testEnv(1)
	env.Opts.Clock = clock
	m, err := Create("timed", cfg, env)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dl, ok := m.(Deadliner)
	if !ok {
		t.Fatal("timed mode should implement Deadliner")
	}
	first := dl.Deadline()

	// An effective move restarts the clock.
	tick(5 * time.Second)
	changed, err := m.Move(board.DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	if changed && !dl.Deadline().After(first) {
		t.Error("deadline should advance after an effective move")
	}

	m.Poll(clock())
	if m.Status() == StatusTimedOut {
		t.Fatal("timed out before the deadline")
	}

	tick(time.Minute)
	m.Poll(clock())
	if m.Status() != StatusTimedOut {
		t.Errorf("Status = %v, want timed_out", m.Status())
	}
	if changed, _ := m.Move(board.DirRight); changed {
		t.Error("moves should be rejected after timeout")
	}
}

func TestObstaclesModeExposesCells(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Modes.Obstacles.Count = 3

	m, err := Create("obstacles", cfg, testEnv(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	om, ok := m.(*obstaclesMode)
	if !ok {
		t.Fatal("expected an obstaclesMode")
	}
	if got := len(om.Obstacles()); got != 3 {
		t.Errorf("obstacle count = %d, want 3", got)
	}
}

func TestChallengeByName(t *testing.T) {
	if _, ok := ChallengeByName("sprint-256"); !ok {
		t.Error("sprint-256 should exist")
	}
	if _, ok := ChallengeByName("nope"); ok {
		t.Error("unknown challenge should not resolve")
	}
}

func TestChallengeDefaultsAndTarget(t *testing.T) {
	m, err := Create("challenge", config.DefaultConfig(), testEnv(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	cm := m.(*challengeMode)
	if cm.Challenge().Name != "sprint-256" {
		t.Errorf("default challenge = %q, want sprint-256", cm.Challenge().Name)
	}
	if cm.Session().Engine().Target() != 256 {
		t.Errorf("target = %d, want 256", cm.Session().Engine().Target())
	}
	if cm.MovesLeft() != 64 {
		t.Errorf("MovesLeft = %d, want 64", cm.MovesLeft())
	}

	if _, err := m.Move(board.DirLeft); err != nil {
		t.Fatal(err)
	}
	if cm.MovesLeft() != 63 {
		t.Errorf("MovesLeft after one move = %d, want 63", cm.MovesLeft())
	}
}

func TestChallengeNoUndo(t *testing.T) {
	env := testEnv(1)
	env.Choice = "no-undo-512"
	m, err := Create("challenge", config.DefaultConfig(), env)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Move(board.DirLeft); err != nil {
		t.Fatal(err)
	}
	if m.Session().Undo() {
		t.Error("no-undo challenge should reject Undo")
	}
	if m.Session().UndoMove() {
		t.Error("no-undo challenge should reject UndoMove")
	}
}

func TestChallengeUnknownChoice(t *testing.T) {
	env := testEnv(1)
	env.Choice = "impossible"
	if _, err := Create("challenge", config.DefaultConfig(), env); err == nil {
		t.Error("expected error for unknown challenge")
	}
}

func TestTwoPlayerTurnAlternation(t *testing.T) {
	m, err := Create("twoplayer", config.DefaultConfig(), testEnv(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	tp := m.(*twoPlayerMode)
	if tp.Turn() != 0 {
		t.Fatalf("first turn = %d, want 0", tp.Turn())
	}

	changed, err := m.Move(board.DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	if changed && tp.Turn() != 1 {
		t.Errorf("turn after effective move = %d, want 1", tp.Turn())
	}
	if !changed && tp.Turn() != 0 {
		t.Errorf("ineffective move must not pass the turn")
	}
}

func TestTwoPlayerWinByTarget(t *testing.T) {
	m, err := Create("twoplayer", config.DefaultConfig(), testEnv(1))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	tp := m.(*twoPlayerMode)

	if err := tp.Session().Engine().Restore(winningState()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	changed, err := m.Move(board.DirLeft)
	if err != nil || !changed {
		t.Fatalf("Move = (%v, %v), want effective", changed, err)
	}

	winner, decided := tp.Winner()
	if !decided || winner != 0 {
		t.Errorf("Winner = (%d, %v), want (0, true)", winner, decided)
	}
	if m.Status() != StatusWon {
		t.Errorf("Status = %v, want won", m.Status())
	}
	if changed, _ := m.Move(board.DirUp); changed {
		t.Error("moves after the match is decided should be rejected")
	}
}
