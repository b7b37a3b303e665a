// Package game wires board engines, statistics, persistence and mode
// rules into playable sessions. Modes register themselves in init()
// functions, allowing the platform to discover and instantiate modes
// without hardcoded dependencies.
package game

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/save"
	"github.com/vovakirdan/tui-2048/internal/stats"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Engine is the board surface a session drives. Both *board.Board and
// *board.ObstacleBoard satisfy it.
type Engine interface {
	Move(board.Direction) (bool, error)
	Grid() board.Grid
	Score() int
	Size() int
	Target() int
	MaxTile() int
	LastMove() board.LastMove
	HasWon() bool
	IsGameOver() bool
	Undo() bool
	UndoMove() bool
	CanUndo() bool
	RemainingUndos() int
	HistoryDepth() int
	State() board.State
	Restore(board.State) error
}

// Status describes where a session stands.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon            // target reached; playing may continue
	StatusLost
	StatusTimedOut
)

// String returns the status name used in logs and storage.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// SessionOptions carries the collaborators a session may use. Saves,
// Store and Logger are optional; a session without them simply plays.
type SessionOptions struct {
	Mode             string
	Player           string
	Saves            *save.Manager
	Store            *storage.Store
	Logger           *log.Logger
	AutosaveInterval time.Duration
	Clock            func() time.Time
}

// Session owns one running game: the engine, its statistics tracker,
// and the autosave deadline polled from the platform tick. All methods
// run on the single turn loop; no goroutine mutates session state.
type Session struct {
	engine  Engine
	tracker *stats.Tracker
	saves   *save.Manager
	store   *storage.Store
	logger  *log.Logger

	mode   string
	player string
	clock  func() time.Time

	startedAt    time.Time
	autosaveGap  time.Duration
	nextAutosave time.Time
	status       Status
	saved        bool // final record already persisted
	noUndo       bool
}

// NewSession wraps an engine with tracking and persistence hooks.
func NewSession(engine Engine, opts SessionOptions) *Session {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "game"})
	}
	now := opts.Clock()
	s := &Session{
		engine:      engine,
		tracker:     stats.NewTracker(now),
		saves:       opts.Saves,
		store:       opts.Store,
		logger:      opts.Logger,
		mode:        opts.Mode,
		player:      opts.Player,
		clock:       opts.Clock,
		startedAt:   now,
		autosaveGap: opts.AutosaveInterval,
	}
	if s.autosaveGap > 0 && s.saves != nil {
		s.nextAutosave = now.Add(s.autosaveGap)
	}
	return s
}

// Engine returns the underlying board engine.
func (s *Session) Engine() Engine { return s.engine }

// Tracker returns the session's statistics tracker.
func (s *Session) Tracker() *stats.Tracker { return s.tracker }

// Mode returns the mode ID the session was created for.
func (s *Session) Mode() string { return s.mode }

// Player returns the player name, possibly empty.
func (s *Session) Player() string { return s.player }

// Status returns the session status.
func (s *Session) Status() Status { return s.status }

// Finished reports whether play has ended. A won session is not
// finished; the player may keep going.
func (s *Session) Finished() bool {
	return s.status == StatusLost || s.status == StatusTimedOut
}

// Move applies one move, records its statistics and updates the
// session status. Ineffective moves change nothing and return false.
func (s *Session) Move(dir board.Direction) (bool, error) {
	if s.Finished() {
		return false, nil
	}

	before := s.engine.Score()
	changed, err := s.engine.Move(dir)
	if err != nil || !changed {
		return changed, err
	}

	grid := s.engine.Grid()
	s.tracker.RecordMove(
		dir,
		len(s.engine.LastMove().Merges),
		s.engine.Score()-before,
		board.EstimateDifficulty(grid, s.engine.Target()),
		s.engine.MaxTile(),
	)

	if s.status == StatusPlaying && s.engine.HasWon() {
		s.status = StatusWon
		s.logger.Info("target reached", "mode", s.mode, "score", s.engine.Score())
	}
	if s.engine.IsGameOver() {
		s.status = StatusLost
	}
	return true, nil
}

// DisableUndo forbids both undo entry points for the rest of the
// session. Used by challenges that ban undo.
func (s *Session) DisableUndo() { s.noUndo = true }

// UndoAllowed reports whether the session accepts undos at all.
func (s *Session) UndoAllowed() bool { return !s.noUndo }

// Undo pops one history entry regardless of budget. Reviving a lost
// board puts the session back into play.
func (s *Session) Undo() bool {
	if s.noUndo || !s.engine.Undo() {
		return false
	}
	s.revive()
	return true
}

// UndoMove pops one history entry against the undo budget.
func (s *Session) UndoMove() bool {
	if s.noUndo || !s.engine.UndoMove() {
		return false
	}
	s.revive()
	return true
}

func (s *Session) revive() {
	if s.status == StatusLost {
		s.status = StatusPlaying
	}
}

// Hint suggests the best move for the current grid.
func (s *Session) Hint() (board.Direction, bool) {
	return board.SuggestMove(s.engine.Grid())
}

// Terminal classifies the current grid, including the unreachable
// target case.
func (s *Session) Terminal() board.TerminalStatus {
	return board.Terminal(s.engine.Grid(), s.engine.Target())
}

// Poll runs the deadline checks. Called from the platform tick; writes
// an autosave when the interval has elapsed.
func (s *Session) Poll(now time.Time) {
	if s.saves == nil || s.nextAutosave.IsZero() || now.Before(s.nextAutosave) {
		return
	}
	s.nextAutosave = now.Add(s.autosaveGap)
	if s.Finished() {
		return
	}
	if err := s.saves.Autosave(s.engine.State()); err != nil {
		s.logger.Warn("autosave failed", "error", err)
	}
}

// timeout marks the session as lost to the clock. Used by timed modes.
func (s *Session) timeout() {
	if !s.Finished() {
		s.status = StatusTimedOut
	}
}

// Duration returns how long the session has been running.
func (s *Session) Duration(now time.Time) time.Duration {
	return now.Sub(s.startedAt)
}

// Shutdown snapshots the running game to an autosave before the host
// exits. Safe to call more than once.
func (s *Session) Shutdown() {
	if s.saves == nil || s.Finished() {
		return
	}
	if err := s.saves.Autosave(s.engine.State()); err != nil {
		s.logger.Warn("shutdown autosave failed", "error", err)
	}
}

// Persist writes the final game record and its moves to storage. The
// record is written once; later calls are no-ops.
func (s *Session) Persist() error {
	if s.store == nil || s.saved {
		return nil
	}
	playerID, err := s.store.EnsurePlayer(s.player)
	if err != nil {
		return err
	}
	now := s.clock()
	summary := s.tracker.Summary(now)

	moves := make([]storage.MoveRecord, 0, len(s.tracker.Moves()))
	for _, mv := range s.tracker.Moves() {
		moves = append(moves, storage.MoveRecord{
			Direction:  mv.Direction.String(),
			Merges:     mv.Merges,
			ScoreDelta: mv.ScoreDelta,
		})
	}

	_, err = s.store.SaveGame(storage.GameRecord{
		PlayerID:     playerID,
		Mode:         s.mode,
		Size:         s.engine.Size(),
		Target:       s.engine.Target(),
		Score:        s.engine.Score(),
		MaxTile:      s.engine.MaxTile(),
		Won:          s.status == StatusWon,
		Moves:        summary.Moves,
		DurationSecs: int(summary.Duration.Seconds()),
		Difficulty:   summary.AvgDifficulty,
	}, moves)
	if err != nil {
		return err
	}
	s.saved = true
	return nil
}
