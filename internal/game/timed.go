package game

import (
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

func init() {
	Register(ModeInfo{
		ID:          "timed",
		Title:       "Timed",
		Description: "Every move has a deadline; let it pass and the game ends.",
	}, newTimed)
}

// timedMode adds a per-move deadline checked from the platform tick.
type timedMode struct {
	modeBase
	perMove  time.Duration
	deadline time.Time
}

func newTimed(cfg config.Config, env Env) (Mode, error) {
	b, err := board.New(config.BoardConfigFor(cfg, false), env.RNG)
	if err != nil {
		return nil, err
	}
	session := NewSession(b, env.Opts)
	perMove := time.Duration(cfg.Modes.Timed.MoveSeconds) * time.Second
	return &timedMode{
		modeBase: modeBase{info: modeInfo("timed"), session: session},
		perMove:  perMove,
		deadline: session.clock().Add(perMove),
	}, nil
}

// Move applies the move and, when effective, restarts the deadline.
func (m *timedMode) Move(dir board.Direction) (bool, error) {
	changed, err := m.session.Move(dir)
	if changed {
		m.deadline = m.session.clock().Add(m.perMove)
	}
	return changed, err
}

// Poll expires the session when the move deadline has passed.
func (m *timedMode) Poll(now time.Time) {
	m.session.Poll(now)
	if !m.session.Finished() && now.After(m.deadline) {
		m.session.timeout()
	}
}

// Deadline returns the instant the current move must be made by.
func (m *timedMode) Deadline() time.Time { return m.deadline }

var _ Deadliner = (*timedMode)(nil)
