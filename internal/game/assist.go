package game

import (
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

func init() {
	Register(ModeInfo{
		ID:          "assist",
		Title:       "AI Assist",
		Description: "Classic with a budget of AI hints; harder presets spawn more 4s.",
	}, newAssist)
}

// assistMode adds a bounded hint budget on top of the classic rules.
type assistMode struct {
	modeBase
	hints int
}

func newAssist(cfg config.Config, env Env) (Mode, error) {
	b, err := board.New(config.BoardConfigFor(cfg, true), env.RNG)
	if err != nil {
		return nil, err
	}
	return &assistMode{
		modeBase: modeBase{
			info:    modeInfo("assist"),
			session: NewSession(b, env.Opts),
		},
		hints: cfg.Modes.Assist.Hints,
	}, nil
}

// Hint consumes one hint from the budget and suggests a move. Returns
// false when the budget is spent or no effective move exists.
func (m *assistMode) Hint() (board.Direction, bool) {
	if m.hints <= 0 {
		return 0, false
	}
	dir, ok := m.session.Hint()
	if !ok {
		return 0, false
	}
	m.hints--
	return dir, true
}

// HintsLeft returns the remaining hint budget.
func (m *assistMode) HintsLeft() int { return m.hints }

var _ Hinter = (*assistMode)(nil)
