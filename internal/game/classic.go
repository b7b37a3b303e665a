package game

import (
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

func init() {
	Register(ModeInfo{
		ID:          "classic",
		Title:       "Classic",
		Description: "The standard game: merge tiles, reach the target, keep going if you like.",
	}, newClassic)
}

// modeBase implements the Mode interface for single-session modes;
// variants embed it and override what they change.
type modeBase struct {
	info    ModeInfo
	session *Session
}

func (m *modeBase) ID() string          { return m.info.ID }
func (m *modeBase) Title() string       { return m.info.Title }
func (m *modeBase) Description() string { return m.info.Description }
func (m *modeBase) Session() *Session   { return m.session }
func (m *modeBase) Status() Status      { return m.session.Status() }
func (m *modeBase) Poll(now time.Time)  { m.session.Poll(now) }

func (m *modeBase) Move(dir board.Direction) (bool, error) {
	return m.session.Move(dir)
}

func newClassic(cfg config.Config, env Env) (Mode, error) {
	b, err := board.New(config.BoardConfigFor(cfg, false), env.RNG)
	if err != nil {
		return nil, err
	}
	return &modeBase{
		info:    modeInfo("classic"),
		session: NewSession(b, env.Opts),
	}, nil
}
