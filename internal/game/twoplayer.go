package game

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

func init() {
	Register(ModeInfo{
		ID:          "twoplayer",
		Title:       "Two Player",
		Description: "Two boards, alternating turns; first to the target wins, or the higher score when a board dies.",
	}, newTwoPlayer)
}

// twoPlayerMode alternates turns between two independent boards with a
// shared target. Only effective moves pass the turn.
type twoPlayerMode struct {
	info     ModeInfo
	sessions [2]*Session
	turn     int
	winner   int // -1 while undecided
}

func newTwoPlayer(cfg config.Config, env Env) (Mode, error) {
	m := &twoPlayerMode{info: modeInfo("twoplayer"), winner: -1}
	for i := range m.sessions {
		opts := env.Opts
		// A single save file cannot hold two boards, so the match is
		// not autosaved.
		opts.Saves = nil
		if opts.Player == "" {
			opts.Player = fmt.Sprintf("player%d", i+1)
		} else {
			opts.Player = fmt.Sprintf("%s-p%d", opts.Player, i+1)
		}
		b, err := board.New(config.BoardConfigFor(cfg, false), env.RNG)
		if err != nil {
			return nil, err
		}
		m.sessions[i] = NewSession(b, opts)
	}
	return m, nil
}

func (m *twoPlayerMode) ID() string          { return m.info.ID }
func (m *twoPlayerMode) Title() string       { return m.info.Title }
func (m *twoPlayerMode) Description() string { return m.info.Description }

// Session returns the session whose turn it is.
func (m *twoPlayerMode) Session() *Session { return m.sessions[m.turn] }

// SessionAt returns one player's session for rendering both boards.
func (m *twoPlayerMode) SessionAt(i int) *Session { return m.sessions[i] }

// Turn returns the index of the player to move.
func (m *twoPlayerMode) Turn() int { return m.turn }

// Winner returns the winning player index once the match is decided.
func (m *twoPlayerMode) Winner() (int, bool) {
	return m.winner, m.winner >= 0
}

// Move applies the current player's move. An effective move passes the
// turn; reaching the target or killing a board decides the match.
func (m *twoPlayerMode) Move(dir board.Direction) (bool, error) {
	if m.winner >= 0 {
		return false, nil
	}
	current := m.turn
	changed, err := m.sessions[current].Move(dir)
	if err != nil || !changed {
		return changed, err
	}

	switch m.sessions[current].Status() {
	case StatusWon:
		m.winner = current
	case StatusLost:
		// Board died; the higher score takes the match.
		if m.sessions[current].Engine().Score() > m.sessions[1-current].Engine().Score() {
			m.winner = current
		} else {
			m.winner = 1 - current
		}
	default:
		m.turn = 1 - current
	}
	return true, nil
}

// Poll forwards the tick to both sessions.
func (m *twoPlayerMode) Poll(now time.Time) {
	for _, s := range m.sessions {
		s.Poll(now)
	}
}

// Status reports the match state: playing until undecided, won once a
// winner exists. Which player won comes from Winner.
func (m *twoPlayerMode) Status() Status {
	if m.winner < 0 {
		return StatusPlaying
	}
	return StatusWon
}
