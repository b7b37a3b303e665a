package game

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

func init() {
	Register(ModeInfo{
		ID:          "challenge",
		Title:       "Challenge",
		Description: "Named challenges with fixed targets and constraints.",
	}, newChallenge)
}

// Challenge describes one named challenge. A zero MoveLimit means
// unlimited moves.
type Challenge struct {
	Name        string
	Description string
	Target      int
	MoveLimit   int
	UndoAllowed bool
}

// Challenges lists the built-in challenges, in menu order.
var Challenges = []Challenge{
	{
		Name:        "sprint-256",
		Description: "Reach 256 within 64 moves",
		Target:      256,
		MoveLimit:   64,
		UndoAllowed: true,
	},
	{
		Name:        "no-undo-512",
		Description: "Reach 512 without undoing a single move",
		Target:      512,
		MoveLimit:   0,
		UndoAllowed: false,
	},
	{
		Name:        "marathon-4096",
		Description: "Reach 4096, any number of moves",
		Target:      4096,
		MoveLimit:   0,
		UndoAllowed: true,
	},
}

// ChallengeByName looks up a built-in challenge.
func ChallengeByName(name string) (Challenge, bool) {
	for _, c := range Challenges {
		if c.Name == name {
			return c, true
		}
	}
	return Challenge{}, false
}

// challengeMode enforces a challenge's move limit and undo rule on top
// of a classic board with the challenge's target.
type challengeMode struct {
	modeBase
	challenge Challenge
}

func newChallenge(cfg config.Config, env Env) (Mode, error) {
	name := env.Choice
	if name == "" {
		name = Challenges[0].Name
	}
	ch, ok := ChallengeByName(name)
	if !ok {
		return nil, fmt.Errorf("game: unknown challenge %q", name)
	}

	bc := config.BoardConfigFor(cfg, false)
	bc.Target = ch.Target
	if !ch.UndoAllowed {
		bc.UndoBudget = 0
	}
	b, err := board.New(bc, env.RNG)
	if err != nil {
		return nil, err
	}
	session := NewSession(b, env.Opts)
	if !ch.UndoAllowed {
		session.DisableUndo()
	}
	return &challengeMode{
		modeBase:  modeBase{info: modeInfo("challenge"), session: session},
		challenge: ch,
	}, nil
}

// Challenge returns the active challenge definition.
func (m *challengeMode) Challenge() Challenge { return m.challenge }

// MovesLeft returns the remaining move allowance, or -1 when the
// challenge has no limit.
func (m *challengeMode) MovesLeft() int {
	if m.challenge.MoveLimit == 0 {
		return -1
	}
	left := m.challenge.MoveLimit - m.session.Tracker().MoveCount()
	if left < 0 {
		return 0
	}
	return left
}

// Move applies the move and loses the challenge when the move budget
// runs out before the target is reached.
func (m *challengeMode) Move(dir board.Direction) (bool, error) {
	changed, err := m.session.Move(dir)
	if changed && m.challenge.MoveLimit > 0 &&
		m.session.Status() == StatusPlaying &&
		m.session.Tracker().MoveCount() >= m.challenge.MoveLimit {
		m.session.timeout()
	}
	return changed, err
}
