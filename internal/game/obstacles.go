package game

import (
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

func init() {
	Register(ModeInfo{
		ID:          "obstacles",
		Title:       "Obstacles",
		Description: "Blocked cells split lines into segments and relocate after every move.",
	}, newObstacles)
}

// obstaclesMode plays on an ObstacleBoard. All rule differences live
// in the engine; the mode only constructs it.
type obstaclesMode struct {
	modeBase
	engine *board.ObstacleBoard
}

func newObstacles(cfg config.Config, env Env) (Mode, error) {
	ob, err := board.NewObstacleBoard(config.BoardConfigFor(cfg, false), cfg.Modes.Obstacles.Count, env.RNG)
	if err != nil {
		return nil, err
	}
	return &obstaclesMode{
		modeBase: modeBase{
			info:    modeInfo("obstacles"),
			session: NewSession(ob, env.Opts),
		},
		engine: ob,
	}, nil
}

// Obstacles exposes the blocked cells for rendering.
func (m *obstaclesMode) Obstacles() []board.Cell {
	return m.engine.Obstacles()
}
