package board

import (
	"fmt"
	"math/rand"
)

// ObstacleBoard is a Board whose grid contains impassable cells. Tiles
// cannot occupy, slide across, or spawn on an obstacle; merges only
// happen between tiles in the same unblocked segment of a line. After
// every effective move the obstacle set is relocated among currently
// empty cells, so obstacles are moving hazards rather than static
// walls.
type ObstacleBoard struct {
	*Board
	obstacles map[Cell]struct{}
	count     int
}

// NewObstacleBoard creates a board with count obstacles placed on
// random empty cells after the two initial tiles are spawned.
func NewObstacleBoard(cfg Config, count int, rng *rand.Rand) (*ObstacleBoard, error) {
	if count < 0 || count >= cfg.Size*cfg.Size-2 {
		return nil, fmt.Errorf("%w: obstacle count %d", ErrInvalidBoard, count)
	}
	b, err := New(cfg, rng)
	if err != nil {
		return nil, err
	}
	o := &ObstacleBoard{
		Board:     b,
		obstacles: make(map[Cell]struct{}, count),
		count:     count,
	}
	o.relocateObstacles()
	return o, nil
}

// Obstacles returns the current obstacle coordinates.
func (o *ObstacleBoard) Obstacles() []Cell {
	cells := make([]Cell, 0, len(o.obstacles))
	for c := range o.obstacles {
		cells = append(cells, c)
	}
	return cells
}

// IsObstacle reports whether the given cell is blocked.
func (o *ObstacleBoard) IsObstacle(c Cell) bool {
	_, ok := o.obstacles[c]
	return ok
}

// Restore replaces the board contents from a previously captured state
// and re-seats the obstacles on cells the loaded grid leaves empty. A
// saved game knows nothing about the live obstacle set; keeping the old
// positions could leave an obstacle on top of a loaded tile.
func (o *ObstacleBoard) Restore(st State) error {
	if err := o.Board.Restore(st); err != nil {
		return err
	}
	o.relocateObstacles()
	return nil
}

// Move applies a directional move with obstacle semantics. Rows and
// columns are processed as lines with their blocked positions acting as
// barriers; on an effective move the pre-move snapshot is pushed, a new
// tile spawns on an empty unblocked cell, and the obstacles relocate.
func (o *ObstacleBoard) Move(dir Direction) (bool, error) {
	if !dir.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	b := o.Board
	b.last = LastMove{}
	prev := Snapshot{Grid: b.grid.Clone(), Score: b.score}

	changed := false
	delta := 0
	n := b.size

	if dir == DirLeft || dir == DirRight {
		for i := 0; i < n; i++ {
			line := make([]int, n)
			copy(line, b.grid[i])
			blocked := make(map[int]bool)
			for j := 0; j < n; j++ {
				if o.IsObstacle(Cell{Row: i, Col: j}) {
					blocked[j] = true
				}
			}
			if dir == DirRight {
				line = reverseLine(line)
				blocked = reverseBlocked(blocked, n)
			}
			merged, d, events := mergeLineBlocked(line, blocked)
			if dir == DirRight {
				merged = reverseLine(merged)
			}
			if !linesEqual(b.grid[i], merged) {
				changed = true
			}
			delta += d
			b.last.Merges = append(b.last.Merges, events...)
			b.grid[i] = merged
		}
	} else {
		for j := 0; j < n; j++ {
			line := make([]int, n)
			blocked := make(map[int]bool)
			for i := 0; i < n; i++ {
				line[i] = b.grid[i][j]
				if o.IsObstacle(Cell{Row: i, Col: j}) {
					blocked[i] = true
				}
			}
			if dir == DirDown {
				line = reverseLine(line)
				blocked = reverseBlocked(blocked, n)
			}
			merged, d, events := mergeLineBlocked(line, blocked)
			if dir == DirDown {
				merged = reverseLine(merged)
			}
			for i := 0; i < n; i++ {
				if b.grid[i][j] != merged[i] {
					changed = true
				}
				b.grid[i][j] = merged[i]
			}
			delta += d
			b.last.Merges = append(b.last.Merges, events...)
		}
	}

	changed = changed || delta > 0
	if !changed {
		b.last = LastMove{}
		return false, nil
	}

	b.score += delta
	b.pushHistory(prev)
	o.spawnUnblocked()
	o.relocateObstacles()
	return true, nil
}

// spawnUnblocked places a new tile on a random empty, non-obstacle cell.
func (o *ObstacleBoard) spawnUnblocked() {
	var free []Cell
	for _, c := range o.Board.grid.EmptyCells() {
		if !o.IsObstacle(c) {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return
	}
	cell := free[o.Board.rng.Intn(len(free))]
	value := 2
	if o.Board.rng.Float64() < o.Board.fourProb {
		value = 4
	}
	o.Board.grid[cell.Row][cell.Col] = value
	o.Board.last.NewTile = &cell
}

// relocateObstacles re-randomizes the obstacle positions among the
// currently empty cells, keeping the configured count when possible.
func (o *ObstacleBoard) relocateObstacles() {
	for c := range o.obstacles {
		delete(o.obstacles, c)
	}
	empty := o.Board.grid.EmptyCells()
	o.Board.rng.Shuffle(len(empty), func(i, j int) {
		empty[i], empty[j] = empty[j], empty[i]
	})
	n := o.count
	if n > len(empty) {
		n = len(empty)
	}
	for _, c := range empty[:n] {
		o.obstacles[c] = struct{}{}
	}
}

// IsGameOver reports whether no obstacle-aware move can change the
// board. Cells hidden under obstacles read as zeros in the grid, so the
// base empty-cell test is insufficient here; every direction is
// simulated against the current barriers instead.
func (o *ObstacleBoard) IsGameOver() bool {
	for _, c := range o.Board.grid.EmptyCells() {
		if !o.IsObstacle(c) {
			return false
		}
	}
	for _, dir := range Directions {
		if o.wouldChange(dir) {
			return false
		}
	}
	return true
}

// wouldChange simulates a single obstacle-aware move without mutating
// state.
func (o *ObstacleBoard) wouldChange(dir Direction) bool {
	b := o.Board
	n := b.size

	lines := make([][]int, 0, n)
	blockedSets := make([]map[int]bool, 0, n)
	if dir == DirLeft || dir == DirRight {
		for i := 0; i < n; i++ {
			line := make([]int, n)
			copy(line, b.grid[i])
			blocked := make(map[int]bool)
			for j := 0; j < n; j++ {
				if o.IsObstacle(Cell{Row: i, Col: j}) {
					blocked[j] = true
				}
			}
			lines = append(lines, line)
			blockedSets = append(blockedSets, blocked)
		}
	} else {
		for j := 0; j < n; j++ {
			line := make([]int, n)
			blocked := make(map[int]bool)
			for i := 0; i < n; i++ {
				line[i] = b.grid[i][j]
				if o.IsObstacle(Cell{Row: i, Col: j}) {
					blocked[i] = true
				}
			}
			lines = append(lines, line)
			blockedSets = append(blockedSets, blocked)
		}
	}

	reverse := dir == DirRight || dir == DirDown
	for idx, line := range lines {
		blocked := blockedSets[idx]
		if reverse {
			line = reverseLine(line)
			blocked = reverseBlocked(blocked, n)
		}
		merged, d, _ := mergeLineBlocked(line, blocked)
		if d > 0 || !linesEqual(line, merged) {
			return true
		}
	}
	return false
}

func reverseLine(line []int) []int {
	n := len(line)
	out := make([]int, n)
	for i, v := range line {
		out[n-1-i] = v
	}
	return out
}

func reverseBlocked(blocked map[int]bool, n int) map[int]bool {
	out := make(map[int]bool, len(blocked))
	for pos := range blocked {
		if blocked[pos] {
			out[n-1-pos] = true
		}
	}
	return out
}
