package board

import (
	"fmt"
	"math/rand"
)

// Supported board dimensions. Settings expose 3-6; variants may go
// larger, so the engine itself accepts up to 8.
const (
	MinSize = 3
	MaxSize = 8
)

// Default gameplay parameters, matching the classic rules.
const (
	DefaultSize            = 4
	DefaultTarget          = 2048
	DefaultFourProbability = 0.1
	DefaultHistoryLimit    = 10
	DefaultUndoBudget      = 5
)

// Config carries the parameters a board is created with. It replaces
// any ambient settings state: everything the engine needs is passed in
// explicitly.
type Config struct {
	Size            int
	Target          int
	FourProbability float64
	HistoryLimit    int
	UndoBudget      int
}

// DefaultConfig returns a Config with the classic 4×4, 2048-target rules.
func DefaultConfig() Config {
	return Config{
		Size:            DefaultSize,
		Target:          DefaultTarget,
		FourProbability: DefaultFourProbability,
		HistoryLimit:    DefaultHistoryLimit,
		UndoBudget:      DefaultUndoBudget,
	}
}

// Snapshot is an immutable copy of {grid, score} taken before a move,
// used for undo and carried in the save format's history.
type Snapshot struct {
	Grid  Grid `json:"board"`
	Score int  `json:"score"`
}

// LastMove holds transient per-move metadata for display collaborators:
// where the new tile spawned and which merges happened. It is reset on
// every move and never read by the merge logic itself.
type LastMove struct {
	NewTile *Cell
	Merges  []MergeEvent
}

// State is the full serializable board state consumed by persistence.
type State struct {
	Grid    Grid       `json:"board"`
	Score   int        `json:"score"`
	Size    int        `json:"size"`
	History []Snapshot `json:"history"`
}

// Board owns the grid, score, move application, win/loss detection and
// bounded undo history for a single game.
type Board struct {
	size     int
	grid     Grid
	score    int
	target   int
	fourProb float64
	rng      *rand.Rand

	history      []Snapshot
	historyLimit int
	undosUsed    int
	undoBudget   int

	last LastMove
}

// New creates a board from cfg, seeded with two random tiles on
// distinct empty cells. rng must be non-nil; callers control
// determinism by seeding it.
func New(cfg Config, rng *rand.Rand) (*Board, error) {
	if cfg.Size < MinSize || cfg.Size > MaxSize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidBoard, cfg.Size)
	}
	if cfg.Target < 2 || !isPowerOfTwo(cfg.Target) {
		return nil, fmt.Errorf("%w: target %d", ErrInvalidBoard, cfg.Target)
	}
	if cfg.FourProbability < 0 || cfg.FourProbability > 1 {
		return nil, fmt.Errorf("%w: four probability %v", ErrInvalidBoard, cfg.FourProbability)
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.UndoBudget < 0 {
		cfg.UndoBudget = DefaultUndoBudget
	}

	b := &Board{
		size:         cfg.Size,
		grid:         NewGrid(cfg.Size),
		target:       cfg.Target,
		fourProb:     cfg.FourProbability,
		rng:          rng,
		historyLimit: cfg.HistoryLimit,
		undoBudget:   cfg.UndoBudget,
	}
	b.spawnTile()
	b.spawnTile()
	return b, nil
}

// Grid returns a deep copy of the current grid. Mutating the copy does
// not affect the board.
func (b *Board) Grid() Grid {
	return b.grid.Clone()
}

// Score returns the current score.
func (b *Board) Score() int {
	return b.score
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// Target returns the configured winning tile value.
func (b *Board) Target() int {
	return b.target
}

// MaxTile returns the highest tile value on the board.
func (b *Board) MaxTile() int {
	return b.grid.MaxTile()
}

// LastMove returns metadata about the most recent effective move.
func (b *Board) LastMove() LastMove {
	return b.last
}

// spawnTile places a new tile on a uniformly random empty cell:
// 2 with probability 1-fourProb, else 4. No-op on a full grid.
func (b *Board) spawnTile() {
	empty := b.grid.EmptyCells()
	if len(empty) == 0 {
		return
	}
	cell := empty[b.rng.Intn(len(empty))]
	value := 2
	if b.rng.Float64() < b.fourProb {
		value = 4
	}
	b.grid[cell.Row][cell.Col] = value
	b.last.NewTile = &cell
}

// Move applies a directional move. The grid is rotated so every
// direction reduces to a leftward slide, each row is merged, and the
// rotation is undone. One algorithm, four orientations.
//
// If anything moved or merged, the pre-move snapshot is pushed onto the
// bounded history, a new tile spawns, and Move reports true. Otherwise
// the state is untouched and Move reports false; that is the caller's
// signal that the move was ineffective, not an error.
func (b *Board) Move(dir Direction) (bool, error) {
	if !dir.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	b.last = LastMove{}
	prev := Snapshot{Grid: b.grid.Clone(), Score: b.score}

	work := orient(b.grid, dir)
	delta := 0
	for i := range work {
		merged, d, events := mergeLine(work[i])
		work[i] = merged
		delta += d
		b.last.Merges = append(b.last.Merges, events...)
	}
	work = restore(work, dir)

	changed := delta > 0 || !work.Equal(b.grid)
	if !changed {
		b.last = LastMove{}
		return false, nil
	}

	b.grid = work
	b.score += delta
	b.pushHistory(prev)
	b.spawnTile()
	return true, nil
}

// orient rotates the grid so that dir becomes a leftward slide.
func orient(g Grid, dir Direction) Grid {
	switch dir {
	case DirUp:
		return g.RotateCCW()
	case DirDown:
		return g.RotateCW()
	case DirRight:
		return g.RotateCW().RotateCW()
	default: // DirLeft
		return g.Clone()
	}
}

// restore undoes the orientation applied by orient.
func restore(g Grid, dir Direction) Grid {
	switch dir {
	case DirUp:
		return g.RotateCW()
	case DirDown:
		return g.RotateCCW()
	case DirRight:
		return g.RotateCW().RotateCW()
	default:
		return g
	}
}

// pushHistory appends a pre-move snapshot, evicting the oldest entry
// once the ring is at capacity.
func (b *Board) pushHistory(s Snapshot) {
	b.history = append(b.history, s)
	if len(b.history) > b.historyLimit {
		b.history = b.history[1:]
	}
}

// HasWon reports whether any cell equals the configured target. The
// game may continue after the target is first reached.
func (b *Board) HasWon() bool {
	for _, row := range b.grid {
		for _, v := range row {
			if v == b.target {
				return true
			}
		}
	}
	return false
}

// IsGameOver reports whether no move can change the board: no empty
// cell and no adjacent equal pair anywhere.
func (b *Board) IsGameOver() bool {
	if b.grid.HasEmptyCell() {
		return false
	}
	return b.grid.MergeablePairs() == 0
}

// Undo pops the most recent snapshot unconditionally, limited only by
// history depth. It does not consume the per-game undo budget.
func (b *Board) Undo() bool {
	n := len(b.history)
	if n == 0 {
		return false
	}
	prev := b.history[n-1]
	b.history = b.history[:n-1]
	b.grid = prev.Grid.Clone()
	b.score = prev.Score
	return true
}

// UndoMove is the budgeted undo: the same restore as Undo, but gated by
// the per-game budget. Once the budget is exhausted it reports false
// regardless of how deep the history is.
func (b *Board) UndoMove() bool {
	if !b.CanUndo() {
		return false
	}
	if !b.Undo() {
		return false
	}
	b.undosUsed++
	return true
}

// CanUndo reports whether a budgeted undo is currently possible.
func (b *Board) CanUndo() bool {
	return len(b.history) > 0 && b.undosUsed < b.undoBudget
}

// RemainingUndos returns how many budgeted undos are left.
func (b *Board) RemainingUndos() int {
	if left := b.undoBudget - b.undosUsed; left > 0 {
		return left
	}
	return 0
}

// HistoryDepth returns the number of stored undo snapshots.
func (b *Board) HistoryDepth() int {
	return len(b.history)
}

// State returns a deep-copied serializable snapshot of the board. The
// hosting process decides when to persist it; the engine never touches
// the filesystem.
func (b *Board) State() State {
	history := make([]Snapshot, len(b.history))
	for i, s := range b.history {
		history[i] = Snapshot{Grid: s.Grid.Clone(), Score: s.Score}
	}
	return State{
		Grid:    b.grid.Clone(),
		Score:   b.score,
		Size:    b.size,
		History: history,
	}
}

// Restore replaces the board contents from a previously captured state.
// The incoming data is validated; on error the current in-memory state
// is left intact.
func (b *Board) Restore(st State) error {
	if err := st.Grid.Validate(); err != nil {
		return err
	}
	if st.Size != st.Grid.Size() {
		return fmt.Errorf("%w: size %d does not match grid", ErrInvalidBoard, st.Size)
	}
	if st.Score < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidScore, st.Score)
	}
	for _, s := range st.History {
		if err := s.Grid.Validate(); err != nil {
			return err
		}
		if s.Score < 0 {
			return fmt.Errorf("%w: %d in history", ErrInvalidScore, s.Score)
		}
	}

	b.size = st.Size
	b.grid = st.Grid.Clone()
	b.score = st.Score
	b.history = make([]Snapshot, len(st.History))
	for i, s := range st.History {
		b.history[i] = Snapshot{Grid: s.Grid.Clone(), Score: s.Score}
	}
	b.last = LastMove{}
	return nil
}
