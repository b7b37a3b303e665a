// Package board implements the 2048 tile-merging engine: the grid, the
// directional move algorithm, win/loss detection, bounded undo, a
// side-effect-free move simulator, and the obstacle variant.
package board

// Grid is an N×N board. Cells are 0 (empty) or a power of two ≥ 2.
type Grid [][]int

// Cell identifies a grid position by row and column.
type Cell struct {
	Row int
	Col int
}

// NewGrid allocates an empty size×size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for i := range g {
		g[i] = make([]int, size)
	}
	return g
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

// Equal reports whether two grids have identical contents.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i, row := range g {
		if len(row) != len(other[i]) {
			return false
		}
		for j, v := range row {
			if v != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Size returns the grid dimension.
func (g Grid) Size() int {
	return len(g)
}

// RotateCW returns the grid rotated 90 degrees clockwise.
func (g Grid) RotateCW() Grid {
	n := len(g)
	out := NewGrid(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = g[n-1-j][i]
		}
	}
	return out
}

// RotateCCW returns the grid rotated 90 degrees counterclockwise.
func (g Grid) RotateCCW() Grid {
	n := len(g)
	out := NewGrid(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = g[j][n-1-i]
		}
	}
	return out
}

// EmptyCells returns coordinates of all empty cells.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for i, row := range g {
		for j, v := range row {
			if v == 0 {
				cells = append(cells, Cell{Row: i, Col: j})
			}
		}
	}
	return cells
}

// HasEmptyCell reports whether at least one cell is empty.
func (g Grid) HasEmptyCell() bool {
	for _, row := range g {
		for _, v := range row {
			if v == 0 {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the highest tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, row := range g {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// MergeablePairs counts adjacent equal non-zero pairs, horizontal and
// vertical. Zero pairs on a full grid means no move is possible.
func (g Grid) MergeablePairs() int {
	n := len(g)
	count := 0
	for i := 0; i < n; i++ {
		for j := 0; j < (n - 1); j++ {
			if g[i][j] != 0 && g[i][j] == g[i][j+1] {
				count++
			}
		}
	}
	for i := 0; i < (n - 1); i++ {
		for j := 0; j < n; j++ {
			if g[i][j] != 0 && g[i][j] == g[i+1][j] {
				count++
			}
		}
	}
	return count
}

// isPowerOfTwo reports whether v is a power of two. Zero is not.
func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

// Validate checks the structural invariants: square grid within the
// supported size range, every non-zero cell a power of two ≥ 2.
func (g Grid) Validate() error {
	n := len(g)
	if n < MinSize || n > MaxSize {
		return ErrInvalidBoard
	}
	for _, row := range g {
		if len(row) != n {
			return ErrInvalidBoard
		}
		for _, v := range row {
			if v == 0 {
				continue
			}
			if v < 2 || !isPowerOfTwo(v) {
				return ErrInvalidBoard
			}
		}
	}
	return nil
}
