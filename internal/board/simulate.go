package board

import "math"

// TerminalStatus classifies a position checked by the simulator.
type TerminalStatus string

const (
	StatusOngoing  TerminalStatus = "ongoing"
	StatusVictory  TerminalStatus = "victory"
	StatusGameOver TerminalStatus = "game_over"
	// StatusImpossible means the target can no longer be reached even
	// if every remaining empty cell doubled the best tile.
	StatusImpossible TerminalStatus = "impossible"
)

// Heuristic weights for ranking candidate moves. Carried over as given.
const (
	weightMerges  = 10.0
	weightMono    = 5.0
	weightEmpty   = 2.5
	weightCorners = 3.0
)

// Simulate applies a directional move to a deep copy of g and reports
// the number of merges and whether the board would change. The input
// grid is never mutated and no tile is spawned; this is the lookahead
// primitive for AI hints and terminal detection.
func Simulate(g Grid, dir Direction) (int, bool) {
	work := orient(g, dir)
	merges := 0
	changed := false
	for i := range work {
		merged, _, events := mergeLine(work[i])
		if !linesEqual(work[i], merged) {
			changed = true
		}
		merges += len(events)
		work[i] = merged
	}
	return merges, changed
}

// SimulateResult applies a directional move to a deep copy of g and
// returns the resulting grid alongside the merge count and change flag.
func SimulateResult(g Grid, dir Direction) (Grid, int, bool) {
	work := orient(g, dir)
	merges := 0
	changed := false
	for i := range work {
		merged, _, events := mergeLine(work[i])
		if !linesEqual(work[i], merged) {
			changed = true
		}
		merges += len(events)
		work[i] = merged
	}
	return restore(work, dir), merges, changed
}

// SuggestMove ranks the four candidate directions and returns the best
// one. Moves that would not change the board score negative infinity
// and are never suggested; ok is false when no move is effective.
func SuggestMove(g Grid) (Direction, bool) {
	best := DirUp
	bestScore := math.Inf(-1)
	ok := false

	for _, dir := range Directions {
		after, merges, changed := SimulateResult(g, dir)
		if !changed {
			continue
		}
		score := float64(merges)*weightMerges +
			float64(Monotonicity(after))*weightMono +
			float64(len(after.EmptyCells()))*weightEmpty +
			cornerMean(after)*weightCorners
		if score > bestScore {
			bestScore = score
			best = dir
			ok = true
		}
	}

	return best, ok
}

// Monotonicity counts adjacent pairs, row-wise and column-wise, where
// the left/top value is ≤ the right/bottom value. Sorted gradients keep
// big tiles together, a known good property for this game.
func Monotonicity(g Grid) int {
	n := g.Size()
	score := 0
	for i := 0; i < n; i++ {
		for j := 0; j < (n - 1); j++ {
			if g[i][j] <= g[i][j+1] {
				score++
			}
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < (n - 1); i++ {
			if g[i][j] <= g[i+1][j] {
				score++
			}
		}
	}
	return score
}

// cornerMean averages the four corner values. Rewards anchoring large
// tiles in corners.
func cornerMean(g Grid) float64 {
	n := g.Size()
	sum := g[0][0] + g[0][n-1] + g[n-1][0] + g[n-1][n-1]
	return float64(sum) / 4
}

// Terminal classifies the position: victory once any cell holds the
// target, ongoing while an empty cell or any effective move remains,
// impossible when the target is provably out of reach, otherwise game
// over. Works on a copy; g is never mutated.
func Terminal(g Grid, target int) TerminalStatus {
	for _, row := range g {
		for _, v := range row {
			if v == target {
				return StatusVictory
			}
		}
	}

	if g.HasEmptyCell() {
		return StatusOngoing
	}

	for _, dir := range Directions {
		if _, changed := Simulate(g, dir); changed {
			return StatusOngoing
		}
	}

	empty := len(g.EmptyCells())
	if g.MaxTile()*pow2(empty) < target {
		return StatusImpossible
	}

	return StatusGameOver
}

func pow2(n int) int {
	return 1 << n
}
