package board

import "math"

// EstimateDifficulty scores how hard the current position is on a
// 0.0-10.0 scale. Pure function of the grid and the target tile.
//
// Four factors, each normalized to [0,1]:
//   - fullness: occupied cells / total cells
//   - disparity: mean of non-zero values / max non-zero value
//   - mergeable ratio: 1 - pairs / (2·N·(N-1)), fewer pairs is harder
//   - progress: log2(max tile) / log2(target)
//
// The weights (3, 2, 3, 2 over 10) are empirical constants carried over
// as-is; nothing depends on their optimality, only their determinism.
func EstimateDifficulty(g Grid, target int) float64 {
	n := g.Size()
	total := n * n

	occupied := 0
	sum := 0
	maxVal := 0
	for _, row := range g {
		for _, v := range row {
			if v == 0 {
				continue
			}
			occupied++
			sum += v
			if v > maxVal {
				maxVal = v
			}
		}
	}

	fullness := float64(occupied) / float64(total)

	disparity := 0.0
	if occupied > 0 {
		disparity = (float64(sum) / float64(occupied)) / float64(maxVal)
	}

	maxPairs := 2 * n * (n - 1)
	mergeableRatio := 1.0
	if maxPairs > 0 {
		mergeableRatio = 1 - float64(g.MergeablePairs())/float64(maxPairs)
	}

	progress := 0.0
	if maxVal > 0 {
		progress = math.Log2(float64(maxVal)) / math.Log2(float64(target))
	}

	difficulty := (fullness*3 + disparity*2 + mergeableRatio*3 + progress*2) / 10

	return math.Round(difficulty*10*10) / 10
}
