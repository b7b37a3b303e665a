package board

// MergeEvent records a single merge produced by a move: the doubled
// value that resulted. Consumed by animation/display code only.
type MergeEvent struct {
	Value int
}

// mergeLine slides and merges a single line toward index 0.
//
// Zeros are removed first, preserving order. Then one left-to-right
// pass: when two neighbors are equal they collapse into their doubled
// sum at the left position and the scan advances, so each tile merges
// at most once per move. [2,2,2,0] becomes [4,2,0,0], never [4,4].
// The result is padded back to the original length.
//
// Returns the new line, the score delta (sum of merged values), and
// the merge events in scan order.
func mergeLine(line []int) ([]int, int, []MergeEvent) {
	size := len(line)
	compact := make([]int, 0, size)
	for _, v := range line {
		if v != 0 {
			compact = append(compact, v)
		}
	}

	delta := 0
	var events []MergeEvent
	for i := 0; i < len(compact)-1; i++ {
		if compact[i] == compact[i+1] {
			compact[i] *= 2
			delta += compact[i]
			events = append(events, MergeEvent{Value: compact[i]})
			compact = append(compact[:i+1], compact[i+2:]...)
		}
	}

	out := make([]int, size)
	copy(out, compact)
	return out, delta, events
}

// mergeLineBlocked slides and merges a line containing permanent
// barriers. Blocked positions split the line into independent segments;
// each segment is merged with the normal single-pass rule. Tiles never
// cross a barrier and merges never span one.
func mergeLineBlocked(line []int, blocked map[int]bool) ([]int, int, []MergeEvent) {
	size := len(line)
	out := make([]int, size)
	delta := 0
	var events []MergeEvent

	start := 0
	for start < size {
		if blocked[start] {
			start++
			continue
		}
		end := start
		for end < size && !blocked[end] {
			end++
		}
		merged, d, ev := mergeLine(line[start:end])
		copy(out[start:end], merged)
		delta += d
		events = append(events, ev...)
		start = end
	}

	return out, delta, events
}

// linesEqual reports whether two lines have identical contents.
func linesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
