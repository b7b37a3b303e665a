package board

import "testing"

func TestMergeLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		delta    int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			delta:    4,
		},
		{
			name:     "triple merges only first pair",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			delta:    4,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			delta:    8,
		},
		{
			name:     "merged tile does not chain",
			input:    []int{2, 2, 4, 0},
			expected: []int{4, 4, 0, 0},
			delta:    4,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
			delta:    0,
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			delta:    4,
		},
		{
			name:     "slide across multiple gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			delta:    4,
		},
		{
			name:     "already compacted",
			input:    []int{4, 2, 0, 0},
			expected: []int{4, 2, 0, 0},
			delta:    0,
		},
		{
			name:     "empty line",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
			delta:    0,
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
			delta:    0,
		},
		{
			name:     "longer line",
			input:    []int{2, 2, 4, 4, 8, 0},
			expected: []int{4, 8, 8, 0, 0, 0},
			delta:    12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, delta, _ := mergeLine(tt.input)
			if !linesEqual(result, tt.expected) {
				t.Errorf("mergeLine(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if delta != tt.delta {
				t.Errorf("mergeLine(%v) delta = %d, want %d", tt.input, delta, tt.delta)
			}
		})
	}
}

func TestMergeLineDoesNotMutateInput(t *testing.T) {
	input := []int{2, 2, 4, 0}
	mergeLine(input)
	if !linesEqual(input, []int{2, 2, 4, 0}) {
		t.Errorf("mergeLine mutated its input: %v", input)
	}
}

func TestMergeLineEvents(t *testing.T) {
	_, delta, events := mergeLine([]int{2, 2, 4, 4})
	if len(events) != 2 {
		t.Fatalf("expected 2 merge events, got %d", len(events))
	}
	if events[0].Value != 4 || events[1].Value != 8 {
		t.Errorf("event values = %d, %d, want 4, 8", events[0].Value, events[1].Value)
	}
	if delta != 12 {
		t.Errorf("delta = %d, want 12", delta)
	}
}

func TestMergeLineBlocked(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		blocked  map[int]bool
		expected []int
		delta    int
	}{
		{
			name:     "barrier stops slide",
			input:    []int{0, 0, 2, 2},
			blocked:  map[int]bool{1: true},
			expected: []int{0, 0, 4, 0},
			delta:    4,
		},
		{
			name:     "no merge across barrier",
			input:    []int{2, 0, 2, 0},
			blocked:  map[int]bool{1: true},
			expected: []int{2, 0, 2, 0},
			delta:    0,
		},
		{
			name:     "independent segments",
			input:    []int{2, 2, 0, 4, 4, 0},
			blocked:  map[int]bool{2: true},
			expected: []int{4, 0, 0, 8, 0, 0},
			delta:    12,
		},
		{
			name:     "barrier at line start",
			input:    []int{0, 2, 2, 0},
			blocked:  map[int]bool{0: true},
			expected: []int{0, 4, 0, 0},
			delta:    4,
		},
		{
			name:     "no barriers behaves like plain merge",
			input:    []int{2, 2, 2, 0},
			blocked:  map[int]bool{},
			expected: []int{4, 2, 0, 0},
			delta:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, delta, _ := mergeLineBlocked(tt.input, tt.blocked)
			if !linesEqual(result, tt.expected) {
				t.Errorf("mergeLineBlocked(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if delta != tt.delta {
				t.Errorf("mergeLineBlocked(%v) delta = %d, want %d", tt.input, delta, tt.delta)
			}
		})
	}
}
