package board

import "testing"

func TestEstimateDifficultyRange(t *testing.T) {
	grids := []Grid{
		gridOf(
			[]int{2, 0, 0, 0},
			[]int{0, 0, 0, 0},
			[]int{0, 0, 0, 0},
			[]int{0, 0, 2, 0},
		),
		gridOf(
			[]int{2, 4, 2, 4},
			[]int{4, 2, 4, 2},
			[]int{2, 4, 2, 4},
			[]int{4, 2, 4, 2},
		),
		gridOf(
			[]int{1024, 512, 256, 128},
			[]int{8, 16, 32, 64},
			[]int{4, 2, 0, 0},
			[]int{0, 0, 0, 0},
		),
	}

	for _, g := range grids {
		d := EstimateDifficulty(g, 2048)
		if d < 0 || d > 10 {
			t.Errorf("EstimateDifficulty(%v) = %v, want within [0, 10]", g, d)
		}
	}
}

func TestEstimateDifficultyKnownValue(t *testing.T) {
	// Two freshly spawned 2s on a 4×4 board aiming for 2048:
	// fullness 2/16, disparity 1, mergeable ratio 1, progress 1/11.
	// (0.125·3 + 1·2 + 1·3 + 0.0909·2)/10 ·10 = 5.557 → 5.6.
	g := gridOf(
		[]int{2, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 2, 0},
	)

	if got := EstimateDifficulty(g, 2048); got != 5.6 {
		t.Errorf("EstimateDifficulty = %v, want 5.6", got)
	}
}

func TestEstimateDifficultyOrdering(t *testing.T) {
	// A cramped board with nothing mergeable must rate harder than a
	// nearly empty one.
	easy := gridOf(
		[]int{2, 2, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)
	hard := gridOf(
		[]int{2, 4, 2, 4},
		[]int{4, 2, 4, 2},
		[]int{2, 4, 2, 4},
		[]int{4, 2, 4, 2},
	)

	if EstimateDifficulty(easy, 2048) >= EstimateDifficulty(hard, 2048) {
		t.Errorf("easy board rated %v, hard board %v",
			EstimateDifficulty(easy, 2048), EstimateDifficulty(hard, 2048))
	}
}

func TestEstimateDifficultyDeterministic(t *testing.T) {
	g := gridOf(
		[]int{8, 4, 2, 0},
		[]int{16, 8, 0, 0},
		[]int{32, 0, 0, 0},
		[]int{64, 2, 2, 0},
	)

	first := EstimateDifficulty(g, 2048)
	for _i := 0; _i < 10; _i++ {
		if got := EstimateDifficulty(g, 2048); got != first {
			t.Fatalf("EstimateDifficulty not deterministic: %v vs %v", got, first)
		}
	}
}
