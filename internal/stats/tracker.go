// Package stats tracks per-session gameplay statistics: move counts
// per direction, merge totals, score gain, and the difficulty curve
// over the course of a game.
package stats

import (
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// MoveSample records one effective move.
type MoveSample struct {
	Direction  board.Direction
	Merges     int
	ScoreDelta int
	Difficulty float64
}

// Summary is the aggregate view of a session, rendered by the CLI and
// persisted through storage.
type Summary struct {
	Moves          int
	PerDirection   map[board.Direction]int
	Merges         int
	ScoreGained    int
	MaxTile        int
	Duration       time.Duration
	AvgDifficulty  float64
	PeakDifficulty float64
}

// Tracker accumulates statistics for one session. Not safe for
// concurrent use; the turn loop is single-threaded.
type Tracker struct {
	start   time.Time
	samples []MoveSample
	maxTile int
}

// NewTracker starts tracking at the given time.
func NewTracker(now time.Time) *Tracker {
	return &Tracker{start: now}
}

// RecordMove logs one effective move and the board shape after it.
func (t *Tracker) RecordMove(dir board.Direction, merges, scoreDelta int, difficulty float64, maxTile int) {
	t.samples = append(t.samples, MoveSample{
		Direction:  dir,
		Merges:     merges,
		ScoreDelta: scoreDelta,
		Difficulty: difficulty,
	})
	if maxTile > t.maxTile {
		t.maxTile = maxTile
	}
}

// Moves returns the recorded samples in order.
func (t *Tracker) Moves() []MoveSample {
	return t.samples
}

// MoveCount returns the number of effective moves so far.
func (t *Tracker) MoveCount() int {
	return len(t.samples)
}

// Summary aggregates everything recorded so far.
func (t *Tracker) Summary(now time.Time) Summary {
	s := Summary{
		Moves:        len(t.samples),
		PerDirection: make(map[board.Direction]int),
		MaxTile:      t.maxTile,
		Duration:     now.Sub(t.start),
	}
	var totalDifficulty float64
	for _, sample := range t.samples {
		s.PerDirection[sample.Direction]++
		s.Merges += sample.Merges
		s.ScoreGained += sample.ScoreDelta
		totalDifficulty += sample.Difficulty
		if sample.Difficulty > s.PeakDifficulty {
			s.PeakDifficulty = sample.Difficulty
		}
	}
	if len(t.samples) > 0 {
		s.AvgDifficulty = totalDifficulty / float64(len(t.samples))
	}
	return s
}
