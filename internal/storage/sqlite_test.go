package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func saveTestGame(t *testing.T, store *Store, player, mode string, score int, won bool, moves []MoveRecord) int64 {
	t.Helper()
	pid, err := store.EnsurePlayer(player)
	require.NoError(t, err)
	id, err := store.SaveGame(GameRecord{
		PlayerID:     pid,
		Mode:         mode,
		Size:         4,
		Target:       2048,
		Score:        score,
		MaxTile:      score / 2,
		Won:          won,
		Moves:        len(moves),
		DurationSecs: 60,
		Difficulty:   4.5,
	}, moves)
	require.NoError(t, err)
	return id
}

func TestStoreOpenCreatesNestedDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestEnsurePlayerIdempotent(t *testing.T) {
	store := newTestStore(t)

	id1, err := store.EnsurePlayer("alice")
	require.NoError(t, err)
	id2, err := store.EnsurePlayer("alice")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	id3, err := store.EnsurePlayer("bob")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)

	// Empty names collapse to a shared anonymous player.
	anon1, err := store.EnsurePlayer("")
	require.NoError(t, err)
	anon2, err := store.EnsurePlayer("anonymous")
	require.NoError(t, err)
	assert.Equal(t, anon1, anon2)
}

func TestHighScoresOrderingAndLimit(t *testing.T) {
	store := newTestStore(t)

	saveTestGame(t, store, "alice", "classic", 100, false, nil)
	saveTestGame(t, store, "alice", "classic", 300, true, nil)
	saveTestGame(t, store, "bob", "classic", 200, false, nil)
	saveTestGame(t, store, "bob", "timed", 500, false, nil)

	records, err := store.HighScores("classic", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 300, records[0].Score)
	assert.Equal(t, "alice", records[0].Player)
	assert.True(t, records[0].Won)
	assert.Equal(t, 200, records[1].Score)

	// Empty mode spans everything.
	all, err := store.HighScores("", 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "timed", all[0].Mode)
}

func TestHighScoreEmptyMode(t *testing.T) {
	store := newTestStore(t)

	high, err := store.HighScore("classic")
	require.NoError(t, err)
	assert.Zero(t, high)

	saveTestGame(t, store, "alice", "classic", 100, false, nil)
	saveTestGame(t, store, "alice", "classic", 300, false, nil)

	high, err = store.HighScore("classic")
	require.NoError(t, err)
	assert.Equal(t, 300, high)
}

func TestGetPlayerStats(t *testing.T) {
	store := newTestStore(t)

	saveTestGame(t, store, "alice", "classic", 100, false, nil)
	saveTestGame(t, store, "alice", "classic", 300, true, nil)
	saveTestGame(t, store, "bob", "classic", 999, true, nil)

	stats, err := store.GetPlayerStats("alice")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 300, stats.HighScore)
	assert.InDelta(t, 200.0, stats.AvgScore, 0.001)
	assert.Equal(t, int64(400), stats.TotalScore)
	assert.Equal(t, 150, stats.BestTile)
	assert.False(t, stats.LastPlayed.IsZero())

	empty, err := store.GetPlayerStats("nobody")
	require.NoError(t, err)
	assert.Zero(t, empty.GamesCount)
	assert.True(t, empty.LastPlayed.IsZero())
}

func TestGetAllModeStats(t *testing.T) {
	store := newTestStore(t)

	saveTestGame(t, store, "alice", "classic", 100, false, nil)
	saveTestGame(t, store, "alice", "classic", 200, false, nil)
	saveTestGame(t, store, "alice", "timed", 50, false, nil)

	stats, err := store.GetAllModeStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 2, stats["classic"].GamesCount)
	assert.Equal(t, 200, stats["classic"].HighScore)
	assert.Equal(t, 1, stats["timed"].GamesCount)
}

func TestMoveDistribution(t *testing.T) {
	store := newTestStore(t)

	saveTestGame(t, store, "alice", "classic", 100, false, []MoveRecord{
		{Direction: "left", Merges: 1, ScoreDelta: 4},
		{Direction: "left", Merges: 0, ScoreDelta: 0},
		{Direction: "up", Merges: 2, ScoreDelta: 8},
	})
	saveTestGame(t, store, "bob", "classic", 50, false, []MoveRecord{
		{Direction: "down", Merges: 0, ScoreDelta: 0},
	})

	dist, err := store.MoveDistribution("alice")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"left": 2, "up": 1}, dist)

	all, err := store.MoveDistribution("")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"left": 2, "up": 1, "down": 1}, all)
}

func TestClearGames(t *testing.T) {
	store := newTestStore(t)

	saveTestGame(t, store, "alice", "classic", 100, false, []MoveRecord{{Direction: "left"}})
	saveTestGame(t, store, "alice", "timed", 200, false, []MoveRecord{{Direction: "up"}})

	require.NoError(t, store.ClearGames("classic"))

	records, err := store.HighScores("classic", 10)
	require.NoError(t, err)
	assert.Empty(t, records)

	remaining, err := store.HighScores("timed", 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	dist, err := store.MoveDistribution("")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"up": 1}, dist)

	require.NoError(t, store.ClearGames(""))
	records, err = store.HighScores("", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
