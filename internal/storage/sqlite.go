// Package storage provides SQLite-based persistence for players,
// finished games and per-move records. Uses the pure-Go
// modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord represents one finished game.
type GameRecord struct {
	ID           int64
	PlayerID     int64
	Player       string
	Mode         string
	Size         int
	Target       int
	Score        int
	MaxTile      int
	Won          bool
	Moves        int
	DurationSecs int
	Difficulty   float64
	CreatedAt    time.Time
}

// MoveRecord represents one move inside a game.
type MoveRecord struct {
	Direction  string
	Merges     int
	ScoreDelta int
}

// PlayerStats contains aggregated statistics for one player.
type PlayerStats struct {
	Player     string
	GamesCount int
	Wins       int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestTile   int
	LastPlayed time.Time
}

// ModeStats contains aggregated statistics for one game mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL REFERENCES players(id),
			mode TEXT NOT NULL,
			size INTEGER NOT NULL,
			target INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			difficulty REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_player ON games(player_id);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(mode, score DESC);

		CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id INTEGER NOT NULL REFERENCES games(id),
			direction TEXT NOT NULL,
			merges INTEGER NOT NULL DEFAULT 0,
			score_delta INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_moves_game ON moves(game_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// EnsurePlayer returns the ID for the named player, creating the row
// on first sight.
func (s *Store) EnsurePlayer(name string) (int64, error) {
	if name == "" {
		name = "anonymous"
	}
	_, err := s.db.Exec("INSERT OR IGNORE INTO players (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create player: %w", err)
	}
	var id int64
	if err := s.db.QueryRow("SELECT id FROM players WHERE name = ?", name).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot look up player: %w", err)
	}
	return id, nil
}

// SaveGame records a finished game together with its moves in one
// transaction. Returns the ID of the inserted game.
func (s *Store) SaveGame(rec GameRecord, moves []MoveRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO games
		 (player_id, mode, size, target, score, max_tile, won, moves, duration_secs, difficulty)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.PlayerID, rec.Mode, rec.Size, rec.Target, rec.Score,
		rec.MaxTile, rec.Won, rec.Moves, rec.DurationSecs, rec.Difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, mv := range moves {
		if _, err := tx.Exec(
			"INSERT INTO moves (game_id, direction, merges, score_delta) VALUES (?, ?, ?, ?)",
			id, mv.Direction, mv.Merges, mv.ScoreDelta,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save move: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit game: %w", err)
	}
	return id, nil
}

// HighScores retrieves the top N games for the given mode, ordered by
// score descending. An empty mode matches all modes.
func (s *Store) HighScores(mode string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT g.id, g.player_id, p.name, g.mode, g.size, g.target, g.score,
	                 g.max_tile, g.won, g.moves, g.duration_secs, g.difficulty, g.created_at
	          FROM games g JOIN players p ON p.id = g.player_id`
	args := []any{}
	if mode != "" {
		query += " WHERE g.mode = ?"
		args = append(args, mode)
	}
	query += " ORDER BY g.score DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var rec GameRecord
		var createdAt any
		if err := rows.Scan(
			&rec.ID, &rec.PlayerID, &rec.Player, &rec.Mode, &rec.Size, &rec.Target,
			&rec.Score, &rec.MaxTile, &rec.Won, &rec.Moves, &rec.DurationSecs,
			&rec.Difficulty, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseCreatedAt(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// HighScore returns the highest score for the given mode, or 0 if no
// games exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM games WHERE mode = ?", mode,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// GetPlayerStats retrieves aggregated statistics for a named player.
func (s *Store) GetPlayerStats(name string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: name}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(g.won), 0), COALESCE(MAX(g.score), 0),
		        COALESCE(AVG(g.score), 0), COALESCE(SUM(g.score), 0), COALESCE(MAX(g.max_tile), 0)
		 FROM games g JOIN players p ON p.id = g.player_id
		 WHERE p.name = ?`,
		name,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.HighScore,
		&stats.AvgScore, &stats.TotalScore, &stats.BestTile)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT g.created_at FROM games g JOIN players p ON p.id = g.player_id
		 WHERE p.name = ? ORDER BY g.created_at DESC LIMIT 1`,
		name,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// GetAllModeStats retrieves statistics grouped by game mode.
func (s *Store) GetAllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM games
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.GamesCount, &m.HighScore, &m.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseCreatedAt(lastPlayed)
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// MoveDistribution returns how often each direction was played. An
// empty player name aggregates over everyone.
func (s *Store) MoveDistribution(player string) (map[string]int, error) {
	query := `SELECT m.direction, COUNT(*) FROM moves m`
	args := []any{}
	if player != "" {
		query += ` JOIN games g ON g.id = m.game_id
		           JOIN players p ON p.id = g.player_id
		           WHERE p.name = ?`
		args = append(args, player)
	}
	query += " GROUP BY m.direction"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query move distribution: %w", err)
	}
	defer rows.Close()

	dist := make(map[string]int)
	for rows.Next() {
		var dir string
		var count int
		if err := rows.Scan(&dir, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		dist[dir] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return dist, nil
}

// ClearGames deletes all games and moves for the given mode. An empty
// mode clears everything.
func (s *Store) ClearGames(mode string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if mode == "" {
		if _, err := tx.Exec("DELETE FROM moves"); err != nil {
			return fmt.Errorf("storage: cannot clear moves: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM games"); err != nil {
			return fmt.Errorf("storage: cannot clear games: %w", err)
		}
	} else {
		if _, err := tx.Exec(
			"DELETE FROM moves WHERE game_id IN (SELECT id FROM games WHERE mode = ?)", mode,
		); err != nil {
			return fmt.Errorf("storage: cannot clear moves: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM games WHERE mode = ?", mode); err != nil {
			return fmt.Errorf("storage: cannot clear games: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseCreatedAt handles the two shapes the driver hands back for
// DATETIME columns.
func parseCreatedAt(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
