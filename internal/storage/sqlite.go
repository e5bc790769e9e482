// Package storage provides SQLite-based persistence for finished runs and
// save slots. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished run on a stage.
type RunEntry struct {
	ID        int64
	StageID   string
	Gold      int
	Level     int
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stage_id TEXT NOT NULL,
			gold INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_stage_id ON runs(stage_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(stage_id, gold DESC);

		CREATE TABLE IF NOT EXISTS saves (
			stage_id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// RecordRun stores a finished run. Returns the ID of the inserted record.
func (s *Store) RecordRun(stageID string, gold, level int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (stage_id, gold, level) VALUES (?, ?, ?)",
		stageID, gold, level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the best N runs on a stage, most gold first. Ties go
// to the higher level.
func (s *Store) TopRuns(stageID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, stage_id, gold, level, created_at
		 FROM runs
		 WHERE stage_id = ?
		 ORDER BY gold DESC, level DESC, id ASC
		 LIMIT ?`,
		stageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// AllRuns retrieves every run on a stage.
func (s *Store) AllRuns(stageID string) ([]RunEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, stage_id, gold, level, created_at
		 FROM runs
		 WHERE stage_id = ?
		 ORDER BY gold DESC, level DESC, id ASC`,
		stageID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.StageID, &e.Gold, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles both driver-decoded times and raw SQLite strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BestGold returns the most gold collected in one run on a stage.
// Returns 0 if the stage was never played.
func (s *Store) BestGold(stageID string) (int, error) {
	var gold sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(gold) FROM runs WHERE stage_id = ?",
		stageID,
	).Scan(&gold)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best gold: %w", err)
	}

	if !gold.Valid {
		return 0, nil
	}
	return int(gold.Int64), nil
}

// ClearRuns deletes every run on a stage.
func (s *Store) ClearRuns(stageID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE stage_id = ?", stageID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// StageStats contains aggregated statistics for a stage.
type StageStats struct {
	StageID    string
	Runs       int
	BestGold   int
	BestLevel  int
	AvgGold    float64
	TotalGold  int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for one stage.
func (s *Store) Stats(stageID string) (*StageStats, error) {
	stats := &StageStats{StageID: stageID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(gold), 0), COALESCE(MAX(level), 0),
		        COALESCE(AVG(gold), 0), COALESCE(SUM(gold), 0), MAX(created_at)
		 FROM runs WHERE stage_id = ?`,
		stageID,
	).Scan(&stats.Runs, &stats.BestGold, &stats.BestLevel, &stats.AvgGold, &stats.TotalGold, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every stage that has been played.
func (s *Store) AllStats() (map[string]*StageStats, error) {
	rows, err := s.db.Query(
		`SELECT stage_id, COUNT(*), MAX(gold), MAX(level), AVG(gold), SUM(gold), MAX(created_at)
		 FROM runs
		 GROUP BY stage_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stage stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*StageStats)
	for rows.Next() {
		var st StageStats
		var lastPlayed any
		if err := rows.Scan(&st.StageID, &st.Runs, &st.BestGold, &st.BestLevel, &st.AvgGold, &st.TotalGold, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.StageID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// SaveSlot stores the save data for a stage, replacing any previous slot.
func (s *Store) SaveSlot(stageID string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (stage_id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(stage_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		stageID, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot: %w", err)
	}
	return nil
}

// LoadSlot returns the save data for a stage, or nil when there is none.
func (s *Store) LoadSlot(stageID string) ([]byte, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM saves WHERE stage_id = ?", stageID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load slot: %w", err)
	}
	return []byte(data), nil
}

// ClearSlot removes the save data for a stage.
func (s *Store) ClearSlot(stageID string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE stage_id = ?", stageID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear slot: %w", err)
	}
	return nil
}
