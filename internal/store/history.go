package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// History keeps a log of completed runs plus session state like the last
// query, so the dashboard can prefill its input across launches.
type History struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func OpenHistory(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	h := &History{readDB: readDB, writeDB: writeDB}
	if err := h.init(); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) init() error {
	_, err := h.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			query       TEXT NOT NULL,
			cache_key   TEXT NOT NULL,
			fetched     INTEGER NOT NULL,
			analyzed    INTEGER NOT NULL,
			positive    INTEGER NOT NULL,
			neutral     INTEGER NOT NULL,
			negative    INTEGER NOT NULL,
			avg_rating  REAL NOT NULL,
			from_cache  INTEGER NOT NULL,
			started_at  DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (h *History) Close() error {
	var errs []error
	if h.readDB != nil {
		errs = append(errs, h.readDB.Close())
	}
	if h.writeDB != nil {
		errs = append(errs, h.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Run is one completed pipeline execution.
type Run struct {
	ID        int64
	Query     string
	CacheKey  string
	Fetched   int
	Analyzed  int
	Positive  int
	Neutral   int
	Negative  int
	AvgRating float64
	FromCache bool
	StartedAt time.Time
	Duration  time.Duration
}

func (h *History) RecordRun(r Run) error {
	_, err := h.writeDB.Exec(`
		INSERT INTO runs (query, cache_key, fetched, analyzed, positive, neutral, negative, avg_rating, from_cache, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.Query, r.CacheKey, r.Fetched, r.Analyzed, r.Positive, r.Neutral, r.Negative, r.AvgRating, r.FromCache, r.StartedAt, r.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("recording run for %q: %w", r.Query, err)
	}
	return nil
}

// Recent returns the newest runs, most recent first.
func (h *History) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.readDB.Query(`
		SELECT id, query, cache_key, fetched, analyzed, positive, neutral, negative, avg_rating, from_cache, started_at, duration_ms
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r  Run
			ms int64
		)
		if err := rows.Scan(&r.ID, &r.Query, &r.CacheKey, &r.Fetched, &r.Analyzed, &r.Positive, &r.Neutral, &r.Negative, &r.AvgRating, &r.FromCache, &r.StartedAt, &ms); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LastQuery returns the most recently searched query, or "" when none.
func (h *History) LastQuery() string {
	var value string
	err := h.readDB.QueryRow("SELECT value FROM meta WHERE key = 'last_query'").Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

func (h *History) SetLastQuery(query string) error {
	_, err := h.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_query', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, query)
	return err
}
