// Package stats records dashboard page views and missing-asset sightings in SQLite.
//
// It stores operational counters only; no per-visitor state is kept.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for dashboard statistics.
type Store struct {
	db *sql.DB
}

// PageViews is the view count of one page.
type PageViews struct {
	Page  string `json:"page"`
	Views int    `json:"views"`
}

// MissingAsset aggregates warnings shown for one asset path.
type MissingAsset struct {
	Page     string    `json:"page"`
	Path     string    `json:"path"`
	Count    int       `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// DailyView is the total page views of one day.
type DailyView struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// Summary holds aggregated statistics since a point in time.
type Summary struct {
	Since      time.Time      `json:"since"`
	TotalViews int            `json:"total_views"`
	Pages      []PageViews    `json:"pages"`
	Daily      []DailyView    `json:"daily"`
	Missing    []MissingAsset `json:"missing"`
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create stats dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	// WAL lets readers proceed while a view is being recorded; the busy
	// timeout makes concurrent writers wait instead of failing.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure stats db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS page_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS missing_assets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page TEXT NOT NULL,
			path TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_page_views_timestamp ON page_views(timestamp);
		CREATE INDEX IF NOT EXISTS idx_page_views_page ON page_views(page);
		CREATE INDEX IF NOT EXISTS idx_missing_assets_timestamp ON missing_assets(timestamp);
		CREATE INDEX IF NOT EXISTS idx_missing_assets_path ON missing_assets(path);
	`)
	return err
}

// RecordView stores one view of page.
func (s *Store) RecordView(ctx context.Context, page string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_views (page, timestamp) VALUES (?, ?)`,
		page, at.UTC())
	return err
}

// RecordMissing stores one warning shown for an absent asset.
func (s *Store) RecordMissing(ctx context.Context, page, path string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO missing_assets (page, path, timestamp) VALUES (?, ?, ?)`,
		page, path, at.UTC())
	return err
}

// Summary aggregates everything recorded at or after since.
func (s *Store) Summary(ctx context.Context, since time.Time) (Summary, error) {
	since = since.UTC()
	sum := Summary{Since: since}

	rows, err := s.db.QueryContext(ctx, `
		SELECT page, COUNT(*) FROM page_views
		WHERE timestamp >= ?
		GROUP BY page
		ORDER BY COUNT(*) DESC, page ASC`, since)
	if err != nil {
		return Summary{}, fmt.Errorf("query page views: %w", err)
	}
	for rows.Next() {
		var pv PageViews
		if err := rows.Scan(&pv.Page, &pv.Views); err != nil {
			rows.Close()
			return Summary{}, err
		}
		sum.TotalViews += pv.Views
		sum.Pages = append(sum.Pages, pv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT substr(timestamp, 1, 10) AS day, COUNT(*) FROM page_views
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day ASC`, since)
	if err != nil {
		return Summary{}, fmt.Errorf("query daily views: %w", err)
	}
	for rows.Next() {
		var dv DailyView
		if err := rows.Scan(&dv.Date, &dv.Views); err != nil {
			rows.Close()
			return Summary{}, err
		}
		sum.Daily = append(sum.Daily, dv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT page, path, COUNT(*), MAX(timestamp) FROM missing_assets
		WHERE timestamp >= ?
		GROUP BY page, path
		ORDER BY COUNT(*) DESC, path ASC`, since)
	if err != nil {
		return Summary{}, fmt.Errorf("query missing assets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ma MissingAsset
		var last string
		if err := rows.Scan(&ma.Page, &ma.Path, &ma.Count, &last); err != nil {
			return Summary{}, err
		}
		ma.LastSeen = parseTimestamp(last)
		sum.Missing = append(sum.Missing, ma)
	}
	return sum, rows.Err()
}

// parseTimestamp reads the text form the sqlite driver stores for time.Time.
func parseTimestamp(v string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Cleanup deletes records older than before and returns how many were removed.
func (s *Store) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	var total int64
	for _, table := range []string{"page_views", "missing_assets"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, before.UTC())
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

// StartCleanupScheduler deletes records older than retentionDays every
// interval until the returned stop function is called.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration, onErr func(error)) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				if _, err := s.Cleanup(context.Background(), cutoff); err != nil && onErr != nil {
					onErr(err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
