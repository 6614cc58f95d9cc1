// Package store keeps the attempt journal of the running session in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuircle/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryDSN keeps the journal in process memory only.
const MemoryDSN = ":memory:"

// Store wraps SQLite access for attempt data.
type Store struct {
	db *sql.DB
}

// Open opens the journal and applies migrations. MemoryDSN yields a journal
// that disappears with the process.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("store dsn is empty")
	}
	if dsn != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every new connection to :memory: is a separate empty database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			valid INTEGER NOT NULL,
			reason TEXT NOT NULL,
			accuracy REAL NOT NULL,
			mean_radius REAL NOT NULL,
			std_dev REAL NOT NULL,
			points INTEGER NOT NULL,
			new_best INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_ended_at ON attempts(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores a finished attempt and returns its id.
func (s *Store) InsertAttempt(ctx context.Context, rec model.AttemptRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (started_at, ended_at, mode, valid, reason, accuracy, mean_radius, std_dev, points, new_best)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.Mode,
		boolToInt(rec.Valid),
		rec.Reason,
		rec.Accuracy,
		rec.MeanRadius,
		rec.StdDev,
		rec.Points,
		boolToInt(rec.NewBest),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAttempts returns attempts in journal order, filtered by cfg. Last keeps
// only the most recent N matches.
func (s *Store) ListAttempts(ctx context.Context, cfg model.HistoryConfig) ([]model.AttemptRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, cfg.Mode)
	}
	if cfg.AcceptedOnly {
		clauses = append(clauses, "valid = 1")
	}
	limit := ""
	if cfg.Last > 0 {
		limit = "LIMIT ?"
		args = append(args, cfg.Last)
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, mode, valid, reason, accuracy, mean_radius, std_dev, points, new_best
		FROM (
			SELECT * FROM attempts
			WHERE %s
			ORDER BY id DESC
			%s
		)
		ORDER BY id ASC`, strings.Join(clauses, " AND "), limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.AttemptRecord
	for rows.Next() {
		var rec model.AttemptRecord
		var startedAt, endedAt string
		var valid, newBest int
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &rec.Mode, &valid, &rec.Reason,
			&rec.Accuracy, &rec.MeanRadius, &rec.StdDev, &rec.Points, &newBest); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rec.Valid = valid != 0
		rec.NewBest = newBest != 0
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountByReason aggregates rejected attempts per reason, most frequent first.
func (s *Store) CountByReason(ctx context.Context) ([]model.ReasonCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT reason, COUNT(*) AS n
		FROM attempts
		WHERE valid = 0
		GROUP BY reason
		ORDER BY n DESC, reason ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ReasonCount
	for rows.Next() {
		var rc model.ReasonCount
		if err := rows.Scan(&rc.Reason, &rc.Count); err != nil {
			return nil, err
		}
		result = append(result, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
