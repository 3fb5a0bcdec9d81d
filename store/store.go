// Package store persists scan results so scanning and cleaning can run as
// separate invocations. The stored representation is flat (group key plus
// path, size, and modification time per file); the directory-partitioned
// cleaning plan is recomputed from it on load, never stored.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	dedup "github.com/ideamans/go-dedup-cleaner"
)

var (
	// ErrNoScanResult is returned when no scan result is stored for the
	// requested root. The caller should run a fresh scan.
	ErrNoScanResult = errors.New("no stored scan result")

	// ErrLocked is returned when another process holds the store lock.
	ErrLocked = errors.New("result store is locked by another process")
)

// Store keeps scan results in a SQLite database. A file lock next to the
// database guards against two invocations interleaving scan and clean on the
// same store.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
}

// Open initializes (or reuses) the result database at the provided path and
// acquires its lock. Returns ErrLocked without blocking when another process
// holds it.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path cannot be empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !acquired {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			db.Close()
			lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	st := &Store{db: db, lock: lock}
	if err := st.initSchema(); err != nil {
		db.Close()
		lock.Unlock()
		return nil, err
	}

	return st, nil
}

// Close releases the database and the store lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

func (s *Store) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS scan_results (
        id TEXT PRIMARY KEY,
        root_path TEXT NOT NULL,
        total_files INTEGER NOT NULL,
        duplicate_count INTEGER NOT NULL,
        scan_duration_ns INTEGER NOT NULL,
        scanned_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS scan_files (
        scan_id TEXT NOT NULL REFERENCES scan_results(id) ON DELETE CASCADE,
        group_key TEXT NOT NULL,
        path TEXT NOT NULL,
        size INTEGER NOT NULL,
        mod_time INTEGER NOT NULL,
        digest TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_scan_files_scan ON scan_files(scan_id);
CREATE INDEX IF NOT EXISTS idx_scan_results_root ON scan_results(root_path);
`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// Save stores a scan result, replacing any previous result for the same root.
func (s *Store) Save(ctx context.Context, result *dedup.ScanResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM scan_results WHERE root_path = ?`, result.RootDir); err != nil {
		return fmt.Errorf("clear previous result: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO scan_results(id, root_path, total_files, duplicate_count, scan_duration_ns, scanned_at)
VALUES(?, ?, ?, ?, ?, ?)
`, result.ID, result.RootDir, result.TotalFiles, result.DuplicateCount,
		result.ScanDuration.Nanoseconds(), result.ScannedAt.Unix()); err != nil {
		return fmt.Errorf("insert result %s: %w", result.ID, err)
	}

	insert, err := tx.PrepareContext(ctx, `
INSERT INTO scan_files(scan_id, group_key, path, size, mod_time, digest)
VALUES(?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare file insert: %w", err)
	}
	defer insert.Close()

	for key, members := range result.Groups {
		for _, record := range members {
			if _, err := insert.ExecContext(ctx,
				result.ID, key, record.Path, record.Size, record.ModTime, record.Digest); err != nil {
				return fmt.Errorf("insert file %s: %w", record.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadLatest retrieves the most recent scan result for the given root.
func (s *Store) LoadLatest(ctx context.Context, rootPath string) (*dedup.ScanResult, error) {
	result := &dedup.ScanResult{
		Groups: make(dedup.DuplicateGroups),
	}

	var (
		durationNS int64
		scannedAt  int64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, root_path, total_files, duplicate_count, scan_duration_ns, scanned_at
FROM scan_results WHERE root_path = ?
ORDER BY scanned_at DESC LIMIT 1
`, rootPath).Scan(&result.ID, &result.RootDir, &result.TotalFiles,
		&result.DuplicateCount, &durationNS, &scannedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoScanResult, rootPath)
	}
	if err != nil {
		return nil, fmt.Errorf("query result: %w", err)
	}
	result.ScanDuration = time.Duration(durationNS)
	result.ScannedAt = time.Unix(scannedAt, 0)

	rows, err := s.db.QueryContext(ctx, `
SELECT group_key, path, size, mod_time, digest FROM scan_files WHERE scan_id = ?
`, result.ID)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key    string
			record dedup.FileRecord
		)
		if scanErr := rows.Scan(&key, &record.Path, &record.Size, &record.ModTime, &record.Digest); scanErr != nil {
			return nil, fmt.Errorf("scan file row: %w", scanErr)
		}
		result.Groups[key] = append(result.Groups[key], record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return result, nil
}

// Delete removes a stored scan result by id. Deleting an id that is already
// gone is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM scan_results WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete result %s: %w", id, err)
	}
	return nil
}
