// Package scanstore is a small SQLite ledger the scan command uses for
// incremental runs: one row per file recording the content hash last
// seen, when it was analyzed, which handler won dispatch, and how many
// chunks it produced. Adapted from the teacher's internal/storage
// checksum-ledger idiom (GeneratorMetadata.FileChecksums), narrowed
// from that package's full code-index schema to the one table this
// domain needs.
package scanstore

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// Record is one file's last-scan result.
type Record struct {
	FilePath     string
	ContentHash  string
	LastScanned  time.Time
	HandlerUsed  string
	TypeName     string
	ChunkCount   int
}

// Store wraps a SQLite database holding the scan ledger.
type Store struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS scans (
	file_path    TEXT PRIMARY KEY,
	content_hash TEXT NOT NULL,
	last_scanned TEXT NOT NULL,
	handler_used TEXT NOT NULL,
	type_name    TEXT NOT NULL,
	chunk_count  INTEGER NOT NULL
)`

// Open opens (creating if necessary) the SQLite ledger at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan store %q: %w", path, err)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create scan store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the last recorded scan of filePath, and whether one
// exists.
func (s *Store) Lookup(filePath string) (Record, bool, error) {
	row := sq.Select("file_path", "content_hash", "last_scanned", "handler_used", "type_name", "chunk_count").
		From("scans").
		Where(sq.Eq{"file_path": filePath}).
		RunWith(s.db).
		QueryRow()

	var rec Record
	var lastScanned string
	err := row.Scan(&rec.FilePath, &rec.ContentHash, &lastScanned, &rec.HandlerUsed, &rec.TypeName, &rec.ChunkCount)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to look up scan record for %s: %w", filePath, err)
	}
	rec.LastScanned, _ = time.Parse(time.RFC3339, lastScanned)
	return rec, true, nil
}

// Unchanged reports whether filePath's ledger entry already matches
// contentHash, meaning the scan command can skip re-analyzing it.
func (s *Store) Unchanged(filePath, contentHash string) (bool, error) {
	rec, ok, err := s.Lookup(filePath)
	if err != nil {
		return false, err
	}
	return ok && rec.ContentHash == contentHash, nil
}

// Record upserts a file's scan result.
func (s *Store) Record(rec Record) error {
	_, err := sq.Insert("scans").
		Columns("file_path", "content_hash", "last_scanned", "handler_used", "type_name", "chunk_count").
		Values(rec.FilePath, rec.ContentHash, rec.LastScanned.Format(time.RFC3339), rec.HandlerUsed, rec.TypeName, rec.ChunkCount).
		Options("OR REPLACE").
		RunWith(s.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to record scan result for %s: %w", rec.FilePath, err)
	}
	return nil
}

// Forget removes filePath's ledger entry, used when a file disappears
// from a subsequent scan.
func (s *Store) Forget(filePath string) error {
	_, err := sq.Delete("scans").
		Where(sq.Eq{"file_path": filePath}).
		RunWith(s.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to forget scan record for %s: %w", filePath, err)
	}
	return nil
}
