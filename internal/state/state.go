// Package state persists incremental-build bookkeeping: a content
// fingerprint per document and a record per build. A document whose
// fingerprint is unchanged since the last build can be skipped by the
// page scan.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/inful/mdfp"
	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed build state.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// BuildRecord summarizes one completed build.
type BuildRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    string
	Pages      int
	Artifacts  int
}

// Open opens (and creates if needed) the state database. Use ":memory:" for
// an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		build_id TEXT NOT NULL,
		built_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		pages INTEGER NOT NULL,
		artifacts INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_build_id ON documents(build_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// DocumentFingerprint computes the canonical content fingerprint from the
// raw frontmatter block and body. The split parts hash independently so a
// body edit and a metadata edit both change the fingerprint.
func DocumentFingerprint(frontmatter, body string) string {
	return mdfp.CalculateFingerprintFromParts(strings.TrimRight(frontmatter, "\n"), body)
}

// Fingerprint returns the stored fingerprint for a document, or "" when the
// document has never been built.
func (s *Store) Fingerprint(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fp string
	err := s.db.QueryRowContext(ctx,
		"SELECT fingerprint FROM documents WHERE name = ?", name).Scan(&fp)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query fingerprint: %w", err)
	}
	return fp, nil
}

// Changed reports whether the document's fingerprint differs from the
// stored one.
func (s *Store) Changed(ctx context.Context, name, fingerprint string) (bool, error) {
	stored, err := s.Fingerprint(ctx, name)
	if err != nil {
		return false, err
	}
	return stored != fingerprint, nil
}

// Upsert stores the fingerprint for a document built by the given build.
func (s *Store) Upsert(ctx context.Context, name, fingerprint, buildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (name, fingerprint, build_id, built_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET fingerprint = excluded.fingerprint,
			build_id = excluded.build_id, built_at = excluded.built_at`,
		name, fingerprint, buildID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// Prune removes documents that no longer exist in the content tree.
func (s *Store) Prune(ctx context.Context, keep []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keepSet := make(map[string]bool, len(keep))
	for _, name := range keep {
		keepSet[name] = true
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM documents")
	if err != nil {
		return fmt.Errorf("query documents: %w", err)
	}
	var stale []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan document: %w", err)
		}
		if !keepSet[name] {
			stale = append(stale, name)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterate documents: %w", err)
	}
	_ = rows.Close()

	for _, name := range stale {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE name = ?", name); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
	}
	return nil
}

// RecordBuild stores one completed build.
func (s *Store) RecordBuild(ctx context.Context, b BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (id, started_at, finished_at, outcome, pages, artifacts) VALUES (?, ?, ?, ?, ?, ?)",
		b.ID, b.StartedAt.Unix(), b.FinishedAt.Unix(), b.Outcome, b.Pages, b.Artifacts)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// LastBuild returns the most recently finished build, or nil when no build
// has run.
func (s *Store) LastBuild(ctx context.Context) (*BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b BuildRecord
	var started, finished int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, started_at, finished_at, outcome, pages, artifacts FROM builds ORDER BY finished_at DESC, id DESC LIMIT 1").
		Scan(&b.ID, &started, &finished, &b.Outcome, &b.Pages, &b.Artifacts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last build: %w", err)
	}
	b.StartedAt = time.Unix(started, 0)
	b.FinishedAt = time.Unix(finished, 0)
	return &b, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
