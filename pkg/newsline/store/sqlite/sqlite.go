// Package sqlite implements store.Store on an embedded SQLite database,
// for running the tool without a document-store server.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/corpusio/newsline/pkg/newsline/internalerr"
	"github.com/corpusio/newsline/pkg/newsline/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	source_key TEXT NOT NULL,
	media_type TEXT NOT NULL,
	published_at TEXT NOT NULL,
	title TEXT,
	content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_articles_source_key ON articles(source_key);
CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);
`

func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Reset drops and recreates the articles table.
func (s *sqliteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS articles"); err != nil {
		return fmt.Errorf("drop articles: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	if err := initSchema(ctx, s.db); err != nil {
		return fmt.Errorf("recreate articles: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	return nil
}

// InsertArticles writes one batch inside a single transaction.
// published_at is stored as RFC 3339 UTC text, so lexicographic order
// is chronological order.
func (s *sqliteStore) InsertArticles(ctx context.Context, batch []store.Article) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (id, source, source_key, media_type, published_at, title, content)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer stmt.Close()

	for _, a := range batch {
		_, err := stmt.ExecContext(ctx,
			a.ID, a.Source, a.SourceKey, a.MediaType,
			a.PublishedAt.UTC().Format(time.RFC3339), a.Title, a.Content)
		if err != nil {
			return 0, fmt.Errorf("insert article %s: %v: %w", a.ID, err, internalerr.ErrStoreUnavailable)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	return len(batch), nil
}

// EachContent streams content rows for the matching media type.
func (s *sqliteStore) EachContent(ctx context.Context, mediaType string, fn func(string) error) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT content FROM articles WHERE lower(media_type) = ?", strings.ToLower(mediaType))
	if err != nil {
		return fmt.Errorf("query content: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer rows.Close()

	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return err
		}
		if err := fn(content); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CountByTypeOnDay groups counts by lowercased media type for one day.
func (s *sqliteStore) CountByTypeOnDay(ctx context.Context, day string) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lower(media_type), COUNT(*)
		FROM articles
		WHERE substr(published_at, 1, 10) = ?
		GROUP BY lower(media_type)`, day)
	if err != nil {
		return nil, fmt.Errorf("count by day: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var mt string
		var n int64
		if err := rows.Scan(&mt, &n); err != nil {
			return nil, err
		}
		counts[mt] = n
	}
	return counts, rows.Err()
}

// SourceCountsByYear groups by source for one calendar year.
func (s *sqliteStore) SourceCountsByYear(ctx context.Context, year int) ([]store.SourceCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, COUNT(*) AS n
		FROM articles
		WHERE substr(published_at, 1, 4) = ?
		GROUP BY source
		ORDER BY n DESC, source ASC`, fmt.Sprintf("%04d", year))
	if err != nil {
		return nil, fmt.Errorf("count by source: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer rows.Close()

	var counts []store.SourceCount
	for rows.Next() {
		var sc store.SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

// ArticlesBySourceKey returns matching articles, most recent first.
func (s *sqliteStore) ArticlesBySourceKey(ctx context.Context, key string) ([]store.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, source_key, media_type, published_at, title, content
		FROM articles
		WHERE source_key = ?
		ORDER BY published_at DESC, title ASC`, key)
	if err != nil {
		return nil, fmt.Errorf("query by source: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer rows.Close()

	var out []store.Article
	for rows.Next() {
		var a store.Article
		var published string
		if err := rows.Scan(&a.ID, &a.Source, &a.SourceKey, &a.MediaType, &published, &a.Title, &a.Content); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, published)
		if err != nil {
			return nil, fmt.Errorf("stored timestamp %q: %w", published, internalerr.ErrUnparseableDate)
		}
		a.PublishedAt = t
		out = append(out, a)
	}
	return out, rows.Err()
}
