package store

import (
	"context"
	"time"
)

// Article is the persisted document shape. Validation happens once at
// the ingestion boundary; everything past the Store interface can rely
// on Source, MediaType, PublishedAt and Content being set.
type Article struct {
	ID          string    `bson:"_id" json:"id"`
	Source      string    `bson:"source" json:"source"`
	SourceKey   string    `bson:"source_key" json:"source_key"`
	MediaType   string    `bson:"media_type" json:"media_type"`
	PublishedAt time.Time `bson:"published_at" json:"published_at"`
	Title       string    `bson:"title" json:"title"`
	Content     string    `bson:"content" json:"content"`
}

// SourceCount is one source's article count in a grouped aggregate.
type SourceCount struct {
	Source string
	Count  int64
}

// Store is the interface to the article document store. Queries execute
// inside the store and return only the requested aggregate; the caller
// never holds the full collection in memory.
type Store interface {
	Close() error

	// Reset drops and recreates the article collection so a reload
	// yields a duplicate-free state.
	Reset(ctx context.Context) error

	// InsertArticles writes one batch and returns the number of
	// documents the store acknowledged.
	InsertArticles(ctx context.Context, batch []Article) (int, error)

	// EachContent streams the content of every article whose media
	// type matches (case-insensitive) to fn, one document at a time.
	EachContent(ctx context.Context, mediaType string, fn func(content string) error) error

	// CountByTypeOnDay returns article counts grouped by lowercased
	// media type for the given YYYY-MM-DD day.
	CountByTypeOnDay(ctx context.Context, day string) (map[string]int64, error)

	// SourceCountsByYear groups articles published in the given
	// calendar year by source, ordered count descending then source
	// ascending.
	SourceCountsByYear(ctx context.Context, year int) ([]SourceCount, error)

	// ArticlesBySourceKey returns articles whose normalized source key
	// matches, ordered most recent first (title ascending among equal
	// timestamps).
	ArticlesBySourceKey(ctx context.Context, key string) ([]Article, error)
}
