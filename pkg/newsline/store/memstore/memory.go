// Package memstore is an in-memory store.Store used by tests and small
// corpora. Query methods mirror the server-side backends' ordering
// guarantees exactly.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/corpusio/newsline/pkg/newsline/dates"
	"github.com/corpusio/newsline/pkg/newsline/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu       sync.RWMutex
	articles []store.Article

	// InsertCalls counts InsertArticles invocations; tests use it to
	// verify batching behavior.
	InsertCalls int

	// FailInserts makes every insert fail, for fatal-path tests.
	FailInserts error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Reset clears all stored articles.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = nil
	return nil
}

// InsertArticles appends one batch.
func (s *Store) InsertArticles(ctx context.Context, batch []store.Article) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InsertCalls++
	if s.FailInserts != nil {
		return 0, s.FailInserts
	}
	s.articles = append(s.articles, batch...)
	return len(batch), nil
}

// Len returns the number of stored articles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// EachContent streams content for the matching media type.
func (s *Store) EachContent(ctx context.Context, mediaType string, fn func(string) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if strings.ToLower(a.MediaType) != mediaType {
			continue
		}
		if err := fn(a.Content); err != nil {
			return err
		}
	}
	return nil
}

// CountByTypeOnDay groups article counts by lowercased media type for
// one calendar day.
func (s *Store) CountByTypeOnDay(ctx context.Context, day string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, a := range s.articles {
		if dates.DayKey(a.PublishedAt) == day {
			counts[strings.ToLower(a.MediaType)]++
		}
	}
	return counts, nil
}

// SourceCountsByYear groups by source for one calendar year, ordered
// count descending then source ascending.
func (s *Store) SourceCountsByYear(ctx context.Context, year int) ([]store.SourceCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bySource := make(map[string]int64)
	for _, a := range s.articles {
		if a.PublishedAt.UTC().Year() == year {
			bySource[a.Source]++
		}
	}

	counts := make([]store.SourceCount, 0, len(bySource))
	for src, n := range bySource {
		counts = append(counts, store.SourceCount{Source: src, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Source < counts[j].Source
	})
	return counts, nil
}

// ArticlesBySourceKey returns matching articles, most recent first.
func (s *Store) ArticlesBySourceKey(ctx context.Context, key string) ([]store.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Article
	for _, a := range s.articles {
		if a.SourceKey == key {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}
