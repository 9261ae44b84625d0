package ingest

import (
	"context"
	"fmt"

	"github.com/corpusio/newsline/pkg/newsline/store"
)

// DefaultBatchSize is the number of validated records buffered before
// a bulk write is issued.
const DefaultBatchSize = 1000

// BatchWriter accumulates validated articles and flushes them to the
// store in fixed-size bulk writes. Each buffered batch gets exactly one
// write attempt — retry policy, if any, belongs to the caller.
type BatchWriter struct {
	store   store.Store
	size    int
	buf     []store.Article
	written int
	batches int
}

// NewBatchWriter creates a writer flushing every size documents.
// A non-positive size falls back to DefaultBatchSize.
func NewBatchWriter(s store.Store, size int) *BatchWriter {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &BatchWriter{
		store: s,
		size:  size,
		buf:   make([]store.Article, 0, size),
	}
}

// Add buffers one article, flushing automatically once the buffer
// reaches capacity.
func (w *BatchWriter) Add(ctx context.Context, a store.Article) error {
	w.buf = append(w.buf, a)
	if len(w.buf) >= w.size {
		return w.Flush(ctx)
	}
	return nil
}

// Flush sends the buffered batch as one bulk write and clears the
// buffer. Flushing an empty buffer is a no-op.
func (w *BatchWriter) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	n := len(w.buf)
	acked, err := w.store.InsertArticles(ctx, w.buf)
	w.buf = w.buf[:0]
	w.written += acked
	if err != nil {
		return fmt.Errorf("flush batch of %d: %w", n, err)
	}
	w.batches++
	return nil
}

// Written returns the number of documents the store has acknowledged
// across all flushed batches.
func (w *BatchWriter) Written() int { return w.written }

// Batches returns the number of successfully flushed batches.
func (w *BatchWriter) Batches() int { return w.batches }
