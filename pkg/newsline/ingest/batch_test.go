package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/corpusio/newsline/pkg/newsline/store"
	"github.com/corpusio/newsline/pkg/newsline/store/memstore"
)

func article(i int) store.Article {
	return store.Article{ID: fmt.Sprintf("doc-%d", i), Source: "s", SourceKey: "s", MediaType: "news", Content: "x"}
}

func TestBatchWriterAutoFlushAtCapacity(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()
	w := NewBatchWriter(mem, 3)

	for i := 0; i < 2; i++ {
		if err := w.Add(ctx, article(i)); err != nil {
			t.Fatal(err)
		}
	}
	if mem.InsertCalls != 0 {
		t.Fatalf("flushed before capacity: %d calls", mem.InsertCalls)
	}

	if err := w.Add(ctx, article(2)); err != nil {
		t.Fatal(err)
	}
	if mem.InsertCalls != 1 {
		t.Fatalf("expected 1 insert call, got %d", mem.InsertCalls)
	}
	if w.Written() != 3 || w.Batches() != 1 {
		t.Errorf("Written=%d Batches=%d, want 3 and 1", w.Written(), w.Batches())
	}
}

func TestBatchWriterFlushPartialAndEmpty(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()
	w := NewBatchWriter(mem, 10)

	if err := w.Add(ctx, article(0)); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(ctx); err != nil {
		t.Fatal(err)
	}
	if w.Written() != 1 {
		t.Errorf("Written = %d, want 1", w.Written())
	}

	// Flushing an empty buffer issues no write.
	if err := w.Flush(ctx); err != nil {
		t.Fatal(err)
	}
	if mem.InsertCalls != 1 {
		t.Errorf("empty flush wrote: %d calls", mem.InsertCalls)
	}
}

func TestBatchWriterSingleAttemptOnFailure(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()
	mem.FailInserts = errors.New("connection lost")
	w := NewBatchWriter(mem, 10)

	if err := w.Add(ctx, article(0)); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(ctx); err == nil {
		t.Fatal("expected flush error")
	}
	if mem.InsertCalls != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", mem.InsertCalls)
	}

	// The failed batch is not retried implicitly.
	if err := w.Flush(ctx); err != nil {
		t.Fatalf("empty re-flush should be a no-op, got %v", err)
	}
	if mem.InsertCalls != 1 {
		t.Fatalf("implicit retry happened: %d calls", mem.InsertCalls)
	}
}

func TestBatchWriterDefaultSize(t *testing.T) {
	w := NewBatchWriter(memstore.New(), 0)
	if w.size != DefaultBatchSize {
		t.Errorf("size = %d, want %d", w.size, DefaultBatchSize)
	}
}
