package ingest

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/corpusio/newsline/pkg/newsline/store"
)

// maxLineBytes bounds a single input line; article bodies run long.
const maxLineBytes = 16 << 20

// Report summarizes one ingestion run.
type Report struct {
	LinesRead int
	Accepted  int
	Rejected  int
	Reasons   map[string]int
	Batches   int
	Committed int
}

func (r *Report) reject(reason string) {
	r.Rejected++
	r.Reasons[reason]++
}

// Pipeline drives a full corpus load: read lines, parse, validate,
// batch, write. Loading drops and recreates the target collection so a
// re-run yields a deterministic, duplicate-free state.
type Pipeline struct {
	store     store.Store
	batchSize int
	entropy   *ulid.MonotonicEntropy
}

// NewPipeline creates a pipeline writing batches of batchSize to s.
func NewPipeline(s store.Store, batchSize int) *Pipeline {
	return &Pipeline{
		store:     s,
		batchSize: batchSize,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// Load ingests one line-delimited JSON stream. Per-line errors (bad
// JSON, failed validation) are counted in the report and never abort
// the run; only a store-level failure is fatal, and even then the
// returned report carries the counts committed in prior batches.
func (p *Pipeline) Load(ctx context.Context, r io.Reader) (Report, error) {
	report := Report{Reasons: make(map[string]int)}

	if err := p.store.Reset(ctx); err != nil {
		return report, fmt.Errorf("reset collection: %w", err)
	}

	writer := NewBatchWriter(p.store, p.batchSize)
	finish := func(report Report, err error) (Report, error) {
		report.Batches = writer.Batches()
		report.Committed = writer.Written()
		return report, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), maxLineBytes)

	for scanner.Scan() {
		report.LinesRead++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			report.reject(ReasonMalformedJSON)
			continue
		}

		article, reason := rec.Validate()
		if reason != "" {
			report.reject(reason)
			continue
		}

		if article.ID == "" {
			article.ID = ulid.MustNew(ulid.Now(), p.entropy).String()
		}

		if err := writer.Add(ctx, article); err != nil {
			return finish(report, err)
		}
		report.Accepted++
	}

	if err := scanner.Err(); err != nil {
		return finish(report, fmt.Errorf("read input: %w", err))
	}

	if err := writer.Flush(ctx); err != nil {
		return finish(report, err)
	}

	return finish(report, nil)
}
