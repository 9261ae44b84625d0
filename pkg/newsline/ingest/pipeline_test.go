package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/corpusio/newsline/pkg/newsline/store"
	"github.com/corpusio/newsline/pkg/newsline/store/memstore"
)

func corpusLines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `{"id":"doc-%d","title":"t%d","content":"body","media-type":"news","source":"Wire","published":"2015-06-01T00:00:00Z"}`+"\n", i, i)
	}
	return b.String()
}

func TestLoadBatchCount(t *testing.T) {
	ctx := context.Background()

	// ceil(N/B) bulk inserts for N well-formed lines.
	cases := []struct{ n, batch, calls int }{
		{10, 5, 2},
		{11, 5, 3},
		{4, 5, 1},
		{5, 5, 1},
	}

	for _, c := range cases {
		mem := memstore.New()
		report, err := NewPipeline(mem, c.batch).Load(ctx, strings.NewReader(corpusLines(c.n)))
		if err != nil {
			t.Fatalf("n=%d: %v", c.n, err)
		}
		if mem.InsertCalls != c.calls {
			t.Errorf("n=%d batch=%d: %d insert calls, want %d", c.n, c.batch, mem.InsertCalls, c.calls)
		}
		if report.Accepted != c.n || report.Committed != c.n || report.Rejected != 0 {
			t.Errorf("n=%d: report %+v", c.n, report)
		}
	}
}

func TestLoadSkipsMalformedLine(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()

	input := corpusLines(3) + "{not json at all\n" + corpusLines(2)
	report, err := NewPipeline(mem, 100).Load(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if report.Accepted != 5 || report.Rejected != 1 {
		t.Errorf("accepted=%d rejected=%d, want 5 and 1", report.Accepted, report.Rejected)
	}
	if report.Reasons[ReasonMalformedJSON] != 1 {
		t.Errorf("reasons = %v", report.Reasons)
	}
	if mem.Len() != 5 {
		t.Errorf("stored %d docs, want 5", mem.Len())
	}
}

func TestLoadCountsRejectionsByCause(t *testing.T) {
	ctx := context.Background()

	input := strings.Join([]string{
		`{"content":"x","media-type":"news","source":"s","published":"not a date"}`,
		`{"content":"x","media-type":"news","published":"2015-01-01"}`,
		`{"content":"  ","media-type":"news","source":"s","published":"2015-01-01"}`,
	}, "\n")

	report, err := NewPipeline(memstore.New(), 10).Load(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]int{
		ReasonUnparseableDate:  1,
		"missing-field:source": 1,
		ReasonEmptyContent:     1,
	}
	for reason, n := range want {
		if report.Reasons[reason] != n {
			t.Errorf("reason %s = %d, want %d", reason, report.Reasons[reason], n)
		}
	}
	if report.Accepted != 0 || report.Rejected != 3 {
		t.Errorf("report %+v", report)
	}
}

func TestLoadBlankLinesReadButNotRejected(t *testing.T) {
	ctx := context.Background()

	input := "\n" + corpusLines(2) + "\n\n"
	report, err := NewPipeline(memstore.New(), 10).Load(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if report.LinesRead != 5 {
		t.Errorf("LinesRead = %d, want 5", report.LinesRead)
	}
	if report.Accepted != 2 || report.Rejected != 0 {
		t.Errorf("report %+v", report)
	}
}

func TestLoadRebuildsCollection(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()
	p := NewPipeline(mem, 10)

	if _, err := p.Load(ctx, strings.NewReader(corpusLines(4))); err != nil {
		t.Fatal(err)
	}
	// Second load must not accumulate duplicates.
	if _, err := p.Load(ctx, strings.NewReader(corpusLines(4))); err != nil {
		t.Fatal(err)
	}
	if mem.Len() != 4 {
		t.Errorf("stored %d docs after reload, want 4", mem.Len())
	}
}

func TestLoadStoreFailureIsFatalButReported(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()
	p := NewPipeline(mem, 2)

	// First reset succeeds, inserts fail.
	mem.FailInserts = errors.New("connection lost")

	report, err := p.Load(ctx, strings.NewReader(corpusLines(5)))
	if err == nil {
		t.Fatal("expected fatal load error")
	}
	if mem.InsertCalls != 1 {
		t.Errorf("expected 1 attempt before aborting, got %d", mem.InsertCalls)
	}
	// The report still carries what happened before the failure.
	if report.LinesRead == 0 {
		t.Error("report lost line counts")
	}
	if report.Committed != 0 {
		t.Errorf("Committed = %d, want 0", report.Committed)
	}
}

func TestLoadMintsIDsForRecordsWithoutOne(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()

	input := `{"content":"x","media-type":"news","source":"s","published":"2015-01-01"}` + "\n" +
		`{"content":"y","media-type":"news","source":"s","published":"2015-01-02"}`
	if _, err := NewPipeline(mem, 10).Load(ctx, strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}

	articles, err := mem.ArticlesBySourceKey(ctx, "s")
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, a := range articles {
		if a.ID == "" {
			t.Error("article stored without ID")
		}
		if seen[a.ID] {
			t.Errorf("duplicate minted ID %s", a.ID)
		}
		seen[a.ID] = true
	}
}

var _ store.Store = (*memstore.Store)(nil)
