// Package newsline loads a line-delimited JSON article corpus into a
// document store and answers analytical queries over it.
package newsline

import (
	"context"
	"io"
	"time"

	"github.com/corpusio/newsline/pkg/newsline/ingest"
	"github.com/corpusio/newsline/pkg/newsline/rank"
	"github.com/corpusio/newsline/pkg/newsline/sanitize"
	"github.com/corpusio/newsline/pkg/newsline/store"
)

// DefaultTopN is the ranked-result cutoff used by the query operations.
const DefaultTopN = 5

// Engine is the analytical query engine facade. All four query
// operations are stateless, read-only and independently re-runnable;
// only Load mutates the store, and it rebuilds from scratch.
type Engine struct {
	store     store.Store
	tokenizer *ingest.Tokenizer
	batchSize int
	topN      int
}

// Options configures an Engine.
type Options struct {
	Store     store.Store
	BatchSize int // ingestion batch size; defaults to ingest.DefaultBatchSize
	TopN      int // ranked-result cutoff; defaults to DefaultTopN
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Engine{
		store:     opts.Store,
		tokenizer: ingest.NewTokenizer(),
		batchSize: opts.BatchSize,
		topN:      topN,
	}
}

// Close cleanly shuts down the engine.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Load rebuilds the article collection from a line-delimited JSON
// stream and returns the load report.
func (e *Engine) Load(ctx context.Context, r io.Reader) (ingest.Report, error) {
	return ingest.NewPipeline(e.store, e.batchSize).Load(ctx, r)
}

// CommonWords returns the most frequent words, with ties at the
// boundary rank, across the content of every article of the given
// media type. The frequency table is rebuilt on every call.
func (e *Engine) CommonWords(ctx context.Context, mediaType string) ([]rank.Entry, error) {
	mt, err := sanitize.MediaType(mediaType)
	if err != nil {
		return nil, err
	}

	freq := make(map[string]int64)
	err = e.store.EachContent(ctx, mt, func(content string) error {
		e.tokenizer.Count(ingest.StripMarkup(content), freq)
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]rank.Entry, 0, len(freq))
	for word, count := range freq {
		entries = append(entries, rank.Entry{Key: word, Count: count})
	}
	return rank.TopEntries(entries, e.topN), nil
}

// Day-comparison outcomes.
const (
	LeaderNews = "news"
	LeaderBlog = "blog"
	LeaderTie  = "tie"
)

// DayComparison reports news vs. blog publication counts for one day.
type DayComparison struct {
	Day    string
	News   int64
	Blog   int64
	Leader string
	Margin int64
}

// CompareDay counts news and blog articles published on the given
// YYYY-MM-DD day. A day with no articles of either type is a tie at
// (0, 0), not an error.
func (e *Engine) CompareDay(ctx context.Context, day string) (DayComparison, error) {
	d, err := sanitize.Date(day)
	if err != nil {
		return DayComparison{}, err
	}

	counts, err := e.store.CountByTypeOnDay(ctx, d)
	if err != nil {
		return DayComparison{}, err
	}

	cmp := DayComparison{Day: d, News: counts["news"], Blog: counts["blog"]}
	switch {
	case cmp.News > cmp.Blog:
		cmp.Leader, cmp.Margin = LeaderNews, cmp.News-cmp.Blog
	case cmp.Blog > cmp.News:
		cmp.Leader, cmp.Margin = LeaderBlog, cmp.Blog-cmp.News
	default:
		cmp.Leader = LeaderTie
	}
	return cmp, nil
}

// TopSources returns the sources with the most articles published in
// the given calendar year, with ties at the boundary rank.
func (e *Engine) TopSources(ctx context.Context, year int) ([]rank.Entry, error) {
	counts, err := e.store.SourceCountsByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	entries := make([]rank.Entry, len(counts))
	for i, sc := range counts {
		entries[i] = rank.Entry{Key: sc.Source, Count: sc.Count}
	}
	return rank.TopEntries(entries, e.topN), nil
}

// RecentArticle is one (title, published) pair in a recency ranking.
type RecentArticle struct {
	Title       string
	PublishedAt time.Time
}

// RecentBySource returns the most recently published articles of one
// source, with ties at the boundary timestamp. The source name is
// matched case-insensitively ignoring non-alphanumeric characters.
func (e *Engine) RecentBySource(ctx context.Context, source string) ([]RecentArticle, error) {
	key, err := sanitize.SourceKey(source)
	if err != nil {
		return nil, err
	}

	articles, err := e.store.ArticlesBySourceKey(ctx, key)
	if err != nil {
		return nil, err
	}

	ranked := rank.CutWithTies(articles, e.topN, func(a, b store.Article) bool {
		return a.PublishedAt.Equal(b.PublishedAt)
	})

	out := make([]RecentArticle, len(ranked))
	for i, a := range ranked {
		out[i] = RecentArticle{Title: a.Title, PublishedAt: a.PublishedAt}
	}
	return out, nil
}
