package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/corpusio/newsline/pkg/newsline/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "articles.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testArticle(id, source, key, mediaType, published, title string) store.Article {
	at, err := time.Parse(time.RFC3339, published)
	if err != nil {
		panic(err)
	}
	return store.Article{
		ID: id, Source: source, SourceKey: key, MediaType: mediaType,
		PublishedAt: at, Title: title, Content: "word " + title,
	}
}

func TestInsertAndQueryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	batch := []store.Article{
		testArticle("1", "Wire", "wire", "News", "2015-03-01T10:00:00Z", "one"),
		testArticle("2", "Wire", "wire", "news", "2015-03-01T12:00:00Z", "two"),
		testArticle("3", "Blogger", "blogger", "blog", "2015-03-01T12:00:00Z", "three"),
		testArticle("4", "Wire", "wire", "news", "2014-03-01T12:00:00Z", "four"),
	}
	n, err := s.InsertArticles(ctx, batch)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(batch) {
		t.Fatalf("acked %d, want %d", n, len(batch))
	}

	// Media type matches case-insensitively.
	var contents []string
	err = s.EachContent(ctx, "news", func(c string) error {
		contents = append(contents, c)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 3 {
		t.Errorf("EachContent matched %d docs, want 3", len(contents))
	}

	counts, err := s.CountByTypeOnDay(ctx, "2015-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if counts["news"] != 2 || counts["blog"] != 1 {
		t.Errorf("day counts = %v", counts)
	}

	byYear, err := s.SourceCountsByYear(ctx, 2015)
	if err != nil {
		t.Fatal(err)
	}
	if len(byYear) != 2 || byYear[0].Source != "Wire" || byYear[0].Count != 2 {
		t.Errorf("year counts = %v", byYear)
	}

	recent, err := s.ArticlesBySourceKey(ctx, "wire")
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 {
		t.Fatalf("matched %d articles, want 3", len(recent))
	}
	if recent[0].Title != "two" || recent[2].Title != "four" {
		t.Errorf("recency order wrong: %v, %v, %v", recent[0].Title, recent[1].Title, recent[2].Title)
	}
}

func TestResetDropsEverything(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.InsertArticles(ctx, []store.Article{
		testArticle("1", "Wire", "wire", "news", "2015-03-01T10:00:00Z", "one"),
	}); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}

	articles, err := s.ArticlesBySourceKey(ctx, "wire")
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 0 {
		t.Errorf("reset left %d articles behind", len(articles))
	}

	// The store is usable again after a reset.
	if _, err := s.InsertArticles(ctx, []store.Article{
		testArticle("2", "Wire", "wire", "news", "2015-03-02T10:00:00Z", "two"),
	}); err != nil {
		t.Fatal(err)
	}
}

func TestTitleBreaksTimestampTies(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.InsertArticles(ctx, []store.Article{
		testArticle("1", "Wire", "wire", "news", "2015-03-01T10:00:00Z", "zebra"),
		testArticle("2", "Wire", "wire", "news", "2015-03-01T10:00:00Z", "apple"),
	}); err != nil {
		t.Fatal(err)
	}

	recent, err := s.ArticlesBySourceKey(ctx, "wire")
	if err != nil {
		t.Fatal(err)
	}
	if recent[0].Title != "apple" || recent[1].Title != "zebra" {
		t.Errorf("tie order = %s, %s", recent[0].Title, recent[1].Title)
	}
}
