// Package menu renders the interactive query menu and its results.
// It holds no business logic; the query engine produces the structures
// rendered here.
package menu

import (
	"fmt"
	"io"

	"github.com/corpusio/newsline/pkg/newsline"
	"github.com/corpusio/newsline/pkg/newsline/rank"
)

// Print writes the option menu.
func Print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Article Query Menu")
	fmt.Fprintln(w, "------------------")
	fmt.Fprintln(w, "1. Most common words by media type")
	fmt.Fprintln(w, "2. Article count difference between news and blogs")
	fmt.Fprintln(w, "3. Top sources by article count for a year")
	fmt.Fprintln(w, "4. Most recent articles by source")
	fmt.Fprintln(w, "5. Exit")
}

// Words renders a ranked word-frequency result.
func Words(w io.Writer, mediaType string, entries []rank.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No articles found for media type %q.\n", mediaType)
		return
	}
	fmt.Fprintf(w, "\nMost common words for %q (ties at the boundary included):\n", mediaType)
	for i, e := range entries {
		fmt.Fprintf(w, "%d. %s: %d\n", i+1, e.Key, e.Count)
	}
}

// Comparison renders a news/blog day comparison.
func Comparison(w io.Writer, cmp newsline.DayComparison) {
	fmt.Fprintf(w, "\nArticles published on %s:\n", cmp.Day)
	fmt.Fprintf(w, "News articles: %d\n", cmp.News)
	fmt.Fprintf(w, "Blog articles: %d\n", cmp.Blog)
	switch cmp.Leader {
	case newsline.LeaderNews:
		fmt.Fprintf(w, "News had more articles by %d.\n", cmp.Margin)
	case newsline.LeaderBlog:
		fmt.Fprintf(w, "Blogs had more articles by %d.\n", cmp.Margin)
	default:
		fmt.Fprintln(w, "Both media types had the same number of articles.")
	}
}

// Sources renders a ranked source-count result.
func Sources(w io.Writer, year int, entries []rank.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No articles found for year %d.\n", year)
		return
	}
	fmt.Fprintf(w, "\nTop sources by article count in %d (ties at the boundary included):\n", year)
	for i, e := range entries {
		fmt.Fprintf(w, "%d. %s: %d articles\n", i+1, e.Key, e.Count)
	}
}

// Recent renders a most-recent-articles result.
func Recent(w io.Writer, source string, articles []newsline.RecentArticle) {
	if len(articles) == 0 {
		fmt.Fprintf(w, "Source %q was not found.\n", source)
		return
	}
	fmt.Fprintf(w, "\nMost recent articles from %q:\n", source)
	for i, a := range articles {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, a.Title, a.PublishedAt.UTC().Format("2006-01-02"))
	}
}
