package ingest

import (
	"encoding/json"
	"strings"

	"github.com/corpusio/newsline/pkg/newsline/dates"
	"github.com/corpusio/newsline/pkg/newsline/sanitize"
	"github.com/corpusio/newsline/pkg/newsline/store"
)

// Rejection reasons reported in the load report.
const (
	ReasonMalformedJSON   = "malformed-json"
	ReasonUnparseableDate = "unparseable-date"
	ReasonEmptyContent    = "empty-content"
)

func reasonMissing(field string) string { return "missing-field:" + field }

// Record is one wire-format article as it appears on an input line.
// ID and Published stay raw because corpus files carry them as either
// strings or bare numbers.
type Record struct {
	ID        json.RawMessage `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	MediaType string          `json:"media-type"`
	Source    string          `json:"source"`
	Published json.RawMessage `json:"published"`
}

// Validate decides accept/reject for one parsed record. On acceptance
// it returns the normalized Article and an empty reason; on rejection
// the reason names the cause. No field is coerced or defaulted — a
// record either satisfies every constraint or is rejected in full.
func (r Record) Validate() (store.Article, string) {
	source := strings.TrimSpace(r.Source)
	if source == "" {
		return store.Article{}, reasonMissing("source")
	}

	mediaType := strings.TrimSpace(r.MediaType)
	if mediaType == "" {
		return store.Article{}, reasonMissing("media-type")
	}

	published := rawString(r.Published)
	if published == "" {
		return store.Article{}, reasonMissing("published")
	}

	if strings.TrimSpace(r.Content) == "" {
		return store.Article{}, ReasonEmptyContent
	}

	publishedAt, err := dates.ParseTimestamp(published)
	if err != nil {
		return store.Article{}, ReasonUnparseableDate
	}

	// The one denormalization: the comparison key is computed here so
	// downstream code never re-normalizes source names ad hoc. A source
	// with no alphanumeric characters gets an empty key.
	key, _ := sanitize.SourceKey(source)

	return store.Article{
		ID:          rawString(r.ID),
		Source:      source,
		SourceKey:   key,
		MediaType:   mediaType,
		PublishedAt: publishedAt,
		Title:       r.Title,
		Content:     r.Content,
	}, ""
}

// rawString renders a raw JSON scalar as its string value: quoted
// strings are unwrapped, numbers keep their literal text, null and
// absent values become "".
func rawString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}
