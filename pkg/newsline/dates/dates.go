package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corpusio/newsline/pkg/newsline/internalerr"
)

// DayLayout is the canonical calendar-day format used for equality
// comparison against user-supplied dates.
const DayLayout = "2006-01-02"

// timestampLayouts are tried in order when parsing a published value.
// Corpus files mix RFC 3339 with space-separated and date-only forms.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	DayLayout,
}

// ParseTimestamp converts a raw published value into a UTC time.
// String values are matched against the known layouts; bare integers
// are treated as a Unix epoch in seconds or milliseconds.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, internalerr.ErrUnparseableDate
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		// Heuristic: epochs past the year 33658 are milliseconds.
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("%q: %w", raw, internalerr.ErrUnparseableDate)
}

// DayKey reduces a timestamp to its UTC calendar date, discarding
// time-of-day.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
