// Package sanitize validates user-supplied query parameters before they
// are embedded into store queries. A sanitized value can only occupy a
// literal position in a query, never a structural or operator position.
package sanitize

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/corpusio/newsline/pkg/newsline/dates"
	"github.com/corpusio/newsline/pkg/newsline/internalerr"
)

// MediaType accepts only alphabetic input and folds it to lowercase.
func MediaType(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("invalid-media-type: empty: %w", internalerr.ErrInvalidInput)
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("invalid-media-type %q: %w", s, internalerr.ErrInvalidInput)
		}
	}
	return strings.ToLower(s), nil
}

// Date accepts only the literal YYYY-MM-DD pattern with components in
// valid calendar ranges, returning the canonical day string.
func Date(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(dates.DayLayout) || s[4] != '-' || s[7] != '-' {
		return "", fmt.Errorf("invalid-date-format %q: %w", s, internalerr.ErrInvalidInput)
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid-date-format %q: %w", s, internalerr.ErrInvalidInput)
		}
	}
	// time.Parse rejects out-of-range months and days (e.g. 2015-13-40).
	if _, err := time.Parse(dates.DayLayout, s); err != nil {
		return "", fmt.Errorf("invalid-date-format %q: %w", s, internalerr.ErrInvalidInput)
	}
	return s, nil
}

// SourceKey reduces a source name to its comparison key: lowercase
// letters and digits only. Everything else, including characters that
// carry meaning in query construction ($, braces, quotes, dots), is
// stripped, so "The Times", "the-times" and "THETIMES" all yield
// "thetimes". An input with no alphanumeric characters is rejected.
func SourceKey(s string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("invalid-source %q: %w", s, internalerr.ErrInvalidInput)
	}
	return b.String(), nil
}
