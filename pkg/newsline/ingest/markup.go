package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup extracts the text content from a string that may contain
// HTML markup. Blog bodies in the corpus frequently embed tags; counting
// words over the raw string would credit tag names and attributes.
// Plain text passes through unchanged.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to the raw string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
