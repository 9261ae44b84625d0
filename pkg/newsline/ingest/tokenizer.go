package ingest

import (
	"strings"
	"unicode"
)

// Tokenizer splits article text into normalized word tokens.
//
// Normalization: lowercase; letters and digits are kept; apostrophes
// and hyphens are kept only when they sit inside a token ("don't",
// "covid-19"); everything else splits tokens. Stopwords are NOT
// removed — every normalized token counts.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits text into normalized tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := cleanToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// CountWords builds a word-frequency table across all given texts.
func (t *Tokenizer) CountWords(texts []string) map[string]int64 {
	freq := make(map[string]int64)
	for _, text := range texts {
		t.Count(text, freq)
	}
	return freq
}

// Count tokenizes one text and accumulates into an existing table,
// letting callers stream documents without holding them all.
func (t *Tokenizer) Count(text string, freq map[string]int64) {
	for _, word := range t.Tokenize(text) {
		freq[word]++
	}
}

// cleanToken strips leading/trailing apostrophes and hyphens so only
// internal ones survive, and normalizes consecutive runs.
func cleanToken(token string) string {
	token = strings.Trim(token, "-'")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	for strings.Contains(token, "''") {
		token = strings.ReplaceAll(token, "''", "'")
	}
	return token
}
