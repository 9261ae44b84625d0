package ingest

import (
	"reflect"
	"testing"
)

func TestCountWordsCaseFoldingAndPunctuation(t *testing.T) {
	tok := NewTokenizer()

	freq := tok.CountWords([]string{"The cat sat. The CAT ran!"})

	want := map[string]int64{"the": 2, "cat": 2, "sat": 1, "ran": 1}
	if !reflect.DeepEqual(freq, want) {
		t.Errorf("CountWords = %v, want %v", freq, want)
	}
}

func TestTokenizeKeepsStopwords(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("the quick and the dead")
	counts := map[string]int{}
	for _, w := range tokens {
		counts[w]++
	}

	// No stopword removal: "the" and "and" must survive.
	if counts["the"] != 2 || counts["and"] != 1 {
		t.Errorf("stopwords were removed: %v", tokens)
	}
}

func TestTokenizeInternalApostrophesAndHyphens(t *testing.T) {
	tok := NewTokenizer()

	cases := []struct {
		text string
		want []string
	}{
		{"don't stop", []string{"don't", "stop"}},
		{"covid-19 outbreak", []string{"covid-19", "outbreak"}},
		{"'quoted' --dashed--", []string{"quoted", "dashed"}},
		{"rock 'n' roll", []string{"rock", "n", "roll"}},
		{"a--b", []string{"a-b"}},
	}

	for _, c := range cases {
		got := tok.Tokenize(c.text)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestTokenizeKeepsDigits(t *testing.T) {
	tok := NewTokenizer()

	got := tok.Tokenize("in 2015 there were 7 days")
	want := []string{"in", "2015", "there", "were", "7", "days"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeDiscardsEmptyTokens(t *testing.T) {
	tok := NewTokenizer()

	if got := tok.Tokenize("!!! -- '' ..."); len(got) != 0 {
		t.Errorf("expected no tokens, got %v", got)
	}
}

func TestCountAccumulatesAcrossTexts(t *testing.T) {
	tok := NewTokenizer()

	freq := make(map[string]int64)
	tok.Count("alpha beta", freq)
	tok.Count("beta gamma", freq)

	if freq["beta"] != 2 || freq["alpha"] != 1 || freq["gamma"] != 1 {
		t.Errorf("accumulated counts wrong: %v", freq)
	}
}
