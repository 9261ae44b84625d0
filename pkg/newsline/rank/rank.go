package rank

import "sort"

// Entry is one (key, count) pair in a ranked result.
type Entry struct {
	Key   string
	Count int64
}

// SortEntries orders entries by count descending, key ascending.
// The key tiebreak makes result order reproducible when counts collide.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
}

// CutWithTies returns the first n items of an already-sorted slice plus
// every following item whose rank metric equals the nth item's, so the
// result may be longer than n. sameRank reports whether two items tie.
// If fewer than n items exist, all of them are returned.
func CutWithTies[T any](sorted []T, n int, sameRank func(a, b T) bool) []T {
	if n <= 0 {
		return nil
	}
	if len(sorted) <= n {
		return sorted
	}

	cut := n
	boundary := sorted[n-1]
	for cut < len(sorted) && sameRank(sorted[cut], boundary) {
		cut++
	}
	return sorted[:cut]
}

// TopEntries sorts entries and applies the top-n-with-ties rule.
// This one routine backs every ranked query so tie handling cannot
// drift between them.
func TopEntries(entries []Entry, n int) []Entry {
	SortEntries(entries)
	return CutWithTies(entries, n, func(a, b Entry) bool {
		return a.Count == b.Count
	})
}
