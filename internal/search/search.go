package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
)

// Match is one ranked result of a jump query
type Match struct {
	Index          int   // Index in the source slice
	Score          int   // Higher is better
	MatchedIndexes []int // Rune positions that matched
}

// titleIndex implements sahilm/fuzzy.Source over lowercased titles
type titleIndex struct {
	lower []string
}

func newTitleIndex(titles []string) *titleIndex {
	idx := &titleIndex{lower: make([]string, len(titles))}
	for i, t := range titles {
		idx.lower[i] = strings.ToLower(t)
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *titleIndex) String(i int) string { return idx.lower[i] }

// Len returns the number of titles (implements fuzzy.Source)
func (idx *titleIndex) Len() int { return len(idx.lower) }

// Rank returns the titles matching query, best first. Ties keep list order.
func Rank(query string, titles []string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(titles) == 0 {
		return nil
	}

	found := sfuzzy.FindFrom(query, newTitleIndex(titles))
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{
			Index:          m.Index,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return matches
}

// Best returns the index of the best match for query
func Best(query string, titles []string) (int, bool) {
	matches := Rank(query, titles)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Index, true
}

// Next returns the next title after from (before it when forward is false)
// that contains query as a fuzzy subsequence, wrapping around the list. The
// title at from itself is considered last.
func Next(query string, titles []string, from int, forward bool) (int, bool) {
	query = strings.TrimSpace(query)
	n := len(titles)
	if query == "" || n == 0 {
		return 0, false
	}

	step := 1
	if !forward {
		step = -1
	}
	for i := 1; i <= n; i++ {
		idx := ((from+step*i)%n + n) % n
		if fuzzy.MatchNormalizedFold(query, titles[idx]) {
			return idx, true
		}
	}
	return 0, false
}
