// Package search matches visible entry names for the in-listing jump prompt.
package search

import (
	"github.com/sahilm/fuzzy"
)

// Match is one matching name: its position in the input slice and the rune
// positions the query hit, for highlighting.
type Match struct {
	Index          int
	MatchedIndexes []int
}

// MatchNames fuzzy-matches query against names, best match first. An empty
// query matches nothing, so the caller can treat "nothing typed yet" and
// "no match" the same way.
func MatchNames(query string, names []string) []Match {
	if query == "" {
		return nil
	}

	var results []Match
	for _, m := range fuzzy.Find(query, names) {
		results = append(results, Match{
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return results
}
