package jobs

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// SearchResult is the collection found for a single (board, title) search.
type SearchResult struct {
	Board      string
	Title      string
	Collection Collection
}

// Results keeps search results in the order the searches were run.
type Results []SearchResult

func (r Results) Total() int {
	total := 0
	for _, result := range r {
		total += len(result.Collection)
	}
	return total
}

// SearchMatch is the Jaro-Winkler similarity between the searched title and the
// title of a listing, 0 when the listing has no title.
func SearchMatch(searched string, title *string) float64 {
	if title == nil {
		return 0
	}
	return matchr.JaroWinkler(
		strings.ToLower(strings.TrimSpace(searched)),
		strings.ToLower(strings.TrimSpace(*title)),
		false,
	)
}

// MergeAll flattens every result into one collection, tagging each listing
// with the board and title it was found under. When the same job id appears
// in several results, the one merged last (in Results order) wins.
func MergeAll(results Results) Collection {
	merged := NewCollection()
	for _, result := range results {
		for _, listing := range result.Collection.Sorted() {
			listing.JobBoard = result.Board
			listing.JobSearch = result.Title
			listing.SearchMatch = SearchMatch(result.Title, listing.Title)
			merged.Put(listing)
		}
	}
	return merged
}
