package wordcloud

import (
	"autorecruiter/internal/jobs"
	"autorecruiter/pkg/textutil"
	"sort"
	"strings"
	"unicode"
)

// DescriptionText concatenates the sanitized descriptions of every listing in
// the collection, in presentation order.
func DescriptionText(collection jobs.Collection) string {
	parts := make([]string, 0, len(collection))
	for _, listing := range collection.Sorted() {
		if listing.Description == nil {
			continue
		}
		cleaned := textutil.Sanitize(*listing.Description)
		if cleaned == "" {
			continue
		}
		parts = append(parts, cleaned)
	}
	return strings.Join(parts, " ")
}

type WordCount struct {
	Word  string
	Count int
}

const minWordLength = 3

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		about above after again against all also and any are because been before being
		below between both but can could did does doing down during each etc few for from
		further had has have having her here hers herself him himself his how including
		into its itself just least like may more most must not now off once only other
		our ours ourselves out over own per same she should some such than that the their
		theirs them themselves then there these they this those through too under until
		upon very via was well were what when where which while who whom why will with
		within without would you your yours yourself yourselves
		job jobs work working position role team company candidate candidates apply
		applicants required requirements preferred ability able year years experience
		new one two using use
	`) {
		stopWords[w] = struct{}{}
	}
}

// Frequencies counts the words of text case-insensitively, ignoring stop words
// and words shorter than three letters. The result is ordered by count, then word.
func Frequencies(text string) []WordCount {
	counts := map[string]int{}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for _, word := range words {
		word = strings.Trim(word, "'")
		word = strings.TrimSuffix(word, "'s")
		if len([]rune(word)) < minWordLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		counts[word]++
	}

	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}
