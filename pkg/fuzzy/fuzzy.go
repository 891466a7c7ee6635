// Package fuzzy scores approximate string similarity on a 0-100 scale.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Match is the best candidate found for a query
type Match struct {
	Value string
	Score int
}

// Matcher picks the candidate most similar to query.
type Matcher interface {
	BestMatch(query string, candidates []string) (Match, bool)
}

// WeightedMatcher scores candidates with WRatio.
type WeightedMatcher struct{}

// NewWeightedMatcher creates a matcher using the weighted ratio scorer
func NewWeightedMatcher() *WeightedMatcher {
	return &WeightedMatcher{}
}

// BestMatch returns the highest scoring candidate. Ties keep the earlier candidate.
// It reports false when there are no candidates.
func (m *WeightedMatcher) BestMatch(query string, candidates []string) (Match, bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}

	best := Match{Score: -1}
	for _, c := range candidates {
		score := WRatio(query, c)
		if score > best.Score {
			best = Match{Value: c, Score: score}
		}
	}
	return best, true
}

// Ratio is the normalized edit similarity of the two processed strings.
func Ratio(a, b string) int {
	a, b = process(a), process(b)
	if a == "" || b == "" {
		return 0
	}
	return similarity(a, b)
}

// PartialRatio scores the shorter string against the best aligned window of the
// longer one.
func PartialRatio(a, b string) int {
	a, b = process(a), process(b)
	if a == "" || b == "" {
		return 0
	}
	return partialSimilarity(a, b)
}

// TokenSortRatio compares the strings after sorting their words.
func TokenSortRatio(a, b string) int {
	a, b = process(a), process(b)
	if a == "" || b == "" {
		return 0
	}
	return similarity(sortedTokens(a), sortedTokens(b))
}

// TokenSetRatio compares the shared words of both strings with each side's
// remainder, which makes subset names score highly.
func TokenSetRatio(a, b string) int {
	a, b = process(a), process(b)
	if a == "" || b == "" {
		return 0
	}
	inter, restA, restB := tokenSets(a, b)
	return maxInt(
		similarity(inter, joinNonEmpty(inter, restA)),
		similarity(inter, joinNonEmpty(inter, restB)),
		similarity(joinNonEmpty(inter, restA), joinNonEmpty(inter, restB)),
	)
}

// WRatio combines the plain, partial and token based ratios, weighting partial
// matches down as the length difference between the strings grows.
func WRatio(a, b string) int {
	pa, pb := process(a), process(b)
	if pa == "" || pb == "" {
		return 0
	}

	const unbaseScale = 0.95

	base := float64(similarity(pa, pb))
	lenA, lenB := float64(len([]rune(pa))), float64(len([]rune(pb)))
	lenRatio := math.Max(lenA, lenB) / math.Min(lenA, lenB)

	if lenRatio < 1.5 {
		tokenSort := float64(similarity(sortedTokens(pa), sortedTokens(pb))) * unbaseScale
		tokenSet := float64(TokenSetRatio(pa, pb)) * unbaseScale
		return int(math.Round(math.Max(base, math.Max(tokenSort, tokenSet))))
	}

	partialScale := 0.9
	if lenRatio >= 8 {
		partialScale = 0.6
	}

	partial := float64(partialSimilarity(pa, pb)) * partialScale
	partialSort := float64(partialSimilarity(sortedTokens(pa), sortedTokens(pb))) * unbaseScale * partialScale
	partialSet := float64(partialTokenSet(pa, pb)) * unbaseScale * partialScale

	return int(math.Round(math.Max(base, math.Max(partial, math.Max(partialSort, partialSet)))))
}

func similarity(a, b string) int {
	if a == b {
		return 100
	}
	return int(math.Round(strutil.Similarity(a, b, metrics.NewLevenshtein()) * 100))
}

func partialSimilarity(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == len(long) {
		return similarity(a, b)
	}

	best := 0
	window := len(short)
	for start := 0; start+window <= len(long); start++ {
		score := similarity(string(short), string(long[start:start+window]))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// partialTokenSet is 100 whenever the strings share a word, else the partial
// ratio of the sorted remainders.
func partialTokenSet(a, b string) int {
	inter, restA, restB := tokenSets(a, b)
	if inter != "" {
		return 100
	}
	return partialSimilarity(restA, restB)
}

// process lowercases, replaces non alphanumerics with spaces and collapses runs.
func process(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func sortedTokens(s string) string {
	words := strings.Fields(s)
	sort.Strings(words)
	return strings.Join(words, " ")
}

func tokenSets(a, b string) (inter, restA, restB string) {
	setA := wordSet(a)
	setB := wordSet(b)

	var common, onlyA, onlyB []string
	for w := range setA {
		if _, ok := setB[w]; ok {
			common = append(common, w)
		} else {
			onlyA = append(onlyA, w)
		}
	}
	for w := range setB {
		if _, ok := setA[w]; !ok {
			onlyB = append(onlyB, w)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	return strings.Join(common, " "), strings.Join(onlyA, " "), strings.Join(onlyB, " ")
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

func maxInt(values ...int) int {
	m := 0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
