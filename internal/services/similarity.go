package services

import "strings"

// Scoring weights for the fuzzy matcher. Character-level similarity
// dominates the combined score, and song titles outweigh artist names
// in the field-weighted score because voters misspell artists far more
// often than titles.
const (
	charWeight  = 0.7
	tokenWeight = 0.3

	artistWeight = 0.4
	titleWeight  = 0.6
)

// charSimilarity is a Levenshtein ratio in [0, 1]. Spacing variants of
// the same words ("winkyd" vs "winky d") are compared with spaces
// stripped as well, and the better of the two ratios wins.
func charSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	direct := levenshteinRatio(a, b)

	strippedA := strings.ReplaceAll(a, " ", "")
	strippedB := strings.ReplaceAll(b, " ", "")
	if strippedA == a && strippedB == b {
		return direct
	}

	stripped := levenshteinRatio(strippedA, strippedB)
	if stripped > direct {
		return stripped
	}
	return direct
}

func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}

	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// tokenOverlap is the Jaccard index over whitespace-split tokens.
func tokenOverlap(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	intersection := 0
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			intersection++
		}
	}

	union := len(tokensA) + len(tokensB) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set
}

// combinedSimilarity blends character and token similarity for one field.
func combinedSimilarity(a, b string) float64 {
	return charWeight*charSimilarity(a, b) + tokenWeight*tokenOverlap(a, b)
}

// weightedScore compares an (artist, title) pair against a candidate and
// returns a single confidence in [0, 1]. Inputs are expected to already
// be normalized.
//
// Three adjustments guard against the weighted average dragging down
// scores that a human would call obvious matches:
//   - when both fields share most of their tokens, the plain average of
//     the two field scores is used if it is higher
//   - a near-exact artist with a strong title is floored at 0.95
//   - a near-exact title with a plausible artist is floored at 0.90
func weightedScore(artistA, titleA, artistB, titleB string) float64 {
	artistSim := combinedSimilarity(artistA, artistB)
	titleSim := combinedSimilarity(titleA, titleB)

	score := artistWeight*artistSim + titleWeight*titleSim

	if tokenOverlap(artistA, artistB) >= 0.6 && tokenOverlap(titleA, titleB) >= 0.6 {
		if avg := (artistSim + titleSim) / 2; avg > score {
			score = avg
		}
	}

	if artistSim >= 0.95 && titleSim >= 0.85 && score < 0.95 {
		score = 0.95
	}

	if titleSim >= 0.95 && artistSim >= 0.75 && score < 0.90 {
		score = 0.90
	}

	return score
}
