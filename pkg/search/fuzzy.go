package search

import (
	"math"
	"sort"

	"github.com/hazyhaar/tanzil-search/pkg/quran"
)

// Candidate is one verse with its composite dissimilarity score. Lower is
// better; 0 means an exact (substring) match in some configured field.
type Candidate struct {
	Verse *quran.Verse
	Score float64
}

// locationPenalty scales how much a late match position worsens the score
// when a profile is location sensitive.
const locationPenalty = 0.1

// Search scores every verse of the collection against the normalized query
// text using the profile's weighted fields and returns the candidates that
// clear the threshold, best first. Ties are broken by ascending verse
// position. Empty text, or text shorter than the profile's minimum match
// length, yields no candidates: an empty pattern would trivially match under
// the distance metric.
func Search(verses []quran.Verse, text string, profile Profile) []Candidate {
	pattern := []rune(text)
	if len(pattern) == 0 || len(pattern) < profile.MinMatchLength {
		return nil
	}

	candidates := make([]Candidate, 0, 8)
	for i := range verses {
		v := &verses[i]
		score, ok := compositeScore(pattern, v, profile)
		if !ok || score > profile.Threshold {
			continue
		}
		candidates = append(candidates, Candidate{Verse: v, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score < candidates[j].Score
		}
		return candidates[i].Verse.Position < candidates[j].Verse.Position
	})
	return candidates
}

// compositeScore combines per-field scores into one value per verse: each
// field score is raised to the power of its weight (scores live in [0,1], so
// a higher weight pulls a good match closer to 0) and the best adjusted field
// wins. Fields with no text are skipped; a verse with no usable field reports
// ok=false.
func compositeScore(pattern []rune, v *quran.Verse, profile Profile) (float64, bool) {
	best := math.Inf(1)
	usable := false
	for _, fw := range profile.Fields {
		fieldText := Normalize(v.Field(fw.Field)).Text
		if fieldText == "" {
			continue
		}
		usable = true

		s := fieldScore(pattern, []rune(fieldText), profile.LocationSensitive)
		if adj := math.Pow(s, fw.Weight); adj < best {
			best = adj
		}
	}
	return best, usable
}

// fieldScore is the normalized best-substring edit distance between the
// pattern and the field text: the minimal Levenshtein distance from the
// pattern to any substring of the text, divided by the pattern length and
// clamped to [0,1].
func fieldScore(pattern, text []rune, locationSensitive bool) float64 {
	dist, end := infixDistance(pattern, text)
	score := float64(dist) / float64(len(pattern))
	if score > 1 {
		score = 1
	}
	if locationSensitive && len(text) > 0 {
		start := end - len(pattern)
		if start < 0 {
			start = 0
		}
		score += float64(start) / float64(len(text)) * locationPenalty
		if score > 1 {
			score = 1
		}
	}
	return score
}

// infixDistance runs the Sellers variant of the edit-distance DP: deletions
// before and after the matched substring of text are free, so the result is
// the distance between pattern and its best-matching infix. Returns the
// distance and the end offset of the best match in text. O(len(pattern)) in
// memory, O(len(pattern)*len(text)) in time.
func infixDistance(pattern, text []rune) (int, int) {
	m := len(pattern)
	if len(text) == 0 {
		return m, 0
	}

	prev := make([]int, len(text)+1)
	cur := make([]int, len(text)+1)
	// Row 0 is all zeros: a match may start anywhere in text.

	for i := 1; i <= m; i++ {
		cur[0] = i
		for j := 1; j <= len(text); j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	best, at := prev[0], 0
	for j := 1; j <= len(text); j++ {
		if prev[j] < best {
			best, at = prev[j], j
		}
	}
	return best, at
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
