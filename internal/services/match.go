package services

import (
	"shipping-cost-service/internal/domain"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MatchPolicy bounds which geocoding candidates are accepted.
type MatchPolicy struct {
	// ToleranceKm is the maximum distance from the verification point.
	ToleranceKm float64
	// MinSimilarity is used when no verification point is available.
	MinSimilarity float64
}

func DefaultMatchPolicy() MatchPolicy {
	return MatchPolicy{ToleranceKm: 10, MinSimilarity: 0.75}
}

// foldText lowercases s, strips diacritics and turns punctuation into spaces.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	folded = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, folded)

	return strings.Join(strings.Fields(folded), " ")
}

// TextSimilarity scores how well candidate covers input, in [0,1]. Each input
// token is matched to its closest candidate token by edit distance and the
// per-token scores are averaged.
func TextSimilarity(input, candidate string) float64 {
	in := strings.Fields(foldText(input))
	cand := strings.Fields(foldText(candidate))
	if len(in) == 0 || len(cand) == 0 {
		return 0
	}

	var total float64
	for _, a := range in {
		best := 0.0
		for _, b := range cand {
			if s := tokenSimilarity(a, b); s > best {
				best = s
				if best == 1 {
					break
				}
			}
		}
		total += best
	}

	return total / float64(len(in))
}

func tokenSimilarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// ClosestWithin returns the candidate nearest to point, provided it lies
// within toleranceKm.
func ClosestWithin(cands []domain.Candidate, point domain.Coordinates, toleranceKm float64) (domain.Candidate, float64, bool) {
	var (
		best  domain.Candidate
		bestD float64
		found bool
	)
	for _, c := range cands {
		d := c.Coordinates.DistanceKm(point)
		if d > toleranceKm {
			continue
		}
		if !found || d < bestD {
			best, bestD, found = c, d, true
		}
	}
	return best, bestD, found
}

// MostSimilar returns the candidate whose label best matches address,
// provided the score reaches minSimilarity.
func MostSimilar(cands []domain.Candidate, address string, minSimilarity float64) (domain.Candidate, float64, bool) {
	var (
		best      domain.Candidate
		bestScore float64
		found     bool
	)
	for _, c := range cands {
		s := TextSimilarity(address, c.FormattedAddress)
		if s < minSimilarity {
			continue
		}
		if !found || s > bestScore {
			best, bestScore, found = c, s, true
		}
	}
	return best, bestScore, found
}
