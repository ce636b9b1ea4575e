package validation

import "strings"

// Thresholds are the tunable matching policy constants. Defaults mirror the
// values the product shipped with; they can be overridden from config.
type Thresholds struct {
	// FuzzyCap is the ceiling for non-exact option matches. Only exact or
	// containment matches earn full trust.
	FuzzyCap float64
	// MinSimilarity rejects fuzzy matches below this similarity.
	MinSimilarity float64
	// MismatchPenalty scales confidence when a fact value fits no option.
	MismatchPenalty float64
	// SportsMatchThreshold is the minimum fuzzy score for a sports fact key.
	SportsMatchThreshold float64
	// SportsFuzzyScale discounts fuzzy (non-keyword) sports matches.
	SportsFuzzyScale float64
	// WikipediaMatchThreshold is the minimum question-vs-category score.
	WikipediaMatchThreshold float64
	// AIMismatchCap bounds AI answers that fit none of the options.
	AIMismatchCap float64
}

// DefaultThresholds returns the shipped matching policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FuzzyCap:                0.85,
		MinSimilarity:           0.4,
		MismatchPenalty:         0.5,
		SportsMatchThreshold:    0.5,
		SportsFuzzyScale:        0.8,
		WikipediaMatchThreshold: 0.3,
		AIMismatchCap:           0.5,
	}
}

// Normalize lowercases, strips everything outside [a-z0-9\s] and trims.
// It is the canonical comparison key for the whole subsystem.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// levenshtein computes edit distance (insert, delete, substitute cost 1).
func levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	dp := make([]int, m+1)
	for j := 0; j <= m; j++ {
		dp[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := dp[0]
		dp[0] = i
		for j := 1; j <= m; j++ {
			tmp := dp[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			dp[j] = min3(dp[j]+1, dp[j-1]+1, prev+cost)
			prev = tmp
		}
	}
	return dp[m]
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

// similarity maps edit distance onto [0,1], 1 meaning identical.
func similarity(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// FuzzyMatch scores candidate against target on [0,1]. Equal normalized
// strings score 1.0, containment scores 0.9, anything below the similarity
// floor scores 0.
func (t Thresholds) FuzzyMatch(candidate, target string) float64 {
	nc := Normalize(candidate)
	nt := Normalize(target)
	if nc == nt {
		return 1.0
	}
	if nc == "" || nt == "" {
		return 0
	}
	if strings.Contains(nc, nt) || strings.Contains(nt, nc) {
		return 0.9
	}
	sim := similarity(nc, nt)
	if sim < t.MinSimilarity {
		return 0
	}
	return sim
}

// OptionMatch is the outcome of matching a candidate against an option list.
type OptionMatch struct {
	BestMatch  string
	Confidence float64
}

// MatchToOptions resolves a candidate value against a fixed option list.
// An exact normalized match returns the original-cased option at full
// confidence; fuzzy matches are capped below certainty.
func (t Thresholds) MatchToOptions(candidate string, options []string) OptionMatch {
	if len(options) == 0 {
		return OptionMatch{}
	}
	nc := Normalize(candidate)
	for _, opt := range options {
		if Normalize(opt) == nc {
			return OptionMatch{BestMatch: opt, Confidence: 1.0}
		}
	}

	best := OptionMatch{}
	for _, opt := range options {
		sim := similarity(nc, Normalize(opt))
		if sim >= t.MinSimilarity && sim > best.Confidence {
			best = OptionMatch{BestMatch: opt, Confidence: sim}
		}
	}
	if best.Confidence > t.FuzzyCap {
		best.Confidence = t.FuzzyCap
	}
	if best.Confidence == 0 {
		return OptionMatch{}
	}
	return best
}
