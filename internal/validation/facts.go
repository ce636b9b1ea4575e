package validation

import (
	"sort"
	"strings"
)

// factKeywords maps canonical fact keys to trigger phrases. If a normalized
// question contains a trigger and the fact exists, it is an instant match.
var factKeywords = map[string][]string{
	"winner":       {"who won", "winner", "winning team", "which team won", "who will win"},
	"loser":        {"who lost", "loser", "losing team", "which team lost"},
	"final score":  {"final score", "what was the score", "end score", "full time score"},
	"home score":   {"home score", "home team score"},
	"away score":   {"away score", "away team score"},
	"home team":    {"home team", "who is home", "hosting team"},
	"away team":    {"away team", "visiting team", "who is away"},
	"venue":        {"venue", "where", "stadium", "arena", "location"},
	"margin":       {"margin", "by how many", "point difference", "goal difference", "margin of victory"},
	"total points": {"total points", "combined score", "total score", "points scored in total"},
	"league":       {"league", "competition", "tournament"},
	"season":       {"season", "which year"},
	"sport":        {"sport", "what game"},
}

// MatchQuestionToFacts maps one question onto a sports fact table. Keyword
// hits win at full confidence; otherwise the best fuzzy fact key above the
// sports threshold is taken at a discount.
func (t Thresholds) MatchQuestionToFacts(q QuestionInput, facts map[string]string) MatchedAnswer {
	m := MatchedAnswer{QuestionID: q.ID, QuestionText: q.Text}

	normQuestion := Normalize(q.Text)
	for _, key := range sortedKeys(factKeywords) {
		value, ok := facts[key]
		if !ok {
			continue
		}
		for _, trigger := range factKeywords[key] {
			if containsPhrase(normQuestion, trigger) {
				return t.reconcile(q, m, value, 1.0, "Matched fact: "+key)
			}
		}
	}

	bestKey, bestScore := "", 0.0
	for _, key := range sortedKeys(facts) {
		if score := t.FuzzyMatch(q.Text, key); score > bestScore {
			bestKey, bestScore = key, score
		}
	}
	if bestScore >= t.SportsMatchThreshold {
		return t.reconcile(q, m, facts[bestKey], bestScore*t.SportsFuzzyScale, "Matched fact: "+bestKey)
	}

	m.Source = "No matching data found for this question"
	return m
}

// MatchQuestionToWikiFacts maps one question onto the pooled Wikipedia fact
// list by scoring the question directly against each fact category. The
// extraction-level confidence (bold vs plain markup) caps the final score.
func (t Thresholds) MatchQuestionToWikiFacts(q QuestionInput, facts []Fact) MatchedAnswer {
	m := MatchedAnswer{QuestionID: q.ID, QuestionText: q.Text}

	var best *Fact
	bestScore := 0.0
	for i := range facts {
		if score := t.FuzzyMatch(q.Text, facts[i].Category); score > bestScore {
			best, bestScore = &facts[i], score
		}
	}
	if best == nil || bestScore < t.WikipediaMatchThreshold {
		m.Source = "No matching data found for this question"
		return m
	}

	conf := bestScore
	if best.Confidence < conf {
		conf = best.Confidence
	}
	return t.reconcile(q, m, best.Value, conf, "Wikipedia: "+best.Category)
}

// reconcile folds a selected fact value into the final match, validating
// multiple-choice answers against the option list.
func (t Thresholds) reconcile(q QuestionInput, m MatchedAnswer, value string, conf float64, source string) MatchedAnswer {
	m.Source = source
	if q.Type != TypeMultiple {
		m.SuggestedAnswer = value
		m.Confidence = conf
		return m
	}

	opt := t.MatchToOptions(value, q.Options)
	if opt.Confidence > 0 {
		m.SuggestedAnswer = opt.BestMatch
		m.Confidence = conf
		if opt.Confidence < conf {
			m.Confidence = opt.Confidence
		}
		m.Alternatives = []string{value}
		return m
	}

	// The fact fits no option; keep it as a suggestion at reduced trust.
	m.SuggestedAnswer = value
	m.Confidence = conf * t.MismatchPenalty
	return m
}

// sortedKeys keeps map iteration deterministic so concurrent and sequential
// matching produce identical results.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// containsPhrase reports whether the normalized text contains the trigger
// phrase as a word-aligned substring.
func containsPhrase(normText, phrase string) bool {
	idx := strings.Index(normText, phrase)
	if idx < 0 {
		return false
	}
	if idx > 0 && normText[idx-1] != ' ' {
		return false
	}
	end := idx + len(phrase)
	if end < len(normText) && normText[end] != ' ' {
		return false
	}
	return true
}
