package validation

import "testing"

var sampleFacts = map[string]string{
	"winner":       "Kansas City Chiefs",
	"loser":        "San Francisco 49ers",
	"final score":  "25-22",
	"venue":        "Allegiant Stadium",
	"margin":       "3",
	"total points": "47",
}

func TestKeywordMatchIsInstant(t *testing.T) {
	th := DefaultThresholds()
	q := QuestionInput{ID: "q1", Type: TypeOpen, Text: "Who won the Super Bowl?"}
	m := th.MatchQuestionToFacts(q, sampleFacts)
	if m.SuggestedAnswer != "Kansas City Chiefs" {
		t.Fatalf("want winner fact, got %+v", m)
	}
	if m.Confidence != 1.0 {
		t.Fatalf("keyword match should be full confidence, got %v", m.Confidence)
	}
}

func TestKeywordMatchRequiresFactPresence(t *testing.T) {
	th := DefaultThresholds()
	q := QuestionInput{ID: "q1", Type: TypeOpen, Text: "Who won the game?"}
	m := th.MatchQuestionToFacts(q, map[string]string{"venue": "Somewhere"})
	if m.Confidence != 0 || m.SuggestedAnswer != "" {
		t.Fatalf("missing fact key must not match, got %+v", m)
	}
	if m.Source == "" {
		t.Fatalf("unmatched questions still carry a provenance message")
	}
}

func TestNoMatchYieldsZeroConfidence(t *testing.T) {
	th := DefaultThresholds()
	q := QuestionInput{ID: "q9", Type: TypeOpen, Text: "What color were the referee flags?"}
	m := th.MatchQuestionToFacts(q, sampleFacts)
	if m.Confidence != 0 || m.SuggestedAnswer != "" {
		t.Fatalf("expected no match, got %+v", m)
	}
}

func TestMultipleChoiceReconciliation(t *testing.T) {
	th := DefaultThresholds()
	q := QuestionInput{
		ID:      "q2",
		Type:    TypeMultiple,
		Text:    "Who won the championship?",
		Options: []string{"Kansas City Chiefs", "San Francisco 49ers"},
	}
	m := th.MatchQuestionToFacts(q, sampleFacts)
	if m.SuggestedAnswer != "Kansas City Chiefs" {
		t.Fatalf("want canonical option text, got %+v", m)
	}
	if m.Confidence != 1.0 {
		t.Fatalf("exact option match keeps fact confidence, got %v", m.Confidence)
	}
}

func TestMultipleChoiceMismatchPenalty(t *testing.T) {
	th := DefaultThresholds()
	q := QuestionInput{
		ID:      "q3",
		Type:    TypeMultiple,
		Text:    "Who won the championship?",
		Options: []string{"Philadelphia Eagles", "Buffalo Bills"},
	}
	m := th.MatchQuestionToFacts(q, sampleFacts)
	if m.SuggestedAnswer != "Kansas City Chiefs" {
		t.Fatalf("unmatched fact value should still be suggested, got %+v", m)
	}
	want := 1.0 * th.MismatchPenalty
	if m.Confidence != want {
		t.Fatalf("want penalized confidence %v, got %v", want, m.Confidence)
	}
}

func TestWikiFactsDirectScoring(t *testing.T) {
	th := DefaultThresholds()
	facts := []Fact{
		{Category: "Best Picture", Value: "Oppenheimer", Confidence: 0.85},
		{Category: "Best Director", Value: "Christopher Nolan", Confidence: 0.70},
	}
	q := QuestionInput{ID: "q1", Type: TypeOpen, Text: "Best Picture"}
	m := th.MatchQuestionToWikiFacts(q, facts)
	if m.SuggestedAnswer != "Oppenheimer" {
		t.Fatalf("want Best Picture fact, got %+v", m)
	}
	// Extraction trust caps the final confidence.
	if m.Confidence != 0.85 {
		t.Fatalf("want confidence capped at 0.85, got %v", m.Confidence)
	}
}

func TestWikiFactsBelowThreshold(t *testing.T) {
	th := DefaultThresholds()
	facts := []Fact{{Category: "Ceremony date", Value: "March 10", Confidence: 0.70}}
	q := QuestionInput{ID: "q1", Type: TypeOpen, Text: "zzz"}
	m := th.MatchQuestionToWikiFacts(q, facts)
	if m.Confidence != 0 {
		t.Fatalf("below-threshold category should not match, got %+v", m)
	}
}
