package validation

import (
	"math"
	"testing"
)

func TestBuildResultEmpty(t *testing.T) {
	r := BuildResult("Event", "Test", nil)
	if r.OverallConfidence != 0 {
		t.Fatalf("empty matches must yield 0 overall confidence, got %v", r.OverallConfidence)
	}
	if len(r.UnmatchedQuestions) != 0 {
		t.Fatalf("empty matches must yield no unmatched ids, got %v", r.UnmatchedQuestions)
	}
}

func TestBuildResultMeanAndUnmatched(t *testing.T) {
	matches := []MatchedAnswer{
		{QuestionID: "q1", Confidence: 1.0},
		{QuestionID: "q2", Confidence: 0.5},
		{QuestionID: "q3", Confidence: 0},
	}
	r := BuildResult("Event", "Test", matches)

	want := (1.0 + 0.5 + 0) / 3
	if math.Abs(r.OverallConfidence-want) > 1e-9 {
		t.Fatalf("overall confidence = %v, want %v", r.OverallConfidence, want)
	}
	if len(r.UnmatchedQuestions) != 1 || r.UnmatchedQuestions[0] != "q3" {
		t.Fatalf("unmatched = %v, want [q3]", r.UnmatchedQuestions)
	}
}

func TestBuildResultPreservesOrder(t *testing.T) {
	matches := []MatchedAnswer{
		{QuestionID: "b", Confidence: 0.2},
		{QuestionID: "a", Confidence: 0.3},
	}
	r := BuildResult("Event", "Test", matches)
	if r.Matches[0].QuestionID != "b" || r.Matches[1].QuestionID != "a" {
		t.Fatalf("matches must keep input order, got %v", r.Matches)
	}
}
