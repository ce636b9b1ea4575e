package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"predictthis_backend/internal/config"
	"predictthis_backend/internal/util"
	"predictthis_backend/internal/validation"
)

func defaultThresholds() validation.Thresholds {
	return validation.DefaultThresholds()
}

func TestValidateQuestionsFailsFastWithoutKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL}, defaultThresholds)
	_, err := svc.ValidateQuestions(context.Background(), "Super Bowl LX", []validation.QuestionInput{
		{ID: "q1", Type: validation.TypeOpen, Text: "Who won?"},
	})
	if !errors.Is(err, util.ErrAINotConfigured) {
		t.Fatalf("err = %v, want ErrAINotConfigured", err)
	}
	if called {
		t.Error("no upstream call must happen without an API key")
	}
}

func TestValidateQuestionsReconciliation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("anthropic-version header missing")
		}
		w.Write([]byte(`{"content":[{"type":"text","text":"Here is what I found: {\"eventTitle\":\"Super Bowl LX\",\"answers\":[{\"questionId\":\"q1\",\"answer\":\"chiefs\",\"confidence\":0.9},{\"questionId\":\"q2\",\"answer\":\"49\",\"confidence\":0.8},{\"questionId\":\"q4\",\"answer\":\"Someone Else\",\"confidence\":0.9}]}"}]}`))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "claude-sonnet-4-20250514", MaxTokens: 1024}, defaultThresholds)

	questions := []validation.QuestionInput{
		{ID: "q1", Type: validation.TypeMultiple, Text: "Who won?", Options: []string{"Chiefs", "Eagles"}},
		{ID: "q2", Type: validation.TypeOpen, Text: "Total points?"},
		{ID: "q3", Type: validation.TypeOpen, Text: "MVP?"},
		{ID: "q4", Type: validation.TypeMultiple, Text: "First to score?", Options: []string{"Chiefs", "Eagles"}},
	}
	result, err := svc.ValidateQuestions(context.Background(), "Super Bowl LX", questions)
	if err != nil {
		t.Fatalf("ValidateQuestions: %v", err)
	}

	if result.EventTitle != "Super Bowl LX" || result.Source != "Claude AI" {
		t.Errorf("title/source = %q/%q", result.EventTitle, result.Source)
	}
	if len(result.Matches) != len(questions) {
		t.Fatalf("got %d matches, want %d", len(result.Matches), len(questions))
	}
	for i, q := range questions {
		if result.Matches[i].QuestionID != q.ID {
			t.Fatalf("match %d is for %q, want %q", i, result.Matches[i].QuestionID, q.ID)
		}
	}

	// Case-insensitive option hit swaps in the canonical casing.
	if m := result.Matches[0]; m.SuggestedAnswer != "Chiefs" || m.Confidence != 0.9 {
		t.Errorf("q1 = %+v", m)
	}
	// Open answers pass through untouched.
	if m := result.Matches[1]; m.SuggestedAnswer != "49" || m.Confidence != 0.8 {
		t.Errorf("q2 = %+v", m)
	}
	// Missing answers surface as unmatched.
	if m := result.Matches[2]; m.Confidence != 0 || m.Source != "AI could not find this question" {
		t.Errorf("q3 = %+v", m)
	}
	// An answer fitting no option keeps its text but loses trust.
	if m := result.Matches[3]; m.SuggestedAnswer != "Someone Else" || m.Confidence != 0.5 {
		t.Errorf("q4 = %+v", m)
	}

	if len(result.UnmatchedQuestions) != 1 || result.UnmatchedQuestions[0] != "q3" {
		t.Errorf("unmatched = %v", result.UnmatchedQuestions)
	}
	wantOverall := (0.9 + 0.8 + 0 + 0.5) / 4
	if diff := result.OverallConfidence - wantOverall; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("overall = %v, want %v", result.OverallConfidence, wantOverall)
	}
}

func TestValidateQuestionsRejectsUnparseableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"text","text":"I could not find anything useful."}]}`))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key"}, defaultThresholds)
	_, err := svc.ValidateQuestions(context.Background(), "obscure event", []validation.QuestionInput{
		{ID: "q1", Type: validation.TypeOpen, Text: "Who won?"},
	})
	if !errors.Is(err, validation.ErrNoJSONFound) {
		t.Fatalf("err = %v, want ErrNoJSONFound", err)
	}
}

func TestValidateQuestionsSurfacesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"rate limited"}}`))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key"}, defaultThresholds)
	_, err := svc.ValidateQuestions(context.Background(), "event", []validation.QuestionInput{
		{ID: "q1", Type: validation.TypeOpen, Text: "Who won?"},
	})
	if err == nil {
		t.Fatal("expected error from rate-limited upstream")
	}
}
