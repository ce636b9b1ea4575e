package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"predictthis_backend/internal/config"
	"predictthis_backend/internal/util"
	"predictthis_backend/internal/validation"
)

func newValidationFixture(t *testing.T, sports, wiki http.HandlerFunc) *ValidationService {
	t.Helper()
	cfg := &config.Config{}
	if sports != nil {
		srv := httptest.NewServer(sports)
		t.Cleanup(srv.Close)
		cfg.SportsDB = config.SportsDBConfig{BaseURL: srv.URL, APIKey: "3"}
	}
	if wiki != nil {
		srv := httptest.NewServer(wiki)
		t.Cleanup(srv.Close)
		cfg.Wikipedia = config.WikipediaConfig{BaseURL: srv.URL}
	}
	return NewValidationService(cfg, nil)
}

func TestSearchStampsRequestedCategory(t *testing.T) {
	svc := newValidationFixture(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":{"search":[{"title":"98th Academy Awards","pageid":777}]}}`))
	})

	results, err := svc.Search(context.Background(), "awards", "academy awards")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Category != "awards" {
		t.Errorf("category = %q, want awards (adapter category overwritten)", results[0].Category)
	}
	if results[0].Source != "wikipedia" {
		t.Errorf("source = %q", results[0].Source)
	}
}

func TestValidateRejectsUnknownSource(t *testing.T) {
	svc := newValidationFixture(t, nil, nil)
	_, err := svc.Validate(context.Background(), "rumors", "1", nil, nil)
	if !errors.Is(err, util.ErrUnknownSource) {
		t.Fatalf("err = %v, want ErrUnknownSource", err)
	}
}

func TestValidateSportsAlignsMatchesWithQuestions(t *testing.T) {
	svc := newValidationFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{"idEvent":"401","strEvent":"Lakers vs Celtics","strHomeTeam":"Lakers","strAwayTeam":"Celtics","intHomeScore":"110","intAwayScore":"98","strVenue":"Crypto.com Arena"}]}`))
	}, nil)

	questions := []validation.QuestionInput{
		{ID: "q1", Type: validation.TypeMultiple, Text: "Who won the game?", Options: []string{"Lakers", "Celtics"}},
		{ID: "q2", Type: validation.TypeOpen, Text: "What was the final score?"},
		{ID: "q3", Type: validation.TypeOpen, Text: "Who was the referee?"},
	}
	result, err := svc.Validate(context.Background(), SourceSports, "401", nil, questions)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if result.EventTitle != "Lakers vs Celtics" || result.Source != "TheSportsDB" {
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

	if m := result.Matches[0]; m.SuggestedAnswer != "Lakers" || m.Confidence != 1.0 {
		t.Errorf("q1 = %+v", m)
	}
	if m := result.Matches[1]; m.SuggestedAnswer != "110-98" || m.Confidence != 1.0 {
		t.Errorf("q2 = %+v", m)
	}
	if m := result.Matches[2]; m.Confidence != 0 {
		t.Errorf("q3 = %+v, want unmatched", m)
	}
	if len(result.UnmatchedQuestions) != 1 || result.UnmatchedQuestions[0] != "q3" {
		t.Errorf("unmatched = %v", result.UnmatchedQuestions)
	}
}

func TestValidateSportsFailsWholeRunOnUpstreamError(t *testing.T) {
	svc := newValidationFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	_, err := svc.Validate(context.Background(), SourceSports, "401", nil, []validation.QuestionInput{
		{ID: "q1", Type: validation.TypeOpen, Text: "Who won?"},
	})
	if err == nil {
		t.Fatal("expected upstream failure to fail the run")
	}
}

func TestValidateWikipediaUsesPageTitleMetadata(t *testing.T) {
	var requestedPage string
	svc := newValidationFixture(t, nil, func(w http.ResponseWriter, r *http.Request) {
		requestedPage = r.URL.Query().Get("page")
		w.Write([]byte(`{"parse":{"title":"2026 FIFA World Cup final","text":{"*":"<table><tr><td>Champions</td><td><b>Netherlands</b></td></tr></table>"}}}`))
	})

	result, err := svc.Validate(context.Background(), SourceWikipedia, "12345",
		map[string]string{"pageTitle": "2026 FIFA World Cup final"},
		[]validation.QuestionInput{{ID: "q1", Type: validation.TypeOpen, Text: "Champions"}})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if requestedPage != "2026 FIFA World Cup final" {
		t.Errorf("requested page = %q", requestedPage)
	}
	if result.Source != "Wikipedia" {
		t.Errorf("source = %q", result.Source)
	}
	if m := result.Matches[0]; m.SuggestedAnswer != "Netherlands" || !strings.HasPrefix(m.Source, "Wikipedia: ") {
		t.Errorf("q1 = %+v", m)
	}
}

func TestValidateWikipediaEmptyPage(t *testing.T) {
	svc := newValidationFixture(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"parse":{"title":"Stub","text":{"*":""}}}`))
	})

	_, err := svc.Validate(context.Background(), SourceWikipedia, "Stub", nil, []validation.QuestionInput{
		{ID: "q1", Type: validation.TypeOpen, Text: "Who won?"},
	})
	if !errors.Is(err, util.ErrEmptyPage) {
		t.Fatalf("err = %v, want ErrEmptyPage", err)
	}
}

func TestUpdateThresholdsSwapsPolicy(t *testing.T) {
	svc := newValidationFixture(t, nil, nil)

	if got := svc.Thresholds().MinSimilarity; got != 0.4 {
		t.Fatalf("default MinSimilarity = %v", got)
	}
	svc.UpdateThresholds(config.MatchingConfig{MinSimilarity: 0.6})
	if got := svc.Thresholds().MinSimilarity; got != 0.6 {
		t.Errorf("MinSimilarity = %v, want 0.6", got)
	}
	// Unset fields keep their defaults.
	if got := svc.Thresholds().FuzzyCap; got != 0.85 {
		t.Errorf("FuzzyCap = %v, want 0.85", got)
	}
}
