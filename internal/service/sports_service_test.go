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
)

func newSportsFixture(t *testing.T, handler http.HandlerFunc) *SportsService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSportsService(config.SportsDBConfig{BaseURL: srv.URL, APIKey: "3"})
}

func TestSearchMapsEvents(t *testing.T) {
	svc := newSportsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "searchevents.php") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("e"); got != "nba finals" {
			t.Errorf("query = %q, want %q", got, "nba finals")
		}
		w.Write([]byte(`{"event":[{"idEvent":"401","strEvent":"NBA Finals Game 7","dateEvent":"2026-06-19","strLeague":"NBA","strSport":"Basketball"}]}`))
	})

	results, err := svc.Search(context.Background(), "nba finals")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.ID != "401" || r.Title != "NBA Finals Game 7" || r.Date != "2026-06-19" {
		t.Errorf("unexpected result %+v", r)
	}
	if r.Category != "sports" || r.Source != "thesportsdb" {
		t.Errorf("category/source = %q/%q", r.Category, r.Source)
	}
	if r.Metadata["league"] != "NBA" {
		t.Errorf("league metadata = %q", r.Metadata["league"])
	}
}

func TestSearchHandlesLookupShapedEnvelope(t *testing.T) {
	svc := newSportsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{"idEvent":"7","strEvent":"FA Cup Final"}]}`))
	})

	results, err := svc.Search(context.Background(), "fa cup")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "7" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestEventFactsDerivesOutcome(t *testing.T) {
	svc := newSportsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "lookupevent.php") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"events":[{
			"idEvent":"401",
			"strEvent":"Lakers vs Celtics",
			"strHomeTeam":"Lakers",
			"strAwayTeam":"Celtics",
			"intHomeScore":"110",
			"intAwayScore":"98",
			"strVenue":"Crypto.com Arena",
			"strLeague":"NBA"
		}]}`))
	})

	title, facts, err := svc.EventFacts(context.Background(), "401")
	if err != nil {
		t.Fatalf("EventFacts: %v", err)
	}
	if title != "Lakers vs Celtics" {
		t.Errorf("title = %q", title)
	}

	want := map[string]string{
		"winner":       "Lakers",
		"winning team": "Lakers",
		"loser":        "Celtics",
		"final score":  "110-98",
		"score":        "110-98",
		"margin":       "12",
		"total points": "208",
		"venue":        "Crypto.com Arena",
		"home team":    "Lakers",
		"away team":    "Celtics",
	}
	for key, value := range want {
		if facts[key] != value {
			t.Errorf("facts[%q] = %q, want %q", key, facts[key], value)
		}
	}
}

func TestEventFactsDraw(t *testing.T) {
	svc := newSportsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{"idEvent":"9","strEvent":"Derby","strHomeTeam":"A","strAwayTeam":"B","intHomeScore":"2","intAwayScore":"2"}]}`))
	})

	_, facts, err := svc.EventFacts(context.Background(), "9")
	if err != nil {
		t.Fatalf("EventFacts: %v", err)
	}
	if facts["winner"] != "Draw" {
		t.Errorf("winner = %q, want Draw", facts["winner"])
	}
	if _, ok := facts["loser"]; ok {
		t.Error("draw must not produce a loser fact")
	}
	if facts["margin"] != "0" {
		t.Errorf("margin = %q", facts["margin"])
	}
}

func TestEventFactsSkipsUnplayedScores(t *testing.T) {
	svc := newSportsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{"idEvent":"9","strEvent":"Future Game","strHomeTeam":"A","strAwayTeam":"B","intHomeScore":"","intAwayScore":""}]}`))
	})

	_, facts, err := svc.EventFacts(context.Background(), "9")
	if err != nil {
		t.Fatalf("EventFacts: %v", err)
	}
	for _, key := range []string{"winner", "final score", "margin", "total points", "home score"} {
		if _, ok := facts[key]; ok {
			t.Errorf("unplayed event must not produce %q fact", key)
		}
	}
	if facts["home team"] != "A" {
		t.Errorf("home team = %q", facts["home team"])
	}
}

func TestEventFactsNotFound(t *testing.T) {
	svc := newSportsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":null}`))
	})

	_, _, err := svc.EventFacts(context.Background(), "nope")
	if !errors.Is(err, util.ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}
