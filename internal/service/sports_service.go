package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"predictthis_backend/internal/config"
	"predictthis_backend/internal/util"
	"predictthis_backend/internal/validation"
	"predictthis_backend/pkg/logger"

	"go.uber.org/zap"
)

// SportsService adapts TheSportsDB into the core's event-search and fact
// representations.
type SportsService struct {
	cfg    config.SportsDBConfig
	client *http.Client
}

func NewSportsService(cfg config.SportsDBConfig) *SportsService {
	return &SportsService{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// sportsEvent mirrors TheSportsDB's event payload. All numeric fields come
// back as strings (or null), so everything stays a string until fact
// derivation.
type sportsEvent struct {
	ID        string `json:"idEvent"`
	Name      string `json:"strEvent"`
	Date      string `json:"dateEvent"`
	League    string `json:"strLeague"`
	Sport     string `json:"strSport"`
	HomeTeam  string `json:"strHomeTeam"`
	AwayTeam  string `json:"strAwayTeam"`
	HomeScore string `json:"intHomeScore"`
	AwayScore string `json:"intAwayScore"`
	Venue     string `json:"strVenue"`
	Season    string `json:"strSeason"`
}

// sportsEnvelope tolerates both response shapes: search uses "event",
// lookup uses "events".
type sportsEnvelope struct {
	Event  []sportsEvent `json:"event"`
	Events []sportsEvent `json:"events"`
}

func (e sportsEnvelope) all() []sportsEvent {
	if len(e.Event) > 0 {
		return e.Event
	}
	return e.Events
}

func (s *SportsService) get(ctx context.Context, endpoint string, params url.Values) (*sportsEnvelope, error) {
	u := fmt.Sprintf("%s/api/v1/json/%s/%s?%s", s.cfg.BaseURL, s.cfg.APIKey, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sports database request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sports database returned status %d", resp.StatusCode)
	}

	var envelope sportsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("sports database returned unexpected payload: %w", err)
	}
	return &envelope, nil
}

// Search looks up events by free-text query.
func (s *SportsService) Search(ctx context.Context, query string) ([]validation.EventSearchResult, error) {
	envelope, err := s.get(ctx, "searchevents.php", url.Values{"e": {query}})
	if err != nil {
		return nil, err
	}

	events := envelope.all()
	results := make([]validation.EventSearchResult, 0, len(events))
	for _, ev := range events {
		results = append(results, validation.EventSearchResult{
			ID:       ev.ID,
			Title:    ev.Name,
			Date:     ev.Date,
			Category: "sports",
			Source:   "thesportsdb",
			Metadata: map[string]string{
				"league": ev.League,
				"sport":  ev.Sport,
			},
		})
	}
	logger.Log.Debug("sports search completed", zap.String("query", query), zap.Int("results", len(results)))
	return results, nil
}

// EventFacts fetches one event and flattens it into the fact table the
// question matcher consumes. Missing source fields simply omit their keys.
func (s *SportsService) EventFacts(ctx context.Context, eventID string) (string, map[string]string, error) {
	envelope, err := s.get(ctx, "lookupevent.php", url.Values{"id": {eventID}})
	if err != nil {
		return "", nil, err
	}

	events := envelope.all()
	if len(events) == 0 {
		return "", nil, fmt.Errorf("%w: event %s", util.ErrEventNotFound, eventID)
	}
	ev := events[0]

	facts := map[string]string{}
	putFact(facts, "home team", ev.HomeTeam)
	putFact(facts, "away team", ev.AwayTeam)
	putFact(facts, "home score", ev.HomeScore)
	putFact(facts, "away score", ev.AwayScore)
	putFact(facts, "venue", ev.Venue)
	putFact(facts, "season", ev.Season)
	putFact(facts, "league", ev.League)
	putFact(facts, "sport", ev.Sport)

	if hs, err1 := strconv.Atoi(ev.HomeScore); err1 == nil {
		if as, err2 := strconv.Atoi(ev.AwayScore); err2 == nil {
			facts["final score"] = fmt.Sprintf("%d-%d", hs, as)
			facts["score"] = facts["final score"]
			facts["margin"] = strconv.Itoa(abs(hs - as))
			facts["total points"] = strconv.Itoa(hs + as)

			switch {
			case hs > as:
				facts["winner"] = ev.HomeTeam
				facts["winning team"] = ev.HomeTeam
				facts["loser"] = ev.AwayTeam
			case as > hs:
				facts["winner"] = ev.AwayTeam
				facts["winning team"] = ev.AwayTeam
				facts["loser"] = ev.HomeTeam
			default:
				facts["winner"] = "Draw"
				facts["winning team"] = "Draw"
			}
		}
	}

	return ev.Name, facts, nil
}

func putFact(facts map[string]string, key, value string) {
	if value != "" {
		facts[key] = value
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
