package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"predictthis_backend/internal/config"
	"predictthis_backend/internal/util"
	"predictthis_backend/internal/validation"
	"predictthis_backend/pkg/logger"

	"go.uber.org/zap"
)

// WikipediaService adapts the MediaWiki API into the core's event-search
// and fact representations.
type WikipediaService struct {
	cfg    config.WikipediaConfig
	client *http.Client
}

func NewWikipediaService(cfg config.WikipediaConfig) *WikipediaService {
	return &WikipediaService{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title     string `json:"title"`
			PageID    int    `json:"pageid"`
			Timestamp string `json:"timestamp"`
		} `json:"search"`
	} `json:"query"`
}

type wikiParseResponse struct {
	Parse struct {
		Title string `json:"title"`
		Text  struct {
			Content string `json:"*"`
		} `json:"text"`
	} `json:"parse"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

func (s *WikipediaService) get(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("format", "json")
	u := fmt.Sprintf("%s/w/api.php?%s", s.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "predict-this-backend/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("wikipedia returned unexpected payload: %w", err)
	}
	return nil
}

// Search looks up article titles by free-text query.
func (s *WikipediaService) Search(ctx context.Context, query string) ([]validation.EventSearchResult, error) {
	var response wikiSearchResponse
	err := s.get(ctx, url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"10"},
	}, &response)
	if err != nil {
		return nil, err
	}

	results := make([]validation.EventSearchResult, 0, len(response.Query.Search))
	for _, hit := range response.Query.Search {
		results = append(results, validation.EventSearchResult{
			ID:       fmt.Sprintf("%d", hit.PageID),
			Title:    hit.Title,
			Date:     hit.Timestamp,
			Category: "wikipedia",
			Source:   "wikipedia",
			Metadata: map[string]string{
				"pageTitle": hit.Title,
			},
		})
	}
	logger.Log.Debug("wikipedia search completed", zap.String("query", query), zap.Int("results", len(results)))
	return results, nil
}

// PageFacts fetches one article's rendered HTML and runs the extraction
// heuristics over it. An article that renders to nothing usable is reported
// as an empty page rather than an empty fact list.
func (s *WikipediaService) PageFacts(ctx context.Context, pageTitle string) (string, []validation.Fact, error) {
	var response wikiParseResponse
	err := s.get(ctx, url.Values{
		"action": {"parse"},
		"page":   {pageTitle},
		"prop":   {"text"},
	}, &response)
	if err != nil {
		return "", nil, err
	}
	if response.Error != nil {
		return "", nil, fmt.Errorf("%w: %s", util.ErrEventNotFound, response.Error.Info)
	}
	if response.Parse.Text.Content == "" {
		return "", nil, fmt.Errorf("%w: %s", util.ErrEmptyPage, pageTitle)
	}

	facts := extractPageFacts(response.Parse.Text.Content)
	logger.Log.Debug("wikipedia page extracted",
		zap.String("page", response.Parse.Title),
		zap.Int("facts", len(facts)))
	return response.Parse.Title, facts, nil
}
