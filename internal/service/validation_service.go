package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"predictthis_backend/internal/config"
	"predictthis_backend/internal/util"
	"predictthis_backend/internal/validation"
	"predictthis_backend/pkg/logger"
	"predictthis_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const searchCacheTTL = 5 * time.Minute

// Validation source identifiers as they appear in search results and
// validate requests.
const (
	SourceSports    = "thesportsdb"
	SourceWikipedia = "wikipedia"
)

// ValidationService orchestrates event search and answer validation across
// the sports, Wikipedia and AI adapters. Matching thresholds are swappable
// at runtime for config hot reload.
type ValidationService struct {
	sports *SportsService
	wiki   *WikipediaService
	ai     *AIService
	redis  *redis.Client

	mu         sync.RWMutex
	thresholds validation.Thresholds
}

func NewValidationService(cfg *config.Config, redisClient *redis.Client) *ValidationService {
	s := &ValidationService{
		sports:     NewSportsService(cfg.SportsDB),
		wiki:       NewWikipediaService(cfg.Wikipedia),
		redis:      redisClient,
		thresholds: thresholdsFromConfig(cfg.Matching),
	}
	s.ai = NewAIService(cfg.AI, s.Thresholds)
	return s
}

// Thresholds returns the current matching policy.
func (s *ValidationService) Thresholds() validation.Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

// UpdateThresholds swaps the matching policy; called on config hot reload.
func (s *ValidationService) UpdateThresholds(cfg config.MatchingConfig) {
	t := thresholdsFromConfig(cfg)
	s.mu.Lock()
	s.thresholds = t
	s.mu.Unlock()
	logger.Log.Info("matching thresholds updated",
		zap.Float64("fuzzy_cap", t.FuzzyCap),
		zap.Float64("min_similarity", t.MinSimilarity))
}

// Search queries one upstream by category and caches the hit list briefly,
// since admins typically search a few times while narrowing in on the right
// event. "sports" goes to the sports database; every other category goes to
// Wikipedia with the requested category stamped onto each hit.
func (s *ValidationService) Search(ctx context.Context, category, query string) ([]validation.EventSearchResult, error) {
	cacheKey := fmt.Sprintf("validation:search:%s:%s", category, validation.Normalize(query))
	if cached, ok := s.cachedSearch(ctx, cacheKey); ok {
		return cached, nil
	}

	var results []validation.EventSearchResult
	var err error
	if category == "sports" {
		results, err = s.sports.Search(ctx, query)
	} else {
		results, err = s.wiki.Search(ctx, query)
		for i := range results {
			results[i].Category = category
		}
	}
	if err != nil {
		monitoring.ValidationRequests.WithLabelValues(category, "search_error").Inc()
		return nil, err
	}

	s.storeSearch(ctx, cacheKey, results)
	monitoring.ValidationRequests.WithLabelValues(category, "search_ok").Inc()
	return results, nil
}

func (s *ValidationService) cachedSearch(ctx context.Context, key string) ([]validation.EventSearchResult, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var results []validation.EventSearchResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, false
	}
	return results, true
}

func (s *ValidationService) storeSearch(ctx context.Context, key string, results []validation.EventSearchResult) {
	if s.redis == nil {
		return
	}
	encoded, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, encoded, searchCacheTTL).Err(); err != nil {
		logger.Log.Warn("search cache write failed", zap.Error(err))
	}
}

// Validate runs one selected event through the matching pipeline. All
// questions are answered from a single upstream fetch; an upstream failure
// fails the whole run rather than returning a partial result.
func (s *ValidationService) Validate(ctx context.Context, source, eventID string, metadata map[string]string, questions []validation.QuestionInput) (*validation.ValidationResult, error) {
	t := s.Thresholds()

	switch source {
	case SourceSports:
		title, facts, err := s.sports.EventFacts(ctx, eventID)
		if err != nil {
			monitoring.ValidationRequests.WithLabelValues(source, "error").Inc()
			return nil, err
		}
		matches := make([]validation.MatchedAnswer, 0, len(questions))
		for _, q := range questions {
			matches = append(matches, t.MatchQuestionToFacts(q, facts))
		}
		monitoring.ValidationRequests.WithLabelValues(source, "ok").Inc()
		return validation.BuildResult(title, "TheSportsDB", matches), nil

	case SourceWikipedia:
		pageTitle := metadata["pageTitle"]
		if pageTitle == "" {
			pageTitle = eventID
		}
		title, facts, err := s.wiki.PageFacts(ctx, pageTitle)
		if err != nil {
			monitoring.ValidationRequests.WithLabelValues(source, "error").Inc()
			return nil, err
		}
		matches := make([]validation.MatchedAnswer, 0, len(questions))
		for _, q := range questions {
			matches = append(matches, t.MatchQuestionToWikiFacts(q, facts))
		}
		monitoring.ValidationRequests.WithLabelValues(source, "ok").Inc()
		return validation.BuildResult(title, "Wikipedia", matches), nil

	default:
		return nil, fmt.Errorf("%w: %s", util.ErrUnknownSource, source)
	}
}

// ValidateWithAI answers the questions via Claude instead of a structured
// upstream.
func (s *ValidationService) ValidateWithAI(ctx context.Context, quizTitle string, questions []validation.QuestionInput) (*validation.ValidationResult, error) {
	result, err := s.ai.ValidateQuestions(ctx, quizTitle, questions)
	if err != nil {
		monitoring.ValidationRequests.WithLabelValues("ai", "error").Inc()
		return nil, err
	}
	monitoring.ValidationRequests.WithLabelValues("ai", "ok").Inc()
	return result, nil
}
