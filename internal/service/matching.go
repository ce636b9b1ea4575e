package service

import (
	"predictthis_backend/internal/config"
	"predictthis_backend/internal/validation"
)

// thresholdsFromConfig maps the tunable matching section onto the core's
// threshold set. Zero-valued fields keep their defaults so a sparse config
// file never disables a policy outright.
func thresholdsFromConfig(cfg config.MatchingConfig) validation.Thresholds {
	t := validation.DefaultThresholds()
	if cfg.FuzzyCap > 0 {
		t.FuzzyCap = cfg.FuzzyCap
	}
	if cfg.MinSimilarity > 0 {
		t.MinSimilarity = cfg.MinSimilarity
	}
	if cfg.MismatchPenalty > 0 {
		t.MismatchPenalty = cfg.MismatchPenalty
	}
	if cfg.SportsMatchThreshold > 0 {
		t.SportsMatchThreshold = cfg.SportsMatchThreshold
	}
	if cfg.SportsFuzzyScale > 0 {
		t.SportsFuzzyScale = cfg.SportsFuzzyScale
	}
	if cfg.WikipediaMatchThreshold > 0 {
		t.WikipediaMatchThreshold = cfg.WikipediaMatchThreshold
	}
	if cfg.AIMismatchCap > 0 {
		t.AIMismatchCap = cfg.AIMismatchCap
	}
	return t
}
