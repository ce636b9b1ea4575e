package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"predictthis_backend/internal/config"
	"predictthis_backend/internal/util"
	"predictthis_backend/internal/validation"
	"predictthis_backend/pkg/logger"

	"go.uber.org/zap"
)

// AIService answers open research questions with Claude. It is optional:
// without an API key every call fails fast with ErrAINotConfigured.
type AIService struct {
	cfg        config.AIConfig
	thresholds func() validation.Thresholds
	client     *http.Client
}

func NewAIService(cfg config.AIConfig, thresholds func() validation.Thresholds) *AIService {
	return &AIService{
		cfg:        cfg,
		thresholds: thresholds,
		client:     &http.Client{Timeout: 90 * time.Second},
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
	Tools     []anthropicTool    `json:"tools,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicTool struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	MaxUses int    `json:"max_uses,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// aiAnswer is the per-question object the prompt instructs the model to emit.
type aiAnswer struct {
	QuestionID string  `json:"questionId"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

type aiAnswerSet struct {
	EventTitle string     `json:"eventTitle"`
	Answers    []aiAnswer `json:"answers"`
}

// ValidateQuestions asks Claude to research the quiz's event and answer
// every question, then reconciles the model's answers against the option
// lists.
func (s *AIService) ValidateQuestions(ctx context.Context, quizTitle string, questions []validation.QuestionInput) (*validation.ValidationResult, error) {
	if s.cfg.APIKey == "" {
		return nil, util.ErrAINotConfigured
	}

	raw, err := s.complete(ctx, buildAnswerPrompt(quizTitle, questions))
	if err != nil {
		return nil, err
	}

	payload, err := validation.ExtractAnswersJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("AI response was not parseable: %w", err)
	}
	var set aiAnswerSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		return nil, fmt.Errorf("AI response was not parseable: %w", err)
	}

	byID := make(map[string]aiAnswer, len(set.Answers))
	for _, a := range set.Answers {
		byID[a.QuestionID] = a
	}

	t := s.thresholds()
	matches := make([]validation.MatchedAnswer, 0, len(questions))
	for _, q := range questions {
		matches = append(matches, reconcileAIAnswer(t, q, byID))
	}

	title := set.EventTitle
	if title == "" {
		title = quizTitle
	}
	return validation.BuildResult(title, "Claude AI", matches), nil
}

// reconcileAIAnswer folds one model answer into a match. Multiple-choice
// answers must name a real option; anything else keeps the model's text but
// caps its confidence.
func reconcileAIAnswer(t validation.Thresholds, q validation.QuestionInput, answers map[string]aiAnswer) validation.MatchedAnswer {
	m := validation.MatchedAnswer{QuestionID: q.ID, QuestionText: q.Text}

	a, ok := answers[q.ID]
	if !ok || strings.TrimSpace(a.Answer) == "" {
		m.Source = "AI could not find this question"
		return m
	}

	m.Source = "Claude AI"
	m.SuggestedAnswer = a.Answer
	m.Confidence = clamp01(a.Confidence)

	if q.Type != validation.TypeMultiple {
		return m
	}
	for _, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(a.Answer)) {
			// Swap in the canonical option casing.
			m.SuggestedAnswer = opt
			return m
		}
	}
	if m.Confidence > t.AIMismatchCap {
		m.Confidence = t.AIMismatchCap
	}
	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func buildAnswerPrompt(quizTitle string, questions []validation.QuestionInput) string {
	var b strings.Builder
	b.WriteString("You are verifying the outcome of a real-world event for a prediction quiz.\n")
	b.WriteString("Event: ")
	b.WriteString(quizTitle)
	b.WriteString("\n\nResearch what actually happened and answer every question below.\n\nQuestions:\n")
	for _, q := range questions {
		fmt.Fprintf(&b, "- id %q: %s", q.ID, q.Text)
		if q.Type == validation.TypeMultiple && len(q.Options) > 0 {
			fmt.Fprintf(&b, " (choose exactly one of: %s)", strings.Join(q.Options, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString(`
Respond with ONLY a JSON object, no prose, in this exact shape:
{
  "eventTitle": "canonical name of the event",
  "answers": [
    {"questionId": "<question id>", "answer": "...", "confidence": 0.0, "reasoning": "one sentence"}
  ]
}
Confidence is a number between 0 and 1. Omit a question's entry entirely if you cannot determine its answer.`)
	return b.String()
}

func (s *AIService) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     s.cfg.Model,
		MaxTokens: s.cfg.MaxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
		Tools: []anthropicTool{{
			Type:    "web_search_20250305",
			Name:    "web_search",
			MaxUses: 5,
		}},
	}
	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/v1/messages", bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("AI returned unexpected payload: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("AI returned error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI returned status %d", resp.StatusCode)
	}

	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	logger.Log.Debug("AI completion received", zap.Int("chars", text.Len()))
	return text.String(), nil
}
