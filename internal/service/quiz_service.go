package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"predictthis_backend/internal/model"
	"predictthis_backend/internal/util"
	"predictthis_backend/internal/validation"
	"predictthis_backend/pkg/logger"
	"predictthis_backend/pkg/monitoring"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxScoringConcurrency bounds the parallel score writes at completion.
const maxScoringConcurrency = 8

// QuizStore is the persistence surface the quiz service needs.
type QuizStore interface {
	Create(quiz *model.Quiz) error
	FindByID(id string) (*model.Quiz, error)
	List(page, limit int) ([]model.Quiz, int64, error)
	Complete(id string, answers model.AnswerKeyMap, completedAt time.Time) error
}

// SubmissionStore is the persistence surface for participant submissions.
type SubmissionStore interface {
	Create(s *model.Submission) error
	FindByQuizAndUser(quizID, userID string) (*model.Submission, error)
	ListByQuiz(quizID string) ([]model.Submission, error)
	UpdateScore(id string, score int) error
}

type QuizService struct {
	quizzes     QuizStore
	submissions SubmissionStore
}

func NewQuizService(quizzes QuizStore, submissions SubmissionStore) *QuizService {
	return &QuizService{quizzes: quizzes, submissions: submissions}
}

func (s *QuizService) CreateQuiz(quiz *model.Quiz) error {
	quiz.Status = model.QuizInProgress
	quiz.CorrectAnswers = nil
	quiz.CompletedAt = nil
	return s.quizzes.Create(quiz)
}

func (s *QuizService) GetQuiz(id string) (*model.Quiz, error) {
	return s.quizzes.FindByID(id)
}

func (s *QuizService) ListQuizzes(page, limit int) ([]model.Quiz, int64, error) {
	return s.quizzes.List(page, limit)
}

// SubmitAnswers records one participant's predictions. Submissions are
// rejected once the quiz has completed, once its deadline has passed, and
// when the participant has already submitted.
func (s *QuizService) SubmitAnswers(quizID, userID, userName string, answers model.AnswerMap) (*model.Submission, error) {
	quiz, err := s.quizzes.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz.IsCompleted() {
		return nil, util.ErrQuizAlreadyCompleted
	}
	if quiz.Deadline != nil && time.Now().After(*quiz.Deadline) {
		return nil, util.ErrQuizDeadlinePassed
	}

	existing, err := s.submissions.FindByQuizAndUser(quizID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrAlreadySubmitted
	}

	sub := &model.Submission{
		QuizID:      quizID,
		UserID:      userID,
		UserName:    userName,
		Answers:     answers,
		SubmittedAt: time.Now(),
	}
	if err := s.submissions.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// CompletionSummary reports the scoring pass at quiz completion.
type CompletionSummary struct {
	Scored int      `json:"scored"`
	Failed []string `json:"failed,omitempty"`
}

// CompleteQuiz finalizes the answer key in one atomic write, then scores
// every submission. Scoring runs concurrently and tolerates individual
// failures: one bad submission never blocks the rest, and the quiz stays
// completed regardless.
func (s *QuizService) CompleteQuiz(ctx context.Context, quizID string, answers model.AnswerKeyMap) (*CompletionSummary, error) {
	quiz, err := s.quizzes.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz.IsCompleted() {
		return nil, util.ErrQuizAlreadyCompleted
	}
	for id := range answers {
		if quiz.QuestionByID(id) == nil {
			return nil, fmt.Errorf("%w: %s", util.ErrUnknownQuestion, id)
		}
	}

	if err := s.quizzes.Complete(quizID, answers, time.Now()); err != nil {
		return nil, err
	}

	subs, err := s.submissions.ListByQuiz(quizID)
	if err != nil {
		// Answer key is already saved; report the scoring failure as such.
		return nil, fmt.Errorf("quiz completed but scoring failed: %w", err)
	}

	questions := questionInputs(quiz.Questions)
	correct := answerKeySets(answers)

	summary := &CompletionSummary{}
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxScoringConcurrency)
	for i := range subs {
		sub := subs[i]
		g.Go(func() error {
			score := validation.ScoreSubmission(questions, correct, sub.Answers)
			if err := s.submissions.UpdateScore(sub.ID, score); err != nil {
				logger.Log.Error("failed to store submission score",
					zap.String("submission", sub.ID),
					zap.Error(err))
				monitoring.SubmissionsScored.WithLabelValues("error").Inc()
				mu.Lock()
				summary.Failed = append(summary.Failed, sub.ID)
				mu.Unlock()
				return nil
			}
			monitoring.SubmissionsScored.WithLabelValues("ok").Inc()
			mu.Lock()
			summary.Scored++
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	sort.Strings(summary.Failed)
	logger.Log.Info("quiz completed",
		zap.String("quiz", quizID),
		zap.Int("scored", summary.Scored),
		zap.Int("failed", len(summary.Failed)))
	return summary, nil
}

// LeaderboardEntry is one ranked row. Ties on score rank by earlier
// submission.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Leaderboard ranks scored submissions of a completed quiz.
func (s *QuizService) Leaderboard(quizID string) ([]LeaderboardEntry, error) {
	quiz, err := s.quizzes.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsCompleted() {
		return nil, util.ErrQuizNotCompleted
	}

	subs, err := s.submissions.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(subs))
	for _, sub := range subs {
		score := 0
		if sub.Score != nil {
			score = *sub.Score
		}
		entries = append(entries, LeaderboardEntry{
			UserID:      sub.UserID,
			UserName:    sub.UserName,
			Score:       score,
			SubmittedAt: sub.SubmittedAt,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].SubmittedAt.Before(entries[j].SubmittedAt)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// questionInputs converts stored questions to the matcher's input type.
func questionInputs(questions model.QuestionList) []validation.QuestionInput {
	out := make([]validation.QuestionInput, 0, len(questions))
	for _, q := range questions {
		out = append(out, validation.QuestionInput{
			ID:      q.ID,
			Type:    q.Type,
			Text:    q.Text,
			Points:  q.Points,
			Options: q.Options,
		})
	}
	return out
}

func answerKeySets(answers model.AnswerKeyMap) map[string][]string {
	out := make(map[string][]string, len(answers))
	for id, key := range answers {
		out[id] = []string(key)
	}
	return out
}
