package model

import (
	"encoding/json"
	"time"
)

// Quiz status values. A quiz transitions in-progress -> completed exactly
// once; completed is terminal.
const (
	QuizInProgress = "in-progress"
	QuizCompleted  = "completed"
)

// Question types.
const (
	QuestionMultiple = "multiple"
	QuestionOpen     = "open"
)

// Question is one prediction question. Options is required for multiple
// choice and must hold at least two entries.
type Question struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Points  int      `json:"points"`
	Options []string `json:"options,omitempty"`
}

// QuestionList is stored as a JSON document column.
type QuestionList []Question

// AnswerKey holds the accepted answer(s) for one question. It unmarshals
// from either a bare string or an array of strings, since admin-edited
// payloads historically used both shapes.
type AnswerKey []string

func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*k = AnswerKey{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*k = AnswerKey(many)
	return nil
}

// AnswerKeyMap maps questionId to accepted answers.
type AnswerKeyMap map[string]AnswerKey

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title          string       `gorm:"size:255;not null" json:"title"`
	Status         string       `gorm:"size:20;default:'in-progress';index" json:"status"`
	Deadline       *time.Time   `json:"deadline,omitempty"`
	Questions      QuestionList `gorm:"serializer:json;type:json" json:"questions"`
	CorrectAnswers AnswerKeyMap `gorm:"serializer:json;type:json" json:"correctAnswers,omitempty"`
	CompletedAt    *time.Time   `json:"completedAt,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// IsCompleted reports whether correct answers have been finalized.
func (q *Quiz) IsCompleted() bool {
	return q.Status == QuizCompleted
}

// QuestionByID returns the question with the given id, or nil.
func (q *Quiz) QuestionByID(id string) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}
