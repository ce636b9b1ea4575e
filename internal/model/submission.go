package model

import "time"

// AnswerMap maps questionId to the participant's submitted answer.
type AnswerMap map[string]string

// Submission is one participant's set of predictions for a quiz. Immutable
// after creation except for Score, which the scoring pass fills in when the
// quiz completes.
// swagger:model Submission
type Submission struct {
	UUIDBase
	QuizID      string    `gorm:"index;type:varchar(36);not null;uniqueIndex:idx_quiz_user" json:"quizId"`
	UserID      string    `gorm:"size:128;not null;uniqueIndex:idx_quiz_user" json:"userId"`
	UserName    string    `gorm:"size:255" json:"userName"`
	Answers     AnswerMap `gorm:"serializer:json;type:json" json:"answers"`
	SubmittedAt time.Time `json:"submittedAt"`
	Score       *int      `json:"score,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
