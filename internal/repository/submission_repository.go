package repository

import (
	"errors"

	"predictthis_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.Submission) error {
	return r.DB.Create(s).Error
}

func (r *SubmissionRepository) FindByQuizAndUser(quizID, userID string) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) ListByQuiz(quizID string) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Where("quiz_id = ?", quizID).Order("submitted_at asc").Find(&subs).Error
	return subs, err
}

// UpdateScore persists one submission's score. Each submission is a
// disjoint document, so concurrent score writes do not contend.
func (r *SubmissionRepository) UpdateScore(id string, score int) error {
	return r.DB.Model(&model.Submission{}).Where("id = ?", id).Update("score", score).Error
}
