package repository

import (
	"errors"
	"time"

	"predictthis_backend/internal/model"
	"predictthis_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) List(page, limit int) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64
	query := r.DB.Model(&model.Quiz{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&quizzes).Error
	return quizzes, total, err
}

// Complete writes correct answers, status and completion time in a single
// atomic update so a quiz can never hold a partial answer key.
func (r *QuizRepository) Complete(id string, answers model.AnswerKeyMap, completedAt time.Time) error {
	return r.DB.Model(&model.Quiz{}).
		Where("id = ?", id).
		Select("CorrectAnswers", "Status", "CompletedAt").
		Updates(model.Quiz{
			CorrectAnswers: answers,
			Status:         model.QuizCompleted,
			CompletedAt:    &completedAt,
		}).Error
}
