package controller

import (
	"errors"
	"strconv"
	"time"

	"predictthis_backend/internal/model"
	"predictthis_backend/internal/service"
	"predictthis_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// QuestionRequest is one authored question.
type QuestionRequest struct {
	ID      string   `json:"id" binding:"required"`
	Type    string   `json:"type" binding:"required,oneof=multiple open"`
	Text    string   `json:"text" binding:"required"`
	Points  int      `json:"points" binding:"required,min=1"`
	Options []string `json:"options"`
}

// CreateQuizRequest authors a new quiz.
// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	Title     string            `json:"title" binding:"required"`
	Deadline  *time.Time        `json:"deadline"`
	Questions []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Creates a prediction quiz with its questions
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateQuizRequest true "Quiz definition"
// @Success 201 {object} util.Response{data=model.Quiz} "Quiz created"
// @Failure 400 {object} util.Response "Invalid request body"
// @Failure 500 {object} util.Response "Server error"
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions := make(model.QuestionList, 0, len(req.Questions))
	for _, q := range req.Questions {
		if q.Type == model.QuestionMultiple && len(q.Options) < 2 {
			util.BadRequest(ctx, "multiple choice question "+q.ID+" needs at least two options")
			return
		}
		questions = append(questions, model.Question{
			ID:      q.ID,
			Type:    q.Type,
			Text:    q.Text,
			Points:  q.Points,
			Options: q.Options,
		})
	}

	quiz := &model.Quiz{
		Title:     req.Title,
		Deadline:  req.Deadline,
		Questions: questions,
	}
	if err := c.QuizService.CreateQuiz(quiz); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// GetQuiz godoc
// @Summary Fetch a quiz
// @Description Returns one quiz; correct answers appear only after completion
// @Tags quizzes
// @Produce  json
// @Param   id path string true "Quiz id"
// @Success 200 {object} util.Response{data=model.Quiz} "Quiz"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.GetQuiz(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, quiz)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=object} "Paged quizzes"
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	quizzes, total, err := c.QuizService.ListQuizzes(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"quizzes": quizzes,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// SubmitRequest is one participant's predictions.
// swagger:model SubmitRequest
type SubmitRequest struct {
	UserID   string          `json:"userId" binding:"required"`
	UserName string          `json:"userName"`
	Answers  model.AnswerMap `json:"answers" binding:"required"`
}

// SubmitAnswers godoc
// @Summary Submit predictions
// @Description Records one participant's answers; one submission per user per quiz
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Param   id path string true "Quiz id"
// @Param   body body SubmitRequest true "Predictions"
// @Success 201 {object} util.Response{data=model.Submission} "Submission recorded"
// @Failure 400 {object} util.Response "Invalid request body or deadline passed"
// @Failure 404 {object} util.Response "Quiz not found"
// @Failure 409 {object} util.Response "Already submitted or quiz completed"
// @Router /api/quizzes/{id}/submissions [post]
func (c *QuizController) SubmitAnswers(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.QuizService.SubmitAnswers(ctx.Param("id"), req.UserID, req.UserName, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizDeadlinePassed):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQuizAlreadyCompleted), errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, sub)
}

// CompleteQuizRequest carries the admin-accepted answer key. Each value may
// be a single string or an array of accepted answers.
// swagger:model CompleteQuizRequest
type CompleteQuizRequest struct {
	CorrectAnswers model.AnswerKeyMap `json:"correctAnswers" binding:"required"`
}

// CompleteQuiz godoc
// @Summary Complete a quiz
// @Description Finalizes the answer key and scores every submission
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Quiz id"
// @Param   body body CompleteQuizRequest true "Accepted correct answers"
// @Success 200 {object} util.Response{data=service.CompletionSummary} "Scoring summary"
// @Failure 400 {object} util.Response "Invalid request body"
// @Failure 404 {object} util.Response "Quiz not found"
// @Failure 409 {object} util.Response "Quiz already completed"
// @Router /api/quizzes/{id}/complete [post]
func (c *QuizController) CompleteQuiz(ctx *gin.Context) {
	var req CompleteQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(req.CorrectAnswers) == 0 {
		util.BadRequest(ctx, "correctAnswers must not be empty")
		return
	}

	summary, err := c.QuizService.CompleteQuiz(ctx.Request.Context(), ctx.Param("id"), req.CorrectAnswers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUnknownQuestion):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQuizAlreadyCompleted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, summary)
}

// Leaderboard godoc
// @Summary Quiz leaderboard
// @Description Ranked scores for a completed quiz
// @Tags quizzes
// @Produce  json
// @Param   id path string true "Quiz id"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry} "Ranking"
// @Failure 404 {object} util.Response "Quiz not found"
// @Failure 409 {object} util.Response "Quiz not completed yet"
// @Router /api/quizzes/{id}/leaderboard [get]
func (c *QuizController) Leaderboard(ctx *gin.Context) {
	entries, err := c.QuizService.Leaderboard(ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizNotCompleted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, entries)
}
