package controller

import (
	"errors"

	"predictthis_backend/internal/service"
	"predictthis_backend/internal/util"
	"predictthis_backend/internal/validation"

	"github.com/gin-gonic/gin"
)

type ValidationController struct {
	ValidationService *service.ValidationService
}

func NewValidationController(validationService *service.ValidationService) *ValidationController {
	return &ValidationController{ValidationService: validationService}
}

// SearchRequest selects an upstream category and a free-text query.
// swagger:model SearchRequest
type SearchRequest struct {
	Category string `json:"category" binding:"required,oneof=sports awards tv"`
	Query    string `json:"query" binding:"required"`
}

// Search godoc
// @Summary Search for an event
// @Description Searches for events matching the query; sports goes to the sports database, awards and tv go to Wikipedia
// @Tags validation
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SearchRequest true "Search parameters"
// @Success 200 {object} util.Response{data=[]validation.EventSearchResult} "Matching events"
// @Failure 400 {object} util.Response "Invalid request body"
// @Failure 500 {object} util.Response "Upstream failure"
// @Router /api/validation/search [post]
func (c *ValidationController) Search(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	results, err := c.ValidationService.Search(ctx.Request.Context(), req.Category, req.Query)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// ValidateRequest names an already-selected event and the questions to
// answer from it.
// swagger:model ValidateRequest
type ValidateRequest struct {
	Source    string                     `json:"source" binding:"required,oneof=thesportsdb wikipedia"`
	EventID   string                     `json:"eventId" binding:"required"`
	Metadata  map[string]string          `json:"metadata"`
	Questions []validation.QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// Validate godoc
// @Summary Validate answers against an event
// @Description Fetches the selected event's facts and suggests an answer for every question
// @Tags validation
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ValidateRequest true "Validation parameters"
// @Success 200 {object} util.Response{data=validation.ValidationResult} "Suggested answers"
// @Failure 400 {object} util.Response "Invalid request body"
// @Failure 500 {object} util.Response "Upstream failure"
// @Router /api/validation/validate [post]
func (c *ValidationController) Validate(ctx *gin.Context) {
	var req ValidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ValidationService.Validate(ctx.Request.Context(), req.Source, req.EventID, req.Metadata, req.Questions)
	if err != nil {
		// Upstream adapter failures (event not found, empty page, network)
		// all surface as 500 with the error's message; 400 is reserved for
		// malformed input.
		if errors.Is(err, util.ErrUnknownSource) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// AIValidateRequest names the quiz's event for the AI adapter.
// swagger:model AIValidateRequest
type AIValidateRequest struct {
	QuizTitle string                     `json:"quizTitle" binding:"required"`
	Questions []validation.QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// ValidateWithAI godoc
// @Summary Validate answers with AI
// @Description Asks the AI to research the described event and answer every question
// @Tags validation
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AIValidateRequest true "AI validation parameters"
// @Success 200 {object} util.Response{data=validation.ValidationResult} "Suggested answers"
// @Failure 400 {object} util.Response "Invalid request body"
// @Failure 503 {object} util.Response "AI validation not configured"
// @Failure 500 {object} util.Response "AI failure"
// @Router /api/validation/ai-validate [post]
func (c *ValidationController) ValidateWithAI(ctx *gin.Context) {
	var req AIValidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ValidationService.ValidateWithAI(ctx.Request.Context(), req.QuizTitle, req.Questions)
	if err != nil {
		if errors.Is(err, util.ErrAINotConfigured) {
			util.ServiceUnavailable(ctx, "AI validation is not available, contact support")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
