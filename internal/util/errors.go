package util

import "errors"

var (
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizAlreadyCompleted = errors.New("quiz already completed")
	ErrQuizDeadlinePassed   = errors.New("quiz deadline has passed")
	ErrAlreadySubmitted     = errors.New("answers already submitted for this quiz")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrQuizNotCompleted     = errors.New("quiz not completed yet")
	ErrUnknownQuestion      = errors.New("answer key references an unknown question")
	ErrAINotConfigured      = errors.New("AI validation is not configured")
	ErrEventNotFound        = errors.New("event not found")
	ErrEmptyPage            = errors.New("page has no extractable content")
	ErrUnknownSource        = errors.New("unknown validation source")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
