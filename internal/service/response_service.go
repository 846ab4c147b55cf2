package service

import (
	"context"
	"time"

	"surveywizard/internal/model"
	"surveywizard/internal/repository"
)

// ResponseService handles survey submissions
type ResponseService struct {
	responseRepo repository.ResponseRepo
}

// NewResponseService creates a new response service
func NewResponseService(responseRepo repository.ResponseRepo) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
	}
}

// Submit stores one response per visitor, stamped with the server time.
// A repeat submission from the same visitor overwrites the earlier one.
func (s *ResponseService) Submit(ctx context.Context, req *model.SubmitSurveyRequest) error {
	if req.UserID == "" || req.SurveyAnswers == nil {
		return ErrValidation
	}

	response := &model.SurveyResponse{
		UserID:        req.UserID,
		SurveyAnswers: req.SurveyAnswers,
		SubmittedAt:   time.Now(),
	}
	return s.responseRepo.Upsert(ctx, response)
}
