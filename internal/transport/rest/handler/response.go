package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"surveywizard/internal/model"
	"surveywizard/internal/service"
)

// ResponseHandler handles survey submission endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// Submit handles POST /submit-survey
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "Missing userId or surveyAnswers")
		return
	}

	err := h.responseSvc.Submit(r.Context(), &req)
	if errors.Is(err, service.ErrValidation) {
		writeText(w, http.StatusBadRequest, "Missing userId or surveyAnswers")
		return
	}
	if err != nil {
		log.Printf("Error submitting survey: %v", err)
		writeText(w, http.StatusInternalServerError, "Error submitting survey")
		return
	}

	writeText(w, http.StatusOK, "Survey submitted successfully")
}
