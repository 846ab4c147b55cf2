package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"surveywizard/internal/model"
	"surveywizard/internal/service"
)

// QuestionHandler handles question endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// Get handles GET /get-questions
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionSvc.GetAll(r.Context())
	if errors.Is(err, service.ErrNoQuestions) {
		log.Println("No questions found.")
		writeText(w, http.StatusNotFound, "No questions found.")
		return
	}
	if err != nil {
		log.Printf("Error fetching questions: %v", err)
		writeText(w, http.StatusInternalServerError, "Error fetching questions")
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// Add handles POST /add-question
func (h *QuestionHandler) Add(w http.ResponseWriter, r *http.Request) {
	var question model.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		writeText(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := h.questionSvc.Add(r.Context(), &question)
	if errors.Is(err, service.ErrValidation) {
		writeText(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err != nil {
		log.Printf("Error adding question: %v", err)
		writeText(w, http.StatusInternalServerError, "Error adding question")
		return
	}

	writeText(w, http.StatusOK, "Question added successfully")
}

// Seed handles GET /seed-questions
func (h *QuestionHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.questionSvc.Seed(r.Context()); err != nil {
		log.Printf("Error seeding questions: %v", err)
		writeText(w, http.StatusInternalServerError, "Error seeding questions")
		return
	}

	log.Println("Default questions have been added to the store.")
	writeText(w, http.StatusOK, "Default questions added")
}
