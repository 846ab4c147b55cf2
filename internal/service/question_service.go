package service

import (
	"context"
	"errors"
	"log"

	"surveywizard/internal/cache"
	"surveywizard/internal/model"
	"surveywizard/internal/repository"
)

// ErrNoQuestions is returned when the store holds no questions at all.
var ErrNoQuestions = errors.New("no questions found")

// ErrValidation is returned when a request is missing required fields.
var ErrValidation = errors.New("missing required fields")

// Broadcaster pushes change events to connected wizard clients.
type Broadcaster interface {
	Broadcast(msgType string, payload interface{})
}

// DefaultQuestions is the seed set installed by /seed-questions.
var DefaultQuestions = []model.Question{
	{Text: "How fair are the prices compared to similar retailers?", FieldName: "priceFairness", Type: model.QuestionTypeRating, Order: 1},
	{Text: "How satisfied are you with the value for money of your purchase?", FieldName: "valueForMoney", Type: model.QuestionTypeRating, Order: 2},
	{Text: "On a scale of 1-10, how likely are you to recommend us to your friends and family?", FieldName: "recommendScore", Type: model.QuestionTypeRating, Order: 3},
	{Text: "How satisfied are you with our products?", FieldName: "productSatisfaction", Type: model.QuestionTypeRating, Order: 4},
	{Text: "What could we do to improve our service?", FieldName: "improvementSuggestion", Type: model.QuestionTypeText, Order: 5},
}

// QuestionService handles question listing, authoring and seeding
type QuestionService struct {
	questionRepo  repository.QuestionRepo
	questionCache cache.QuestionCache
	broadcaster   Broadcaster
}

// NewQuestionService creates a new question service. The cache is optional.
func NewQuestionService(questionRepo repository.QuestionRepo, questionCache cache.QuestionCache) *QuestionService {
	return &QuestionService{
		questionRepo:  questionRepo,
		questionCache: questionCache,
	}
}

// SetBroadcaster sets the broadcaster for change-feed events
func (s *QuestionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GetAll returns every question, read-through cached. Returns
// ErrNoQuestions when the store is empty.
func (s *QuestionService) GetAll(ctx context.Context) ([]model.Question, error) {
	if s.questionCache != nil {
		cached, err := s.questionCache.Get(ctx)
		if err != nil {
			log.Printf("question cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	questions, err := s.questionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	if s.questionCache != nil {
		if err := s.questionCache.Set(ctx, questions); err != nil {
			log.Printf("question cache write failed: %v", err)
		}
	}
	return questions, nil
}

// Add validates and stores a question. A question reusing an existing
// field name overwrites it rather than duplicating.
func (s *QuestionService) Add(ctx context.Context, question *model.Question) error {
	if question.Text == "" || question.FieldName == "" || question.Type == "" {
		return ErrValidation
	}

	if err := s.questionRepo.Upsert(ctx, question); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.notifyUpdated()
	return nil
}

// Seed upserts the default question set. Safe to call repeatedly.
func (s *QuestionService) Seed(ctx context.Context) error {
	for i := range DefaultQuestions {
		q := DefaultQuestions[i]
		if err := s.questionRepo.Upsert(ctx, &q); err != nil {
			return err
		}
	}

	s.invalidate(ctx)
	s.notifyUpdated()
	return nil
}

func (s *QuestionService) invalidate(ctx context.Context) {
	if s.questionCache == nil {
		return
	}
	if err := s.questionCache.Invalidate(ctx); err != nil {
		log.Printf("question cache invalidation failed: %v", err)
	}
}

func (s *QuestionService) notifyUpdated() {
	if s.broadcaster != nil {
		s.broadcaster.Broadcast("questions_updated", map[string]interface{}{})
	}
}
