package session

import (
	"context"
	"errors"
	"sync"

	"surveywizard/internal/model"
)

// ErrEmptyDraft is returned when a draft is missing text or a field name.
var ErrEmptyDraft = errors.New("question text and field name are required")

// AuthoringClient is the slice of the service the authoring form needs.
type AuthoringClient interface {
	QuestionFetcher
	AddQuestion(ctx context.Context, question *model.Question) error
}

// Author adds questions through the service and mirrors the list locally,
// the way the wizard's inline authoring form does.
type Author struct {
	client AuthoringClient

	mu        sync.Mutex
	questions []model.Question
	pending   bool
}

// NewAuthor creates an author over the given client.
func NewAuthor(client AuthoringClient) *Author {
	return &Author{client: client}
}

// Refresh replaces the local list with a full fetch, reconciling any
// optimistic appends.
func (a *Author) Refresh(ctx context.Context) ([]model.Question, error) {
	questions, err := a.client.FetchQuestions(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.questions = questions
	a.pending = false
	a.mu.Unlock()
	return questions, nil
}

// AddQuestion validates the draft, assigns the next order value and stores
// the question. The order comes from a fresh fetch of the whole set; two
// authors racing can compute the same value, and the store resolves that
// as last-write-wins on the field name. There is no locking around the
// read-then-write.
func (a *Author) AddQuestion(ctx context.Context, draft model.QuestionDraft) (*model.Question, error) {
	if draft.Text == "" || draft.FieldName == "" {
		return nil, ErrEmptyDraft
	}
	if draft.Type == "" {
		draft.Type = model.QuestionTypeRating
	}

	current, err := a.client.FetchQuestions(ctx)
	if err != nil {
		return nil, err
	}

	maxOrder := 0
	for _, q := range current {
		if q.Order > maxOrder {
			maxOrder = q.Order
		}
	}

	question := &model.Question{
		Text:      draft.Text,
		FieldName: draft.FieldName,
		Type:      draft.Type,
		Order:     maxOrder + 1,
	}
	if err := a.client.AddQuestion(ctx, question); err != nil {
		return nil, err
	}

	// Optimistic append; if the write only partially landed the local list
	// is stale, so the pending flag stays up until the next Refresh.
	a.mu.Lock()
	a.questions = append(a.questions, *question)
	a.pending = true
	a.mu.Unlock()
	return question, nil
}

// Questions returns a copy of the locally mirrored list.
func (a *Author) Questions() []model.Question {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.Question, len(a.questions))
	copy(out, a.questions)
	return out
}

// PendingReconciliation reports whether the local list holds optimistic
// appends not yet confirmed by a full fetch.
func (a *Author) PendingReconciliation() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}
