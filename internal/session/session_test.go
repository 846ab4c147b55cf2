package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"surveywizard/internal/model"
)

func testQuestions() []model.Question {
	return []model.Question{
		{Text: "How fair are the prices compared to similar retailers?", FieldName: "priceFairness", Type: model.QuestionTypeRating, Order: 1},
		{Text: "How satisfied are you with the value for money of your purchase?", FieldName: "valueForMoney", Type: model.QuestionTypeRating, Order: 2},
		{Text: "On a scale of 1-10, how likely are you to recommend us to your friends and family?", FieldName: "recommendScore", Type: model.QuestionTypeRating, Order: 3},
		{Text: "How satisfied are you with our products?", FieldName: "productSatisfaction", Type: model.QuestionTypeRating, Order: 4},
		{Text: "What could we do to improve our service?", FieldName: "improvementSuggestion", Type: model.QuestionTypeText, Order: 5},
	}
}

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	userID  string
	answers model.AnswerMap
	err     error
}

func (f *fakeSubmitter) Submit(ctx context.Context, userID string, answers model.AnswerMap) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.userID = userID
	f.answers = answers
	return f.err
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

// advanceToEnd pushes the session to the last slide.
func advanceToEnd(s *Session) {
	for s.Position() < s.Total() {
		s.Advance()
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestRecordAnswerLastWriteWins(t *testing.T) {
	s := New(testQuestions(), Config{})
	defer s.Close()
	s.Start()

	if err := s.RecordRating("priceFairness", 3); err != nil {
		t.Fatalf("RecordRating: %v", err)
	}
	if err := s.RecordRating("priceFairness", 8); err != nil {
		t.Fatalf("RecordRating: %v", err)
	}
	if err := s.RecordText("improvementSuggestion", "first"); err != nil {
		t.Fatalf("RecordText: %v", err)
	}
	if err := s.RecordText("improvementSuggestion", "  second, untrimmed "); err != nil {
		t.Fatalf("RecordText: %v", err)
	}

	answers := s.Answers()
	if answers["priceFairness"] != 8 {
		t.Errorf("priceFairness = %v, want 8", answers["priceFairness"])
	}
	if answers["improvementSuggestion"] != "  second, untrimmed " {
		t.Errorf("improvementSuggestion = %q", answers["improvementSuggestion"])
	}
}

func TestRecordUnknownField(t *testing.T) {
	s := New(testQuestions(), Config{})
	defer s.Close()
	s.Start()

	if err := s.RecordRating("notAField", 5); !errors.Is(err, ErrUnknownField) {
		t.Errorf("err = %v, want ErrUnknownField", err)
	}
	if _, ok := s.Answers()["notAField"]; ok {
		t.Error("unknown field leaked into the answer map")
	}
}

func TestRecordBeforeStart(t *testing.T) {
	s := New(testQuestions(), Config{})
	defer s.Close()

	if err := s.RecordRating("priceFairness", 5); !errors.Is(err, ErrNotAnswering) {
		t.Errorf("err = %v, want ErrNotAnswering", err)
	}
}

func TestStartResetsPosition(t *testing.T) {
	deck := NewSlideDeck(5)
	s := New(testQuestions(), Config{Navigator: deck})
	defer s.Close()

	s.Start()
	if got := s.Phase(); got != PhaseAnswering {
		t.Errorf("phase = %v, want answering", got)
	}
	if got := s.Position(); got != 1 {
		t.Errorf("position = %d, want 1", got)
	}
}

func TestAdvanceClampsAtLastSlide(t *testing.T) {
	deck := NewSlideDeck(5)
	s := New(testQuestions(), Config{Navigator: deck})
	defer s.Close()
	s.Start()

	for i := 0; i < 10; i++ {
		s.Advance()
	}
	if got := s.Position(); got != 5 {
		t.Errorf("position = %d, want 5", got)
	}
	if got := deck.Current(); got != 5 {
		t.Errorf("deck index = %d, want 5", got)
	}
	if !s.IsLastSlide() {
		t.Error("IsLastSlide() = false on the last slide")
	}
}

func TestAdvanceWithoutNavigatorClamps(t *testing.T) {
	s := New(testQuestions(), Config{})
	defer s.Close()
	s.Start()

	for i := 0; i < 10; i++ {
		s.Advance()
	}
	if got := s.Position(); got != 5 {
		t.Errorf("position = %d, want 5", got)
	}
}

func TestSessionFollowsNavigator(t *testing.T) {
	deck := NewSlideDeck(5)
	s := New(testQuestions(), Config{Navigator: deck})
	defer s.Close()
	s.Start()

	// A swipe moves the deck directly; the session must follow.
	deck.Advance()
	deck.Advance()
	if got := s.Position(); got != 3 {
		t.Errorf("position = %d, want 3", got)
	}
	if got := s.Pager(); got != "3/5" {
		t.Errorf("pager = %q, want 3/5", got)
	}
}

func TestSubmitNotLastSlide(t *testing.T) {
	client := &fakeSubmitter{}
	s := New(testQuestions(), Config{Client: client, Identity: StaticIdentity("u-1")})
	defer s.Close()
	s.Start()
	s.Confirm()

	if err := s.Submit(context.Background()); !errors.Is(err, ErrNotLastSlide) {
		t.Errorf("err = %v, want ErrNotLastSlide", err)
	}
	if client.callCount() != 0 {
		t.Error("submit reached the client off the last slide")
	}
}

func TestSubmitRequiresConfirmation(t *testing.T) {
	client := &fakeSubmitter{}
	s := New(testQuestions(), Config{Client: client, Identity: StaticIdentity("u-1")})
	defer s.Close()
	s.Start()
	advanceToEnd(s)

	if err := s.Submit(context.Background()); !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("err = %v, want ErrNotConfirmed", err)
	}
	if client.callCount() != 0 {
		t.Error("unconfirmed submit reached the client")
	}
}

func TestSubmitMissingIdentity(t *testing.T) {
	client := &fakeSubmitter{}
	notifier := &recordingNotifier{}
	s := New(testQuestions(), Config{
		Client:   client,
		Identity: StaticIdentity(""),
		Notifier: notifier,
	})
	defer s.Close()
	s.Start()
	advanceToEnd(s)
	s.Confirm()

	if err := s.Submit(context.Background()); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("err = %v, want ErrMissingIdentity", err)
	}
	if client.callCount() != 0 {
		t.Error("submit without identity reached the client")
	}
	if notifier.count() == 0 {
		t.Error("missing identity raised no notification")
	}
	if got := s.Phase(); got != PhaseAnswering {
		t.Errorf("phase = %v, want answering", got)
	}
}

func TestSubmitSuccessResetsAnswers(t *testing.T) {
	questions := testQuestions()
	client := &fakeSubmitter{}
	deck := NewSlideDeck(len(questions))
	s := New(questions, Config{
		Navigator:  deck,
		Client:     client,
		Identity:   StaticIdentity("u-42"),
		ResetDelay: 20 * time.Millisecond,
	})
	defer s.Close()
	s.Start()

	s.RecordRating("priceFairness", 7)
	s.RecordText("improvementSuggestion", "more stock")
	advanceToEnd(s)
	s.Confirm()

	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if client.userID != "u-42" {
		t.Errorf("submitted userID = %q, want u-42", client.userID)
	}
	if client.answers["priceFairness"] != 7 {
		t.Errorf("submitted priceFairness = %v, want 7", client.answers["priceFairness"])
	}

	// Answers cleared to the all-default shape immediately.
	if !s.Answers().Equal(model.DefaultAnswers(questions)) {
		t.Errorf("answers after success = %v, want defaults", s.Answers())
	}
	if got := s.Phase(); got != PhaseSubmitted {
		t.Errorf("phase = %v, want submitted", got)
	}

	// The thank-you dwell expires and the session returns to welcome.
	waitFor(t, time.Second, func() bool { return s.Phase() == PhaseWelcome })
	if got := s.Position(); got != 1 {
		t.Errorf("position after reset = %d, want 1", got)
	}
	if got := deck.Current(); got != 1 {
		t.Errorf("deck index after reset = %d, want 1", got)
	}
}

func TestSubmitFailureKeepsAnswers(t *testing.T) {
	client := &fakeSubmitter{err: errors.New("boom")}
	notifier := &recordingNotifier{}
	s := New(testQuestions(), Config{
		Client:   client,
		Identity: StaticIdentity("u-1"),
		Notifier: notifier,
	})
	defer s.Close()
	s.Start()

	s.RecordRating("recommendScore", 9)
	s.RecordText("improvementSuggestion", "keep it")
	advanceToEnd(s)
	before := s.Answers()
	s.Confirm()

	if err := s.Submit(context.Background()); err == nil {
		t.Fatal("Submit succeeded against a failing client")
	}

	if got := s.Phase(); got != PhaseAnswering {
		t.Errorf("phase = %v, want answering", got)
	}
	if !s.Answers().Equal(before) {
		t.Errorf("answers changed across a failed submit: %v != %v", s.Answers(), before)
	}
	if notifier.count() == 0 {
		t.Error("failed submit raised no notification")
	}
}

func TestCloseCancelsReset(t *testing.T) {
	client := &fakeSubmitter{}
	s := New(testQuestions(), Config{
		Client:     client,
		Identity:   StaticIdentity("u-1"),
		ResetDelay: 20 * time.Millisecond,
	})
	s.Start()
	advanceToEnd(s)
	s.Confirm()

	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Tearing the view down before the dwell expires discards the reset.
	s.Close()
	time.Sleep(60 * time.Millisecond)
	if got := s.Phase(); got != PhaseSubmitted {
		t.Errorf("phase after close = %v, want submitted (reset discarded)", got)
	}
}

type failingFetcher struct{}

func (failingFetcher) FetchQuestions(ctx context.Context) ([]model.Question, error) {
	return nil, errors.New("store unreachable")
}

func TestLoadFetchFailureDegrades(t *testing.T) {
	s := Load(context.Background(), failingFetcher{}, Config{})
	defer s.Close()

	if got := s.Total(); got != 0 {
		t.Errorf("total = %d, want 0", got)
	}
	if s.IsLastSlide() {
		t.Error("IsLastSlide() = true with no questions")
	}

	// With nothing to show, submit can never become reachable.
	s.Start()
	s.Confirm()
	if err := s.Submit(context.Background()); !errors.Is(err, ErrNotLastSlide) {
		t.Errorf("err = %v, want ErrNotLastSlide", err)
	}
}
