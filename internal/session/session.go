package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"surveywizard/internal/model"
)

// Phase is the lifecycle stage of a survey session.
type Phase string

const (
	PhaseWelcome    Phase = "welcome"
	PhaseAnswering  Phase = "answering"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
)

// ResetDelay is how long the thank-you view stays up before the session
// returns to the welcome screen.
const ResetDelay = 5 * time.Second

var (
	ErrNotAnswering    = errors.New("session is not in the answering phase")
	ErrNotLastSlide    = errors.New("submit is only available on the last slide")
	ErrNotConfirmed    = errors.New("submit requires confirmation")
	ErrMissingIdentity = errors.New("no visitor id resolved")
	ErrUnknownField    = errors.New("unknown question field")
)

// Notifier surfaces user-visible messages (the wizard's alert box).
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Config wires the session's collaborators.
type Config struct {
	Navigator Navigator
	Client    SubmissionClient
	Identity  IdentityProvider
	Notifier  Notifier
	// ResetDelay overrides the thank-you dwell; zero means ResetDelay.
	ResetDelay time.Duration
}

// Session owns the answer state, slide position and submission lifecycle
// for one visitor walking through the wizard. All transitions come from
// serialized user interactions; the mutex only guards against the reset
// timer firing concurrently.
type Session struct {
	mu sync.Mutex

	questions []model.Question
	answers   model.AnswerMap
	position  int // 1-based, always within [1, len(questions)]
	phase     Phase
	confirmed bool

	navigator Navigator
	client    SubmissionClient
	identity  IdentityProvider
	notifier  Notifier

	resetDelay time.Duration
	resetTimer *time.Timer
	closed     bool
}

// New builds a session over a fetched question set. The set is treated as
// immutable for the session's lifetime.
func New(questions []model.Question, cfg Config) *Session {
	s := &Session{
		questions:  questions,
		answers:    model.DefaultAnswers(questions),
		position:   1,
		phase:      PhaseWelcome,
		navigator:  cfg.Navigator,
		client:     cfg.Client,
		identity:   cfg.Identity,
		notifier:   cfg.Notifier,
		resetDelay: cfg.ResetDelay,
	}
	if s.resetDelay <= 0 {
		s.resetDelay = ResetDelay
	}
	if s.navigator != nil {
		s.navigator.OnChange(s.followNavigator)
	}
	return s
}

// Load fetches the question set and builds a session over it. A fetch
// failure is logged and yields a session with no questions, so the wizard
// has nothing to show; this is the accepted degradation.
func Load(ctx context.Context, fetcher QuestionFetcher, cfg Config) *Session {
	questions, err := fetcher.FetchQuestions(ctx)
	if err != nil {
		log.Printf("Error fetching questions: %v", err)
		questions = nil
	}
	return New(questions, cfg)
}

// Start moves the session from the welcome screen into the wizard.
func (s *Session) Start() {
	s.mu.Lock()
	if s.phase != PhaseWelcome {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseAnswering
	s.position = 1
	nav := s.navigator
	s.mu.Unlock()

	if nav != nil {
		nav.SlideTo(1)
	}
}

// RecordRating stores a rating answer. Later writes replace earlier ones.
func (s *Session) RecordRating(fieldName string, value int) error {
	return s.record(fieldName, value)
}

// RecordText stores a free-text answer as typed, untrimmed.
func (s *Session) RecordText(fieldName, value string) error {
	return s.record(fieldName, value)
}

func (s *Session) record(fieldName string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseAnswering {
		return ErrNotAnswering
	}
	if _, ok := s.answers[fieldName]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldName)
	}
	s.answers[fieldName] = value
	return nil
}

// Advance moves one slide forward, clamped to the last slide. The skip
// button is wired to this; answering never advances on its own.
func (s *Session) Advance() {
	s.mu.Lock()
	if s.phase != PhaseAnswering {
		s.mu.Unlock()
		return
	}
	nav := s.navigator
	if nav == nil {
		if s.position < len(s.questions) {
			s.position++
		}
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// The deck clamps at the last slide and reports the move back through
	// its change event, which keeps s.position in lockstep.
	nav.Advance()
}

// followNavigator tracks the carousel's change events.
func (s *Session) followNavigator(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 1 {
		index = 1
	}
	if total := len(s.questions); total > 0 && index > total {
		index = total
	}
	s.position = index
}

// IsLastSlide reports whether the submit control should be visible.
func (s *Session) IsLastSlide() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions) > 0 && s.position == len(s.questions)
}

// Confirm records that the visitor accepted the "this is final" prompt.
// Submit refuses to run without it.
func (s *Session) Confirm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmed = true
}

// Submit sends the collected answers. On success the answers reset to
// their defaults, the thank-you view shows, and the session returns to
// the welcome screen after the reset delay. On failure the session drops
// back to answering with every answer intact so the visitor can retry;
// retries are always a fresh user action, never automatic.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.phase != PhaseAnswering {
		s.mu.Unlock()
		return ErrNotAnswering
	}
	if !(len(s.questions) > 0 && s.position == len(s.questions)) {
		s.mu.Unlock()
		return ErrNotLastSlide
	}
	if !s.confirmed {
		s.mu.Unlock()
		return ErrNotConfirmed
	}
	identity := s.identity
	s.mu.Unlock()

	userID := ""
	if identity != nil {
		id, err := identity.Resolve(ctx)
		if err != nil {
			log.Printf("identity resolution failed: %v", err)
		} else {
			userID = id
		}
	}
	if userID == "" {
		s.notify("User ID not found!")
		return ErrMissingIdentity
	}

	s.mu.Lock()
	s.phase = PhaseSubmitting
	answers := s.answers.Clone()
	client := s.client
	s.mu.Unlock()

	err := client.Submit(ctx, userID, answers)

	s.mu.Lock()
	if err != nil {
		s.phase = PhaseAnswering
		s.mu.Unlock()
		s.notify("An error occurred while submitting the survey. Please try again.")
		return err
	}

	s.answers = model.DefaultAnswers(s.questions)
	s.confirmed = false
	s.phase = PhaseSubmitted
	s.scheduleResetLocked()
	s.mu.Unlock()
	return nil
}

// scheduleResetLocked arms the thank-you dwell timer. Caller holds s.mu.
func (s *Session) scheduleResetLocked() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.resetTimer = time.AfterFunc(s.resetDelay, s.reset)
}

// reset returns the session to the welcome screen after the thank-you
// dwell. It does nothing if the session was closed in the meantime.
func (s *Session) reset() {
	s.mu.Lock()
	if s.closed || s.phase != PhaseSubmitted {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseWelcome
	s.position = 1
	nav := s.navigator
	s.mu.Unlock()

	if nav != nil {
		nav.SlideTo(1)
	}
}

// Close tears the session down and discards any pending reset, so the
// timer can never fire against a destroyed view.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

// Phase returns the current lifecycle stage.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Position returns the 1-based current slide.
func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Total returns the number of slides.
func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Pager returns the "current/total" text shown under the deck.
func (s *Session) Pager() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%d/%d", s.position, len(s.questions))
}

// Answers returns a copy of the current answer map.
func (s *Session) Answers() model.AnswerMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

func (s *Session) notify(message string) {
	if s.notifier != nil {
		s.notifier.Notify(message)
	}
}
