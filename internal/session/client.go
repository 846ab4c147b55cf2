package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"surveywizard/internal/model"
)

// SubmissionClient delivers a finished answer set to the service. A
// failed delivery is terminal per attempt; nothing retries automatically.
type SubmissionClient interface {
	Submit(ctx context.Context, userID string, answers model.AnswerMap) error
}

// QuestionFetcher loads the question set the wizard walks through.
type QuestionFetcher interface {
	FetchQuestions(ctx context.Context) ([]model.Question, error)
}

// Client talks to the survey service over HTTP. It implements
// SubmissionClient, QuestionFetcher and AuthoringClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client against the service base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchQuestions returns the full question set, sorted by order. An empty
// store (HTTP 404) yields an empty set, not an error.
func (c *Client) FetchQuestions(ctx context.Context) ([]model.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get-questions", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get-questions: unexpected status %d", resp.StatusCode)
	}

	var questions []model.Question
	if err := json.NewDecoder(resp.Body).Decode(&questions); err != nil {
		return nil, err
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	return questions, nil
}

// Submit posts the answer set keyed by the visitor id.
func (c *Client) Submit(ctx context.Context, userID string, answers model.AnswerMap) error {
	payload := model.SubmitSurveyRequest{
		UserID:        userID,
		SurveyAnswers: answers,
	}
	return c.post(ctx, "/submit-survey", payload)
}

// AddQuestion stores a fully-formed question (order already assigned).
func (c *Client) AddQuestion(ctx context.Context, question *model.Question) error {
	return c.post(ctx, "/add-question", question)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
