package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"surveywizard/internal/model"
)

const questionListKey = "surveyquestions:all"
const questionListTTL = 30 * time.Second

// QuestionCache keeps the full question list hot so the wizard's initial
// fetch does not hit Mongo on every load.
type QuestionCache interface {
	Get(ctx context.Context) ([]model.Question, error)
	Set(ctx context.Context, questions []model.Question) error
	Invalidate(ctx context.Context) error
}

type questionCache struct {
	client *redis.Client
}

// NewQuestionCache creates a new question list cache
func NewQuestionCache(client *redis.Client) QuestionCache {
	return &questionCache{
		client: client,
	}
}

// Get returns the cached list, or nil on a miss.
func (c *questionCache) Get(ctx context.Context) ([]model.Question, error) {
	data, err := c.client.Get(ctx, questionListKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var questions []model.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *questionCache) Set(ctx context.Context, questions []model.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, questionListKey, data, questionListTTL).Err()
}

func (c *questionCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, questionListKey).Err()
}
