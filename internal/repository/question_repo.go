package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveywizard/internal/model"
)

// QuestionRepo handles MongoDB operations for survey questions
type QuestionRepo interface {
	Upsert(ctx context.Context, question *model.Question) error
	GetAll(ctx context.Context) ([]model.Question, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("surveyquestions"),
	}
}

// Upsert writes the question under its field name, replacing any existing
// question with the same key.
func (r *questionRepo) Upsert(ctx context.Context, question *model.Question) error {
	doc := bson.M{
		"_id":       question.FieldName,
		"text":      question.Text,
		"fieldName": question.FieldName,
		"type":      question.Type,
		"order":     question.Order,
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": question.FieldName}, doc, opts)
	return err
}

func (r *questionRepo) GetAll(ctx context.Context) ([]model.Question, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
