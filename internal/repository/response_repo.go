package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveywizard/internal/model"
)

// ResponseRepo handles MongoDB operations for submitted surveys
type ResponseRepo interface {
	Upsert(ctx context.Context, response *model.SurveyResponse) error
	GetByUserID(ctx context.Context, userID string) (*model.SurveyResponse, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("surveys"),
	}
}

// Upsert stores the response under the visitor id. Last write wins: a
// repeat submission from the same visitor replaces the earlier document.
func (r *responseRepo) Upsert(ctx context.Context, response *model.SurveyResponse) error {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}

	doc := bson.M{
		"_id":           response.UserID,
		"userId":        response.UserID,
		"surveyAnswers": response.SurveyAnswers,
		"submittedAt":   response.SubmittedAt,
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": response.UserID}, doc, opts)
	return err
}

func (r *responseRepo) GetByUserID(ctx context.Context, userID string) (*model.SurveyResponse, error) {
	var response model.SurveyResponse
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}
