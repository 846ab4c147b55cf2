package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveywizard/internal/config"
	"surveywizard/internal/repository"
	"surveywizard/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	questionRepo := repository.NewQuestionRepo(db)

	for i := range service.DefaultQuestions {
		q := service.DefaultQuestions[i]
		if err := questionRepo.Upsert(ctx, &q); err != nil {
			log.Fatalf("Failed to upsert question %q: %v", q.FieldName, err)
		}
	}

	fmt.Printf("Successfully seeded %d default questions\n", len(service.DefaultQuestions))
}
