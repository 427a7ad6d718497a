package sink

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/fleet-telematics-generator/internal/models"
)

// MongoSink inserts readings into a MongoDB collection.
type MongoSink struct {
	collection *mongo.Collection
}

// NewMongoSink connects to MongoDB, verifies the connection with a ping and
// returns a sink writing into db/collection.
func NewMongoSink(uri, db, collection string) (*MongoSink, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &MongoSink{collection: client.Database(db).Collection(collection)}, nil
}

// Persist inserts all readings in one batch.
func (s *MongoSink) Persist(readings []models.Reading) error {
	if s.collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	docs := make([]interface{}, len(readings))
	for i, r := range readings {
		docs[i] = r
	}
	if _, err := s.collection.InsertMany(context.Background(), docs); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	log.WithFields(log.Fields{
		"inserted":   len(readings),
		"collection": s.collection.Name(),
	}).Info("Mongo sink completed")
	return nil
}
