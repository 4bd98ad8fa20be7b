package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const measurementsCollection = "measurements"

// MongoMeasurementRepository implements domain.MeasurementRepository using MongoDB
type MongoMeasurementRepository struct {
	collection *mongo.Collection
}

// NewMongoMeasurementRepository creates a new MongoDB measurement repository
func NewMongoMeasurementRepository(db *mongo.Database) *MongoMeasurementRepository {
	collection := db.Collection(measurementsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Latest-first lookups per user
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "date", Value: -1},
		},
	})

	return &MongoMeasurementRepository{
		collection: collection,
	}
}

// Create appends a measurement. Measurements are never updated in place.
func (r *MongoMeasurementRepository) Create(ctx context.Context, m *domain.Measurement) error {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert measurement: %w", err)
	}
	return nil
}

// ListByUser returns the full history ordered by date ascending
func (r *MongoMeasurementRepository) ListByUser(ctx context.Context, userID string) ([]domain.Measurement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find measurements: %w", err)
	}
	defer cursor.Close(ctx)

	measurements := []domain.Measurement{}
	if err := cursor.All(ctx, &measurements); err != nil {
		return nil, fmt.Errorf("failed to decode measurements: %w", err)
	}
	return measurements, nil
}

// GetLatestByUser returns the most recent measurement, or nil if none exist
func (r *MongoMeasurementRepository) GetLatestByUser(ctx context.Context, userID string) (*domain.Measurement, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	var m domain.Measurement
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest measurement: %w", err)
	}
	return &m, nil
}
