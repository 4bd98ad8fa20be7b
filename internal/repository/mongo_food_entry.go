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

const foodEntriesCollection = "food_entries"

// MongoFoodEntryRepository implements domain.FoodEntryRepository using MongoDB
type MongoFoodEntryRepository struct {
	collection *mongo.Collection
}

// NewMongoFoodEntryRepository creates a new MongoDB food entry repository
func NewMongoFoodEntryRepository(db *mongo.Database) *MongoFoodEntryRepository {
	collection := db.Collection(foodEntriesCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "date", Value: 1},
		},
	})

	return &MongoFoodEntryRepository{
		collection: collection,
	}
}

// Create stores a consumption record
func (r *MongoFoodEntryRepository) Create(ctx context.Context, entry *domain.FoodConsumptionRecord) error {
	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert food entry: %w", err)
	}
	return nil
}

// GetByID returns domain.ErrNotFound when the entry does not exist
func (r *MongoFoodEntryRepository) GetByID(ctx context.Context, id string) (*domain.FoodConsumptionRecord, error) {
	var entry domain.FoodConsumptionRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find food entry: %w", err)
	}
	return &entry, nil
}

// Delete removes an entry, returning domain.ErrNotFound if nothing matched
func (r *MongoFoodEntryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete food entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUserAndDay returns records in [day, day+24h) where day is the UTC
// midnight of the given time, ordered by time of consumption
func (r *MongoFoodEntryRepository) ListByUserAndDay(ctx context.Context, userID string, day time.Time) ([]domain.FoodConsumptionRecord, error) {
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	filter := bson.M{
		"user_id": userID,
		"date": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find food entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []domain.FoodConsumptionRecord{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode food entries: %w", err)
	}
	return entries, nil
}
