package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const foodsCollection = "foods"

// MongoFoodRepository implements domain.FoodRepository using MongoDB
type MongoFoodRepository struct {
	collection *mongo.Collection
}

// NewMongoFoodRepository creates a new MongoDB food repository
func NewMongoFoodRepository(db *mongo.Database) *MongoFoodRepository {
	collection := db.Collection(foodsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})

	return &MongoFoodRepository{
		collection: collection,
	}
}

// Create stores a new food nutrition profile
func (r *MongoFoodRepository) Create(ctx context.Context, food *domain.FoodNutritionProfile) error {
	if food.ID == "" {
		food.ID = newID()
	}
	food.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, food); err != nil {
		return fmt.Errorf("failed to insert food: %w", err)
	}
	return nil
}

// GetByID returns domain.ErrNotFound when the food does not exist
func (r *MongoFoodRepository) GetByID(ctx context.Context, id string) (*domain.FoodNutritionProfile, error) {
	var food domain.FoodNutritionProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&food)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find food: %w", err)
	}
	return &food, nil
}

// GetByIDs loads several foods in one round trip
func (r *MongoFoodRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.FoodNutritionProfile, error) {
	foods := make(map[string]*domain.FoodNutritionProfile, len(ids))
	if len(ids) == 0 {
		return foods, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find foods: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var food domain.FoodNutritionProfile
		if err := cursor.Decode(&food); err != nil {
			return nil, fmt.Errorf("failed to decode food: %w", err)
		}
		foods[food.ID] = &food
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate foods: %w", err)
	}
	return foods, nil
}

// FindCatalogueByName returns the shared (creator-less) food with this exact
// name, or domain.ErrNotFound
func (r *MongoFoodRepository) FindCatalogueByName(ctx context.Context, name string) (*domain.FoodNutritionProfile, error) {
	var food domain.FoodNutritionProfile
	err := r.collection.FindOne(ctx, bson.M{
		"name":       name,
		"created_by": bson.M{"$exists": false},
	}).Decode(&food)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find food: %w", err)
	}
	return &food, nil
}
