package domain

import (
	"context"
	"time"
)

// FoodNutritionProfile describes a food's nutrition per 100 grams
type FoodNutritionProfile struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Name           string    `bson:"name" json:"name" validate:"required,max=200"`
	Brand          string    `bson:"brand,omitempty" json:"brand,omitempty" validate:"max=200"`
	CaloriesPer100 float64   `bson:"calories_per_100" json:"calories_per_100" validate:"gte=0,lte=1000"`
	ProteinPer100  float64   `bson:"protein_per_100" json:"protein_per_100" validate:"gte=0,lte=100"`
	CarbsPer100    float64   `bson:"carbs_per_100" json:"carbs_per_100" validate:"gte=0,lte=100"`
	FatPer100      float64   `bson:"fat_per_100" json:"fat_per_100" validate:"gte=0,lte=100"`
	CreatedBy      string    `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// FoodConsumptionRecord is one logged portion of a food
type FoodConsumptionRecord struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	UserID     string     `bson:"user_id" json:"user_id"`
	FoodID     string     `bson:"food_id" json:"food_id"`
	Quantity   float64    `bson:"quantity" json:"quantity"` // grams
	MealBucket MealBucket `bson:"meal" json:"meal"`
	Date       time.Time  `bson:"date" json:"date"`
}

// FoodEntryInput is what a user submits when logging food
type FoodEntryInput struct {
	FoodID   string      `json:"food_id" validate:"required"`
	Quantity float64     `json:"quantity" validate:"required,gt=0,lte=10000"`
	Meal     *MealBucket `json:"meal" validate:"required"`
	Date     *time.Time  `json:"date,omitempty"`
}

// ConsumedFood joins a consumption record to the nutrition profile it references
type ConsumedFood struct {
	Record FoodConsumptionRecord
	Food   FoodNutritionProfile
}

// FoodRepository defines the interface for the food catalogue
type FoodRepository interface {
	Create(ctx context.Context, food *FoodNutritionProfile) error
	GetByID(ctx context.Context, id string) (*FoodNutritionProfile, error)

	// GetByIDs returns the foods found, keyed by ID. Missing IDs are simply absent.
	GetByIDs(ctx context.Context, ids []string) (map[string]*FoodNutritionProfile, error)
}

// FoodEntryRepository defines the interface for consumption record persistence
type FoodEntryRepository interface {
	Create(ctx context.Context, entry *FoodConsumptionRecord) error
	GetByID(ctx context.Context, id string) (*FoodConsumptionRecord, error)
	Delete(ctx context.Context, id string) error

	// ListByUserAndDay returns records whose date falls in [day, day+24h)
	ListByUserAndDay(ctx context.Context, userID string, day time.Time) ([]FoodConsumptionRecord, error)
}
