package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/repository"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

type catalogue struct {
	Foods []struct {
		Name     string  `yaml:"name"`
		Calories float64 `yaml:"calories"`
		Protein  float64 `yaml:"protein"`
		Carbs    float64 `yaml:"carbs"`
		Fat      float64 `yaml:"fat"`
	} `yaml:"foods"`
}

// parseCatalogue decodes the embedded catalogue into nutrition profiles
func parseCatalogue(data []byte) ([]domain.FoodNutritionProfile, error) {
	var c catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}

	foods := make([]domain.FoodNutritionProfile, 0, len(c.Foods))
	for _, f := range c.Foods {
		if f.Name == "" || f.Calories < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
			return nil, fmt.Errorf("invalid catalogue entry %q", f.Name)
		}
		foods = append(foods, domain.FoodNutritionProfile{
			Name:           f.Name,
			CaloriesPer100: f.Calories,
			ProteinPer100:  f.Protein,
			CarbsPer100:    f.Carbs,
			FatPer100:      f.Fat,
		})
	}
	return foods, nil
}

func main() {
	mongoURI := flag.String("mongo", "mongodb://localhost:27017", "MongoDB connection URI")
	dbName := flag.String("db", "nutrimetrics", "Database name")
	flag.Parse()

	log := logger.NewDevelopment()

	foods, err := parseCatalogue(catalogueYAML)
	if err != nil {
		log.Fatalw("failed to load catalogue", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoURI))
	if err != nil {
		log.Fatalw("failed to connect to MongoDB", "error", err)
	}
	defer client.Disconnect(context.Background())

	repo := repository.NewMongoFoodRepository(client.Database(*dbName))

	var created, skipped int
	for i := range foods {
		food := foods[i]
		if _, err := repo.FindCatalogueByName(ctx, food.Name); err == nil {
			log.Debugw("skipping existing food", "name", food.Name)
			skipped++
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			log.Fatalw("failed to look up food", "name", food.Name, "error", err)
		}

		if err := repo.Create(ctx, &food); err != nil {
			log.Errorw("failed to create food", "name", food.Name, "error", err)
			continue
		}
		log.Infow("created food", "name", food.Name, "id", food.ID)
		created++
	}

	log.Infow("seeding foods complete", "created", created, "skipped", skipped)
}
