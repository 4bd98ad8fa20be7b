package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
	"github.com/mansoorceksport/nutrimetrics/internal/repository"
	"github.com/mansoorceksport/nutrimetrics/internal/service"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	userID := flag.String("user", "", "Only recalculate this user (default: every profile)")
	mongoURI := flag.String("mongo", "mongodb://localhost:27017", "MongoDB connection URI")
	dbName := flag.String("db", "nutrimetrics", "Database name")
	redisAddr := flag.String("redis", "", "Redis address; when set, cached dashboards are invalidated")
	dryRun := flag.Bool("dry-run", false, "Show what would change without writing")
	flag.Parse()

	log := logger.NewDevelopment()
	if err := run(log, *userID, *mongoURI, *dbName, *redisAddr, *dryRun); err != nil {
		log.Errorw("recalculation failed", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred disconnects always run
func run(log *logger.Logger, userID, mongoURI, dbName, redisAddr string, dryRun bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)
	profiles := repository.NewMongoProfileRepository(db)
	measurements := repository.NewMongoMeasurementRepository(db)

	var cache domain.CacheRepository
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		cache = repository.NewRedisCacheRepository(rdb)
	}

	eng := engine.New()
	profileService := service.NewProfileService(profiles, measurements, cache, eng, nil, log)

	userIDs := []string{userID}
	if userID == "" {
		if userIDs, err = profiles.ListUserIDs(ctx); err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
	}
	log.Infow("recalculating calorie goals", "profiles", len(userIDs), "dry_run", dryRun)

	var changed, failed int
	for _, id := range userIDs {
		profile, err := profiles.GetByUserID(ctx, id)
		if err != nil {
			log.Errorw("failed to load profile", "user_id", id, "error", err)
			failed++
			continue
		}

		if dryRun {
			latest, err := measurements.GetLatestByUser(ctx, id)
			if err != nil {
				log.Errorw("failed to load latest measurement", "user_id", id, "error", err)
				failed++
				continue
			}
			kcal, err := eng.CalculateDailyCalories(*profile, latest)
			if err != nil {
				log.Errorw("failed to compute goal", "user_id", id, "error", err)
				failed++
				continue
			}
			if kcal != profile.DailyCalorieGoal {
				log.Infow("would update goal", "user_id", id, "from", profile.DailyCalorieGoal, "to", kcal)
				changed++
			}
			continue
		}

		kcal, err := profileService.RecalculateCalorieGoal(ctx, id)
		if err != nil {
			log.Errorw("failed to recalculate goal", "user_id", id, "error", err)
			failed++
			continue
		}
		if kcal != profile.DailyCalorieGoal {
			changed++
		}
	}

	log.Infow("recalculation complete", "processed", len(userIDs), "changed", changed, "failed", failed)
	if dryRun {
		fmt.Println("This was a dry run. No changes were made.")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles failed", failed, len(userIDs))
	}
	return nil
}
