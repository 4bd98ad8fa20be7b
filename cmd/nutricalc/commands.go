package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
	"github.com/mansoorceksport/nutrimetrics/internal/middleware"
	"github.com/spf13/cobra"
)

// cliState holds the flags shared by every subcommand
type cliState struct {
	now string
}

// engine returns an engine pinned to --now, or the wall clock when unset
func (s *cliState) engine() (*engine.Engine, error) {
	if s.now == "" {
		return engine.New(), nil
	}
	t, err := parseDate(s.now)
	if err != nil {
		return nil, fmt.Errorf("--now: %w", err)
	}
	return engine.NewWithClock(func() time.Time { return t }), nil
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:           "nutricalc",
		Short:         "Offline calculator for calorie goals, body metrics, weight trends and daily intake",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&state.now, "now", "", "evaluate as of this date (YYYY-MM-DD or RFC3339)")

	root.AddCommand(
		newCaloriesCmd(state),
		newBodyCmd(),
		newTrendCmd(state),
		newProgressCmd(state),
		newStatsCmd(state),
		newChartCmd(state),
		newDailyCmd(),
		newTokenCmd(),
	)
	return root
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCaloriesCmd(state *cliState) *cobra.Command {
	var (
		sex, activity, goal string
		age                 int
		weight, height      float64
	)

	cmd := &cobra.Command{
		Use:   "calories",
		Short: "Compute BMR, TDEE and the daily calorie goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.engine()
			if err != nil {
				return err
			}
			profile, err := profileFromFlags(eng, sex, age, activity, goal)
			if err != nil {
				return err
			}
			breakdown, err := eng.MetabolicBreakdown(profile, height, weight)
			if err != nil {
				return err
			}
			return printJSON(cmd, breakdown)
		},
	}

	cmd.Flags().StringVar(&sex, "sex", "", "male or female")
	cmd.Flags().IntVar(&age, "age", 0, "age in years")
	cmd.Flags().StringVar(&activity, "activity", "Sedentary", "activity level name or code (1-5)")
	cmd.Flags().StringVar(&goal, "goal", "MaintainWeight", "weight goal name or code (1-3)")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	_ = cmd.MarkFlagRequired("sex")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func profileFromFlags(eng *engine.Engine, sex string, age int, activity, goal string) (domain.UserProfile, error) {
	s, err := domain.ParseSex(sex)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if age <= 0 {
		return domain.UserProfile{}, fmt.Errorf("age must be positive")
	}
	level, err := domain.ParseActivityLevel(activity)
	if err != nil {
		return domain.UserProfile{}, err
	}
	g, err := domain.ParseWeightGoal(goal)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return domain.UserProfile{
		Sex:           s,
		DateOfBirth:   eng.Now().AddDate(-age, 0, 0),
		ActivityLevel: level,
		WeightGoal:    g,
	}, nil
}

func newBodyCmd() *cobra.Command {
	var (
		sex                     string
		weight, height, bodyFat float64
	)

	cmd := &cobra.Command{
		Use:   "body",
		Short: "Compute BMI and FFMI with their categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := domain.ParseSex(sex)
			if err != nil {
				return err
			}
			metrics, err := engine.CalculateBodyMetricsWithBodyFat(weight, height, s, bodyFat)
			if err != nil {
				return err
			}
			return printJSON(cmd, metrics)
		},
	}

	cmd.Flags().StringVar(&sex, "sex", "", "male or female")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&bodyFat, "body-fat", engine.DefaultBodyFatPercentage, "body fat percentage")
	_ = cmd.MarkFlagRequired("sex")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func newTrendCmd(state *cliState) *cobra.Command {
	var file, period string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Weight change and velocity over a look-back window",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.engine()
			if err != nil {
				return err
			}
			p, err := domain.ParsePeriod(period)
			if err != nil {
				return err
			}
			ms, err := loadMeasurements(file)
			if err != nil {
				return err
			}
			return printJSON(cmd, eng.CalculateWeightTrend(ms, p))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "measurements.yaml", "measurements YAML file")
	cmd.Flags().StringVar(&period, "period", string(domain.PeriodWeek), "week, month, quarter or year")
	return cmd
}

func newProgressCmd(state *cliState) *cobra.Command {
	var (
		file, goal string
		target     float64
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Progress towards a target weight",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.engine()
			if err != nil {
				return err
			}
			ms, err := loadMeasurements(file)
			if err != nil {
				return err
			}

			var targetPtr *float64
			if target > 0 {
				targetPtr = &target
			}
			var goalPtr *domain.WeightGoal
			if goal != "" {
				g, err := domain.ParseWeightGoal(goal)
				if err != nil {
					return err
				}
				goalPtr = &g
			}

			progress := eng.CalculateWeightProgress(ms, targetPtr, goalPtr)
			return printJSON(cmd, struct {
				domain.WeightProgress
				Message string `json:"message"`
			}{progress, engine.MotivationalMessage(progress, goalPtr)})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "measurements.yaml", "measurements YAML file")
	cmd.Flags().Float64Var(&target, "target", 0, "target weight in kg")
	cmd.Flags().StringVar(&goal, "goal", "", "weight goal name or code (1-3)")
	return cmd
}

func newStatsCmd(state *cliState) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Tracking streaks and consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.engine()
			if err != nil {
				return err
			}
			ms, err := loadMeasurements(file)
			if err != nil {
				return err
			}
			return printJSON(cmd, eng.CalculateProgressStats(ms))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "measurements.yaml", "measurements YAML file")
	return cmd
}

func newChartCmd(state *cliState) *cobra.Command {
	var (
		file   string
		target float64
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart points with an optional goal line",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.engine()
			if err != nil {
				return err
			}
			ms, err := loadMeasurements(file)
			if err != nil {
				return err
			}
			var targetPtr *float64
			if target > 0 {
				targetPtr = &target
			}
			return printJSON(cmd, eng.PrepareChartData(ms, targetPtr))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "measurements.yaml", "measurements YAML file")
	cmd.Flags().Float64Var(&target, "target", 0, "target weight in kg")
	return cmd
}

func newDailyCmd() *cobra.Command {
	var (
		file string
		goal int
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Sum a day of food entries per meal against a calorie goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			consumed, fileGoal, err := loadFoods(file)
			if err != nil {
				return err
			}
			calorieGoal := engine.DefaultDailyCalories
			switch {
			case cmd.Flags().Changed("goal"):
				calorieGoal = goal
			case fileGoal > 0:
				calorieGoal = fileGoal
			}

			stats := engine.CalculateDailyStats(consumed, calorieGoal)
			return printJSON(cmd, struct {
				domain.DailyStats
				Exceeded bool `json:"exceeded"`
			}{stats, stats.Exceeded()})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "foods.yaml", "food entries YAML file")
	cmd.Flags().IntVar(&goal, "goal", 0, "daily calorie goal (overrides the file)")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		secret, userID string
		ttl            time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development bearer token for the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}
			token, err := middleware.SignToken(secret, userID, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "JWT_SECRET of the target API")
	cmd.Flags().StringVar(&userID, "user", "dev-user", "user ID to embed")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
