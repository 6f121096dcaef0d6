package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// seedTables is the demo dataset: a few days of workout, food, and mood
// logging to exercise the tool layer against.
var seedTables = []struct {
	spec types.TableSpec
	rows []types.Row
}{
	{
		spec: types.TableSpec{
			Name:        "workouts",
			Description: "Strength training sessions",
			Purpose:     "Track lifting progress over time",
			Columns: []types.ColumnSpec{
				{Name: "exercise", Type: types.TypeText, Description: "Exercise performed", Required: true},
				{Name: "sets", Type: types.TypeInteger, Description: "Number of sets"},
				{Name: "reps", Type: types.TypeInteger, Description: "Reps per set"},
				{Name: "weight", Type: types.TypeReal, Description: "Working weight", Unit: "lbs"},
			},
		},
		rows: []types.Row{
			{"date": "2023-06-05 09:00", "exercise": "deadlift", "sets": 3, "reps": 5, "weight": 225.0},
			{"date": "2023-06-07 09:15", "exercise": "squat", "sets": 5, "reps": 5, "weight": 185.0},
			{"date": "2023-06-08 10:30", "exercise": "bench press", "sets": 3, "reps": 8, "weight": 155.0},
		},
	},
	{
		spec: types.TableSpec{
			Name:        "food",
			Description: "Meals and macro estimates",
			Purpose:     "Track protein intake against training days",
			Columns: []types.ColumnSpec{
				{Name: "dish_name", Type: types.TypeText, Description: "What was eaten", Required: true},
				{Name: "meal_type", Type: types.TypeText, Description: "breakfast, lunch, dinner, or snack"},
				{Name: "estimated_calories", Type: types.TypeInteger, Description: "Estimated calories", Unit: "kcal"},
				{Name: "protein_grams", Type: types.TypeReal, Description: "Estimated protein", Unit: "g"},
			},
		},
		rows: []types.Row{
			{"date": "2023-06-07 12:30", "dish_name": "chicken salad", "meal_type": "lunch", "estimated_calories": 520, "protein_grams": 35.0},
			{"date": "2023-06-07 19:00", "dish_name": "salmon and rice", "meal_type": "dinner", "estimated_calories": 680, "protein_grams": 42.0},
		},
	},
	{
		spec: types.TableSpec{
			Name:        "mood",
			Description: "Daily emotional state check-ins",
			Purpose:     "Correlate mood with sleep and training",
			Columns: []types.ColumnSpec{
				{Name: "mood_rating", Type: types.TypeInteger, Description: "Mood on a 1-10 scale", Unit: "scale_1_10", Required: true},
				{Name: "energized", Type: types.TypeBoolean, Description: "Felt energized during the day"},
				{Name: "notes", Type: types.TypeText, Description: "Free-form notes"},
			},
		},
		rows: []types.Row{
			{"date": "2023-06-07", "mood_rating": 8, "energized": true, "notes": "good training day"},
			{"date": "2023-06-08", "mood_rating": 6, "energized": false},
		},
	},
}

// Seed creates the demo tables and rows. Tables that already exist are
// skipped, so Seed is safe to re-run.
func (s *Store) Seed(ctx context.Context) error {
	for _, entry := range seedTables {
		s.mu.RLock()
		exists, err := tableExists(ctx, s.db, entry.spec.Name)
		s.mu.RUnlock()
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		if err := s.CreateTable(ctx, entry.spec); err != nil {
			return fmt.Errorf("seeding %s: %w", entry.spec.Name, err)
		}
		if _, err := s.Insert(ctx, entry.spec.Name, entry.rows); err != nil {
			return fmt.Errorf("seeding %s rows: %w", entry.spec.Name, err)
		}
	}
	return nil
}
