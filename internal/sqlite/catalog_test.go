package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

func TestListTablesEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	summaries, err := store.ListTables(ctx)
	require.NoError(t, err)
	require.NotNil(t, summaries)
	require.Empty(t, summaries)
}

func TestListTables(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.CreateTable(ctx, workoutsSpec()))
	require.NoError(t, store.CreateTable(ctx, types.TableSpec{
		Name:        "mood",
		Description: "Mood tracking",
		Columns:     []types.ColumnSpec{{Name: "mood_rating", Type: types.TypeInteger}},
	}))

	summaries, err := store.ListTables(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Ordered by name.
	require.Equal(t, "mood", summaries[0].Name)
	require.Equal(t, "workouts", summaries[1].Name)

	// Column count covers caller-defined columns only, matching the
	// create_table confirmation message.
	require.Equal(t, 1, summaries[0].ColumnCount)
	require.Equal(t, 4, summaries[1].ColumnCount)
	require.Equal(t, "Exercise tracking", summaries[1].Description)
	require.Equal(t, "Get stronger", summaries[1].Purpose)
}

func TestDescribeTable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.CreateTable(ctx, workoutsSpec()))

	for i := 0; i < 5; i++ {
		_, err := store.Insert(ctx, "workouts", []types.Row{
			{"date": "2026-08-01", "exercise": "squat", "sets": i},
		})
		require.NoError(t, err)
	}

	detail, err := store.DescribeTable(ctx, "workouts")
	require.NoError(t, err)
	require.Equal(t, "workouts", detail.Name)
	require.Equal(t, "Exercise tracking", detail.Description)
	require.EqualValues(t, 5, detail.RowCount)

	names := make([]string, len(detail.Columns))
	typesByName := make(map[string]types.ColumnInfo, len(detail.Columns))
	for i, col := range detail.Columns {
		names[i] = col.Name
		typesByName[col.Name] = col
	}
	require.Equal(t, []string{"id", "date", "exercise", "sets", "reps", "weight", "created_at"}, names)

	// Declared types, not storage types.
	require.Equal(t, "TIMESTAMP", typesByName["date"].Type)
	require.Equal(t, "TIMESTAMP", typesByName["created_at"].Type)
	require.Equal(t, "REAL", typesByName["weight"].Type)
	require.Equal(t, "lbs", typesByName["weight"].Unit)
	require.Equal(t, "Exercise name", typesByName["exercise"].Description)

	// Most recent first, capped at the recent row limit.
	require.Len(t, detail.RecentRows, recentRowLimit)
	require.EqualValues(t, 4, detail.RecentRows[0]["sets"])
}

func TestDescribeTableNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.DescribeTable(ctx, "missing")
	require.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestDescribeTableEmptyTableHasNoRecentRows(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.CreateTable(ctx, workoutsSpec()))

	detail, err := store.DescribeTable(ctx, "workouts")
	require.NoError(t, err)
	require.EqualValues(t, 0, detail.RowCount)
	require.Empty(t, detail.RecentRows)
}

func TestMetadataTablesAreHiddenFromCatalog(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.CreateTable(ctx, workoutsSpec()))

	summaries, err := store.ListTables(ctx)
	require.NoError(t, err)
	for _, sum := range summaries {
		require.NotEqual(t, tableMetadataName, sum.Name)
		require.NotEqual(t, columnMetadataName, sum.Name)
	}
}
