package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

func TestMergeLearningsAccumulates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.CreateTable(ctx, workoutsSpec()))

	require.NoError(t, store.MergeLearnings(ctx, "workouts", map[string]any{
		"preferred_style": "heavy singles",
	}))
	require.NoError(t, store.MergeLearnings(ctx, "workouts", map[string]any{
		"usual_time": "morning",
	}))

	md, err := store.GetTableMetadata(ctx, "workouts")
	require.NoError(t, err)
	require.Contains(t, md.Learnings, "preferred_style")
	require.Contains(t, md.Learnings, "usual_time")
	require.Equal(t, "heavy singles", md.Learnings["preferred_style"].Value)
	require.Equal(t, 1, md.Learnings["preferred_style"].Revision)
}

func TestMergeLearningsReplacesPerKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.CreateTable(ctx, workoutsSpec()))

	require.NoError(t, store.MergeLearnings(ctx, "workouts", map[string]any{"style": "volume"}))
	require.NoError(t, store.MergeLearnings(ctx, "workouts", map[string]any{"style": "intensity"}))

	md, err := store.GetTableMetadata(ctx, "workouts")
	require.NoError(t, err)
	require.Equal(t, "intensity", md.Learnings["style"].Value)
	require.Equal(t, 2, md.Learnings["style"].Revision)
}

func TestMergeLearningsUnknownTable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.MergeLearnings(ctx, "missing", map[string]any{"k": "v"})
	require.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestMergeLearningsBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.CreateTable(ctx, workoutsSpec()))

	before, err := store.GetTableMetadata(ctx, "workouts")
	require.NoError(t, err)

	require.NoError(t, store.MergeLearnings(ctx, "workouts", map[string]any{"k": "v"}))

	after, err := store.GetTableMetadata(ctx, "workouts")
	require.NoError(t, err)
	require.False(t, after.UpdatedAt.Before(before.UpdatedAt))
	require.Equal(t, before.CreatedAt, after.CreatedAt, "created_at never changes after creation")
}
