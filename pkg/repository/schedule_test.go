package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleStateRepository(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("unknown schedule has zero last run", func(t *testing.T) {
		lastRun, err := repos.Schedule.GetLastRun(ctx, "1:hourly")
		require.NoError(t, err)
		assert.True(t, lastRun.IsZero())
	})

	t.Run("set and get", func(t *testing.T) {
		fired := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, repos.Schedule.SetLastRun(ctx, "1:hourly", fired))

		lastRun, err := repos.Schedule.GetLastRun(ctx, "1:hourly")
		require.NoError(t, err)
		assert.True(t, fired.Equal(lastRun), "expected %v got %v", fired, lastRun)
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		later := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
		require.NoError(t, repos.Schedule.SetLastRun(ctx, "1:hourly", later))

		lastRun, err := repos.Schedule.GetLastRun(ctx, "1:hourly")
		require.NoError(t, err)
		assert.True(t, later.Equal(lastRun))
	})

	t.Run("all last runs", func(t *testing.T) {
		require.NoError(t, repos.Schedule.SetLastRun(ctx, "2:daily", time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)))

		all, err := repos.Schedule.GetAllLastRuns(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Contains(t, all, "1:hourly")
		assert.Contains(t, all, "2:daily")
	})
}
