package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertRepository_MarkAlerted(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("first mark wins", func(t *testing.T) {
		inserted, err := repos.Alert.MarkAlerted(ctx, 100, 1, 7)
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("second mark rejected", func(t *testing.T) {
		inserted, err := repos.Alert.MarkAlerted(ctx, 100, 1, 7)
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("different message admitted", func(t *testing.T) {
		inserted, err := repos.Alert.MarkAlerted(ctx, 100, 2, 7)
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("same message id in another source admitted", func(t *testing.T) {
		inserted, err := repos.Alert.MarkAlerted(ctx, 200, 1, 7)
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("was alerted check", func(t *testing.T) {
		alerted, err := repos.Alert.WasAlerted(ctx, 100, 1)
		require.NoError(t, err)
		assert.True(t, alerted)

		alerted, err = repos.Alert.WasAlerted(ctx, 100, 999)
		require.NoError(t, err)
		assert.False(t, alerted)
	})
}

func TestAlertRepository_Prune(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	_, err := repos.Alert.MarkAlerted(ctx, 100, 1, 7)
	require.NoError(t, err)
	_, err = repos.Alert.MarkAlerted(ctx, 100, 2, 7)
	require.NoError(t, err)

	// age one entry past the horizon
	old := time.Now().UTC().Add(-48 * time.Hour)
	_, err = repos.DB.ExecContext(ctx,
		"UPDATE alerted SET alerted_at = ? WHERE message_id = 1", old)
	require.NoError(t, err)

	removed, err := repos.Alert.PruneOlderThan(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// pruned entry can be alerted again, fresh one cannot
	inserted, err := repos.Alert.MarkAlerted(ctx, 100, 1, 7)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repos.Alert.MarkAlerted(ctx, 100, 2, 7)
	require.NoError(t, err)
	assert.False(t, inserted)
}
