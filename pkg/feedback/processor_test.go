package feedback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/chatscope/pkg/feedback/mocks"
)

// memQueue is an in-memory Queue with controllable failures
type memQueue struct {
	mu      sync.Mutex
	pending map[int64]struct{}
	failing bool
}

func newMemQueue() *memQueue {
	return &memQueue{pending: map[int64]struct{}{}}
}

func (q *memQueue) Enqueue(_ context.Context, profileID int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failing {
		return errors.New("store unreachable")
	}
	q.pending[profileID] = struct{}{}
	return nil
}

func (q *memQueue) Pending(_ context.Context) ([]int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]int64, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	return ids, nil
}

func (q *memQueue) DrainQueue(_ context.Context) ([]int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]int64, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	q.pending = map[int64]struct{}{}
	return ids, nil
}

func settingsStub() (*mocks.SettingsMock, map[string]string) {
	store := map[string]string{}
	var mu sync.Mutex
	return &mocks.SettingsMock{
		GetSettingFunc: func(ctx context.Context, key string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			return store[key], nil
		},
		SetSettingFunc: func(ctx context.Context, key, value string) error {
			mu.Lock()
			defer mu.Unlock()
			store[key] = value
			return nil
		},
	}, store
}

func TestProcessor_ScheduleAndBatch(t *testing.T) {
	queue := newMemQueue()
	settings, store := settingsStub()

	var invalidated []int64
	p := NewProcessor(queue, settings, func(id int64) { invalidated = append(invalidated, id) })

	ctx := context.Background()
	p.ScheduleRecompute(ctx, 42)
	p.ScheduleRecompute(ctx, 7)
	p.ScheduleRecompute(ctx, 42) // duplicate collapses

	pending, err := p.Pending(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{42, 7}, pending)

	count, err := p.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.ElementsMatch(t, []int64{42, 7}, invalidated)

	// queue is empty after the batch, last batch time recorded
	pending, err = p.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.NotEmpty(t, store[lastBatchKey])
	assert.False(t, p.LastBatchTime(ctx).IsZero())
}

func TestProcessor_EmptyBatch(t *testing.T) {
	queue := newMemQueue()
	settings, store := settingsStub()
	p := NewProcessor(queue, settings)

	count, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, store, "empty batch does not touch last batch time")
}

func TestProcessor_Trigger(t *testing.T) {
	queue := newMemQueue()
	settings, _ := settingsStub()
	p := NewProcessor(queue, settings)

	ctx := context.Background()
	p.ScheduleRecompute(ctx, 1)
	p.ScheduleRecompute(ctx, 2) // second signal coalesces, must not block

	select {
	case <-p.Trigger():
	case <-time.After(time.Second):
		t.Fatal("expected a trigger signal")
	}
}

func TestProcessor_DegradedMode(t *testing.T) {
	queue := newMemQueue()
	settings, _ := settingsStub()

	var invalidated []int64
	p := NewProcessor(queue, settings, func(id int64) { invalidated = append(invalidated, id) })

	ctx := context.Background()

	queue.failing = true
	p.ScheduleRecompute(ctx, 42)
	assert.True(t, p.Degraded(), "persistence failure surfaces as degraded state")

	// the request is never dropped while the process lives
	pending, err := p.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, pending)

	// store recovers: next mutation retries persistence
	queue.failing = false
	p.ScheduleRecompute(ctx, 7)
	assert.False(t, p.Degraded())

	stored, err := queue.Pending(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{42, 7}, stored, "held entry flushed to the store")
}

func TestProcessor_DegradedBatchStillProcesses(t *testing.T) {
	queue := newMemQueue()
	settings, _ := settingsStub()

	var invalidated []int64
	p := NewProcessor(queue, settings, func(id int64) { invalidated = append(invalidated, id) })

	ctx := context.Background()
	queue.failing = true
	p.ScheduleRecompute(ctx, 42)

	count, err := p.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "in-memory entries are folded into the batch")
	assert.Equal(t, []int64{42}, invalidated)
	assert.False(t, p.Degraded())
}

func TestProcessor_DrainBeforeInvalidate(t *testing.T) {
	// feedback arriving during recompute must land in the next batch
	queue := newMemQueue()
	settings, _ := settingsStub()

	var p *Processor
	p = NewProcessor(queue, settings, func(id int64) {
		// simulates feedback arriving while recompute runs
		p.ScheduleRecompute(context.Background(), 99)
	})

	ctx := context.Background()
	p.ScheduleRecompute(ctx, 42)

	count, err := p.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	pending, err := p.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{99}, pending, "mid-batch feedback is captured for the next pass")
}
