// Package feedback debounces profile recompute requests triggered by user
// feedback into periodic batch passes. The pending queue is durable: a
// request accepted before a crash is still pending after restart.
package feedback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/queue.go -pkg mocks -skip-ensure -fmt goimports . Queue
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . Settings

// lastBatchKey is the settings key holding the last batch completion time
const lastBatchKey = "feedback.last_batch_time"

// Queue is the durable recompute queue
type Queue interface {
	Enqueue(ctx context.Context, profileID int64) error
	Pending(ctx context.Context) ([]int64, error)
	DrainQueue(ctx context.Context) ([]int64, error)
}

// Settings is the key/value store for processor state
type Settings interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Processor owns the feedback recompute queue. ScheduleRecompute persists
// before returning; ProcessBatch drains the queue atomically and then
// invalidates caches, so feedback arriving mid-recompute lands in the next
// batch instead of getting lost.
type Processor struct {
	queue       Queue
	settings    Settings
	invalidate  []func(profileID int64)
	triggerCh   chan struct{}

	mu         sync.Mutex
	memPending map[int64]struct{} // accepted but not yet persisted
	degraded   bool
}

// NewProcessor creates a processor. Invalidators run for every drained
// profile id after the queue swap, typically the resolver and semantic
// centroid caches.
func NewProcessor(queue Queue, settings Settings, invalidators ...func(profileID int64)) *Processor {
	return &Processor{
		queue:      queue,
		settings:   settings,
		invalidate: invalidators,
		triggerCh:  make(chan struct{}, 1),
		memPending: make(map[int64]struct{}),
	}
}

// ScheduleRecompute marks a profile as needing recompute, durably. When the
// store is unreachable the request is held in memory for this process
// lifetime and persistence is retried on the next mutation; the request is
// never dropped while the process lives.
func (p *Processor) ScheduleRecompute(ctx context.Context, profileID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// retry earlier failures before the new entry
	for id := range p.memPending {
		if err := p.queue.Enqueue(ctx, id); err == nil {
			delete(p.memPending, id)
		}
	}

	if err := p.queue.Enqueue(ctx, profileID); err != nil {
		lgr.Printf("[WARN] feedback queue persistence failed for profile %d, holding in memory: %v", profileID, err)
		p.memPending[profileID] = struct{}{}
		p.degraded = true
	} else if len(p.memPending) == 0 {
		p.degraded = false
	}

	// wake the debounce worker, drop the signal if one is already pending
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// Trigger returns the channel signalled on every accepted request, the
// scheduler's debounce worker listens on it.
func (p *Processor) Trigger() <-chan struct{} {
	return p.triggerCh
}

// Degraded reports whether the processor is holding requests the durable
// store has not accepted yet.
func (p *Processor) Degraded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}

// Pending returns profile ids waiting for the next batch, durable and
// in-memory combined.
func (p *Processor) Pending(ctx context.Context) ([]int64, error) {
	stored, err := p.queue.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("read pending queue: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	seen := make(map[int64]struct{}, len(stored))
	for _, id := range stored {
		seen[id] = struct{}{}
	}
	for id := range p.memPending {
		if _, ok := seen[id]; !ok {
			stored = append(stored, id)
		}
	}
	return stored, nil
}

// ProcessBatch drains the queue and invalidates caches for every affected
// profile. The drain commits before any invalidation work starts. Returns
// the number of profiles processed.
func (p *Processor) ProcessBatch(ctx context.Context) (int, error) {
	ids, err := p.queue.DrainQueue(ctx)
	if err != nil {
		return 0, fmt.Errorf("drain feedback queue: %w", err)
	}

	// fold in entries the store never accepted
	p.mu.Lock()
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for id := range p.memPending {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	p.memPending = make(map[int64]struct{})
	p.degraded = false
	p.mu.Unlock()

	if len(ids) == 0 {
		return 0, nil
	}

	for _, id := range ids {
		for _, fn := range p.invalidate {
			fn(id)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := p.settings.SetSetting(ctx, lastBatchKey, now); err != nil {
		lgr.Printf("[WARN] failed to record last batch time: %v", err)
	}

	lgr.Printf("[INFO] feedback batch processed, %d profiles recomputed", len(ids))
	return len(ids), nil
}

// LastBatchTime returns the completion time of the most recent batch,
// zero when none has run.
func (p *Processor) LastBatchTime(ctx context.Context) time.Time {
	value, err := p.settings.GetSetting(ctx, lastBatchKey)
	if err != nil || value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
