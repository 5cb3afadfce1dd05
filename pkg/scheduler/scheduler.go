// Package scheduler runs the periodic background tasks: digest schedule
// polling, feedback batch recomputes, and retention pruning.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/chatscope/pkg/config"
	"github.com/umputun/chatscope/pkg/digest"
	"github.com/umputun/chatscope/pkg/domain"
)

//go:generate moq -out mocks/profile_store.go -pkg mocks -skip-ensure -fmt goimports . ProfileStore
//go:generate moq -out mocks/schedule_state.go -pkg mocks -skip-ensure -fmt goimports . ScheduleState
//go:generate moq -out mocks/deliverer.go -pkg mocks -skip-ensure -fmt goimports . Deliverer
//go:generate moq -out mocks/feedback_batcher.go -pkg mocks -skip-ensure -fmt goimports . FeedbackBatcher
//go:generate moq -out mocks/pruner.go -pkg mocks -skip-ensure -fmt goimports . Pruner

// ProfileStore lists the stored profiles whose digest schedules are polled
type ProfileStore interface {
	GetProfiles(ctx context.Context, enabledOnly bool) ([]*domain.Profile, error)
}

// ScheduleState persists per-schedule last run marks
type ScheduleState interface {
	GetLastRun(ctx context.Context, key string) (time.Time, error)
	SetLastRun(ctx context.Context, key string, t time.Time) error
}

// Deliverer fans a digest payload out to its sinks
type Deliverer interface {
	Deliver(ctx context.Context, targets []domain.Target, payload domain.Payload)
}

// FeedbackBatcher drains the feedback recompute queue
type FeedbackBatcher interface {
	Trigger() <-chan struct{}
	ProcessBatch(ctx context.Context) (int, error)
}

// Pruner deletes rows older than the retention horizon
type Pruner interface {
	PruneOlderThan(ctx context.Context, horizon time.Duration) (int64, error)
}

// Scheduler manages periodic digest firing, feedback recomputes, and pruning
type Scheduler struct {
	profiles  ProfileStore
	state     ScheduleState
	collector *digest.Collector
	deliverer Deliverer
	feedback  FeedbackBatcher

	alertPruner    Pruner
	deliveryPruner Pruner

	digestPoll        time.Duration
	feedbackInterval  time.Duration
	feedbackDebounce  time.Duration
	pruneInterval     time.Duration
	dedupRetention    time.Duration
	deliveryRetention time.Duration

	now        func() time.Time
	wg         sync.WaitGroup
	deliveries sync.WaitGroup
	cancel     context.CancelFunc
}

// NewScheduler creates a scheduler over the shared collector and stores
func NewScheduler(profiles ProfileStore, state ScheduleState, collector *digest.Collector,
	deliverer Deliverer, feedback FeedbackBatcher, alertPruner, deliveryPruner Pruner,
	cfg config.ScheduleConfig) *Scheduler {

	if cfg.DigestPoll == 0 {
		cfg.DigestPoll = time.Minute
	}
	if cfg.FeedbackInterval == 0 {
		cfg.FeedbackInterval = 10 * time.Minute
	}
	if cfg.FeedbackDebounce == 0 {
		cfg.FeedbackDebounce = 5 * time.Minute
	}
	if cfg.PruneInterval == 0 {
		cfg.PruneInterval = 6 * time.Hour
	}
	if cfg.DedupRetention == 0 {
		cfg.DedupRetention = 7 * 24 * time.Hour
	}
	if cfg.DeliveryRetention == 0 {
		cfg.DeliveryRetention = 30 * 24 * time.Hour
	}

	return &Scheduler{
		profiles:          profiles,
		state:             state,
		collector:         collector,
		deliverer:         deliverer,
		feedback:          feedback,
		alertPruner:       alertPruner,
		deliveryPruner:    deliveryPruner,
		digestPoll:        cfg.DigestPoll,
		feedbackInterval:  cfg.FeedbackInterval,
		feedbackDebounce:  cfg.FeedbackDebounce,
		pruneInterval:     cfg.PruneInterval,
		dedupRetention:    cfg.DedupRetention,
		deliveryRetention: cfg.DeliveryRetention,
		now:               time.Now,
	}
}

// Start begins the background workers
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.digestWorker(ctx)

	if s.feedback != nil {
		s.wg.Add(1)
		go s.feedbackWorker(ctx)
	}

	s.wg.Add(1)
	go s.pruneWorker(ctx)

	lgr.Printf("[INFO] scheduler started, digest poll %v, feedback interval %v, prune interval %v",
		s.digestPoll, s.feedbackInterval, s.pruneInterval)
}

// Stop gracefully stops the scheduler and waits for in-flight deliveries
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.deliveries.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// digestWorker polls due digest schedules
func (s *Scheduler) digestWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.digestPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollDigests(ctx)
		}
	}
}

// pollDigests fires every schedule whose window has elapsed
func (s *Scheduler) pollDigests(ctx context.Context) {
	profiles, err := s.profiles.GetProfiles(ctx, true)
	if err != nil {
		lgr.Printf("[ERROR] failed to get profiles for digest poll: %v", err)
		return
	}

	now := s.now()
	for _, profile := range profiles {
		for _, sched := range profile.Rules.Digests {
			sched.ProfileID = profile.ID
			s.fireIfDue(ctx, profile, sched, now)
		}
	}
}

// fireIfDue checks one schedule and drains its batch when the window elapsed.
// The last run mark is advanced before delivery is dispatched, so a crash
// between the two loses one digest rather than repeating it.
func (s *Scheduler) fireIfDue(ctx context.Context, profile *domain.Profile, sched domain.DigestSchedule, now time.Time) {
	key := sched.Key()

	lastRun, err := s.state.GetLastRun(ctx, key)
	if err != nil {
		lgr.Printf("[ERROR] failed to get last run for %s: %v", key, err)
		return
	}
	if !digest.IsDue(sched, lastRun, now) {
		return
	}

	fire := digest.LastFire(sched, now)
	if err := s.state.SetLastRun(ctx, key, fire); err != nil {
		lgr.Printf("[ERROR] failed to mark digest %s fired: %v", key, err)
		return // do not deliver without the mark, the next poll retries
	}

	entries := s.collector.Drain(key, drainMinScore(profile, sched), drainTopN(sched))
	if len(entries) == 0 {
		lgr.Printf("[DEBUG] digest %s due but empty, skipped", key)
		return
	}

	targets := digestTargets(profile)
	if len(targets) == 0 {
		lgr.Printf("[WARN] digest %s has %d entries but no delivery targets", key, len(entries))
		return
	}

	payload := digestPayload(profile, entries)
	lgr.Printf("[INFO] digest %s fired with %d entries", key, len(entries))

	s.deliveries.Add(1)
	go func() {
		defer s.deliveries.Done()
		s.deliverer.Deliver(ctx, targets, payload)
	}()
}

// drainMinScore picks the schedule override, then the profile min score
func drainMinScore(profile *domain.Profile, sched domain.DigestSchedule) float64 {
	if sched.MinScoreOverride != nil {
		return *sched.MinScoreOverride
	}
	if profile.Rules.MinScore != nil {
		return *profile.Rules.MinScore
	}
	return 0
}

// drainTopN picks the schedule override, zero means no truncation
func drainTopN(sched domain.DigestSchedule) int {
	if sched.TopNOverride != nil {
		return *sched.TopNOverride
	}
	return 0
}

// digestTargets builds the sink list from the profile's own rules
func digestTargets(profile *domain.Profile) []domain.Target {
	var targets []domain.Target
	if profile.Rules.NotifyDM != nil && *profile.Rules.NotifyDM != "" {
		targets = append(targets, domain.Target{Kind: domain.TargetDM, ID: *profile.Rules.NotifyDM})
	}
	if profile.Rules.NotifyChannel != nil && *profile.Rules.NotifyChannel != "" {
		targets = append(targets, domain.Target{Kind: domain.TargetChannel, ID: *profile.Rules.NotifyChannel})
	}
	for _, name := range profile.Rules.Webhooks {
		targets = append(targets, domain.Target{Kind: domain.TargetWebhook, ID: name})
	}
	return targets
}

// digestPayload builds the multi-message delivery payload
func digestPayload(profile *domain.Profile, entries []digest.Entry) domain.Payload {
	items := make([]domain.PayloadItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.PayloadItem{
			SourceID:  e.Message.SourceID,
			MessageID: e.Message.MessageID,
			SenderID:  e.Message.SenderID,
			Text:      e.Message.Text,
			Timestamp: e.Message.Timestamp,
			Score:     e.Score.CombinedScore,
			Tags:      e.Score.Tags,
		})
	}

	return domain.Payload{
		Kind:      domain.PayloadDigest,
		BatchID:   uuid.New().String(),
		ProfileID: profile.ID,
		Subject:   fmt.Sprintf("%s digest, %d messages", profile.Name, len(items)),
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}
}

// feedbackWorker drains the recompute queue on explicit triggers, debounced,
// with a periodic fallback drain for anything the debounce missed
func (s *Scheduler) feedbackWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.feedbackInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runFeedbackBatch(ctx)
		case <-s.feedback.Trigger():
			// let the burst settle before recomputing
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.feedbackDebounce):
			}
			s.runFeedbackBatch(ctx)
		}
	}
}

func (s *Scheduler) runFeedbackBatch(ctx context.Context) {
	n, err := s.feedback.ProcessBatch(ctx)
	if err != nil {
		lgr.Printf("[ERROR] feedback batch failed: %v", err)
		return
	}
	if n > 0 {
		lgr.Printf("[INFO] feedback batch recomputed %d profiles", n)
	}
}

// pruneWorker enforces retention on the dedup and delivery history tables
func (s *Scheduler) pruneWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pruneRetention(ctx)
		}
	}
}

func (s *Scheduler) pruneRetention(ctx context.Context) {
	if s.alertPruner != nil {
		n, err := s.alertPruner.PruneOlderThan(ctx, s.dedupRetention)
		if err != nil {
			lgr.Printf("[ERROR] failed to prune alert dedup entries: %v", err)
		} else if n > 0 {
			lgr.Printf("[INFO] pruned %d alert dedup entries", n)
		}
	}

	if s.deliveryPruner != nil {
		n, err := s.deliveryPruner.PruneOlderThan(ctx, s.deliveryRetention)
		if err != nil {
			lgr.Printf("[ERROR] failed to prune delivery history: %v", err)
		} else if n > 0 {
			lgr.Printf("[INFO] pruned %d delivery history rows", n)
		}
	}
}

// PollDigestsNow triggers an immediate digest poll outside the ticker
func (s *Scheduler) PollDigestsNow(ctx context.Context) {
	lgr.Printf("[INFO] triggered immediate digest poll")
	s.pollDigests(ctx)
}

// ProcessFeedbackNow drains the feedback queue immediately
func (s *Scheduler) ProcessFeedbackNow(ctx context.Context) error {
	if s.feedback == nil {
		return nil
	}
	n, err := s.feedback.ProcessBatch(ctx)
	if err != nil {
		return fmt.Errorf("feedback batch: %w", err)
	}
	lgr.Printf("[INFO] triggered feedback batch, recomputed %d profiles", n)
	return nil
}
