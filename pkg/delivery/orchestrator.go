// Package delivery routes alerts and digest batches to their sinks:
// direct message, channel post and signed webhooks. Sinks are independent,
// one failing target never blocks or rolls back another.
package delivery

import (
	"context"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/chatscope/pkg/config"
	"github.com/umputun/chatscope/pkg/domain"
)

//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . AttemptRecorder

// Notifier posts a payload to a dm or channel target. Delivery through the
// transport is not retried here, it either lands or surfaces an error.
type Notifier interface {
	Send(ctx context.Context, target domain.Target, payload domain.Payload) error
}

// AttemptRecorder persists delivery attempt rows
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, attempt *domain.DeliveryAttempt) error
}

// Orchestrator fans a payload out to every configured sink, signing and
// retrying webhook calls, and records one attempt row per try.
type Orchestrator struct {
	recorder AttemptRecorder
	notifier Notifier
	webhooks map[string]config.WebhookTarget
	client   *http.Client
	timeout  time.Duration
	delays   func(attempt int) time.Duration // injectable for tests
}

// NewOrchestrator creates a delivery orchestrator. The notifier may be nil
// when no dm/channel transport is configured, webhook-only setups work.
func NewOrchestrator(recorder AttemptRecorder, notifier Notifier, cfg config.DeliveryConfig) *Orchestrator {
	timeout := cfg.WebhookTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Orchestrator{
		recorder: recorder,
		notifier: notifier,
		webhooks: cfg.Webhooks,
		client:   &http.Client{Timeout: timeout},
		timeout:  timeout,
		delays:   attemptDelay,
	}
}

// Deliver sends the payload to every target. Targets run concurrently and
// finish on their own; failures are recorded in the attempt history, never
// returned. The caller does not need to wait for webhook retries, it may
// run Deliver from its own goroutine.
func (o *Orchestrator) Deliver(ctx context.Context, targets []domain.Target, payload domain.Payload) {
	g, ctx := errgroup.WithContext(ctx)

	for _, target := range targets {
		g.Go(func() error {
			switch target.Kind {
			case domain.TargetWebhook:
				o.deliverWebhook(ctx, target.ID, payload)
			case domain.TargetDM, domain.TargetChannel:
				o.deliverNotify(ctx, target, payload)
			default:
				lgr.Printf("[WARN] unknown delivery target kind %q, skipped", target.Kind)
			}
			return nil
		})
	}

	_ = g.Wait() // targets never return errors, outcomes live in the attempt log
}

// deliverNotify posts to a dm/channel target through the transport. One
// attempt, one row; the transport owns its own reliability.
func (o *Orchestrator) deliverNotify(ctx context.Context, target domain.Target, payload domain.Payload) {
	attempt := &domain.DeliveryAttempt{
		GroupID:       uuid.New().String(),
		ProfileID:     payload.ProfileID,
		TargetKind:    target.Kind,
		TargetID:      target.ID,
		PayloadHash:   payloadHash(payload),
		AttemptNumber: 1,
		Status:        domain.StatusSuccess,
	}

	if o.notifier == nil {
		attempt.Status = domain.StatusFailed
		attempt.Error = "no notifier configured"
		o.record(ctx, attempt)
		return
	}

	started := time.Now()
	err := o.notifier.Send(ctx, target, payload)
	attempt.LatencyMs = time.Since(started).Milliseconds()
	if err != nil {
		lgr.Printf("[WARN] %s delivery to %s failed: %v", target.Kind, target.ID, err)
		attempt.Status = domain.StatusFailed
		attempt.Error = err.Error()
	}
	o.record(ctx, attempt)
}

// record persists an attempt row, logging instead of failing the delivery
// when the store is unreachable.
func (o *Orchestrator) record(ctx context.Context, attempt *domain.DeliveryAttempt) {
	if err := o.recorder.RecordAttempt(ctx, attempt); err != nil {
		lgr.Printf("[WARN] failed to record delivery attempt for %s %s: %v", attempt.TargetKind, attempt.TargetID, err)
	}
}
