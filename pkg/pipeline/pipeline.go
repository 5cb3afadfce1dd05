// Package pipeline runs the per-message evaluation path: profile
// resolution, two-stage scoring, dedup/rate admission, and dispatch to
// immediate delivery plus digest accumulation.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/chatscope/pkg/config"
	"github.com/umputun/chatscope/pkg/digest"
	"github.com/umputun/chatscope/pkg/domain"
	"github.com/umputun/chatscope/pkg/scoring"
)

//go:generate moq -out mocks/deliverer.go -pkg mocks -skip-ensure -fmt goimports . Deliverer
//go:generate moq -out mocks/resolver.go -pkg mocks -skip-ensure -fmt goimports . Resolver
//go:generate moq -out mocks/semantic_scorer.go -pkg mocks -skip-ensure -fmt goimports . SemanticScorer

// Resolver provides the effective profile for a message context
type Resolver interface {
	Resolve(ctx context.Context, sourceID, senderID int64) domain.EffectiveProfile
}

// SemanticScorer is the stage-B collaborator
type SemanticScorer interface {
	Score(ctx context.Context, msg domain.Message, profile *domain.EffectiveProfile) (similarity float64, matched []string, tags []string)
}

// Deliverer fans an alert out to its sinks
type Deliverer interface {
	Deliver(ctx context.Context, targets []domain.Target, payload domain.Payload)
}

// Pipeline evaluates messages on sharded workers. Messages from the same
// source always land on the same shard, preserving per-source ordering
// while different sources run in parallel.
type Pipeline struct {
	resolver  Resolver
	heuristic *scoring.Heuristic
	semantic  SemanticScorer
	admitter  *Admitter
	collector *digest.Collector
	deliverer Deliverer

	workers   int
	queueSize int

	deliveries sync.WaitGroup
}

// New creates a pipeline. The collector is shared with the digest
// scheduler which drains it on schedule fire.
func New(cfg config.PipelineConfig, resolver Resolver, semantic SemanticScorer, admitter *Admitter,
	collector *digest.Collector, deliverer Deliverer) *Pipeline {

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	queueSize := cfg.QueueSize
	if queueSize < 1 {
		queueSize = 256
	}

	return &Pipeline{
		resolver:  resolver,
		heuristic: scoring.NewHeuristic(),
		semantic:  semantic,
		admitter:  admitter,
		collector: collector,
		deliverer: deliverer,
		workers:   workers,
		queueSize: queueSize,
	}
}

// Run consumes messages until the channel closes or the context is
// canceled, then waits for in-flight deliveries to wind down.
func (p *Pipeline) Run(ctx context.Context, messages <-chan domain.Message) error {
	queues := make([]chan domain.Message, p.workers)
	for i := range queues {
		queues[i] = make(chan domain.Message, p.queueSize)
	}

	g, gctx := errgroup.WithContext(ctx)

	for i := range queues {
		queue := queues[i]
		g.Go(func() error {
			for msg := range queue {
				p.process(gctx, msg)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			for _, q := range queues {
				close(q)
			}
		}()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case msg, ok := <-messages:
				if !ok {
					return nil
				}
				shard := uint64(msg.SourceID) % uint64(p.workers) //nolint:gosec // shard index, not crypto
				select {
				case queues[shard] <- msg:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		}
	})

	err := g.Wait()
	p.deliveries.Wait()

	if err != nil && err != context.Canceled {
		return fmt.Errorf("pipeline stopped: %w", err)
	}
	return nil
}

// Evaluate runs both scoring stages for one message and returns the
// result without side effects. Exposed for synchronous use by the HTTP
// surface; Run's workers go through process which also dispatches.
func (p *Pipeline) Evaluate(ctx context.Context, msg domain.Message) domain.ScoreResult {
	profile := p.resolver.Resolve(ctx, msg.SourceID, msg.SenderID)
	return p.score(ctx, msg, &profile)
}

// score runs stage A and, when the gate opens, stage B
func (p *Pipeline) score(ctx context.Context, msg domain.Message, profile *domain.EffectiveProfile) domain.ScoreResult {
	heuristicScore, tags := p.heuristic.Evaluate(msg, profile)
	result := domain.ScoreResult{
		HeuristicScore:    heuristicScore,
		CombinedScore:     heuristicScore,
		Tags:              append(tags, profile.WarningTags...),
		MatchedProfileIDs: profile.MatchedProfileIDs,
	}
	if result.Suppressed() {
		return result
	}

	// stage B only where the heuristic verdict is not already obvious; the
	// floor is inclusive so a zero floor never shuts out zero-signal messages
	if heuristicScore >= profile.SemanticFloor && heuristicScore < profile.SemanticCeiling {
		semScore, matched, semTags := p.semantic.Score(ctx, msg, profile)
		result.SemanticScore = semScore
		result.MatchedInterests = matched
		result.Tags = append(result.Tags, semTags...)
		result.CombinedScore = heuristicScore + semScore
	}

	return result
}

// process evaluates one message and dispatches the outcomes
func (p *Pipeline) process(ctx context.Context, msg domain.Message) {
	profile := p.resolver.Resolve(ctx, msg.SourceID, msg.SenderID)
	result := p.score(ctx, msg, &profile)

	if result.Suppressed() {
		lgr.Printf("[DEBUG] message %s suppressed, sender excluded", msg.Key())
		return
	}

	// digests accumulate everything scored, thresholds apply at drain; a
	// message that already alerted stays out of later windows too
	if result.CombinedScore > 0 && !p.admitter.Seen(ctx, msg) {
		for _, sched := range profile.Digests {
			if sched.Enabled {
				p.collector.Add(sched.Key(), msg, result)
			}
		}
	}

	if result.CombinedScore < profile.MinScore {
		return
	}

	if !p.admitter.Admit(ctx, msg, &profile) {
		return
	}

	targets := profile.Targets()
	if len(targets) == 0 {
		lgr.Printf("[DEBUG] message %s scored %.2f but no delivery targets configured", msg.Key(), result.CombinedScore)
		return
	}

	payload := alertPayload(msg, result, profile)
	lgr.Printf("[INFO] alert for %s, score %.2f, tags [%s]", msg.Key(), result.CombinedScore, strings.Join(result.Tags, " "))

	// the message is already marked alerted, delivery retries must not
	// stall the evaluation path
	p.deliveries.Add(1)
	go func() {
		defer p.deliveries.Done()
		p.deliverer.Deliver(ctx, targets, payload)
	}()
}

// alertPayload builds the single-message delivery payload
func alertPayload(msg domain.Message, result domain.ScoreResult, profile domain.EffectiveProfile) domain.Payload {
	profileID := int64(0)
	if len(profile.MatchedProfileIDs) > 0 {
		profileID = profile.MatchedProfileIDs[0]
	}

	return domain.Payload{
		Kind:      domain.PayloadAlert,
		BatchID:   uuid.New().String(),
		ProfileID: profileID,
		Subject:   fmt.Sprintf("important message in source %d", msg.SourceID),
		Items: []domain.PayloadItem{{
			SourceID:  msg.SourceID,
			MessageID: msg.MessageID,
			SenderID:  msg.SenderID,
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
			Score:     result.CombinedScore,
			Tags:      result.Tags,
		}},
		CreatedAt: time.Now().UTC(),
	}
}
