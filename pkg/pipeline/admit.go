package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/chatscope/pkg/domain"
)

//go:generate moq -out mocks/alert_store.go -pkg mocks -skip-ensure -fmt goimports . AlertStore

// AlertStore is the durable dedup set of already-alerted messages
type AlertStore interface {
	MarkAlerted(ctx context.Context, sourceID, messageID, senderID int64) (bool, error)
	WasAlerted(ctx context.Context, sourceID, messageID int64) (bool, error)
}

// Admitter decides whether a scored message may produce an alert: the
// message must not have alerted before (durable dedup, survives restarts)
// and the source must be under its hourly alert ceiling. VIP senders and
// pinned/admin posts bypass the ceiling, never the dedup.
type Admitter struct {
	alerts  AlertStore
	limiter *rateLimiter

	mu       sync.Mutex
	memDedup map[string]struct{} // fallback while the store is unreachable
	degraded bool
}

// NewAdmitter creates an admitter over the durable alert store
func NewAdmitter(alerts AlertStore) *Admitter {
	return &Admitter{
		alerts:   alerts,
		limiter:  newRateLimiter(time.Hour),
		memDedup: make(map[string]struct{}),
	}
}

// Admit returns true when the message should alert. An admitted message is
// marked in the dedup store immediately, before any delivery is dispatched,
// so a replay of the same (source, message) identity is always rejected.
func (a *Admitter) Admit(ctx context.Context, msg domain.Message, profile *domain.EffectiveProfile) bool {
	first, err := a.alerts.MarkAlerted(ctx, msg.SourceID, msg.MessageID, msg.SenderID)
	if err != nil {
		// keep deduplicating in memory until the store recovers; the next
		// message retries persistence simply by calling MarkAlerted again
		lgr.Printf("[WARN] dedup store unavailable, in-memory fallback for %s: %v", msg.Key(), err)
		first = a.memAdmit(msg.Key())
	} else {
		a.setDegraded(false)
	}

	if !first {
		return false // repeats never alert, regardless of anything else
	}

	if profile.IsVIP(msg.SenderID) || msg.IsPinned || msg.IsAdminPost {
		a.limiter.record(msg.SourceID)
		return true
	}

	if !a.limiter.allow(msg.SourceID, profile.RateLimitPerHour) {
		lgr.Printf("[DEBUG] rate limit reached for source %d, message %s dropped", msg.SourceID, msg.Key())
		return false
	}
	return true
}

// Seen reports whether the message has already alerted, without recording
// anything. Digest accumulation checks this, a replay of an alerted message
// must not re-enter the next window either.
func (a *Admitter) Seen(ctx context.Context, msg domain.Message) bool {
	seen, err := a.alerts.WasAlerted(ctx, msg.SourceID, msg.MessageID)
	if err != nil {
		lgr.Printf("[WARN] dedup store unavailable, in-memory lookup for %s: %v", msg.Key(), err)
		a.mu.Lock()
		defer a.mu.Unlock()
		_, ok := a.memDedup[msg.Key()]
		return ok
	}
	return seen
}

// Degraded reports whether dedup is running on the in-memory fallback
func (a *Admitter) Degraded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.degraded
}

func (a *Admitter) memAdmit(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.degraded = true
	if _, seen := a.memDedup[key]; seen {
		return false
	}
	a.memDedup[key] = struct{}{}
	return true
}

func (a *Admitter) setDegraded(v bool) {
	a.mu.Lock()
	a.degraded = v
	a.mu.Unlock()
}
