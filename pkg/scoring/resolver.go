package scoring

import (
	"context"
	"errors"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/chatscope/pkg/domain"
	"github.com/umputun/chatscope/pkg/repository"
)

//go:generate moq -out mocks/profile_store.go -pkg mocks -skip-ensure -fmt goimports . ProfileStore

// ProfileStore provides candidate profiles for a message context
type ProfileStore interface {
	GetCandidates(ctx context.Context, sourceID, senderID int64) ([]*domain.Profile, error)
}

// Resolver merges stored profiles into one effective rule set per
// (source, sender) context. Results are cached; the cache is dropped
// explicitly when profiles change or a feedback batch lands.
type Resolver struct {
	store ProfileStore

	mu      sync.RWMutex
	cache   map[resolveKey]domain.EffectiveProfile
	touched map[int64][]resolveKey // profile id -> cache keys it contributed to
}

type resolveKey struct {
	sourceID int64
	senderID int64
}

// NewResolver creates a resolver backed by the given profile store
func NewResolver(store ProfileStore) *Resolver {
	return &Resolver{
		store:   store,
		cache:   make(map[resolveKey]domain.EffectiveProfile),
		touched: make(map[int64][]resolveKey),
	}
}

// Resolve returns the effective profile for a (source, sender) context.
// It never fails: a store error or a context with no matching profiles
// falls back to the built-in default, tagged with resolver_fallback so
// downstream stages and the observability surface can see it.
func (r *Resolver) Resolve(ctx context.Context, sourceID, senderID int64) domain.EffectiveProfile {
	key := resolveKey{sourceID: sourceID, senderID: senderID}

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	candidates, err := r.store.GetCandidates(ctx, sourceID, senderID)
	var warnings []string
	var malformed *repository.MalformedProfileError
	switch {
	case errors.As(err, &malformed):
		// partial result, some profiles had unparsable rules
		lgr.Printf("[WARN] skipped malformed profiles for source %d sender %d: %v", sourceID, senderID, err)
		warnings = append(warnings, "resolver_fallback")
	case err != nil:
		lgr.Printf("[WARN] profile resolution failed for source %d sender %d, using default: %v", sourceID, senderID, err)
		fallback := DefaultProfile()
		fallback.WarningTags = []string{"resolver_fallback"}
		return fallback // not cached, the store may recover
	}

	resolved := merge(candidates)
	resolved.WarningTags = warnings

	r.mu.Lock()
	r.cache[key] = resolved
	for _, id := range resolved.MatchedProfileIDs {
		r.touched[id] = append(r.touched[id], key)
	}
	r.mu.Unlock()

	return resolved
}

// Invalidate drops cached resolutions the given profile contributed to.
// Contexts never touched by the profile keep their snapshots.
func (r *Resolver) Invalidate(profileID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.touched[profileID] {
		delete(r.cache, key)
	}
	delete(r.touched, profileID)
}

// InvalidateAll drops the whole cache, used when profiles are created or
// deleted and the affected contexts are not known in advance.
func (r *Resolver) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[resolveKey]domain.EffectiveProfile)
	r.touched = make(map[int64][]resolveKey)
}

// merge folds candidates into one effective profile. Candidates arrive
// ordered by level specificity, then priority, then id; each field is
// taken wholesale from the first candidate that sets it.
func merge(candidates []*domain.Profile) domain.EffectiveProfile {
	result := DefaultProfile()
	if len(candidates) == 0 {
		result.WarningTags = nil
		return result
	}

	var (
		keywordsSet, vipSet, excludedSet, weightsSet       bool
		replySet, reactionSet, minScoreSet                 bool
		linksSet, codeSet, docsSet, pollsSet               bool
		floorSet, ceilingSet, rateSet, vipDeltaSet         bool
		interestsSet, webhooksSet, digestsSet              bool
		notifyDMSet, notifyChannelSet                      bool
	)

	for _, p := range candidates {
		contributed := false
		rules := p.Rules

		if !keywordsSet && rules.Keywords != nil {
			result.Keywords = rules.Keywords
			keywordsSet, contributed = true, true
		}
		if !vipSet && rules.VIPSenders != nil {
			result.VIPSenders = toIDSet(rules.VIPSenders)
			vipSet, contributed = true, true
		}
		if !excludedSet && rules.ExcludedSenders != nil {
			result.ExcludedSenders = toIDSet(rules.ExcludedSenders)
			excludedSet, contributed = true, true
		}
		if !weightsSet && rules.Weights != nil {
			result.Weights = *rules.Weights
			weightsSet, contributed = true, true
		}
		if !replySet && rules.ReplyThreshold != nil {
			result.ReplyThreshold = *rules.ReplyThreshold
			replySet, contributed = true, true
		}
		if !reactionSet && rules.ReactionThreshold != nil {
			result.ReactionThreshold = *rules.ReactionThreshold
			reactionSet, contributed = true, true
		}
		if !linksSet && rules.DetectLinks != nil {
			result.DetectLinks = *rules.DetectLinks
			linksSet, contributed = true, true
		}
		if !codeSet && rules.DetectCode != nil {
			result.DetectCode = *rules.DetectCode
			codeSet, contributed = true, true
		}
		if !docsSet && rules.DetectDocuments != nil {
			result.DetectDocuments = *rules.DetectDocuments
			docsSet, contributed = true, true
		}
		if !pollsSet && rules.DetectPolls != nil {
			result.DetectPolls = *rules.DetectPolls
			pollsSet, contributed = true, true
		}
		if !minScoreSet && rules.MinScore != nil {
			result.MinScore = *rules.MinScore
			minScoreSet, contributed = true, true
		}
		if !floorSet && rules.SemanticFloor != nil {
			result.SemanticFloor = *rules.SemanticFloor
			floorSet, contributed = true, true
		}
		if !ceilingSet && rules.SemanticCeiling != nil {
			result.SemanticCeiling = *rules.SemanticCeiling
			ceilingSet, contributed = true, true
		}
		if !rateSet && rules.RateLimitPerHour != nil {
			result.RateLimitPerHour = *rules.RateLimitPerHour
			rateSet, contributed = true, true
		}
		if !vipDeltaSet && rules.VIPThresholdDelta != nil {
			result.VIPThresholdDelta = *rules.VIPThresholdDelta
			vipDeltaSet, contributed = true, true
		}
		if !interestsSet && rules.Interests != nil {
			interests := make([]domain.Interest, len(rules.Interests))
			copy(interests, rules.Interests)
			for i := range interests {
				interests[i].ProfileID = p.ID
			}
			result.Interests = interests
			interestsSet, contributed = true, true
		}
		if !notifyDMSet && rules.NotifyDM != nil {
			result.NotifyDM = *rules.NotifyDM
			notifyDMSet, contributed = true, true
		}
		if !notifyChannelSet && rules.NotifyChannel != nil {
			result.NotifyChannel = *rules.NotifyChannel
			notifyChannelSet, contributed = true, true
		}
		if !webhooksSet && rules.Webhooks != nil {
			result.Webhooks = rules.Webhooks
			webhooksSet, contributed = true, true
		}
		if !digestsSet && rules.Digests != nil {
			digests := make([]domain.DigestSchedule, len(rules.Digests))
			copy(digests, rules.Digests)
			for i := range digests {
				digests[i].ProfileID = p.ID
			}
			result.Digests = digests
			digestsSet, contributed = true, true
		}

		if contributed {
			result.MatchedProfileIDs = append(result.MatchedProfileIDs, p.ID)
		}
	}

	return result
}

func toIDSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// DefaultProfile is the system-wide fallback used when no stored profile
// applies. Thresholds are deliberately conservative: only strong signals
// cross the default minimum score.
func DefaultProfile() domain.EffectiveProfile {
	return domain.EffectiveProfile{
		Keywords:        map[string][]string{},
		VIPSenders:      map[int64]struct{}{},
		ExcludedSenders: map[int64]struct{}{},
		Weights: domain.Weights{
			VIP:        3.0,
			Keyword:    1.0,
			Mention:    2.0,
			Pinned:     2.0,
			Admin:      1.0,
			Engagement: 1.0,
			Link:       0.5,
			Code:       0.5,
			Document:   0.5,
			Poll:       0.5,
		},
		ReplyThreshold:    10,
		ReactionThreshold: 10,
		DetectLinks:       true,
		DetectCode:        true,
		DetectDocuments:   true,
		DetectPolls:       true,
		MinScore:          2.0,
		SemanticFloor:     0.0,
		SemanticCeiling:   10.0,
		RateLimitPerHour:  0, // unlimited
		VIPThresholdDelta: 0.0,
	}
}
