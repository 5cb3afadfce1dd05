package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/chatscope/pkg/domain"
	"github.com/umputun/chatscope/pkg/repository"
	"github.com/umputun/chatscope/pkg/scoring/mocks"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestResolver_Precedence(t *testing.T) {
	// candidates arrive ordered by specificity, the way the store returns them
	channelProfile := &domain.Profile{
		ID:    1,
		Name:  "channel override",
		Level: domain.LevelChannel,
		Rules: domain.Rules{MinScore: floatPtr(5.0)},
	}
	globalProfile := &domain.Profile{
		ID:    2,
		Name:  "global default",
		Level: domain.LevelGlobal,
		Rules: domain.Rules{
			MinScore: floatPtr(1.0),
			Keywords: map[string][]string{"security": {"CVE", "exploit"}},
		},
	}

	store := &mocks.ProfileStoreMock{
		GetCandidatesFunc: func(ctx context.Context, sourceID, senderID int64) ([]*domain.Profile, error) {
			return []*domain.Profile{channelProfile, globalProfile}, nil
		},
	}

	resolver := NewResolver(store)
	profile := resolver.Resolve(context.Background(), 100, 7)

	// channel value wins wholesale, never a blend of the two
	assert.InDelta(t, 5.0, profile.MinScore, 0.001)

	// fields the channel profile left unset come from the global one
	assert.Equal(t, map[string][]string{"security": {"CVE", "exploit"}}, profile.Keywords)

	assert.Equal(t, []int64{1, 2}, profile.MatchedProfileIDs)
	assert.Empty(t, profile.WarningTags)
}

func TestResolver_Cache(t *testing.T) {
	store := &mocks.ProfileStoreMock{
		GetCandidatesFunc: func(ctx context.Context, sourceID, senderID int64) ([]*domain.Profile, error) {
			return []*domain.Profile{
				{ID: 1, Level: domain.LevelGlobal, Rules: domain.Rules{MinScore: floatPtr(3.0)}},
			}, nil
		},
	}

	resolver := NewResolver(store)
	ctx := context.Background()

	first := resolver.Resolve(ctx, 100, 7)
	second := resolver.Resolve(ctx, 100, 7)
	assert.Equal(t, first, second)
	assert.Len(t, store.GetCandidatesCalls(), 1, "second resolve must hit the cache")

	// different context is a different cache entry
	resolver.Resolve(ctx, 100, 8)
	assert.Len(t, store.GetCandidatesCalls(), 2)

	// invalidating the contributing profile drops only its contexts
	resolver.Invalidate(1)
	resolver.Resolve(ctx, 100, 7)
	assert.Len(t, store.GetCandidatesCalls(), 4, "both contexts touched profile 1")
}

func TestResolver_InvalidateAll(t *testing.T) {
	store := &mocks.ProfileStoreMock{
		GetCandidatesFunc: func(ctx context.Context, sourceID, senderID int64) ([]*domain.Profile, error) {
			return nil, nil
		},
	}

	resolver := NewResolver(store)
	ctx := context.Background()

	resolver.Resolve(ctx, 1, 1)
	resolver.Resolve(ctx, 1, 1)
	require.Len(t, store.GetCandidatesCalls(), 1)

	resolver.InvalidateAll()
	resolver.Resolve(ctx, 1, 1)
	assert.Len(t, store.GetCandidatesCalls(), 2)
}

func TestResolver_NoMatchingProfiles(t *testing.T) {
	store := &mocks.ProfileStoreMock{
		GetCandidatesFunc: func(ctx context.Context, sourceID, senderID int64) ([]*domain.Profile, error) {
			return nil, nil
		},
	}

	resolver := NewResolver(store)
	profile := resolver.Resolve(context.Background(), 1, 2)

	// built-in default, never empty
	assert.NotNil(t, profile.Keywords)
	assert.NotNil(t, profile.VIPSenders)
	assert.Positive(t, profile.MinScore)
	assert.Positive(t, profile.Weights.Keyword)
	assert.Empty(t, profile.WarningTags)
}

func TestResolver_StoreError(t *testing.T) {
	store := &mocks.ProfileStoreMock{
		GetCandidatesFunc: func(ctx context.Context, sourceID, senderID int64) ([]*domain.Profile, error) {
			return nil, errors.New("db gone")
		},
	}

	resolver := NewResolver(store)
	profile := resolver.Resolve(context.Background(), 1, 2)

	assert.Contains(t, profile.WarningTags, "resolver_fallback")
	assert.Positive(t, profile.MinScore, "fallback still has usable thresholds")

	// error results are not cached, the store gets another chance
	resolver.Resolve(context.Background(), 1, 2)
	assert.Len(t, store.GetCandidatesCalls(), 2)
}

func TestResolver_MalformedProfiles(t *testing.T) {
	store := &mocks.ProfileStoreMock{
		GetCandidatesFunc: func(ctx context.Context, sourceID, senderID int64) ([]*domain.Profile, error) {
			valid := []*domain.Profile{
				{ID: 3, Level: domain.LevelGlobal, Rules: domain.Rules{MinScore: floatPtr(4.0)}},
			}
			return valid, &repository.MalformedProfileError{Err: errors.New("unmarshal rules for profile 9")}
		},
	}

	resolver := NewResolver(store)
	profile := resolver.Resolve(context.Background(), 1, 2)

	// valid candidates still apply, the skip is surfaced as a warning
	assert.InDelta(t, 4.0, profile.MinScore, 0.001)
	assert.Contains(t, profile.WarningTags, "resolver_fallback")
}

func TestResolver_InterestProvenance(t *testing.T) {
	store := &mocks.ProfileStoreMock{
		GetCandidatesFunc: func(ctx context.Context, sourceID, senderID int64) ([]*domain.Profile, error) {
			return []*domain.Profile{
				{ID: 11, Level: domain.LevelUser, Rules: domain.Rules{
					Interests: []domain.Interest{{Name: "infra", Enabled: true, Threshold: 0.7}},
					Digests:   []domain.DigestSchedule{{Type: domain.ScheduleDaily, Enabled: true, DailyHour: intPtr(9)}},
				}},
			}, nil
		},
	}

	resolver := NewResolver(store)
	profile := resolver.Resolve(context.Background(), 1, 2)

	require.Len(t, profile.Interests, 1)
	assert.Equal(t, int64(11), profile.Interests[0].ProfileID)
	require.Len(t, profile.Digests, 1)
	assert.Equal(t, int64(11), profile.Digests[0].ProfileID)
}
