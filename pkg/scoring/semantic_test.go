package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/chatscope/pkg/domain"
	"github.com/umputun/chatscope/pkg/scoring/mocks"
)

// embedderByText returns a mock that maps exact texts to fixed vectors
func embedderByText(vectors map[string][]float32) *mocks.EmbedderMock {
	lookup := func(text string) []float32 {
		if v, ok := vectors[text]; ok {
			return v
		}
		return []float32{0, 0}
	}
	return &mocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, text string) ([]float32, error) {
			return lookup(text), nil
		},
		EmbedBatchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			result := make([][]float32, len(texts))
			for i, text := range texts {
				result[i] = lookup(text)
			}
			return result, nil
		},
	}
}

func TestSemantic_InterestMatch(t *testing.T) {
	embedder := embedderByText(map[string][]float32{
		"kubernetes upgrade broke ingress": {1, 0},
		"cluster failure":                  {1, 0},
		"node outage":                      {1, 0},
	})

	s := NewSemantic(embedder, nil)

	profile := DefaultProfile()
	profile.Interests = []domain.Interest{{
		Name:            "infra",
		Enabled:         true,
		Threshold:       0.8,
		PositiveSamples: []string{"cluster failure", "node outage"},
		ProfileID:       5,
	}}

	msg := domain.Message{Text: "kubernetes upgrade broke ingress"}
	sim, matched, tags := s.Score(context.Background(), msg, &profile)

	assert.InDelta(t, 1.0, sim, 0.001)
	assert.Equal(t, []string{"infra"}, matched)
	assert.Contains(t, tags, "interest:infra")
}

func TestSemantic_BelowThreshold(t *testing.T) {
	embedder := embedderByText(map[string][]float32{
		"lunch plans":     {0, 1},
		"cluster failure": {1, 0},
	})

	s := NewSemantic(embedder, nil)

	profile := DefaultProfile()
	profile.Interests = []domain.Interest{{
		Name:            "infra",
		Enabled:         true,
		Threshold:       0.8,
		PositiveSamples: []string{"cluster failure"},
	}}

	sim, matched, tags := s.Score(context.Background(), domain.Message{Text: "lunch plans"}, &profile)
	assert.Zero(t, sim)
	assert.Empty(t, matched)
	assert.Empty(t, tags)
}

func TestSemantic_NegativePenalty(t *testing.T) {
	// message is similar to both sample sets, the penalty drags it under
	embedder := embedderByText(map[string][]float32{
		"gaming rig gpu prices": {1, 0},
		"gpu shortage":          {1, 0},
		"gaming hardware":       {1, 0},
	})

	s := NewSemantic(embedder, nil)

	profile := DefaultProfile()
	profile.Interests = []domain.Interest{{
		Name:            "supply-chain",
		Enabled:         true,
		Threshold:       0.5,
		NegativePenalty: 0.9,
		PositiveSamples: []string{"gpu shortage"},
		NegativeSamples: []string{"gaming hardware"},
	}}

	sim, matched, _ := s.Score(context.Background(), domain.Message{Text: "gaming rig gpu prices"}, &profile)
	assert.Zero(t, sim)
	assert.Empty(t, matched, "1.0 - 0.9*1.0 = 0.1 is below the 0.5 threshold")
}

func TestSemantic_VIPThresholdReduction(t *testing.T) {
	// similarity 0.6 against threshold 0.7: only the VIP delta lets it through
	embedder := embedderByText(map[string][]float32{
		"partial match": {0.6, 0.8},
		"exact topic":   {1, 0},
	})

	s := NewSemantic(embedder, nil)

	profile := DefaultProfile()
	profile.VIPSenders = map[int64]struct{}{42: {}}
	profile.VIPThresholdDelta = 0.15
	profile.Interests = []domain.Interest{{
		Name:            "topic",
		Enabled:         true,
		Threshold:       0.7,
		PositiveSamples: []string{"exact topic"},
	}}

	t.Run("regular sender misses", func(t *testing.T) {
		_, matched, _ := s.Score(context.Background(), domain.Message{SenderID: 7, Text: "partial match"}, &profile)
		assert.Empty(t, matched)
	})

	t.Run("vip sender matches", func(t *testing.T) {
		sim, matched, _ := s.Score(context.Background(), domain.Message{SenderID: 42, Text: "partial match"}, &profile)
		assert.Equal(t, []string{"topic"}, matched)
		// threshold is reduced, the score itself is not boosted
		assert.InDelta(t, 0.6, sim, 0.001)
	})
}

func TestSemantic_KeywordBoost(t *testing.T) {
	embedder := embedderByText(map[string][]float32{
		"urgent: database acting up": {0.6, 0.8},
		"database incidents":         {1, 0},
	})

	s := NewSemantic(embedder, nil)

	profile := DefaultProfile()
	profile.Interests = []domain.Interest{{
		Name:            "incidents",
		Enabled:         true,
		Threshold:       0.7,
		PositiveSamples: []string{"database incidents"},
		KeywordBoosts:   map[string]float64{"urgent": 0.2},
	}}

	_, matched, _ := s.Score(context.Background(), domain.Message{Text: "urgent: database acting up"}, &profile)
	assert.Equal(t, []string{"incidents"}, matched, "0.6 + 0.2 boost crosses the 0.7 threshold")
}

func TestSemantic_DisabledInterestSkipped(t *testing.T) {
	embedder := embedderByText(map[string][]float32{
		"anything": {1, 0},
		"sample":   {1, 0},
	})

	s := NewSemantic(embedder, nil)

	profile := DefaultProfile()
	profile.Interests = []domain.Interest{{
		Name:            "off",
		Enabled:         false,
		Threshold:       0.1,
		PositiveSamples: []string{"sample"},
	}}

	sim, matched, _ := s.Score(context.Background(), domain.Message{Text: "anything"}, &profile)
	assert.Zero(t, sim)
	assert.Empty(t, matched)
	assert.Empty(t, embedder.EmbedBatchCalls(), "disabled interest must not embed samples")
}

func TestSemantic_BackendUnavailable(t *testing.T) {
	t.Run("nil embedder", func(t *testing.T) {
		s := NewSemantic(nil, nil)
		profile := DefaultProfile()
		sim, matched, tags := s.Score(context.Background(), domain.Message{Text: "x"}, &profile)
		assert.Zero(t, sim)
		assert.Empty(t, matched)
		assert.Equal(t, []string{"semantic_unavailable"}, tags)
	})

	t.Run("embed error", func(t *testing.T) {
		embedder := &mocks.EmbedderMock{
			EmbedFunc: func(ctx context.Context, text string) ([]float32, error) {
				return nil, errors.New("backend down")
			},
		}
		s := NewSemantic(embedder, nil)
		profile := DefaultProfile()
		profile.Interests = []domain.Interest{{Name: "x", Enabled: true, Threshold: 0.5, PositiveSamples: []string{"s"}}}

		sim, matched, tags := s.Score(context.Background(), domain.Message{Text: "x"}, &profile)
		assert.Zero(t, sim)
		assert.Empty(t, matched)
		assert.Equal(t, []string{"semantic_unavailable"}, tags)
	})
}

func TestSemantic_CentroidCache(t *testing.T) {
	embedder := embedderByText(map[string][]float32{
		"msg":    {1, 0},
		"sample": {1, 0},
	})

	s := NewSemantic(embedder, nil)

	profile := DefaultProfile()
	profile.Interests = []domain.Interest{{
		Name:            "cached",
		Enabled:         true,
		Threshold:       0.5,
		PositiveSamples: []string{"sample"},
		ProfileID:       9,
	}}

	ctx := context.Background()
	msg := domain.Message{Text: "msg"}

	_, matched, _ := s.Score(ctx, msg, &profile)
	require.NotEmpty(t, matched)
	_, _, _ = s.Score(ctx, msg, &profile)
	assert.Len(t, embedder.EmbedBatchCalls(), 1, "centroids are computed once")

	s.InvalidateProfile(9)
	_, _, _ = s.Score(ctx, msg, &profile)
	assert.Len(t, embedder.EmbedBatchCalls(), 2, "invalidation forces a recompute")
}

func TestSemantic_FeedbackSamplesExtendCentroids(t *testing.T) {
	embedder := embedderByText(map[string][]float32{
		"replication lag on replica 3": {1, 0},
		"primary failover took 40s":    {1, 0},
		"friday standup moved":         {0, 1},
	})

	feedback := &mocks.FeedbackSamplerMock{
		RecentFeedbackFunc: func(ctx context.Context, profileID int64, feedbackType string, limit int) ([]domain.Feedback, error) {
			if feedbackType == string(domain.FeedbackLike) {
				return []domain.Feedback{{ProfileID: profileID, Text: "primary failover took 40s"}}, nil
			}
			return []domain.Feedback{{ProfileID: profileID, Text: "friday standup moved"}}, nil
		},
	}

	s := NewSemantic(embedder, feedback)

	// no configured samples at all, the centroids come from feedback alone
	profile := DefaultProfile()
	profile.Interests = []domain.Interest{{
		Name:      "db-incidents",
		Enabled:   true,
		Threshold: 0.8,
		ProfileID: 7,
	}}

	msg := domain.Message{Text: "replication lag on replica 3"}
	sim, matched, _ := s.Score(context.Background(), msg, &profile)

	assert.InDelta(t, 1.0, sim, 0.001)
	assert.Equal(t, []string{"db-incidents"}, matched)

	calls := feedback.RecentFeedbackCalls()
	require.Len(t, calls, 2, "one query per feedback type")
	assert.Equal(t, int64(7), calls[0].ProfileID)

	// centroids are cached, the second score does not requery
	_, _, _ = s.Score(context.Background(), msg, &profile)
	assert.Len(t, feedback.RecentFeedbackCalls(), 2)
}

func TestSemantic_FeedbackStoreErrorDegrades(t *testing.T) {
	embedder := embedderByText(map[string][]float32{
		"cluster failure": {1, 0},
		"node down":       {1, 0},
	})

	feedback := &mocks.FeedbackSamplerMock{
		RecentFeedbackFunc: func(ctx context.Context, profileID int64, feedbackType string, limit int) ([]domain.Feedback, error) {
			return nil, errors.New("db locked")
		},
	}

	s := NewSemantic(embedder, feedback)

	profile := DefaultProfile()
	profile.Interests = []domain.Interest{{
		Name:            "infra",
		Enabled:         true,
		Threshold:       0.8,
		PositiveSamples: []string{"cluster failure"},
	}}

	// configured samples still work without the feedback store
	sim, matched, tags := s.Score(context.Background(), domain.Message{Text: "node down"}, &profile)
	assert.InDelta(t, 1.0, sim, 0.001)
	assert.Equal(t, []string{"infra"}, matched)
	assert.NotContains(t, tags, "semantic_unavailable")
}
