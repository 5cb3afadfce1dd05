package scoring

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/chatscope/pkg/domain"
	"github.com/umputun/chatscope/pkg/llm"
)

//go:generate moq -out mocks/embedder.go -pkg mocks -skip-ensure -fmt goimports . Embedder
//go:generate moq -out mocks/feedback_sampler.go -pkg mocks -skip-ensure -fmt goimports . FeedbackSampler

// Embedder turns text into vectors, the stage-B collaborator
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// FeedbackSampler supplies recent liked and disliked message texts, they
// extend an interest's configured samples at centroid computation
type FeedbackSampler interface {
	RecentFeedback(ctx context.Context, profileID int64, feedbackType string, limit int) ([]domain.Feedback, error)
}

// feedbackSampleLimit caps how many feedback texts per type join a centroid
const feedbackSampleLimit = 20

// Semantic is the stage-B scorer: cosine similarity between the message
// embedding and per-interest sample centroids. Backend failures degrade
// to a zero contribution, heuristic-only operation stays correct.
type Semantic struct {
	embedder Embedder
	feedback FeedbackSampler

	mu        sync.Mutex
	centroids map[centroidKey]interestCentroids
}

type centroidKey struct {
	profileID int64
	interest  string
}

type interestCentroids struct {
	positive []float32
	negative []float32
}

// NewSemantic creates a stage-B scorer. A nil embedder disables the stage,
// every call reports semantic_unavailable. A nil feedback sampler limits
// centroids to the interest's configured samples.
func NewSemantic(embedder Embedder, feedback FeedbackSampler) *Semantic {
	return &Semantic{
		embedder:  embedder,
		feedback:  feedback,
		centroids: make(map[centroidKey]interestCentroids),
	}
}

// Score evaluates the message text against every enabled interest of the
// profile. An interest matches when its adjusted similarity reaches the
// threshold; VIP senders get the configured delta subtracted from the
// threshold, never added to the score. Returns the best matched adjusted
// similarity as the semantic contribution.
func (s *Semantic) Score(ctx context.Context, msg domain.Message, profile *domain.EffectiveProfile) (similarity float64, matched []string, tags []string) {
	if s.embedder == nil || len(profile.Interests) == 0 {
		if s.embedder == nil {
			return 0, nil, []string{"semantic_unavailable"}
		}
		return 0, nil, nil
	}

	msgVec, err := s.embedder.Embed(ctx, msg.Text)
	if err != nil {
		lgr.Printf("[WARN] embedding backend unavailable, heuristic-only for %s: %v", msg.Key(), err)
		return 0, nil, []string{"semantic_unavailable"}
	}

	vip := profile.IsVIP(msg.SenderID)
	lowered := strings.ToLower(msg.Text)

	best := 0.0
	for i := range profile.Interests {
		interest := &profile.Interests[i]
		if !interest.Enabled {
			continue
		}

		cents, err := s.interestCentroids(ctx, interest)
		if err != nil {
			lgr.Printf("[WARN] centroid computation failed for interest %q: %v", interest.Name, err)
			return 0, nil, []string{"semantic_unavailable"}
		}
		if cents.positive == nil {
			continue // interest without positive samples scores nothing
		}

		adjusted := llm.Cosine(msgVec, cents.positive)
		if cents.negative != nil && interest.NegativePenalty > 0 {
			adjusted -= interest.NegativePenalty * llm.Cosine(msgVec, cents.negative)
		}
		for kw, boost := range interest.KeywordBoosts {
			if kw != "" && strings.Contains(lowered, strings.ToLower(kw)) {
				adjusted += boost
			}
		}
		adjusted = math.Max(-1, math.Min(1, adjusted))

		threshold := interest.Threshold
		if vip {
			threshold -= profile.VIPThresholdDelta
		}

		if adjusted >= threshold {
			matched = append(matched, interest.Name)
			tags = append(tags, "interest:"+interest.Name)
			if adjusted > best {
				best = adjusted
			}
		}
	}

	return best, matched, tags
}

// InvalidateProfile drops cached centroids owned by a profile, called when
// its interests change or a feedback batch recomputes samples.
func (s *Semantic) InvalidateProfile(profileID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.centroids {
		if key.profileID == profileID {
			delete(s.centroids, key)
		}
	}
}

// interestCentroids returns cached centroids or embeds the samples and
// caches the result. One embedding batch covers both sample sets.
func (s *Semantic) interestCentroids(ctx context.Context, interest *domain.Interest) (interestCentroids, error) {
	key := centroidKey{profileID: interest.ProfileID, interest: interest.Name}

	s.mu.Lock()
	if cached, ok := s.centroids[key]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	positives := append([]string{}, interest.PositiveSamples...)
	negatives := append([]string{}, interest.NegativeSamples...)
	if s.feedback != nil {
		liked, disliked := s.feedbackSamples(ctx, interest.ProfileID)
		positives = append(positives, liked...)
		negatives = append(negatives, disliked...)
	}

	texts := make([]string, 0, len(positives)+len(negatives))
	texts = append(texts, positives...)
	texts = append(texts, negatives...)

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return interestCentroids{}, err
	}

	cents := interestCentroids{
		positive: llm.Centroid(vectors[:len(positives)]),
		negative: llm.Centroid(vectors[len(positives):]),
	}

	s.mu.Lock()
	s.centroids[key] = cents
	s.mu.Unlock()

	return cents, nil
}

// feedbackSamples returns liked and disliked message texts for a profile.
// A store failure degrades to configured samples only.
func (s *Semantic) feedbackSamples(ctx context.Context, profileID int64) (liked, disliked []string) {
	collect := func(ft domain.FeedbackType) []string {
		rows, err := s.feedback.RecentFeedback(ctx, profileID, string(ft), feedbackSampleLimit)
		if err != nil {
			lgr.Printf("[WARN] feedback samples unavailable for profile %d: %v", profileID, err)
			return nil
		}
		texts := make([]string, 0, len(rows))
		for _, fb := range rows {
			if fb.Text != "" {
				texts = append(texts, fb.Text)
			}
		}
		return texts
	}
	return collect(domain.FeedbackLike), collect(domain.FeedbackDislike)
}
