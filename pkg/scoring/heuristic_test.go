package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/chatscope/pkg/domain"
)

func TestHeuristic_KeywordScoring(t *testing.T) {
	h := NewHeuristic()

	profile := DefaultProfile()
	profile.Keywords = map[string][]string{"security": {"CVE", "exploit"}}
	profile.MinScore = 2.0

	msg := domain.Message{
		SourceID:  100,
		MessageID: 1,
		SenderID:  7,
		Text:      "CVE-2025-1234 critical exploit",
		Timestamp: time.Now(),
	}

	score, tags := h.Evaluate(msg, &profile)
	assert.GreaterOrEqual(t, score, 2.0, "two keyword hits must reach the minimum score")
	assert.Contains(t, tags, "keyword:security")
}

func TestHeuristic_KeywordCaseInsensitive(t *testing.T) {
	h := NewHeuristic()

	profile := DefaultProfile()
	profile.Keywords = map[string][]string{"release": {"DEPLOY"}}

	score, tags := h.Evaluate(domain.Message{Text: "we deploy at noon"}, &profile)
	assert.InDelta(t, profile.Weights.Keyword, score, 0.001)
	assert.Contains(t, tags, "keyword:release")
}

func TestHeuristic_ExcludedSender(t *testing.T) {
	h := NewHeuristic()

	profile := DefaultProfile()
	profile.ExcludedSenders = map[int64]struct{}{13: {}}
	profile.VIPSenders = map[int64]struct{}{13: {}} // exclusion beats everything
	profile.Keywords = map[string][]string{"security": {"CVE"}}

	msg := domain.Message{SenderID: 13, Text: "CVE everywhere", IsPinned: true}
	score, tags := h.Evaluate(msg, &profile)

	assert.InDelta(t, domain.ScoreSuppressed, score, 0.001)
	assert.Equal(t, []string{"excluded_sender"}, tags)
}

func TestHeuristic_VIPSender(t *testing.T) {
	h := NewHeuristic()

	profile := DefaultProfile()
	profile.VIPSenders = map[int64]struct{}{42: {}}

	score, tags := h.Evaluate(domain.Message{SenderID: 42, Text: "hi"}, &profile)
	assert.InDelta(t, profile.Weights.VIP, score, 0.001)
	assert.Contains(t, tags, "vip")
}

func TestHeuristic_Engagement(t *testing.T) {
	h := NewHeuristic()

	profile := DefaultProfile()
	profile.ReplyThreshold = 5
	profile.ReactionThreshold = 3

	t.Run("below thresholds", func(t *testing.T) {
		score, tags := h.Evaluate(domain.Message{ReplyCount: 4, ReactionCount: 2}, &profile)
		assert.Zero(t, score)
		assert.Empty(t, tags)
	})

	t.Run("both crossed", func(t *testing.T) {
		score, tags := h.Evaluate(domain.Message{ReplyCount: 5, ReactionCount: 3}, &profile)
		assert.InDelta(t, 2*profile.Weights.Engagement, score, 0.001)
		assert.Contains(t, tags, "replies")
		assert.Contains(t, tags, "reactions")
	})
}

func TestHeuristic_PinnedAndAdmin(t *testing.T) {
	h := NewHeuristic()
	profile := DefaultProfile()

	score, tags := h.Evaluate(domain.Message{IsPinned: true, IsAdminPost: true}, &profile)
	assert.InDelta(t, profile.Weights.Pinned+profile.Weights.Admin, score, 0.001)
	assert.Contains(t, tags, "pinned")
	assert.Contains(t, tags, "admin")
}

func TestHeuristic_DetectionToggles(t *testing.T) {
	h := NewHeuristic()

	msg := domain.Message{HasLink: true, HasCodeBlock: true, HasDocument: true, HasPoll: true}

	t.Run("all enabled", func(t *testing.T) {
		profile := DefaultProfile()
		score, tags := h.Evaluate(msg, &profile)
		expected := profile.Weights.Link + profile.Weights.Code + profile.Weights.Document + profile.Weights.Poll
		assert.InDelta(t, expected, score, 0.001)
		assert.Contains(t, tags, "link")
		assert.Contains(t, tags, "code")
	})

	t.Run("all disabled", func(t *testing.T) {
		profile := DefaultProfile()
		profile.DetectLinks = false
		profile.DetectCode = false
		profile.DetectDocuments = false
		profile.DetectPolls = false
		score, tags := h.Evaluate(msg, &profile)
		assert.Zero(t, score)
		assert.Empty(t, tags)
	})
}

func TestHeuristic_Mention(t *testing.T) {
	h := NewHeuristic()
	profile := DefaultProfile()

	tests := []struct {
		text string
		want bool
	}{
		{"hey @alice look at this", true},
		{"@bob ping", true},
		{"no mentions here", false},
		{"email me at user@example.com", false},
		{"just an @ sign", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			score, tags := h.Evaluate(domain.Message{Text: tt.text}, &profile)
			if tt.want {
				assert.InDelta(t, profile.Weights.Mention, score, 0.001)
				assert.Contains(t, tags, "mention")
				return
			}
			assert.Zero(t, score)
			assert.NotContains(t, tags, "mention")
		})
	}
}

func TestHeuristic_EmptyConfiguration(t *testing.T) {
	h := NewHeuristic()

	// empty keyword/VIP config contributes zero, never errors
	profile := domain.EffectiveProfile{}
	score, tags := h.Evaluate(domain.Message{Text: "anything at all"}, &profile)
	assert.Zero(t, score)
	assert.Empty(t, tags)
}
