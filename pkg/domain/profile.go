package domain

import "time"

// ProfileLevel defines where a profile applies. More specific levels win
// over less specific ones during resolution: channel > user > profile > global.
type ProfileLevel string

// profile levels in precedence order
const (
	LevelChannel ProfileLevel = "channel"
	LevelUser    ProfileLevel = "user"
	LevelProfile ProfileLevel = "profile"
	LevelGlobal  ProfileLevel = "global"
)

// Specificity returns the precedence rank of a level, lower wins
func (l ProfileLevel) Specificity() int {
	switch l {
	case LevelChannel:
		return 0
	case LevelUser:
		return 1
	case LevelProfile:
		return 2
	case LevelGlobal:
		return 3
	}
	return 4
}

// Profile is a stored rule set. SourceID is set for channel-level profiles,
// SenderID for user-level ones; both are nil for profile and global levels.
type Profile struct {
	ID        int64
	Name      string
	Level     ProfileLevel
	SourceID  *int64
	SenderID  *int64
	Priority  int
	Enabled   bool
	Rules     Rules
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rules holds the configurable scoring and delivery rules of a profile.
// Optional fields are pointers so resolution can tell "explicitly set"
// from "zero value"; a field set at a more specific level replaces the
// whole field, not individual elements.
type Rules struct {
	Keywords          map[string][]string `json:"keywords,omitempty"`
	VIPSenders        []int64             `json:"vip_senders,omitempty"`
	ExcludedSenders   []int64             `json:"excluded_senders,omitempty"`
	Weights           *Weights            `json:"weights,omitempty"`
	ReplyThreshold    *int                `json:"reply_threshold,omitempty"`
	ReactionThreshold *int                `json:"reaction_threshold,omitempty"`
	DetectLinks       *bool               `json:"detect_links,omitempty"`
	DetectCode        *bool               `json:"detect_code,omitempty"`
	DetectDocuments   *bool               `json:"detect_documents,omitempty"`
	DetectPolls       *bool               `json:"detect_polls,omitempty"`
	MinScore          *float64            `json:"min_score,omitempty"`
	SemanticFloor     *float64            `json:"semantic_floor,omitempty"`
	SemanticCeiling   *float64            `json:"semantic_ceiling,omitempty"`
	RateLimitPerHour  *int                `json:"rate_limit_per_hour,omitempty"`
	VIPThresholdDelta *float64            `json:"vip_threshold_delta,omitempty"`
	Interests         []Interest          `json:"interests,omitempty"`
	NotifyDM          *string             `json:"notify_dm,omitempty"`
	NotifyChannel     *string             `json:"notify_channel,omitempty"`
	Webhooks          []string            `json:"webhooks,omitempty"`
	Digests           []DigestSchedule    `json:"digests,omitempty"`
}

// Weights defines additive contributions of heuristic signals
type Weights struct {
	VIP        float64 `json:"vip"`
	Keyword    float64 `json:"keyword"`
	Mention    float64 `json:"mention"`
	Pinned     float64 `json:"pinned"`
	Admin      float64 `json:"admin"`
	Engagement float64 `json:"engagement"`
	Link       float64 `json:"link"`
	Code       float64 `json:"code"`
	Document   float64 `json:"document"`
	Poll       float64 `json:"poll"`
}

// Interest is a semantic interest definition. Positive and negative samples
// define the centroids the message embedding is compared against.
type Interest struct {
	Name            string             `json:"name"`
	Enabled         bool               `json:"enabled"`
	Threshold       float64            `json:"threshold"`
	NegativePenalty float64            `json:"negative_penalty,omitempty"`
	PositiveSamples []string           `json:"positive_samples,omitempty"`
	NegativeSamples []string           `json:"negative_samples,omitempty"`
	KeywordBoosts   map[string]float64 `json:"keyword_boosts,omitempty"`

	// ProfileID is filled in at resolution time to track provenance
	ProfileID int64 `json:"-"`
}

// EffectiveProfile is the merged, precedence-resolved rule set for one
// (source, sender) context. It is a value snapshot with no back-reference
// to the profile store; resolver cache invalidation produces a fresh one.
type EffectiveProfile struct {
	Keywords          map[string][]string
	VIPSenders        map[int64]struct{}
	ExcludedSenders   map[int64]struct{}
	Weights           Weights
	ReplyThreshold    int
	ReactionThreshold int
	DetectLinks       bool
	DetectCode        bool
	DetectDocuments   bool
	DetectPolls       bool
	MinScore          float64
	SemanticFloor     float64
	SemanticCeiling   float64
	RateLimitPerHour  int
	VIPThresholdDelta float64
	Interests         []Interest
	NotifyDM          string
	NotifyChannel     string
	Webhooks          []string
	Digests           []DigestSchedule

	// MatchedProfileIDs lists contributing profiles in precedence order
	MatchedProfileIDs []int64
	// WarningTags carries non-fatal resolution problems, e.g. resolver_fallback
	WarningTags []string
}

// Targets returns the delivery sinks configured on the profile, in a
// stable order: dm, channel, then webhooks as listed.
func (p *EffectiveProfile) Targets() []Target {
	var targets []Target
	if p.NotifyDM != "" {
		targets = append(targets, Target{Kind: TargetDM, ID: p.NotifyDM})
	}
	if p.NotifyChannel != "" {
		targets = append(targets, Target{Kind: TargetChannel, ID: p.NotifyChannel})
	}
	for _, name := range p.Webhooks {
		targets = append(targets, Target{Kind: TargetWebhook, ID: name})
	}
	return targets
}

// IsVIP reports whether the sender gets preferential treatment
func (p *EffectiveProfile) IsVIP(senderID int64) bool {
	_, ok := p.VIPSenders[senderID]
	return ok
}

// IsExcluded reports whether the sender is suppressed entirely
func (p *EffectiveProfile) IsExcluded(senderID int64) bool {
	_, ok := p.ExcludedSenders[senderID]
	return ok
}
