package domain

// ScoreSuppressed is the sentinel score for messages from excluded senders.
// It is low enough that no additive signal can bring the total above any
// sane minimum score.
const ScoreSuppressed = -1000.0

// ScoreResult is the outcome of one evaluation pass over a message.
// Produced once, never mutated.
type ScoreResult struct {
	HeuristicScore    float64
	SemanticScore     float64
	CombinedScore     float64
	Tags              []string
	MatchedProfileIDs []int64
	MatchedInterests  []string
}

// Suppressed reports whether the message was force-suppressed at stage A
func (s ScoreResult) Suppressed() bool {
	return s.HeuristicScore <= ScoreSuppressed
}

// HasTag checks for a trigger tag
func (s ScoreResult) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
