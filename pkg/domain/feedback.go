package domain

import "time"

// FeedbackType represents the type of user feedback on an alert
type FeedbackType string

// feedback types
const (
	FeedbackLike    FeedbackType = "like"
	FeedbackDislike FeedbackType = "dislike"
)

// Valid reports whether the feedback type is supported
func (t FeedbackType) Valid() bool {
	return t == FeedbackLike || t == FeedbackDislike
}

// Feedback is a user reaction to a delivered alert. Text is the alerted
// message text captured at submission time so recompute does not depend
// on raw message retention.
type Feedback struct {
	ID        int64
	ProfileID int64
	SourceID  int64
	MessageID int64
	Type      FeedbackType
	Text      string
	CreatedAt time.Time
}
