package domain

import (
	"fmt"
	"time"
)

// TargetKind defines the delivery sink type
type TargetKind string

// delivery sink kinds
const (
	TargetDM      TargetKind = "dm"
	TargetChannel TargetKind = "channel"
	TargetWebhook TargetKind = "webhook"
)

// Target is one delivery destination. For webhooks ID is the registered
// service name, for dm/channel it is the transport-specific recipient id.
type Target struct {
	Kind TargetKind
	ID   string
}

// AttemptStatus is the state of a single delivery attempt
type AttemptStatus string

// terminal and intermediate attempt states
const (
	StatusPending AttemptStatus = "pending"
	StatusSuccess AttemptStatus = "success"
	StatusFailed  AttemptStatus = "failed"
)

// RetryStatus returns the intermediate status for a failed attempt n (1-based)
// that will be retried, e.g. retry_1 for the first attempt.
func RetryStatus(n int) AttemptStatus {
	return AttemptStatus(fmt.Sprintf("retry_%d", n))
}

// DeliveryAttempt is one append-only record of a delivery try. Rows are
// never mutated, a new attempt supersedes the previous one within the
// same GroupID.
type DeliveryAttempt struct {
	ID            int64
	GroupID       string // uuid shared by all attempts of one delivery
	ProfileID     int64
	TargetKind    TargetKind
	TargetID      string
	PayloadHash   string
	AttemptNumber int
	Status        AttemptStatus
	HTTPStatus    int
	LatencyMs     int64
	Error         string
	CreatedAt     time.Time
}

// PayloadKind distinguishes alert and digest deliveries
type PayloadKind string

// payload kinds
const (
	PayloadAlert  PayloadKind = "alert"
	PayloadDigest PayloadKind = "digest"
)

// PayloadItem is one scored message inside a delivery payload
type PayloadItem struct {
	SourceID  int64     `json:"source_id"`
	MessageID int64     `json:"message_id"`
	SenderID  int64     `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
	Tags      []string  `json:"tags,omitempty"`
}

// Payload is the body handed to the delivery orchestrator. The same value
// is serialized to JSON for webhooks and rendered to text for dm/channel.
type Payload struct {
	Kind      PayloadKind   `json:"kind"`
	BatchID   string        `json:"batch_id"`
	ProfileID int64         `json:"profile_id"`
	Subject   string        `json:"subject"`
	Items     []PayloadItem `json:"items"`
	CreatedAt time.Time     `json:"created_at"`
}
