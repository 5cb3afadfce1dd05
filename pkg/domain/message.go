package domain

import (
	"fmt"
	"time"
)

// Message is a normalized chat message handed over by the ingestion transport.
// It is immutable once produced; identity is (SourceID, MessageID).
type Message struct {
	SourceID      int64
	MessageID     int64
	SenderID      int64
	Text          string
	Timestamp     time.Time
	ReplyCount    int
	ReactionCount int
	IsPinned      bool
	IsAdminPost   bool
	HasLink       bool
	HasCodeBlock  bool
	HasDocument   bool
	HasPoll       bool
}

// Key returns the message identity as a stable string
func (m Message) Key() string {
	return fmt.Sprintf("%d:%d", m.SourceID, m.MessageID)
}
