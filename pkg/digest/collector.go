package digest

import (
	"sort"
	"sync"

	"github.com/umputun/chatscope/pkg/domain"
)

// Entry is one scored message accumulated for a digest window
type Entry struct {
	Message domain.Message
	Score   domain.ScoreResult
}

// Collector accumulates scored messages per schedule key between fires.
// Batches live in memory only: dedup and last_run state are durable, so a
// restart loses at most the current partial window, never re-alerts.
type Collector struct {
	mu      sync.Mutex
	batches map[string]*batch
}

type batch struct {
	seen    map[string]struct{}
	entries []Entry
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{batches: make(map[string]*batch)}
}

// Add appends a scored message to the batch of a schedule key. A message
// already present in the batch is ignored, even if rescored with another
// result. Returns true when the entry was added.
func (c *Collector) Add(scheduleKey string, msg domain.Message, score domain.ScoreResult) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.batches[scheduleKey]
	if !ok {
		b = &batch{seen: make(map[string]struct{})}
		c.batches[scheduleKey] = b
	}

	key := msg.Key()
	if _, dup := b.seen[key]; dup {
		return false
	}
	b.seen[key] = struct{}{}
	b.entries = append(b.entries, Entry{Message: msg, Score: score})
	return true
}

// Size returns the number of entries accumulated for a schedule key
func (c *Collector) Size(scheduleKey string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.batches[scheduleKey]; ok {
		return len(b.entries)
	}
	return 0
}

// Drain removes and returns the batch for a schedule key, ordered by
// combined score descending with ties broken by timestamp ascending.
// Entries below minScore are dropped; topN > 0 truncates the result.
// The batch is cleared atomically, entries arriving after the drain
// start accumulate into the next window.
func (c *Collector) Drain(scheduleKey string, minScore float64, topN int) []Entry {
	c.mu.Lock()
	b, ok := c.batches[scheduleKey]
	if ok {
		delete(c.batches, scheduleKey)
	}
	c.mu.Unlock()

	if !ok {
		return nil
	}

	entries := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		if e.Score.CombinedScore >= minScore {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score.CombinedScore != entries[j].Score.CombinedScore {
			return entries[i].Score.CombinedScore > entries[j].Score.CombinedScore
		}
		return entries[i].Message.Timestamp.Before(entries[j].Message.Timestamp)
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
