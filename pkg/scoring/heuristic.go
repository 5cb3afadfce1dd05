package scoring

import (
	"strings"

	"github.com/umputun/chatscope/pkg/domain"
)

// Heuristic is the stage-A filter: deterministic additive scoring over
// cheap signals only. It gates whether the embedding-backed stage runs
// at all, so nothing here may call out of process.
type Heuristic struct{}

// NewHeuristic creates a stage-A filter
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Evaluate scores a message against an effective profile. Each matched
// signal adds its configured weight; a message from an excluded sender
// is forced to the suppressed sentinel regardless of other signals.
func (h *Heuristic) Evaluate(msg domain.Message, profile *domain.EffectiveProfile) (score float64, tags []string) {
	if profile.IsExcluded(msg.SenderID) {
		return domain.ScoreSuppressed, []string{"excluded_sender"}
	}

	w := profile.Weights

	if profile.IsVIP(msg.SenderID) {
		score += w.VIP
		tags = append(tags, "vip")
	}

	lowered := strings.ToLower(msg.Text)
	for category, keywords := range profile.Keywords {
		hits := 0
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(kw)) {
				hits++
			}
		}
		if hits > 0 {
			score += w.Keyword * float64(hits)
			tags = append(tags, "keyword:"+category)
		}
	}

	if hasMention(msg.Text) {
		score += w.Mention
		tags = append(tags, "mention")
	}

	if msg.IsPinned {
		score += w.Pinned
		tags = append(tags, "pinned")
	}
	if msg.IsAdminPost {
		score += w.Admin
		tags = append(tags, "admin")
	}

	if profile.ReplyThreshold > 0 && msg.ReplyCount >= profile.ReplyThreshold {
		score += w.Engagement
		tags = append(tags, "replies")
	}
	if profile.ReactionThreshold > 0 && msg.ReactionCount >= profile.ReactionThreshold {
		score += w.Engagement
		tags = append(tags, "reactions")
	}

	if profile.DetectLinks && msg.HasLink {
		score += w.Link
		tags = append(tags, "link")
	}
	if profile.DetectCode && msg.HasCodeBlock {
		score += w.Code
		tags = append(tags, "code")
	}
	if profile.DetectDocuments && msg.HasDocument {
		score += w.Document
		tags = append(tags, "document")
	}
	if profile.DetectPolls && msg.HasPoll {
		score += w.Poll
		tags = append(tags, "poll")
	}

	return score, tags
}

// hasMention reports whether the text contains an @name token. A bare "@"
// or an email-style address does not count.
func hasMention(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		// must start a token
		if i > 0 && !isSpace(text[i-1]) {
			continue
		}
		// must be followed by at least one name character
		if i+1 < len(text) && isNameChar(text[i+1]) {
			return true
		}
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
