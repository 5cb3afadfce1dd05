// Package notify adapts chat transports to the delivery.Notifier contract.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/umputun/chatscope/pkg/domain"
)

// botAPI is the slice of the Bot API client the notifier needs
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts alerts and digests to telegram chats. Send-only: the
// ingestion side of the transport lives outside this system.
type Telegram struct {
	bot botAPI
}

// NewTelegram creates a notifier authorized with the given bot token
func NewTelegram(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	lgr.Printf("[INFO] telegram notifier authorized as @%s", bot.Self.UserName)
	return &Telegram{bot: bot}, nil
}

// Send posts the payload to the chat identified by the target. The target
// id is the numeric chat id, negative for channels and groups.
func (t *Telegram) Send(_ context.Context, target domain.Target, payload domain.Payload) error {
	chatID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", target.ID, err)
	}

	msg := tgbotapi.NewMessage(chatID, renderText(payload))
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send to chat %d: %w", chatID, err)
	}
	return nil
}

// renderText formats a payload as a plain-text chat message
func renderText(payload domain.Payload) string {
	var b strings.Builder

	switch payload.Kind {
	case domain.PayloadDigest:
		fmt.Fprintf(&b, "Digest: %s (%d messages)\n", payload.Subject, len(payload.Items))
	default:
		fmt.Fprintf(&b, "Alert: %s\n", payload.Subject)
	}

	for _, item := range payload.Items {
		text := item.Text
		if runes := []rune(text); len(runes) > 200 {
			text = string(runes[:200]) + "…"
		}
		fmt.Fprintf(&b, "\n[%.1f] %s", item.Score, text)
		if len(item.Tags) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(item.Tags, ", "))
		}
	}

	return b.String()
}
