package delivery

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/chatscope/pkg/domain"
)

// webhookAttempts is the total number of tries per webhook delivery
const webhookAttempts = 4

// attemptDelay returns the pause before attempt n (1-based): 0s, 1s, 2s, 4s
func attemptDelay(n int) time.Duration {
	switch n {
	case 2:
		return time.Second
	case 3:
		return 2 * time.Second
	case 4:
		return 4 * time.Second
	}
	return 0
}

// deliverWebhook posts the payload to a registered webhook service with
// retries. Every try gets its own attempt row: retry_1..retry_3 for failed
// tries that will be repeated, then a final success or failed.
func (o *Orchestrator) deliverWebhook(ctx context.Context, service string, payload domain.Payload) {
	groupID := uuid.New().String()

	target, ok := o.webhooks[service]
	if !ok || target.URL == "" {
		o.record(ctx, &domain.DeliveryAttempt{
			GroupID:       groupID,
			ProfileID:     payload.ProfileID,
			TargetKind:    domain.TargetWebhook,
			TargetID:      service,
			AttemptNumber: 1,
			Status:        domain.StatusFailed,
			Error:         fmt.Sprintf("webhook service %q not registered", service),
		})
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		o.record(ctx, &domain.DeliveryAttempt{
			GroupID:       groupID,
			ProfileID:     payload.ProfileID,
			TargetKind:    domain.TargetWebhook,
			TargetID:      service,
			AttemptNumber: 1,
			Status:        domain.StatusFailed,
			Error:         fmt.Sprintf("marshal payload: %v", err),
		})
		return
	}

	hash := sha256.Sum256(body)
	signature := signBody(body, target.Secret)

	for n := 1; n <= webhookAttempts; n++ {
		if delay := o.delays(n); delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				// the group still needs a terminal row, retry_N is not a
				// state the history may end on
				o.record(context.WithoutCancel(ctx), &domain.DeliveryAttempt{
					GroupID:       groupID,
					ProfileID:     payload.ProfileID,
					TargetKind:    domain.TargetWebhook,
					TargetID:      service,
					PayloadHash:   hex.EncodeToString(hash[:]),
					AttemptNumber: n,
					Status:        domain.StatusFailed,
					Error:         "canceled",
				})
				return
			}
		}

		attempt := &domain.DeliveryAttempt{
			GroupID:       groupID,
			ProfileID:     payload.ProfileID,
			TargetKind:    domain.TargetWebhook,
			TargetID:      service,
			PayloadHash:   hex.EncodeToString(hash[:]),
			AttemptNumber: n,
		}

		started := time.Now()
		status, err := o.post(ctx, target.URL, body, signature, groupID)
		attempt.LatencyMs = time.Since(started).Milliseconds()
		attempt.HTTPStatus = status

		switch {
		case err == nil && status >= 200 && status < 300:
			attempt.Status = domain.StatusSuccess
			o.record(ctx, attempt)
			return

		case err == nil && status >= 400 && status < 500 && status != http.StatusTooManyRequests:
			// 4xx other than 429 is permanent, no retry
			attempt.Status = domain.StatusFailed
			attempt.Error = fmt.Sprintf("permanent failure: http %d", status)
			o.record(ctx, attempt)
			return

		default:
			if err != nil {
				attempt.Error = err.Error()
			} else {
				attempt.Error = fmt.Sprintf("http %d", status)
			}
			if n == webhookAttempts {
				attempt.Status = domain.StatusFailed
				o.record(ctx, attempt)
				lgr.Printf("[WARN] webhook %s delivery failed after %d attempts: %s", service, webhookAttempts, attempt.Error)
				return
			}
			attempt.Status = domain.RetryStatus(n)
			o.record(ctx, attempt)
		}
	}
}

// post performs one signed webhook call bounded by the per-call timeout
func (o *Orchestrator) post(ctx context.Context, url string, body []byte, signature, deliveryID string) (int, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Chatscope-Signature", signature)
	req.Header.Set("X-Chatscope-Delivery", deliveryID)

	resp, err := o.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("webhook call: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// signBody returns the hex HMAC-SHA256 of the exact body bytes
func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// payloadHash identifies the payload content for dm/channel attempt rows
func payloadHash(payload domain.Payload) string {
	body, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	hash := sha256.Sum256(body)
	return hex.EncodeToString(hash[:])
}
