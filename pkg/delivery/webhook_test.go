package delivery

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/chatscope/pkg/config"
	"github.com/umputun/chatscope/pkg/delivery/mocks"
	"github.com/umputun/chatscope/pkg/domain"
)

// recorderMock collects attempt rows without a database
func recorderMock() (*mocks.AttemptRecorderMock, func() []domain.DeliveryAttempt) {
	var mu sync.Mutex
	var attempts []domain.DeliveryAttempt
	rec := &mocks.AttemptRecorderMock{
		RecordAttemptFunc: func(ctx context.Context, attempt *domain.DeliveryAttempt) error {
			mu.Lock()
			defer mu.Unlock()
			attempts = append(attempts, *attempt)
			return nil
		},
	}
	return rec, func() []domain.DeliveryAttempt {
		mu.Lock()
		defer mu.Unlock()
		result := make([]domain.DeliveryAttempt, len(attempts))
		copy(result, attempts)
		return result
	}
}

func newTestOrchestrator(rec AttemptRecorder, url, secret string) *Orchestrator {
	o := NewOrchestrator(rec, nil, config.DeliveryConfig{
		WebhookTimeout: 2 * time.Second,
		Webhooks:       map[string]config.WebhookTarget{"svc": {URL: url, Secret: secret}},
	})
	o.delays = func(int) time.Duration { return 0 } // no waiting in tests
	return o
}

func testPayload() domain.Payload {
	return domain.Payload{
		Kind:      domain.PayloadAlert,
		BatchID:   "batch-1",
		ProfileID: 5,
		Subject:   "alert",
		Items: []domain.PayloadItem{
			{SourceID: 100, MessageID: 1, SenderID: 7, Text: "CVE-2025-1234 critical exploit", Score: 3.5},
		},
		CreatedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestWebhook_SuccessFirstAttempt(t *testing.T) {
	var gotBody []byte
	var gotSignature, gotDeliveryID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("X-Chatscope-Signature")
		gotDeliveryID = r.Header.Get("X-Chatscope-Delivery")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec, attempts := recorderMock()
	o := newTestOrchestrator(rec, srv.URL, "topsecret")

	o.Deliver(context.Background(), []domain.Target{{Kind: domain.TargetWebhook, ID: "svc"}}, testPayload())

	rows := attempts()
	require.Len(t, rows, 1)
	assert.Equal(t, domain.StatusSuccess, rows[0].Status)
	assert.Equal(t, 1, rows[0].AttemptNumber)
	assert.Equal(t, http.StatusOK, rows[0].HTTPStatus)
	assert.Equal(t, "svc", rows[0].TargetID)
	assert.Equal(t, int64(5), rows[0].ProfileID)
	assert.NotEmpty(t, rows[0].GroupID)
	assert.Equal(t, rows[0].GroupID, gotDeliveryID)

	// signature is hex HMAC-SHA256 over the exact body bytes
	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write(gotBody)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotSignature)

	// payload hash matches the body
	hash := sha256.Sum256(gotBody)
	assert.Equal(t, hex.EncodeToString(hash[:]), rows[0].PayloadHash)
}

func TestWebhook_RetryUntilFailed(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec, attempts := recorderMock()
	o := newTestOrchestrator(rec, srv.URL, "s")

	o.Deliver(context.Background(), []domain.Target{{Kind: domain.TargetWebhook, ID: "svc"}}, testPayload())

	assert.Equal(t, 4, calls, "always-500 target gets exactly 4 tries")

	rows := attempts()
	require.Len(t, rows, 4)
	assert.Equal(t, domain.RetryStatus(1), rows[0].Status)
	assert.Equal(t, domain.RetryStatus(2), rows[1].Status)
	assert.Equal(t, domain.RetryStatus(3), rows[2].Status)
	assert.Equal(t, domain.StatusFailed, rows[3].Status)

	for i, row := range rows {
		assert.Equal(t, i+1, row.AttemptNumber)
		assert.Equal(t, http.StatusInternalServerError, row.HTTPStatus)
		assert.Equal(t, rows[0].GroupID, row.GroupID, "all attempts share one group")
	}
}

func TestWebhook_CanceledDuringBackoffRecordsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec, attempts := recorderMock()
	o := newTestOrchestrator(rec, srv.URL, "s")
	o.delays = func(n int) time.Duration {
		if n == 1 {
			return 0
		}
		return time.Minute // park the loop in backoff until cancel
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		o.Deliver(ctx, []domain.Target{{Kind: domain.TargetWebhook, ID: "svc"}}, testPayload())
		close(done)
	}()

	require.Eventually(t, func() bool { return len(attempts()) == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery did not stop on cancel")
	}

	rows := attempts()
	require.Len(t, rows, 2)
	assert.Equal(t, domain.RetryStatus(1), rows[0].Status)
	assert.Equal(t, domain.StatusFailed, rows[1].Status, "the group ends on a terminal row")
	assert.Equal(t, "canceled", rows[1].Error)
	assert.Equal(t, 2, rows[1].AttemptNumber)
	assert.Equal(t, rows[0].GroupID, rows[1].GroupID)
}

func TestWebhook_RecoversOnRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec, attempts := recorderMock()
	o := newTestOrchestrator(rec, srv.URL, "s")

	o.Deliver(context.Background(), []domain.Target{{Kind: domain.TargetWebhook, ID: "svc"}}, testPayload())

	rows := attempts()
	require.Len(t, rows, 3)
	assert.Equal(t, domain.RetryStatus(1), rows[0].Status)
	assert.Equal(t, domain.RetryStatus(2), rows[1].Status)
	assert.Equal(t, domain.StatusSuccess, rows[2].Status)
}

func TestWebhook_PermanentFailureNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	rec, attempts := recorderMock()
	o := newTestOrchestrator(rec, srv.URL, "s")

	o.Deliver(context.Background(), []domain.Target{{Kind: domain.TargetWebhook, ID: "svc"}}, testPayload())

	assert.Equal(t, 1, calls, "4xx is permanent, no retries")

	rows := attempts()
	require.Len(t, rows, 1)
	assert.Equal(t, domain.StatusFailed, rows[0].Status)
	assert.Contains(t, rows[0].Error, "permanent failure")
}

func TestWebhook_RateLimitedIsTransient(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec, attempts := recorderMock()
	o := newTestOrchestrator(rec, srv.URL, "s")

	o.Deliver(context.Background(), []domain.Target{{Kind: domain.TargetWebhook, ID: "svc"}}, testPayload())

	rows := attempts()
	require.Len(t, rows, 2, "429 is retried, unlike other 4xx")
	assert.Equal(t, domain.StatusSuccess, rows[1].Status)
}

func TestWebhook_UnknownService(t *testing.T) {
	rec, attempts := recorderMock()
	o := newTestOrchestrator(rec, "http://unused", "s")

	o.Deliver(context.Background(), []domain.Target{{Kind: domain.TargetWebhook, ID: "nope"}}, testPayload())

	rows := attempts()
	require.Len(t, rows, 1)
	assert.Equal(t, domain.StatusFailed, rows[0].Status)
	assert.Contains(t, rows[0].Error, "not registered")
}

func TestAttemptDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), attemptDelay(1))
	assert.Equal(t, time.Second, attemptDelay(2))
	assert.Equal(t, 2*time.Second, attemptDelay(3))
	assert.Equal(t, 4*time.Second, attemptDelay(4))
}
