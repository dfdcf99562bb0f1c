package messaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/resvio/bot-platform/internal/queue"
)

func postInbound(t *testing.T, h *Handler, body, secret string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/messaging/inbound", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}
	rec := httptest.NewRecorder()
	h.Inbound(rec, req)
	return rec
}

func TestInboundEnqueuesAndAccepts(t *testing.T) {
	q := queue.NewMemoryQueue(4, nil)
	h := NewHandler("", q, nil)
	h.now = func() time.Time { return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC) }

	rec := postInbound(t, h, `{"tenant_id":"t1","from":"+5511999990000","text":"1"}`, "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	msgs, err := q.Receive(context.Background(), 1, 1)
	if err != nil || len(msgs) != 1 {
		t.Fatalf("Receive = %v, %v; want one queued message", msgs, err)
	}
	in, err := queue.Decode(msgs[0].Body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.TenantID != "t1" || in.Address != "+5511999990000" || in.Text != "1" {
		t.Errorf("queued = %+v", in)
	}
	if in.ReceivedAt.IsZero() {
		t.Error("received_at not stamped")
	}
}

func TestInboundRejectsMissingFields(t *testing.T) {
	h := NewHandler("", queue.NewMemoryQueue(4, nil), nil)

	for _, body := range []string{
		`{"from":"+5511999990000","text":"1"}`,
		`{"tenant_id":"t1","text":"1"}`,
		`not json`,
	} {
		rec := postInbound(t, h, body, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestInboundChecksWebhookSecret(t *testing.T) {
	h := NewHandler("hunter2", queue.NewMemoryQueue(4, nil), nil)

	rec := postInbound(t, h, `{"tenant_id":"t1","from":"+55","text":"1"}`, "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad secret: status = %d, want 401", rec.Code)
	}

	rec = postInbound(t, h, `{"tenant_id":"t1","from":"+55","text":"1"}`, "hunter2")
	if rec.Code != http.StatusAccepted {
		t.Errorf("good secret: status = %d, want 202", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	h := NewHandler("", queue.NewMemoryQueue(1, nil), nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
