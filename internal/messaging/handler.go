package messaging

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/resvio/bot-platform/internal/dispatch"
	"github.com/resvio/bot-platform/internal/queue"
	"github.com/resvio/bot-platform/pkg/logging"
)

var webhookTracer = otel.Tracer("botplatform.internal.messaging.webhook")

const maxInboundBody = 64 * 1024

// Handler handles messaging webhook requests.
type Handler struct {
	webhookSecret string
	queue         queue.Client
	logger        *logging.Logger
	now           func() time.Time
}

// NewHandler creates a webhook handler that enqueues inbound messages.
func NewHandler(webhookSecret string, q queue.Client, logger *logging.Logger) *Handler {
	if q == nil {
		panic("messaging: queue cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		webhookSecret: webhookSecret,
		queue:         q,
		logger:        logger,
		now:           time.Now,
	}
}

type inboundWebhook struct {
	TenantID string `json:"tenant_id"`
	From     string `json:"from"`
	Text     string `json:"text"`
}

// Inbound handles POST /messaging/inbound. The provider's webhook payload is
// acknowledged with 202 once the message is queued; processing is async.
func (h *Handler) Inbound(w http.ResponseWriter, r *http.Request) {
	ctx, span := webhookTracer.Start(r.Context(), "messaging.webhook.inbound")
	defer span.End()

	if h.webhookSecret != "" {
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if got != h.webhookSecret {
			h.logger.Warn("inbound webhook rejected: bad secret")
			span.RecordError(errors.New("invalid webhook secret"))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	var payload inboundWebhook
	if err := json.NewDecoder(io.LimitReader(r.Body, maxInboundBody)).Decode(&payload); err != nil {
		h.logger.Error("failed to parse inbound webhook", "error", err)
		span.RecordError(err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	payload.TenantID = strings.TrimSpace(payload.TenantID)
	payload.From = strings.TrimSpace(payload.From)
	if payload.TenantID == "" || payload.From == "" {
		err := errors.New("missing tenant_id or from")
		h.logger.Error("invalid inbound payload", "error", err)
		span.RecordError(err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	span.SetAttributes(
		attribute.String("botplatform.tenant_id", payload.TenantID),
		attribute.String("botplatform.from", payload.From),
	)

	in := dispatch.Inbound{
		TenantID:   payload.TenantID,
		Address:    payload.From,
		Text:       payload.Text,
		ReceivedAt: h.now().UTC(),
	}
	if err := queue.Publish(ctx, h.queue, in); err != nil {
		h.logger.Error("failed to enqueue inbound message", "error", err, "tenant_id", payload.TenantID)
		span.RecordError(err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "queued"})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
