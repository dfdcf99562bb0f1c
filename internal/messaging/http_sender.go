package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/resvio/bot-platform/internal/flow"
	"github.com/resvio/bot-platform/internal/observability/metrics"
	"github.com/resvio/bot-platform/pkg/logging"
)

var httpSendTracer = otel.Tracer("botplatform.internal.messaging.http_send")

const sendAttempts = 3

// HTTPSender posts outbound messages to a provider's JSON API.
type HTTPSender struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.Metrics
}

// NewHTTPSender builds a sender for an HTTP message provider.
func NewHTTPSender(apiURL, apiKey string, timeout time.Duration, logger *logging.Logger, m *metrics.Metrics) *HTTPSender {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSender{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    m,
	}
}

var _ Sender = (*HTTPSender)(nil)

type outboundPayload struct {
	TenantID string            `json:"tenant_id"`
	To       string            `json:"to"`
	Kind     string            `json:"kind"`
	Text     string            `json:"text,omitempty"`
	List     *flow.ListMessage `json:"list,omitempty"`
}

// Send posts one message, retrying transient failures.
func (s *HTTPSender) Send(ctx context.Context, tenantID, to string, msg flow.Message) error {
	if s.apiURL == "" {
		return errors.New("messaging: provider api url missing")
	}
	if to == "" {
		return errors.New("messaging: to required")
	}
	if msg.Kind == flow.KindText && strings.TrimSpace(msg.Text) == "" {
		return errors.New("messaging: body required")
	}

	ctx, span := httpSendTracer.Start(ctx, "messaging.http.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("botplatform.tenant_id", tenantID),
		attribute.String("botplatform.to", to),
	)

	payload := outboundPayload{
		TenantID: tenantID,
		To:       to,
		Kind:     string(msg.Kind),
		Text:     msg.Text,
		List:     msg.List,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("messaging: encode payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= sendAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(bodyBytes))
		if err != nil {
			lastErr = err
			break
		}
		if s.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+s.apiKey)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				s.metrics.RecordOutbound(ProviderHTTP, "ok")
				s.logger.Info("outbound message sent", "tenant_id", tenantID, "to", to)
				return nil
			}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				// Client errors do not heal on retry.
				lastErr = fmt.Errorf("messaging: provider rejected send: status %d, body: %s", resp.StatusCode, body)
				break
			}
			lastErr = fmt.Errorf("messaging: provider send failed: status %d", resp.StatusCode)
		}

		if attempt < sendAttempts {
			time.Sleep(time.Duration(200+rand.Intn(300)) * time.Millisecond)
		}
	}

	span.RecordError(lastErr)
	s.metrics.RecordOutbound(ProviderHTTP, "error")
	s.logger.Error("failed to send outbound message", "error", lastErr, "tenant_id", tenantID, "to", to)
	return lastErr
}
