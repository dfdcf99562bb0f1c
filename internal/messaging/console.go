package messaging

import (
	"context"

	"github.com/resvio/bot-platform/internal/flow"
	"github.com/resvio/bot-platform/internal/observability/metrics"
	"github.com/resvio/bot-platform/pkg/logging"
)

// ConsoleSender writes outbound messages to the log instead of a provider.
// It is the development default.
type ConsoleSender struct {
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewConsoleSender builds a log-backed sender. Logger may be nil.
func NewConsoleSender(logger *logging.Logger, m *metrics.Metrics) *ConsoleSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &ConsoleSender{logger: logger, metrics: m}
}

var _ Sender = (*ConsoleSender)(nil)

// Send logs the rendered message.
func (s *ConsoleSender) Send(ctx context.Context, tenantID, to string, msg flow.Message) error {
	s.logger.Info("outbound message",
		"tenant_id", tenantID,
		"to", to,
		"kind", string(msg.Kind),
		"body", RenderText(msg),
	)
	s.metrics.RecordOutbound(ProviderConsole, "ok")
	return nil
}
