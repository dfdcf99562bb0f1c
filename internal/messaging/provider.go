package messaging

import (
	"strings"
	"time"

	"github.com/resvio/bot-platform/internal/observability/metrics"
	"github.com/resvio/bot-platform/pkg/logging"
)

const (
	// ProviderConsole logs outbound messages; the development default.
	ProviderConsole = "console"
	// ProviderHTTP posts outbound messages to a JSON API.
	ProviderHTTP = "http"
)

// ProviderSelectionConfig captures what is needed to build an outbound sender.
type ProviderSelectionConfig struct {
	Preference  string
	APIURL      string
	APIKey      string
	SendTimeout time.Duration
}

// BuildSender instantiates a Sender based on the preferred provider. It
// returns the sender, the provider that was selected, and a reason when the
// preference could not be honored.
func BuildSender(cfg ProviderSelectionConfig, logger *logging.Logger, m *metrics.Metrics) (Sender, string, string) {
	if logger == nil {
		logger = logging.Default()
	}
	preference := strings.ToLower(strings.TrimSpace(cfg.Preference))

	switch preference {
	case "", ProviderConsole:
		return NewConsoleSender(logger, m), ProviderConsole, ""
	case ProviderHTTP:
		if cfg.APIURL == "" {
			return NewConsoleSender(logger, m), ProviderConsole, "PROVIDER_API_URL missing"
		}
		return NewHTTPSender(cfg.APIURL, cfg.APIKey, cfg.SendTimeout, logger, m), ProviderHTTP, ""
	default:
		return NewConsoleSender(logger, m), ProviderConsole, "unknown provider " + preference
	}
}
