// Package messaging carries messages across the provider boundary: outbound
// sends and the inbound webhook.
package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/resvio/bot-platform/internal/flow"
)

// Sender delivers one outbound message intent to a counterpart address.
type Sender interface {
	Send(ctx context.Context, tenantID, to string, msg flow.Message) error
}

// RenderText flattens a message intent to plain text with numbered rows, for
// providers without native list support.
func RenderText(msg flow.Message) string {
	if msg.Kind != flow.KindList || msg.List == nil {
		return msg.Text
	}

	var b strings.Builder
	if msg.List.Header != "" {
		b.WriteString(msg.List.Header)
		b.WriteString("\n")
	}
	b.WriteString(msg.List.Body)
	for _, row := range msg.List.Rows {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s. %s", row.ID, row.Title))
		if row.Description != "" {
			b.WriteString(" (" + row.Description + ")")
		}
	}
	return b.String()
}
