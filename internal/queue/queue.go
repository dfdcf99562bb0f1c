// Package queue buffers inbound messages between the webhook and the
// dispatch workers.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/resvio/bot-platform/internal/dispatch"
)

// Client is the queue contract the webhook and workers depend on.
type Client interface {
	Send(ctx context.Context, body string) error
	Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]Message, error)
	Delete(ctx context.Context, receiptHandle string) error
}

// Message is one queued item with its receipt handle.
type Message struct {
	ID            string
	Body          string
	ReceiptHandle string
}

// Publish encodes an inbound message and enqueues it.
func Publish(ctx context.Context, q Client, in dispatch.Inbound) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("queue: encode inbound: %w", err)
	}
	return q.Send(ctx, string(body))
}

// Decode parses a queued body back into an inbound message.
func Decode(body string) (dispatch.Inbound, error) {
	var in dispatch.Inbound
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return dispatch.Inbound{}, fmt.Errorf("queue: decode inbound: %w", err)
	}
	if in.TenantID == "" || in.Address == "" {
		return dispatch.Inbound{}, fmt.Errorf("queue: inbound missing tenant or address")
	}
	return in, nil
}
