// Package worker drains the inbound queue into the dispatcher.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/resvio/bot-platform/internal/dispatch"
	"github.com/resvio/bot-platform/internal/queue"
	"github.com/resvio/bot-platform/pkg/logging"
)

const deleteTimeout = 5 * time.Second

// Handler processes one decoded inbound message.
type Handler interface {
	Handle(ctx context.Context, in dispatch.Inbound) error
}

type config struct {
	workers          int
	receiveWaitSecs  int
	receiveBatchSize int
}

// Option customizes a Pool.
type Option func(*config)

// WithWorkerCount sets how many goroutines drain the queue.
func WithWorkerCount(count int) Option {
	return func(c *config) {
		if count > 0 {
			c.workers = count
		}
	}
}

// WithReceiveWaitSeconds sets the long-poll wait per receive.
func WithReceiveWaitSeconds(seconds int) Option {
	return func(c *config) {
		if seconds >= 0 {
			c.receiveWaitSecs = seconds
		}
	}
}

// WithReceiveBatchSize sets how many messages one receive may return.
func WithReceiveBatchSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.receiveBatchSize = size
		}
	}
}

// Pool runs a fixed set of goroutines that receive queued inbound messages
// and hand them to the dispatcher.
type Pool struct {
	queue      queue.Client
	dispatcher Handler
	logger     *logging.Logger
	cfg        config
	wg         sync.WaitGroup
}

// NewPool creates a worker pool. Logger may be nil.
func NewPool(q queue.Client, d Handler, logger *logging.Logger, opts ...Option) *Pool {
	if logger == nil {
		logger = logging.Default()
	}
	cfg := config{workers: 4, receiveWaitSecs: 2, receiveBatchSize: 5}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pool{queue: q, dispatcher: d, logger: logger, cfg: cfg}
}

// Start launches the worker goroutines. They run until ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.cfg.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i+1)
	}
}

// Wait blocks until all worker goroutines exit.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context, workerID int) {
	defer p.wg.Done()
	p.logger.Debug("dispatch worker started", "worker_id", workerID)

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("dispatch worker stopping", "worker_id", workerID)
			return
		default:
		}

		messages, err := p.queue.Receive(ctx, p.cfg.receiveBatchSize, p.cfg.receiveWaitSecs)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			p.logger.Error("failed to receive inbound messages", "error", err, "worker_id", workerID)
			time.Sleep(backoff)
			if backoff < 5*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		for _, msg := range messages {
			p.handleMessage(ctx, msg)
		}
	}
}

func (p *Pool) handleMessage(ctx context.Context, msg queue.Message) {
	in, err := queue.Decode(msg.Body)
	if err != nil {
		// Malformed payloads are dropped; retrying cannot fix them.
		p.logger.Error("failed to decode inbound message", "error", err, "msg_id", msg.ID)
		p.deleteMessage(context.Background(), msg.ReceiptHandle)
		return
	}

	if err := p.dispatcher.Handle(ctx, in); err != nil {
		p.logger.Error("dispatch failed", "error", err, "tenant_id", in.TenantID, "msg_id", msg.ID)
	}

	// The turn is acknowledged either way: the dispatcher already apologized
	// to the counterpart on failure, so a redelivery would double-process.
	p.deleteMessage(context.Background(), msg.ReceiptHandle)
}

func (p *Pool) deleteMessage(ctx context.Context, receiptHandle string) {
	if receiptHandle == "" {
		return
	}
	deleteCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	if err := p.queue.Delete(deleteCtx, receiptHandle); err != nil {
		p.logger.Error("failed to delete inbound message", "error", err)
	}
}
