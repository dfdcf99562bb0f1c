// Package dispatch routes inbound messages through the flow state machine:
// load the session, pick the flow, run the step handler, persist, send.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/resvio/bot-platform/internal/flow"
	"github.com/resvio/bot-platform/internal/observability/metrics"
	"github.com/resvio/bot-platform/internal/session"
	"github.com/resvio/bot-platform/internal/tenant"
	"github.com/resvio/bot-platform/pkg/logging"
)

// maxRedispatch bounds same-turn handler chaining so a cycle between steps
// cannot spin forever. Legitimate chains are one or two hops.
const maxRedispatch = 4

// Inbound is one received message, normalized by the transport layer.
type Inbound struct {
	TenantID   string    `json:"tenant_id"`
	Address    string    `json:"address"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

// SessionStore is the session persistence the dispatcher needs.
type SessionStore interface {
	Load(ctx context.Context, tenantID, address string) (*session.Session, error)
	Save(ctx context.Context, sess session.Session) error
}

// TenantSource resolves tenant configuration.
type TenantSource interface {
	Get(ctx context.Context, tenantID string) (*tenant.Config, error)
}

// Sender delivers outbound message intents to the counterpart.
type Sender interface {
	Send(ctx context.Context, tenantID, to string, msg flow.Message) error
}

// Dispatcher handles one conversation turn end to end. Turns for the same
// (tenant, address) pair are strictly serialized; different pairs run
// concurrently.
type Dispatcher struct {
	sessions SessionStore
	tenants  TenantSource
	registry *flow.Registry
	sender   Sender
	expiry   time.Duration
	logger   *logging.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	now      func() time.Time

	locks sync.Map // "tenant:address" -> *sync.Mutex
}

// New creates a dispatcher. A zero expiry falls back to the session
// package's default. Logger and metrics may be nil.
func New(sessions SessionStore, tenants TenantSource, registry *flow.Registry, sender Sender, expiry time.Duration, logger *logging.Logger, m *metrics.Metrics) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if expiry <= 0 {
		expiry = session.DefaultExpiry
	}
	return &Dispatcher{
		sessions: sessions,
		tenants:  tenants,
		registry: registry,
		sender:   sender,
		expiry:   expiry,
		logger:   logger,
		metrics:  m,
		tracer:   otel.Tracer("botplatform.internal.dispatch"),
		now:      time.Now,
	}
}

func (d *Dispatcher) lockFor(tenantID, address string) *sync.Mutex {
	mu, _ := d.locks.LoadOrStore(tenantID+":"+address, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Handle processes one inbound message. It never returns handler or storage
// errors to the caller unacknowledged: on failure the counterpart gets a
// localized apology and the previously persisted session stays untouched.
func (d *Dispatcher) Handle(ctx context.Context, in Inbound) error {
	mu := d.lockFor(in.TenantID, in.Address)
	mu.Lock()
	defer mu.Unlock()

	ctx, span := d.tracer.Start(ctx, "dispatch.handle")
	defer span.End()
	started := d.now()

	cfg, err := d.tenants.Get(ctx, in.TenantID)
	if err != nil {
		span.RecordError(err)
		d.logger.Error("tenant config load failed", "tenant_id", in.TenantID, "error", err)
		d.apologize(ctx, in, "en")
		d.metrics.RecordDispatch(in.TenantID, "tenant_error", d.now().Sub(started))
		return fmt.Errorf("dispatch: tenant config: %w", err)
	}
	lang := cfg.Lang()

	prior, err := d.sessions.Load(ctx, in.TenantID, in.Address)
	if err != nil {
		span.RecordError(err)
		d.logger.Error("session load failed", "tenant_id", in.TenantID, "address", in.Address, "error", err)
		d.apologize(ctx, in, lang)
		d.metrics.RecordDispatch(in.TenantID, "storage_error", d.now().Sub(started))
		return fmt.Errorf("dispatch: session load: %w", err)
	}

	now := d.now()
	flowID := flow.ForCategory(cfg.Category)

	var sess session.Session
	switch {
	case prior == nil:
		sess = session.New(in.TenantID, in.Address, string(flow.InitialStep(flowID)), now)
	case session.IsExpired(*prior, d.expiry, now):
		sess = *prior
		sess.Reset(string(flow.InitialStep(flowID)), now)
		d.metrics.RecordReset("expired")
		d.logger.Info("session expired, starting over", "tenant_id", in.TenantID, "address", in.Address)
	default:
		sess = *prior
	}
	if sess.Flow != "" {
		flowID = flow.ID(sess.Flow)
	}

	step := flow.Step(sess.Step)
	handler, err := d.registry.Resolve(flowID, step)
	if errors.Is(err, flow.ErrUnknownStep) {
		// Fail closed: a stale step (or stale flow override) restarts the
		// tenant's default flow rather than wedging the conversation.
		d.metrics.RecordReset("unknown_step")
		d.logger.Warn("unknown step, resetting session", "tenant_id", in.TenantID, "flow", flowID, "step", step)
		flowID = flow.ForCategory(cfg.Category)
		sess.Reset(string(flow.InitialStep(flowID)), now)
		step = flow.Step(sess.Step)
		handler, err = d.registry.Resolve(flowID, step)
	}
	if err != nil {
		span.RecordError(err)
		d.apologize(ctx, in, lang)
		d.metrics.RecordDispatch(in.TenantID, "resolve_error", d.now().Sub(started))
		return fmt.Errorf("dispatch: resolve: %w", err)
	}

	var outbox []flow.Message
	text := in.Text
	for hop := 0; ; hop++ {
		req := flow.Request{
			Tenant:  cfg,
			Address: in.Address,
			Text:    text,
			Lang:    lang,
			Session: sess,
			Now:     now,
		}
		req.Session.Data = sess.Data.Clone()

		res, err := d.invoke(ctx, handler, req)
		if err != nil {
			span.RecordError(err)
			d.logger.Error("handler failed", "tenant_id", in.TenantID, "flow", flowID, "step", sess.Step, "error", err)
			d.apologize(ctx, in, lang)
			d.metrics.RecordDispatch(in.TenantID, "handler_error", d.now().Sub(started))
			return fmt.Errorf("dispatch: handler %s/%s: %w", flowID, sess.Step, err)
		}

		outbox = append(outbox, res.Messages...)
		if res.FlowOverride != "" {
			flowID = res.FlowOverride
			sess.Flow = string(res.FlowOverride)
		}
		sess.Step = string(res.NextStep)
		sess.Data = res.Data

		if !res.Redispatch {
			break
		}
		if hop+1 >= maxRedispatch {
			d.logger.Warn("redispatch limit reached", "tenant_id", in.TenantID, "flow", flowID, "step", sess.Step)
			break
		}
		handler, err = d.registry.Resolve(flowID, res.NextStep)
		if err != nil {
			span.RecordError(err)
			d.apologize(ctx, in, lang)
			d.metrics.RecordDispatch(in.TenantID, "resolve_error", d.now().Sub(started))
			return fmt.Errorf("dispatch: redispatch resolve: %w", err)
		}
		text = ""
	}

	sess.UpdatedAt = now
	if err := d.sessions.Save(ctx, sess); err != nil {
		span.RecordError(err)
		d.logger.Error("session save failed", "tenant_id", in.TenantID, "address", in.Address, "error", err)
		d.apologize(ctx, in, lang)
		d.metrics.RecordDispatch(in.TenantID, "storage_error", d.now().Sub(started))
		return fmt.Errorf("dispatch: session save: %w", err)
	}

	for _, m := range outbox {
		if err := d.sender.Send(ctx, in.TenantID, in.Address, m); err != nil {
			// State is already persisted; a delivery failure must not
			// rewind the conversation.
			d.logger.Error("outbound send failed", "tenant_id", in.TenantID, "address", in.Address, "error", err)
		}
	}

	d.metrics.RecordDispatch(in.TenantID, "ok", d.now().Sub(started))
	return nil
}

// invoke runs the handler with panic recovery. A panicking handler is
// reported as an ordinary error so the turn fails like any other.
func (d *Dispatcher) invoke(ctx context.Context, h flow.Handler, req flow.Request) (res flow.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Handle(ctx, req)
}

func (d *Dispatcher) apologize(ctx context.Context, in Inbound, lang string) {
	msg := flow.Text(flow.T(lang, flow.MsgApology))
	if err := d.sender.Send(ctx, in.TenantID, in.Address, msg); err != nil {
		d.logger.Error("apology send failed", "tenant_id", in.TenantID, "address", in.Address, "error", err)
	}
}
