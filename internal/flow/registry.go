package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/resvio/bot-platform/internal/bookings"
	"github.com/resvio/bot-platform/internal/session"
	"github.com/resvio/bot-platform/internal/tenant"
)

// ErrUnknownStep is returned when a persisted step is not registered for the
// active flow, e.g. after a flow definition change. The dispatcher recovers
// by resetting the session to the flow's initial step.
var ErrUnknownStep = errors.New("flow: unknown step")

// Request is one conversation turn as seen by a step handler.
type Request struct {
	Tenant  *tenant.Config
	Address string
	Text    string
	Lang    string
	Session session.Session
	Now     time.Time
}

// Result is what a handler decided: the next step, the new session data and
// the outbound message intents, in send order. Handlers are pure; the
// dispatcher persists and sends.
type Result struct {
	NextStep Step
	Data     session.Data
	Messages []Message

	// Redispatch asks the dispatcher to immediately invoke NextStep's
	// handler with empty input, so the next prompt is shown without
	// waiting for another inbound message.
	Redispatch bool

	// FlowOverride switches the session to another flow (mixed-menu
	// hand-off). Empty means keep the current flow.
	FlowOverride ID
}

// stay keeps the session on its current step.
func stay(req Request, msgs ...Message) Result {
	return Result{NextStep: Step(req.Session.Step), Data: req.Session.Data, Messages: msgs}
}

// Directory is the business-data collaborator: tenant booking records.
type Directory interface {
	Create(ctx context.Context, b bookings.Booking) (bookings.Booking, error)
	ListByDate(ctx context.Context, tenantID, date string) ([]bookings.Booking, error)
	ListByCustomer(ctx context.Context, tenantID, phone, fromDate string) ([]bookings.Booking, error)
	Reschedule(ctx context.Context, tenantID, bookingID, date, clock string) error
	Cancel(ctx context.Context, tenantID, bookingID string) error
}

// Handler processes one turn for one step.
type Handler interface {
	Handle(ctx context.Context, req Request) (Result, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req Request) (Result, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}

// Registry maps (flow, step) to handlers. The step set per flow is closed:
// resolving an unregistered step fails with ErrUnknownStep.
type Registry struct {
	handlers map[ID]map[Step]Handler
}

// NewRegistry builds the full handler table for every flow.
func NewRegistry(dir Directory) *Registry {
	r := &Registry{handlers: make(map[ID]map[Step]Handler)}

	b := &bookingFlow{dir: dir}
	r.register(FlowBooking, StepMenu, HandlerFunc(b.menu))
	r.register(FlowBooking, StepBookingSelectDateList, HandlerFunc(b.selectDate))
	r.register(FlowBooking, StepBookingSelectTime, HandlerFunc(b.selectTime))
	r.register(FlowBooking, StepBookingEnterName, HandlerFunc(b.enterName))
	r.register(FlowBooking, StepBookingEnterNote, HandlerFunc(b.enterNote))
	r.register(FlowBooking, StepBookingConfirm, HandlerFunc(b.confirm))
	r.register(FlowBooking, StepBookingListAppts, HandlerFunc(b.listAppointments))
	r.register(FlowBooking, StepBookingChangeType, HandlerFunc(b.chooseChangeType))

	c := &catalogFlow{}
	r.register(FlowCatalog, StepMenu, HandlerFunc(c.menu))
	r.register(FlowCatalog, StepCatalogItem, HandlerFunc(c.item))

	i := &infoFlow{}
	r.register(FlowInfo, StepMenu, HandlerFunc(i.menu))
	r.register(FlowInfo, StepInfoTopic, HandlerFunc(i.topic))

	e := &eventFlow{}
	r.register(FlowEvent, StepMenu, HandlerFunc(e.menu))
	r.register(FlowEvent, StepEventRSVPName, HandlerFunc(e.rsvpName))
	r.register(FlowEvent, StepEventRSVPGuests, HandlerFunc(e.rsvpGuests))

	d := &deliveryFlow{}
	r.register(FlowDelivery, StepMenu, HandlerFunc(d.menu))
	r.register(FlowDelivery, StepDeliveryQuantity, HandlerFunc(d.quantity))
	r.register(FlowDelivery, StepDeliveryAddress, HandlerFunc(d.address))
	r.register(FlowDelivery, StepDeliveryConfirm, HandlerFunc(d.confirm))

	r.register(FlowMixed, StepMenu, HandlerFunc(mixedMenu))
	r.register(FlowFallback, StepMenu, HandlerFunc(fallbackMenu))

	return r
}

func (r *Registry) register(flow ID, step Step, h Handler) {
	steps, ok := r.handlers[flow]
	if !ok {
		steps = make(map[Step]Handler)
		r.handlers[flow] = steps
	}
	steps[step] = h
}

// Resolve returns the handler for a (flow, step) pair.
func (r *Registry) Resolve(flow ID, step Step) (Handler, error) {
	steps, ok := r.handlers[flow]
	if !ok {
		return nil, fmt.Errorf("%w: no flow %q", ErrUnknownStep, flow)
	}
	h, ok := steps[step]
	if !ok {
		return nil, fmt.Errorf("%w: %q in flow %q", ErrUnknownStep, step, flow)
	}
	return h, nil
}

// Steps returns the declared step set for a flow.
func (r *Registry) Steps(flow ID) []Step {
	steps := make([]Step, 0, len(r.handlers[flow]))
	for s := range r.handlers[flow] {
		steps = append(steps, s)
	}
	return steps
}
