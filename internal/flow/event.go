package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/resvio/bot-platform/internal/session"
)

type eventFlow struct{}

func (f *eventFlow) menuMessage(req Request) Message {
	rows := make([]ListRow, 0, len(req.Tenant.Events))
	for i, ev := range req.Tenant.Events {
		desc := displayDate(ev.Date)
		if ev.Venue != "" {
			desc += " · " + ev.Venue
		}
		rows = append(rows, ListRow{ID: fmt.Sprintf("%d", i+1), Title: ev.Name, Description: desc})
	}
	return List(ListMessage{
		Body: T(req.Lang, msgMenuHeader, req.Tenant.Name) + "\n" + T(req.Lang, msgEventHeader),
		Rows: rows,
	})
}

// menu lists upcoming events; a selection starts the RSVP.
func (f *eventFlow) menu(ctx context.Context, req Request) (Result, error) {
	choice, ok := parseChoice(req.Text)
	if !ok || choice < 1 || choice > len(req.Tenant.Events) {
		msgs := []Message{f.menuMessage(req)}
		if req.Text != "" {
			msgs = []Message{Text(T(req.Lang, msgInvalidOption)), f.menuMessage(req)}
		}
		return stay(req, msgs...), nil
	}

	ev := req.Tenant.Events[choice-1]
	data := req.Session.Data.Clone()
	data.Event = &session.EventData{EventID: ev.ID, EventName: ev.Name}
	return Result{NextStep: StepEventRSVPName, Data: data, Redispatch: true}, nil
}

// rsvpName collects the guest's name, reusing the stored profile when known.
func (f *eventFlow) rsvpName(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Event == nil {
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}

	if req.Text == "" {
		if data.Profile.CustomerName != "" {
			return Result{NextStep: StepEventRSVPGuests, Data: data, Redispatch: true}, nil
		}
		return stay(req, Text(T(req.Lang, msgAskName))), nil
	}

	name := strings.TrimSpace(req.Text)
	if len([]rune(name)) < 2 {
		return stay(req, Text(T(req.Lang, msgNameTooShort))), nil
	}
	data.Profile.CustomerName = name
	return Result{NextStep: StepEventRSVPGuests, Data: data, Redispatch: true}, nil
}

// rsvpGuests collects the party size and confirms the RSVP.
func (f *eventFlow) rsvpGuests(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Event == nil {
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}

	if req.Text == "" {
		return stay(req, Text(T(req.Lang, msgAskGuests))), nil
	}

	guests, ok := parseChoice(req.Text)
	if !ok || guests < 1 || guests > 20 {
		return stay(req, Text(T(req.Lang, msgInvalidGuests))), nil
	}

	eventName := data.Event.EventName
	eventDate := ""
	for _, ev := range req.Tenant.Events {
		if ev.ID == data.Event.EventID {
			eventDate = displayDate(ev.Date)
			break
		}
	}
	done := Text(T(req.Lang, msgRSVPConfirmed, eventName, guests, eventDate, data.Profile.CustomerName))
	data.Event = nil
	return Result{NextStep: StepMenu, Data: data, Messages: []Message{done}}, nil
}
