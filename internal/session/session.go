// Package session persists per-conversation state keyed by tenant and
// counterpart address.
package session

import "time"

// Session is the state of one conversation. Exactly one exists per
// (tenant, address) pair.
type Session struct {
	TenantID string `json:"tenant_id"`
	Address  string `json:"address"`

	// Flow overrides the tenant's default flow when set (mixed-menu hand-off).
	Flow string `json:"flow,omitempty"`

	// Step is the current position in the active flow's state machine.
	Step string `json:"step"`

	Data      Data      `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a fresh session positioned at the given initial step.
func New(tenantID, address, step string, now time.Time) Session {
	return Session{
		TenantID:  tenantID,
		Address:   address,
		Step:      step,
		UpdatedAt: now,
	}
}

// Reset returns the session to the initial step of its tenant's default
// flow, clearing in-progress data but keeping the durable profile.
func (s *Session) Reset(step string, now time.Time) {
	s.Flow = ""
	s.Step = step
	s.Data = Data{Profile: s.Data.Profile}
	s.UpdatedAt = now
}

// Data carries in-progress fields across turns, structured per flow.
type Data struct {
	Profile  Profile       `json:"profile"`
	Booking  *BookingData  `json:"booking,omitempty"`
	Catalog  *CatalogData  `json:"catalog,omitempty"`
	Event    *EventData    `json:"event,omitempty"`
	Delivery *DeliveryData `json:"delivery,omitempty"`
}

// Clone deep-copies the data bag. Handlers work on a clone so a failed turn
// can never leave partial mutations behind the dispatcher's back.
func (d Data) Clone() Data {
	out := d
	if d.Booking != nil {
		b := *d.Booking
		b.OfferedDates = append([]string(nil), d.Booking.OfferedDates...)
		b.OfferedTimes = append([]string(nil), d.Booking.OfferedTimes...)
		b.OfferedAppointments = append([]Appointment(nil), d.Booking.OfferedAppointments...)
		if d.Booking.SelectedAppointment != nil {
			appt := *d.Booking.SelectedAppointment
			b.SelectedAppointment = &appt
		}
		out.Booking = &b
	}
	if d.Catalog != nil {
		c := *d.Catalog
		out.Catalog = &c
	}
	if d.Event != nil {
		e := *d.Event
		out.Event = &e
	}
	if d.Delivery != nil {
		dd := *d.Delivery
		out.Delivery = &dd
	}
	return out
}

// Profile holds durable customer fields that survive expiry resets.
type Profile struct {
	CustomerName string `json:"customer_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// Appointment is a snapshot of an existing booking captured when the
// customer selects it for reschedule or cancellation.
type Appointment struct {
	BookingID       string `json:"booking_id"`
	ServiceID       string `json:"service_id"`
	ServiceName     string `json:"service_name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// BookingData is the booking flow's working state.
type BookingData struct {
	ServiceID       string `json:"service_id,omitempty"`
	ServiceName     string `json:"service_name,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	Note            string `json:"note,omitempty"`

	Reschedule          bool         `json:"reschedule,omitempty"`
	SelectedAppointment *Appointment `json:"selected_appointment,omitempty"`

	// What was last presented, so a numeric reply can be resolved.
	OfferedDates        []string      `json:"offered_dates,omitempty"`
	OfferedTimes        []string      `json:"offered_times,omitempty"`
	OfferedAppointments []Appointment `json:"offered_appointments,omitempty"`
}

// CatalogData is the catalog flow's working state.
type CatalogData struct {
	ProductID string `json:"product_id,omitempty"`
}

// EventData is the event RSVP flow's working state.
type EventData struct {
	EventID   string `json:"event_id,omitempty"`
	EventName string `json:"event_name,omitempty"`
	Guests    int    `json:"guests,omitempty"`
}

// DeliveryData is the delivery flow's working state.
type DeliveryData struct {
	ItemID   string `json:"item_id,omitempty"`
	ItemName string `json:"item_name,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
	Address  string `json:"address,omitempty"`
}
