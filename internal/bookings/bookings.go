// Package bookings persists appointment records per tenant.
package bookings

import "time"

// Booking statuses. Confirmed and pending bookings occupy their slot.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is a stored appointment.
type Booking struct {
	ID              string
	TenantID        string
	CustomerName    string
	CustomerPhone   string
	ServiceID       string
	ServiceName     string
	Date            string // YYYY-MM-DD in the tenant timezone
	Time            string // HH:MM
	DurationMinutes int
	Note            string
	Status          string
	CreatedAt       time.Time
}

// Occupies reports whether the booking blocks its time slot.
func (b Booking) Occupies() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
