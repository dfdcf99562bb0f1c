package bookings

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository is a map-backed booking store for development and tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]Booking
}

// NewInMemoryRepository creates an empty in-memory booking store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]Booking)}
}

// Create stores a new booking. A missing ID is generated.
func (r *InMemoryRepository) Create(ctx context.Context, b Booking) (Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[b.ID] = b
	return b, nil
}

// ListByDate returns all bookings for a tenant on a given date, earliest first.
func (r *InMemoryRepository) ListByDate(ctx context.Context, tenantID, date string) ([]Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Booking
	for _, b := range r.rows {
		if b.TenantID == tenantID && b.Date == date {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// ListByCustomer returns a customer's non-cancelled bookings from the given
// date onward, earliest first.
func (r *InMemoryRepository) ListByCustomer(ctx context.Context, tenantID, phone, fromDate string) ([]Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Booking
	for _, b := range r.rows {
		if b.TenantID == tenantID && b.CustomerPhone == phone && b.Date >= fromDate && b.Status != StatusCancelled {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

// Reschedule moves a booking to a new date and time.
func (r *InMemoryRepository) Reschedule(ctx context.Context, tenantID, bookingID, date, clock string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[bookingID]
	if !ok || b.TenantID != tenantID || b.Status == StatusCancelled {
		return fmt.Errorf("bookings: reschedule: booking %s not found", bookingID)
	}
	b.Date = date
	b.Time = clock
	r.rows[bookingID] = b
	return nil
}

// Cancel marks a booking cancelled.
func (r *InMemoryRepository) Cancel(ctx context.Context, tenantID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[bookingID]
	if !ok || b.TenantID != tenantID {
		return fmt.Errorf("bookings: cancel: booking %s not found", bookingID)
	}
	b.Status = StatusCancelled
	r.rows[bookingID] = b
	return nil
}
