package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists bookings in Postgres.
type Repository struct {
	db Querier
}

// NewRepository creates a booking repository backed by the given pool.
func NewRepository(db Querier) *Repository {
	if db == nil {
		return nil
	}
	return &Repository{db: db}
}

const bookingColumns = `id, tenant_id, customer_name, customer_phone, service_id, service_name,
	booking_date, booking_time, duration_minutes, note, status, created_at`

// Create inserts a new booking. A missing ID is generated.
func (r *Repository) Create(ctx context.Context, b Booking) (Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (id, tenant_id, customer_name, customer_phone, service_id, service_name,
			booking_date, booking_time, duration_minutes, note, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.TenantID, b.CustomerName, b.CustomerPhone, b.ServiceID, b.ServiceName,
		b.Date, b.Time, b.DurationMinutes, b.Note, b.Status, b.CreatedAt,
	)
	if err != nil {
		return Booking{}, fmt.Errorf("bookings: create: %w", err)
	}
	return b, nil
}

// ListByDate returns all bookings for a tenant on a given date, earliest first.
func (r *Repository) ListByDate(ctx context.Context, tenantID, date string) ([]Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE tenant_id = $1 AND booking_date = $2
		ORDER BY booking_time`,
		tenantID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("bookings: list by date: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListByCustomer returns a customer's non-cancelled bookings from the given
// date onward, earliest first.
func (r *Repository) ListByCustomer(ctx context.Context, tenantID, phone, fromDate string) ([]Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE tenant_id = $1 AND customer_phone = $2 AND booking_date >= $3 AND status != $4
		ORDER BY booking_date, booking_time`,
		tenantID, phone, fromDate, StatusCancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("bookings: list by customer: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

// Reschedule moves a booking to a new date and time.
func (r *Repository) Reschedule(ctx context.Context, tenantID, bookingID, date, clock string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET booking_date = $1, booking_time = $2
		WHERE id = $3 AND tenant_id = $4 AND status != $5`,
		date, clock, bookingID, tenantID, StatusCancelled,
	)
	if err != nil {
		return fmt.Errorf("bookings: reschedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bookings: reschedule: booking %s not found", bookingID)
	}
	return nil
}

// Cancel marks a booking cancelled.
func (r *Repository) Cancel(ctx context.Context, tenantID, bookingID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $1
		WHERE id = $2 AND tenant_id = $3`,
		StatusCancelled, bookingID, tenantID,
	)
	if err != nil {
		return fmt.Errorf("bookings: cancel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bookings: cancel: booking %s not found", bookingID)
	}
	return nil
}

func scanBookings(rows pgx.Rows) ([]Booking, error) {
	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.TenantID, &b.CustomerName, &b.CustomerPhone, &b.ServiceID, &b.ServiceName,
			&b.Date, &b.Time, &b.DurationMinutes, &b.Note, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("bookings: scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: rows: %w", err)
	}
	return out, nil
}
