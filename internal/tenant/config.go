// Package tenant provides per-tenant configuration and business-hours logic.
package tenant

import (
	"strings"
	"time"
)

// Business categories recognized by the flow selector.
const (
	CategoryBooking  = "booking"
	CategoryProduct  = "product"
	CategoryInfo     = "info"
	CategoryMixed    = "mixed"
	CategoryEvent    = "event"
	CategoryDelivery = "delivery"
)

// DayHours represents the opening hours for a single day.
// Nil means the business is closed that day.
type DayHours struct {
	Open  string `json:"open"`  // "09:00" in 24-hour format
	Close string `json:"close"` // "18:00" in 24-hour format
}

// WeekHours maps weekdays to their hours.
type WeekHours struct {
	Monday    *DayHours `json:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty"`
	Sunday    *DayHours `json:"sunday,omitempty"`
}

// ForWeekday returns the hours for the given weekday, nil when closed.
func (w WeekHours) ForWeekday(day time.Weekday) *DayHours {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Service is a bookable service offered by the tenant.
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceText       string `json:"price_text,omitempty"`
}

// Product is a catalog item for product-category tenants.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceText   string `json:"price_text,omitempty"`
}

// Topic is a question/answer pair for info-category tenants.
type Topic struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Event is an upcoming event for event-category tenants.
type Event struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Date  string `json:"date"` // YYYY-MM-DD
	Venue string `json:"venue,omitempty"`
}

// MenuItem is an orderable item for delivery-category tenants.
type MenuItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PriceText string `json:"price_text,omitempty"`
}

// Config holds tenant-specific configuration.
type Config struct {
	TenantID     string `json:"tenant_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Language     string `json:"language"` // "en" or "pt"
	Timezone     string `json:"timezone"` // e.g. "America/Sao_Paulo"
	ContactPhone string `json:"contact_phone,omitempty"`

	Hours WeekHours `json:"hours"`

	// SlotStepMinutes is the granularity between offered appointment slots.
	SlotStepMinutes int `json:"slot_step_minutes"`

	Services []Service `json:"services,omitempty"`
	Products []Product `json:"products,omitempty"`
	Topics   []Topic   `json:"topics,omitempty"`
	Events   []Event   `json:"events,omitempty"`

	DeliveryMenu    []MenuItem `json:"delivery_menu,omitempty"`
	DeliveryFeeText string     `json:"delivery_fee_text,omitempty"`
}

// DefaultConfig returns a sensible default configuration for a new tenant.
func DefaultConfig(tenantID string) *Config {
	return &Config{
		TenantID: tenantID,
		Name:     "Business",
		Category: CategoryBooking,
		Language: "en",
		Timezone: "UTC",
		Hours: WeekHours{
			Monday:    &DayHours{Open: "09:00", Close: "18:00"},
			Tuesday:   &DayHours{Open: "09:00", Close: "18:00"},
			Wednesday: &DayHours{Open: "09:00", Close: "18:00"},
			Thursday:  &DayHours{Open: "09:00", Close: "18:00"},
			Friday:    &DayHours{Open: "09:00", Close: "17:00"},
			Saturday:  nil, // closed
			Sunday:    nil, // closed
		},
		SlotStepMinutes: 30,
		Services: []Service{
			{ID: "svc-1", Name: "Standard appointment", DurationMinutes: 30},
		},
	}
}

// Location resolves the tenant timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c == nil || c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Lang returns the tenant language, defaulting to English.
func (c *Config) Lang() string {
	if c == nil {
		return "en"
	}
	switch strings.ToLower(strings.TrimSpace(c.Language)) {
	case "pt":
		return "pt"
	default:
		return "en"
	}
}

// IsOpenOn reports whether the tenant is open at all on the given date.
func (c *Config) IsOpenOn(t time.Time) bool {
	return c != nil && c.Hours.ForWeekday(t.In(c.Location()).Weekday()) != nil
}

// OpenDates returns the next count dates (starting tomorrow) on which the
// tenant is open, formatted YYYY-MM-DD in the tenant timezone.
func (c *Config) OpenDates(from time.Time, count int) []string {
	if c == nil || count <= 0 {
		return nil
	}
	loc := c.Location()
	day := from.In(loc)
	var dates []string
	// Bounded scan so a fully-closed week cannot loop forever.
	for i := 0; i < 60 && len(dates) < count; i++ {
		day = day.AddDate(0, 0, 1)
		if c.Hours.ForWeekday(day.Weekday()) != nil {
			dates = append(dates, day.Format("2006-01-02"))
		}
	}
	return dates
}

// ServiceByID looks up a service by its identifier.
func (c *Config) ServiceByID(id string) (Service, bool) {
	if c == nil {
		return Service{}, false
	}
	for _, svc := range c.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return Service{}, false
}
