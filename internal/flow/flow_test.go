package flow

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/resvio/bot-platform/internal/bookings"
	"github.com/resvio/bot-platform/internal/session"
	"github.com/resvio/bot-platform/internal/tenant"
)

// stubDirectory is an in-memory Directory for handler tests.
type stubDirectory struct {
	byDate     map[string][]bookings.Booking
	byCustomer []bookings.Booking

	created      []bookings.Booking
	rescheduled  []string
	cancelled    []string
	failNextCall error
}

func (s *stubDirectory) Create(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	if s.failNextCall != nil {
		return bookings.Booking{}, s.failNextCall
	}
	if b.ID == "" {
		b.ID = fmt.Sprintf("bk-%d", len(s.created)+1)
	}
	s.created = append(s.created, b)
	return b, nil
}

func (s *stubDirectory) ListByDate(ctx context.Context, tenantID, date string) ([]bookings.Booking, error) {
	if s.failNextCall != nil {
		return nil, s.failNextCall
	}
	return s.byDate[date], nil
}

func (s *stubDirectory) ListByCustomer(ctx context.Context, tenantID, phone, fromDate string) ([]bookings.Booking, error) {
	if s.failNextCall != nil {
		return nil, s.failNextCall
	}
	return s.byCustomer, nil
}

func (s *stubDirectory) Reschedule(ctx context.Context, tenantID, bookingID, date, clock string) error {
	if s.failNextCall != nil {
		return s.failNextCall
	}
	s.rescheduled = append(s.rescheduled, fmt.Sprintf("%s@%s %s", bookingID, date, clock))
	return nil
}

func (s *stubDirectory) Cancel(ctx context.Context, tenantID, bookingID string) error {
	if s.failNextCall != nil {
		return s.failNextCall
	}
	s.cancelled = append(s.cancelled, bookingID)
	return nil
}

func testTenant() *tenant.Config {
	cfg := tenant.DefaultConfig("t1")
	cfg.Name = "Studio Karla"
	cfg.Services = []tenant.Service{
		{ID: "svc-1", Name: "Haircut", DurationMinutes: 30},
		{ID: "svc-2", Name: "Color", DurationMinutes: 60},
	}
	return cfg
}

// testNow is a Friday so the next open dates start the following Monday.
var testNow = time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

func newRequest(cfg *tenant.Config, step Step, text string, data session.Data) Request {
	sess := session.New(cfg.TenantID, "+5511999990000", string(step), testNow)
	sess.Data = data
	return Request{
		Tenant:  cfg,
		Address: "+5511999990000",
		Text:    text,
		Lang:    cfg.Lang(),
		Session: sess,
		Now:     testNow,
	}
}

func TestForCategory(t *testing.T) {
	tests := []struct {
		category string
		want     ID
	}{
		{tenant.CategoryBooking, FlowBooking},
		{tenant.CategoryProduct, FlowCatalog},
		{tenant.CategoryInfo, FlowInfo},
		{tenant.CategoryMixed, FlowMixed},
		{tenant.CategoryEvent, FlowEvent},
		{tenant.CategoryDelivery, FlowDelivery},
		{"florist", FlowFallback},
		{"", FlowFallback},
	}
	for _, tt := range tests {
		if got := ForCategory(tt.category); got != tt.want {
			t.Errorf("ForCategory(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestRegistryResolvesEveryDeclaredStep(t *testing.T) {
	r := NewRegistry(&stubDirectory{})
	flows := []ID{FlowBooking, FlowCatalog, FlowInfo, FlowMixed, FlowEvent, FlowDelivery, FlowFallback}
	for _, f := range flows {
		steps := r.Steps(f)
		if len(steps) == 0 {
			t.Errorf("flow %s declares no steps", f)
		}
		for _, s := range steps {
			if _, err := r.Resolve(f, s); err != nil {
				t.Errorf("Resolve(%s, %s): %v", f, s, err)
			}
		}
	}
}

func TestRegistryUnknownStep(t *testing.T) {
	r := NewRegistry(&stubDirectory{})

	_, err := r.Resolve(FlowBooking, Step("BOOKING_RETIRED_STEP"))
	if err == nil {
		t.Fatal("expected error for unknown step")
	}
	if _, err := r.Resolve(ID("bogus"), StepMenu); err == nil {
		t.Fatal("expected error for unknown flow")
	}
}

func TestMixedMenuHandsOff(t *testing.T) {
	cfg := testTenant()
	cfg.Category = tenant.CategoryMixed

	res, err := mixedMenu(context.Background(), newRequest(cfg, StepMenu, "1", session.Data{}))
	if err != nil {
		t.Fatalf("mixedMenu: %v", err)
	}
	if res.FlowOverride != FlowBooking {
		t.Errorf("FlowOverride = %v, want booking", res.FlowOverride)
	}
	if res.NextStep != StepMenu || !res.Redispatch {
		t.Errorf("expected redispatch into the booking menu, got %+v", res)
	}
}

func TestMixedMenuInvalidRePrompts(t *testing.T) {
	cfg := testTenant()
	cfg.Category = tenant.CategoryMixed

	res, err := mixedMenu(context.Background(), newRequest(cfg, StepMenu, "9", session.Data{}))
	if err != nil {
		t.Fatalf("mixedMenu: %v", err)
	}
	if res.NextStep != StepMenu || res.FlowOverride != "" {
		t.Errorf("invalid choice must not hand off: %+v", res)
	}
	if len(res.Messages) == 0 {
		t.Error("expected a re-prompt")
	}
}

func TestFallbackAlwaysReplies(t *testing.T) {
	cfg := testTenant()
	cfg.Category = "florist"
	cfg.ContactPhone = "+55 11 4000-0000"

	for _, text := range []string{"", "hello", "1"} {
		res, err := fallbackMenu(context.Background(), newRequest(cfg, StepMenu, text, session.Data{}))
		if err != nil {
			t.Fatalf("fallbackMenu(%q): %v", text, err)
		}
		if res.NextStep != StepMenu {
			t.Errorf("fallback must stay at menu, got %v", res.NextStep)
		}
		if len(res.Messages) == 0 {
			t.Errorf("fallback must always reply")
		}
	}
}

func TestTranslationFallsBackToEnglish(t *testing.T) {
	if got := T("fr", msgInvalidOption); got != T("en", msgInvalidOption) {
		t.Errorf("unknown language should fall back to English, got %q", got)
	}
	if T("pt", msgInvalidOption) == T("en", msgInvalidOption) {
		t.Error("pt catalog should differ from en")
	}
}
