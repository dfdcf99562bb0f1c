package bookings

import (
	"context"
	"testing"
)

func TestInMemoryLifecycle(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, Booking{
		TenantID:      "t1",
		CustomerPhone: "+5511999990000",
		ServiceName:   "Haircut",
		Date:          "2026-08-31",
		Time:          "09:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.Status != StatusPending {
		t.Fatalf("created = %+v, want generated id and pending status", created)
	}

	byDate, err := repo.ListByDate(ctx, "t1", "2026-08-31")
	if err != nil || len(byDate) != 1 {
		t.Fatalf("ListByDate = %v, %v; want one booking", byDate, err)
	}

	if err := repo.Reschedule(ctx, "t1", created.ID, "2026-09-01", "10:00"); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	byCustomer, err := repo.ListByCustomer(ctx, "t1", "+5511999990000", "2026-08-31")
	if err != nil || len(byCustomer) != 1 {
		t.Fatalf("ListByCustomer = %v, %v", byCustomer, err)
	}
	if byCustomer[0].Date != "2026-09-01" || byCustomer[0].Time != "10:00" {
		t.Errorf("rescheduled = %+v", byCustomer[0])
	}

	if err := repo.Cancel(ctx, "t1", created.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	byCustomer, _ = repo.ListByCustomer(ctx, "t1", "+5511999990000", "2026-08-31")
	if len(byCustomer) != 0 {
		t.Errorf("cancelled booking still listed: %+v", byCustomer)
	}

	if err := repo.Reschedule(ctx, "t1", "missing", "2026-09-01", "10:00"); err == nil {
		t.Error("Reschedule accepted unknown booking")
	}
	if err := repo.Cancel(ctx, "t2", created.ID); err == nil {
		t.Error("Cancel crossed tenants")
	}
}
