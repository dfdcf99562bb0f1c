package session

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client), mr
}

func TestLoadMissingReturnsNil(t *testing.T) {
	store, _ := newStore(t)

	sess, err := store.Load(context.Background(), "t1", "+5511999990000")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess != nil {
		t.Errorf("expected nil session, got %+v", sess)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	sess := New("t1", "+5511999990000", "MENU", now)
	sess.Data.Profile.CustomerName = "Ana"
	sess.Data.Booking = &BookingData{ServiceID: "svc-1", Date: "2026-09-01"}

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "t1", "+5511999990000")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("expected session")
	}
	if got.Step != "MENU" || got.Data.Profile.CustomerName != "Ana" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Data.Booking == nil || got.Data.Booking.ServiceID != "svc-1" {
		t.Errorf("booking data lost: %+v", got.Data.Booking)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, now)
	}
}

func TestStorageErrorsAreMarked(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	_, err := store.Load(context.Background(), "t1", "addr")
	if !errors.Is(err, ErrStorage) {
		t.Errorf("Load error = %v, want ErrStorage", err)
	}

	err = store.Save(context.Background(), New("t1", "addr", "MENU", time.Now()))
	if !errors.Is(err, ErrStorage) {
		t.Errorf("Save error = %v, want ErrStorage", err)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	fresh := Session{UpdatedAt: now.Add(-29 * time.Minute)}
	if IsExpired(fresh, 30*time.Minute, now) {
		t.Error("29-minute-old session should not be expired")
	}

	stale := Session{UpdatedAt: now.Add(-31 * time.Minute)}
	if !IsExpired(stale, 30*time.Minute, now) {
		t.Error("31-minute-old session should be expired")
	}

	// Zero threshold falls back to the default.
	if IsExpired(fresh, 0, now) {
		t.Error("default threshold should keep a 29-minute-old session")
	}
}

func TestResetKeepsProfileClearsWorkingData(t *testing.T) {
	now := time.Now()
	sess := New("t1", "addr", "BOOKING_ENTER_NOTE", now.Add(-time.Hour))
	sess.Flow = "booking"
	sess.Data.Profile.CustomerName = "Ana"
	sess.Data.Booking = &BookingData{ServiceID: "svc-1"}

	sess.Reset("MENU", now)

	if sess.Step != "MENU" || sess.Flow != "" {
		t.Errorf("reset step/flow mismatch: %+v", sess)
	}
	if sess.Data.Booking != nil {
		t.Error("working data should be cleared")
	}
	if sess.Data.Profile.CustomerName != "Ana" {
		t.Error("profile should survive reset")
	}
	if !sess.UpdatedAt.Equal(now) {
		t.Error("UpdatedAt should move to now")
	}
}
