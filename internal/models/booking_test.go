package models

import (
	"testing"
	"time"
)

func TestBookingRentDueDates(t *testing.T) {
	booking := Booking{
		MoveInDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
	}

	dates := booking.RentDueDates()
	if len(dates) != 4 {
		t.Fatalf("got %d due dates; want 4 (Jan, Feb, Mar, Apr)", len(dates))
	}
	if !dates[0].Equal(booking.MoveInDate) {
		t.Errorf("first due date = %v; want move-in date", dates[0])
	}
	if !dates[len(dates)-1].Equal(booking.EndDate) {
		t.Errorf("last due date = %v; want %v", dates[len(dates)-1], booking.EndDate)
	}
}

func TestBookingReference(t *testing.T) {
	b := Booking{ID: 12}
	if got := b.Reference(); got != "booking #12" {
		t.Errorf("Reference = %q", got)
	}
}
