package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
)

func TestValidateBookingDates(t *testing.T) {
	now := time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		moveIn  string
		end     string
		wantErr error
	}{
		{
			name:   "valid one month stay",
			moveIn: "2025-01-10",
			end:    "2025-02-10",
		},
		{
			name:   "move-in today is allowed",
			moveIn: "2025-01-05",
			end:    "2025-01-20",
		},
		{
			name:    "end before move-in",
			moveIn:  "2025-01-10",
			end:     "2025-01-09",
			wantErr: ErrEndNotAfterMoveIn,
		},
		{
			name:    "end equal to move-in",
			moveIn:  "2025-01-10",
			end:     "2025-01-10",
			wantErr: ErrEndNotAfterMoveIn,
		},
		{
			name:    "move-in in the past",
			moveIn:  "2025-01-04",
			end:     "2025-02-04",
			wantErr: ErrMoveInPast,
		},
		{
			name:    "unparseable move-in",
			moveIn:  "10/01/2025",
			end:     "2025-02-10",
			wantErr: ErrBadDateFormat,
		},
		{
			name:    "unparseable end",
			moveIn:  "2025-01-10",
			end:     "next month",
			wantErr: ErrBadDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moveIn, end, err := validateBookingDatesAt(now, tt.moveIn, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("validateBookingDatesAt(%q, %q) error = %v; want %v", tt.moveIn, tt.end, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if moveIn.Hour() != 0 || moveIn.Minute() != 0 {
				t.Errorf("move-in not normalized to midnight: %v", moveIn)
			}
			if !end.After(moveIn) {
				t.Errorf("end %v not after move-in %v", end, moveIn)
			}
		})
	}
}

func TestCancelReleasesHouse(t *testing.T) {
	if !releasesHouse(models.BookingStatusApproved) {
		t.Error("cancelling an approved booking must put the house back on the market")
	}
	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusRejected,
		models.BookingStatusCancelled,
	} {
		if releasesHouse(status) {
			t.Errorf("cancelling a %s booking must not touch availability", status)
		}
	}
}

func TestCommissionDescription(t *testing.T) {
	got := CommissionDescription(42, "Villa Almadies")
	want := "Commission fee for booking #42 (Villa Almadies)"
	if got != want {
		t.Errorf("CommissionDescription = %q; want %q", got, want)
	}
}
