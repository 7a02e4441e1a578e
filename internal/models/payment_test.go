package models

import "testing"

func TestPaymentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{"pending to completed", PaymentStatusPending, PaymentStatusCompleted, true},
		{"pending to failed", PaymentStatusPending, PaymentStatusFailed, true},
		{"pending to cancelled", PaymentStatusPending, PaymentStatusCancelled, true},
		{"completed to failed", PaymentStatusCompleted, PaymentStatusFailed, false},
		{"completed to pending", PaymentStatusCompleted, PaymentStatusPending, false},
		{"failed to completed", PaymentStatusFailed, PaymentStatusCompleted, false},
		{"cancelled to completed", PaymentStatusCancelled, PaymentStatusCompleted, false},
		{"pending to pending", PaymentStatusPending, PaymentStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.allowed {
				t.Errorf("%s.CanTransition(%s) = %v; want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestPaymentStatusTerminal(t *testing.T) {
	if PaymentStatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	for _, s := range []PaymentStatus{PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}
