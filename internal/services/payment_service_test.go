package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
)

func TestCheckoutOutcome(t *testing.T) {
	tests := []struct {
		status   string
		expected CheckoutState
	}{
		{CheckoutStatusCompleted, CheckoutStateSuccess},
		{CheckoutStatusOpen, CheckoutStatePending},
		{CheckoutStatusProcessing, CheckoutStatePending},
		{CheckoutStatusExpired, CheckoutStateFailed},
		{"failed", CheckoutStateFailed},
		{"", CheckoutStateFailed},
		{"some-unknown-status", CheckoutStateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := checkoutOutcome(tt.status); got != tt.expected {
				t.Errorf("checkoutOutcome(%q) = %q; want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestReconcileSessionMissingID(t *testing.T) {
	// Nil collaborators: reaching storage or the gateway would panic,
	// so a clean result proves the empty id short-circuits both.
	svc := NewPaymentService(nil, nil)

	result, err := svc.ReconcileSession(context.Background(), "")
	if err != nil {
		t.Fatalf("ReconcileSession error: %v", err)
	}
	if result.State != CheckoutStateFailed {
		t.Errorf("state = %q; want failed", result.State)
	}
	if result.Message == "" {
		t.Error("expected a message explaining the missing session id")
	}
}

func TestInitiateCheckoutGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code": "internal-error", "message": "gateway exploded"}`))
	}))
	defer server.Close()

	// Nil db: the session_id write must never be reached on a gateway
	// failure, or this panics.
	svc := NewPaymentService(nil, NewWaveServiceWith(server.URL, "test-key"))
	payment := models.Payment{
		Status:   models.PaymentStatusPending,
		Amount:   1000,
		Currency: "XOF",
	}

	_, err := svc.InitiateCheckout(context.Background(), &payment, models.User{},
		"http://localhost/payment/success", "http://localhost/payment/error")

	var apiErr *WaveAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v; want *WaveAPIError", err)
	}
	if apiErr.Message != "gateway exploded" {
		t.Errorf("message = %q; want the gateway's text", apiErr.Message)
	}
	if payment.SessionID != "" {
		t.Errorf("session id %q written despite gateway failure", payment.SessionID)
	}
}

func TestInitiateCheckoutGuards(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	svc := NewPaymentService(nil, NewWaveServiceWith(server.URL, "test-key"))
	settled := models.Payment{Status: models.PaymentStatusCompleted}
	if _, err := svc.InitiateCheckout(context.Background(), &settled, models.User{}, "", ""); !errors.Is(err, ErrPaymentSettled) {
		t.Errorf("settled payment: error = %v; want ErrPaymentSettled", err)
	}

	unconfigured := NewPaymentService(nil, NewWaveServiceWith(server.URL, ""))
	pending := models.Payment{Status: models.PaymentStatusPending}
	if _, err := unconfigured.InitiateCheckout(context.Background(), &pending, models.User{}, "", ""); !errors.Is(err, ErrWaveNotConfigured) {
		t.Errorf("unconfigured gateway: error = %v; want ErrWaveNotConfigured", err)
	}

	if hits != 0 {
		t.Errorf("gateway was called %d times; want none", hits)
	}
}

func TestClientReference(t *testing.T) {
	at := time.Unix(1736500000, 0)
	got := ClientReference(7, at)
	want := "loki-payment-7-1736500000"
	if got != want {
		t.Errorf("ClientReference = %q; want %q", got, want)
	}
	if !strings.HasPrefix(got, "loki-payment-") {
		t.Errorf("reference missing prefix: %q", got)
	}
}

func TestSessionReference(t *testing.T) {
	txID := "TD4FJWGW"
	withTx := &CheckoutSession{ID: "cos-abc", TransactionID: &txID}
	if got := sessionReference(withTx); got != "TD4FJWGW" {
		t.Errorf("sessionReference = %q; want transaction id", got)
	}

	withoutTx := &CheckoutSession{ID: "cos-abc"}
	if got := sessionReference(withoutTx); got != "cos-abc" {
		t.Errorf("sessionReference = %q; want session id", got)
	}
}
