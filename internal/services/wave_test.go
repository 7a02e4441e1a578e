package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "local number",
			input:    "771234567",
			expected: "+221771234567",
		},
		{
			name:     "number with country code",
			input:    "221771234567",
			expected: "+221771234567",
		},
		{
			name:     "already E.164",
			input:    "+221771234567",
			expected: "+221771234567",
		},
		{
			name:     "international prefix",
			input:    "00221771234567",
			expected: "+221771234567",
		},
		{
			name:     "spaces and dashes",
			input:    "77 123-45-67",
			expected: "+221771234567",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizePhone(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizePhone(%q) = %q; want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{1000, "1000"},
		{1000.4, "1000"},
		{0, "0"},
		{250000, "250000"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.amount); got != tt.expected {
			t.Errorf("FormatAmount(%v) = %q; want %q", tt.amount, got, tt.expected)
		}
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	var gotReq CreateCheckoutSessionRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cos-18qq25rgr100a",
			"amount": "1000",
			"currency": "XOF",
			"checkout_status": "open",
			"payment_status": "processing",
			"wave_launch_url": "https://pay.wave.com/c/cos-18qq25rgr100a"
		}`))
	}))
	defer server.Close()

	svc := NewWaveServiceWith(server.URL, "test-key")
	session, err := svc.CreateCheckoutSession(context.Background(), &CreateCheckoutSessionRequest{
		Amount:     "1000",
		Currency:   "XOF",
		SuccessURL: "http://localhost/success",
		ErrorURL:   "http://localhost/error",
	})
	if err != nil {
		t.Fatalf("CreateCheckoutSession error: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization header = %q; want bearer key", gotAuth)
	}
	if gotReq.Amount != "1000" || gotReq.Currency != "XOF" {
		t.Errorf("request body = %+v", gotReq)
	}
	if session.ID != "cos-18qq25rgr100a" {
		t.Errorf("session id = %q", session.ID)
	}
	if session.WaveLaunchURL != "https://pay.wave.com/c/cos-18qq25rgr100a" {
		t.Errorf("launch url = %q", session.WaveLaunchURL)
	}
	if session.CheckoutStatus != CheckoutStatusOpen {
		t.Errorf("checkout status = %q", session.CheckoutStatus)
	}
}

func TestCreateCheckoutSessionGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code": "internal-error", "message": "something broke at the gateway"}`))
	}))
	defer server.Close()

	svc := NewWaveServiceWith(server.URL, "test-key")
	_, err := svc.CreateCheckoutSession(context.Background(), &CreateCheckoutSessionRequest{Amount: "1000", Currency: "XOF"})
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}

	var apiErr *WaveAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T; want *WaveAPIError", err)
	}
	if apiErr.Message != "something broke at the gateway" {
		t.Errorf("message = %q; want the gateway's text", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestWaveNotConfiguredShortCircuits(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	svc := NewWaveServiceWith(server.URL, "")
	_, err := svc.CreateCheckoutSession(context.Background(), &CreateCheckoutSessionRequest{Amount: "1000", Currency: "XOF"})
	if !errors.Is(err, ErrWaveNotConfigured) {
		t.Fatalf("error = %v; want ErrWaveNotConfigured", err)
	}
	if hits != 0 {
		t.Errorf("gateway was called %d times; want none", hits)
	}
}

func TestGetCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/checkout/sessions/cos-abc" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cos-abc",
			"amount": "1000",
			"currency": "XOF",
			"checkout_status": "completed",
			"payment_status": "succeeded",
			"transaction_id": "TD4FJWGW",
			"wave_launch_url": "https://pay.wave.com/c/cos-abc"
		}`))
	}))
	defer server.Close()

	svc := NewWaveServiceWith(server.URL, "test-key")
	session, err := svc.GetCheckoutSession(context.Background(), "cos-abc")
	if err != nil {
		t.Fatalf("GetCheckoutSession error: %v", err)
	}
	if session.CheckoutStatus != CheckoutStatusCompleted {
		t.Errorf("checkout status = %q; want completed", session.CheckoutStatus)
	}
	if session.TransactionID == nil || *session.TransactionID != "TD4FJWGW" {
		t.Errorf("transaction id = %v", session.TransactionID)
	}
}
