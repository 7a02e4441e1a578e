package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrWaveNotConfigured is returned before any network call when the
// service was constructed without an API key.
var ErrWaveNotConfigured = errors.New("wave API key is not configured")

// WaveAPIError carries the gateway's own message text for a non-2xx
// response. Handlers surface Message verbatim to the user.
type WaveAPIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *WaveAPIError) Error() string {
	return e.Message
}

// Checkout session statuses as reported by the gateway
const (
	CheckoutStatusOpen       = "open"
	CheckoutStatusProcessing = "processing"
	CheckoutStatusCompleted  = "completed"
	CheckoutStatusExpired    = "expired"
)

// CreateCheckoutSessionRequest is the body of POST /v1/checkout/sessions.
// Amount is a string per the gateway contract.
type CreateCheckoutSessionRequest struct {
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	ErrorURL        string `json:"error_url"`
	SuccessURL      string `json:"success_url"`
	ClientReference string `json:"client_reference,omitempty"`
	Description     string `json:"description,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
}

// CheckoutSession mirrors the gateway's session object. Only the
// fields this flow reads are mapped.
type CheckoutSession struct {
	ID              string     `json:"id"`
	Amount          string     `json:"amount"`
	Currency        string     `json:"currency"`
	CheckoutStatus  string     `json:"checkout_status"`
	PaymentStatus   string     `json:"payment_status"`
	ClientReference *string    `json:"client_reference,omitempty"`
	TransactionID   *string    `json:"transaction_id,omitempty"`
	BusinessName    string     `json:"business_name,omitempty"`
	WaveLaunchURL   string     `json:"wave_launch_url"`
	ErrorURL        string     `json:"error_url,omitempty"`
	SuccessURL      string     `json:"success_url,omitempty"`
	WhenCompleted   *time.Time `json:"when_completed,omitempty"`
	WhenCreated     time.Time  `json:"when_created"`
	WhenExpires     time.Time  `json:"when_expires"`
}

// WaveService is the checkout gateway client. Constructed once at
// startup from environment and injected into whatever needs it; it
// holds only the credential and base URL, never session state.
type WaveService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewWaveService() *WaveService {
	url := os.Getenv("WAVE_API_URL")
	if url == "" {
		url = "https://api.wave.com"
	}
	return &WaveService{
		baseURL: strings.TrimSuffix(url, "/"),
		apiKey:  os.Getenv("WAVE_API_KEY"),
		client:  &http.Client{},
	}
}

// NewWaveServiceWith builds a client against an explicit endpoint and
// key, used by tests and the probe CLI.
func NewWaveServiceWith(baseURL, apiKey string) *WaveService {
	return &WaveService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

// Configured reports whether an API key is present.
func (s *WaveService) Configured() bool {
	return s.apiKey != ""
}

func (s *WaveService) makeRequest(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	if s.apiKey == "" {
		return ErrWaveNotConfigured
	}

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		bodyReader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", s.baseURL, endpoint), bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		apiErr := &WaveAPIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		var parsed struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			apiErr.Code = parsed.Code
			apiErr.Message = parsed.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// CreateCheckoutSession opens a hosted checkout session and returns
// its id and launch URL.
func (s *WaveService) CreateCheckoutSession(ctx context.Context, req *CreateCheckoutSessionRequest) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := s.makeRequest(ctx, http.MethodPost, "/v1/checkout/sessions", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCheckoutSession fetches the current state of a session by id.
func (s *WaveService) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	var session CheckoutSession
	endpoint := fmt.Sprintf("/v1/checkout/sessions/%s", sessionID)
	if err := s.makeRequest(ctx, http.MethodGet, endpoint, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// FormatAmount renders an amount the way the gateway expects: a plain
// string with no minor units (XOF has none).
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.0f", amount)
}

// NormalizePhone standardizes Senegalese mobile numbers to E.164.
// Empty input stays empty; the gateway call is not blocked on it.
func NormalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	if cleaned == "" {
		return ""
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "00") {
		return "+" + strings.TrimPrefix(cleaned, "00")
	}
	if strings.HasPrefix(cleaned, "221") {
		return "+" + cleaned
	}
	// Local 9-digit numbers get the Senegal country code
	return "+221" + strings.TrimPrefix(cleaned, "0")
}
