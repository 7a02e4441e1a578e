package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
)

// ErrPaymentSettled is returned when a terminal payment is asked to
// change state again.
var ErrPaymentSettled = errors.New("payment is already settled")

// CheckoutState is the view-level outcome of a reconciliation check.
// The single render path maps it to the success, pending or failure view.
type CheckoutState string

const (
	CheckoutStateSuccess CheckoutState = "success"
	CheckoutStatePending CheckoutState = "pending"
	CheckoutStateFailed  CheckoutState = "failed"
)

// ReconcileResult is what the post-checkout return page renders.
type ReconcileResult struct {
	State     CheckoutState `json:"state"`
	Amount    string        `json:"amount,omitempty"`
	Currency  string        `json:"currency,omitempty"`
	Reference string        `json:"reference,omitempty"`
	Message   string        `json:"message,omitempty"`
	PaymentID uint          `json:"payment_id,omitempty"`
}

// InitiateCheckoutResult carries what the front end needs to hand the
// user over to the gateway.
type InitiateCheckoutResult struct {
	SessionID string `json:"session_id"`
	LaunchURL string `json:"launch_url"`
}

// PaymentService drives checkout initiation and reconciliation for
// commission payments.
type PaymentService struct {
	db   *gorm.DB
	wave *WaveService
}

func NewPaymentService(db *gorm.DB, wave *WaveService) *PaymentService {
	return &PaymentService{db: db, wave: wave}
}

// InitiateCheckout opens a gateway session for a pending payment and
// persists the session id on the payment row before returning the
// launch URL. Payer email/phone may be empty; the gateway call is not
// blocked on their presence.
func (s *PaymentService) InitiateCheckout(ctx context.Context, payment *models.Payment, payer models.User, successURL, errorURL string) (*InitiateCheckoutResult, error) {
	if payment.Status != models.PaymentStatusPending {
		return nil, ErrPaymentSettled
	}
	if !s.wave.Configured() {
		return nil, ErrWaveNotConfigured
	}

	req := &CreateCheckoutSessionRequest{
		Amount:          FormatAmount(payment.Amount),
		Currency:        payment.Currency,
		ErrorURL:        errorURL,
		SuccessURL:      successURL,
		ClientReference: ClientReference(payment.ID, time.Now()),
		Description:     payment.Description,
		CustomerEmail:   payer.Email,
		CustomerPhone:   NormalizePhone(payer.Phone),
	}

	session, err := s.wave.CreateCheckoutSession(ctx, req)
	if err != nil {
		return nil, err
	}

	// The session id must be on the local record before the browser
	// leaves for the gateway, or reconciliation has nothing to match.
	if err := s.db.Model(payment).Update("session_id", session.ID).Error; err != nil {
		return nil, fmt.Errorf("checkout session %s created but not persisted: %w", session.ID, err)
	}
	payment.SessionID = session.ID

	return &InitiateCheckoutResult{SessionID: session.ID, LaunchURL: session.WaveLaunchURL}, nil
}

// ClientReference builds the reference sent to the gateway for one
// initiation attempt.
func ClientReference(paymentID uint, at time.Time) string {
	return fmt.Sprintf("loki-payment-%d-%d", paymentID, at.Unix())
}

// checkoutOutcome maps a gateway session status to a view state. Only
// an explicit completed advances the local record; open/processing is
// a distinct pending view, everything else is failure.
func checkoutOutcome(checkoutStatus string) CheckoutState {
	switch checkoutStatus {
	case CheckoutStatusCompleted:
		return CheckoutStateSuccess
	case CheckoutStatusOpen, CheckoutStatusProcessing:
		return CheckoutStatePending
	default:
		return CheckoutStateFailed
	}
}

// ReconcileSession performs the single point-in-time status check for
// a session the user returned from. The local payment status is only
// written through when the gateway explicitly confirms completion; a
// query failure or any non-completed status leaves it untouched.
func (s *PaymentService) ReconcileSession(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	if sessionID == "" {
		return &ReconcileResult{State: CheckoutStateFailed, Message: "missing session identifier"}, nil
	}

	var payment models.Payment
	if err := s.db.Where("session_id = ?", sessionID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ReconcileResult{State: CheckoutStateFailed, Message: "unknown checkout session"}, nil
		}
		return nil, err
	}

	session, err := s.wave.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		log.Printf("Failed to query checkout session %s: %v", sessionID, err)
		return &ReconcileResult{State: CheckoutStateFailed, Message: err.Error(), PaymentID: payment.ID}, nil
	}

	s.recordCallback(&payment, session)

	result := &ReconcileResult{
		State:     checkoutOutcome(session.CheckoutStatus),
		Amount:    session.Amount,
		Currency:  session.Currency,
		Reference: sessionReference(session),
		PaymentID: payment.ID,
	}

	if result.State == CheckoutStateSuccess {
		if payment.Status.CanTransition(models.PaymentStatusCompleted) {
			if err := s.db.Model(&payment).Update("status", models.PaymentStatusCompleted).Error; err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// VerifyPayment re-checks a still-pending payment with the gateway and
// returns its current local status. Used by the status endpoint and
// the worker sweep.
func (s *PaymentService) VerifyPayment(ctx context.Context, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, paymentID).Error; err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentStatusPending && payment.SessionID != "" {
		if _, err := s.ReconcileSession(ctx, payment.SessionID); err != nil {
			log.Printf("Failed to verify payment %d: %v", paymentID, err)
		}
		if err := s.db.First(&payment, paymentID).Error; err != nil {
			return nil, err
		}
	}

	return &payment, nil
}

// MarkStatus applies an explicit terminal status (cancel/fail paths).
func (s *PaymentService) MarkStatus(payment *models.Payment, next models.PaymentStatus) error {
	if !payment.Status.CanTransition(next) {
		return ErrPaymentSettled
	}
	if err := s.db.Model(payment).Update("status", next).Error; err != nil {
		return err
	}
	payment.Status = next
	return nil
}

func (s *PaymentService) recordCallback(payment *models.Payment, session *CheckoutSession) {
	metadata, err := json.Marshal(session)
	if err != nil {
		return
	}
	history := models.CheckoutCallbackHistory{
		PaymentID:      payment.ID,
		SessionID:      session.ID,
		PaymentGateway: models.PaymentGatewayWave,
		Metadata:       metadata,
	}
	if err := s.db.Create(&history).Error; err != nil {
		log.Printf("Failed to record checkout callback for payment %d: %v", payment.ID, err)
	}
}

func sessionReference(session *CheckoutSession) string {
	if session.TransactionID != nil && *session.TransactionID != "" {
		return *session.TransactionID
	}
	return session.ID
}
