package tasks

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
	"github.com/Bruno200000/LOKI-sub001/internal/services"
)

const reconcileSweepLockKey = "lock:reconcile_pending_payments"

// ReconcilePaymentsTaskDef sweeps payments that are still pending with
// an assigned checkout session and re-checks them against the gateway.
// It covers the user who paid but never came back to the return page.
type ReconcilePaymentsTaskDef struct {
	payments *services.PaymentService
	cache    *services.RedisCache
}

// TaskID returns the unique identifier for this task
func (t *ReconcilePaymentsTaskDef) TaskID() string {
	return "reconcile_pending_payments"
}

// HandleExecution runs one sweep. Payments whose session was assigned
// less than 10 minutes ago are skipped; the user may still be inside
// the checkout.
func (t *ReconcilePaymentsTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	acquired, err := t.cache.SetNX(ctx, reconcileSweepLockKey, task.ID, 5*time.Minute)
	if err != nil {
		log.Printf("Reconcile sweep lock error: %v", err)
	}
	if !acquired {
		return map[string]interface{}{"skipped": "another sweep holds the lock"}, nil
	}
	defer t.cache.Delete(ctx, reconcileSweepLockKey)

	cutoff := time.Now().Add(-10 * time.Minute)

	var pending []models.Payment
	if err := db.Where("status = ? AND session_id <> '' AND updated_at < ?",
		models.PaymentStatusPending, cutoff).Find(&pending).Error; err != nil {
		return nil, err
	}

	completed := 0
	stillPending := 0
	failures := 0
	for _, payment := range pending {
		if ctx.Err() != nil {
			break
		}
		result, err := t.payments.ReconcileSession(ctx, payment.SessionID)
		if err != nil {
			log.Printf("Sweep: reconcile of payment %d failed: %v", payment.ID, err)
			failures++
			continue
		}
		switch result.State {
		case services.CheckoutStateSuccess:
			completed++
		case services.CheckoutStatePending:
			stillPending++
		default:
			failures++
		}
	}

	return map[string]interface{}{
		"swept":         len(pending),
		"completed":     completed,
		"still_pending": stillPending,
		"failures":      failures,
	}, nil
}
