package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
	"github.com/Bruno200000/LOKI-sub001/internal/services"
)

type PaymentHandler struct {
	db       *gorm.DB
	payments *services.PaymentService
}

func NewPaymentHandler(db *gorm.DB, payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{db: db, payments: payments}
}

// InitiatePayment opens a gateway checkout session for a pending
// commission payment and returns the launch URL the SPA navigates to.
func (h *PaymentHandler) InitiatePayment(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var payment models.Payment
	if err := h.db.First(&payment, c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "payment not found")
	}
	if payment.PayerID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "you can only pay your own payments")
	}

	appURL := getEnv("APP_URL", "http://localhost:8080")
	successURL := appURL + "/payment/success"
	errorURL := appURL + "/payment/error"

	result, err := h.payments.InitiateCheckout(c.Request().Context(), &payment, user, successURL, errorURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWaveNotConfigured):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "payment service is not configured")
		case errors.Is(err, services.ErrPaymentSettled):
			return echo.NewHTTPError(http.StatusBadRequest, "payment is already settled")
		}
		var apiErr *services.WaveAPIError
		if errors.As(err, &apiErr) {
			return echo.NewHTTPError(http.StatusBadGateway, apiErr.Message)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to initiate payment: "+err.Error())
	}

	return c.JSON(http.StatusOK, result)
}

// CheckoutReturn is the landing call for both the success and error
// redirects from the gateway. With no session_id it reports failure
// without touching the network; otherwise it runs the point-in-time
// reconciliation and returns the state for the SPA to render.
func (h *PaymentHandler) CheckoutReturn(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		// Some gateway redirects carry the id under "payment"
		sessionID = c.QueryParam("payment")
	}

	result, err := h.payments.ReconcileSession(c.Request().Context(), sessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to reconcile session: "+err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// CheckStatus re-verifies a pending payment with the gateway and
// returns the current local status.
func (h *PaymentHandler) CheckStatus(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var payment models.Payment
	if err := h.db.First(&payment, c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "payment not found")
	}
	if payment.PayerID != user.ID && payment.PayeeID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "not your payment")
	}

	verified, err := h.payments.VerifyPayment(c.Request().Context(), payment.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check payment: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     verified.Status,
		"session_id": verified.SessionID,
		"amount":     verified.Amount,
		"currency":   verified.Currency,
	})
}

// CancelPayment applies the explicit cancel path for a pending payment
func (h *PaymentHandler) CancelPayment(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var payment models.Payment
	if err := h.db.First(&payment, c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "payment not found")
	}
	if payment.PayerID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "not your payment")
	}

	if err := h.payments.MarkStatus(&payment, models.PaymentStatusCancelled); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, payment)
}
