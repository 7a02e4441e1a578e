package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
	"github.com/Bruno200000/LOKI-sub001/internal/services"
)

type BookingHandler struct {
	db       *gorm.DB
	bookings *services.BookingService
	payments *services.PaymentService
	mailer   *services.EmailService
}

func NewBookingHandler(db *gorm.DB, bookings *services.BookingService, payments *services.PaymentService, mailer *services.EmailService) *BookingHandler {
	return &BookingHandler{db: db, bookings: bookings, payments: payments, mailer: mailer}
}

type createBookingRequest struct {
	HouseID    uint   `json:"house_id"`
	MoveInDate string `json:"move_in_date"`
	EndDate    string `json:"end_date"`
	Notes      string `json:"notes"`
}

// CreateBooking validates the requested dates and creates the booking
// together with its pending commission payment.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	tenant, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	// The SPA validates before showing the payment step, but the two
	// are separated by user-editable state: validate again here.
	moveIn, end, err := services.ValidateBookingDates(req.MoveInDate, req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var house models.House
	if err := h.db.First(&house, req.HouseID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "house not found")
	}
	if !house.IsAvailable {
		return echo.NewHTTPError(http.StatusBadRequest, "house is no longer available")
	}
	if house.OwnerID == tenant.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "you cannot book your own house")
	}

	booking, payment, err := h.bookings.CreateBookingWithCommission(tenant, house, moveIn, end, req.Notes)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create booking: "+err.Error())
	}

	if err := h.mailer.SendBookingCreated(tenant, *booking, house); err != nil {
		log.Printf("Failed to send booking confirmation for booking %d: %v", booking.ID, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"booking": booking,
		"payment": payment,
	})
}

// ListMyBookings returns the authenticated tenant's bookings
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var bookings []models.Booking
	if err := h.db.Preload("House").Preload("Payments").
		Where("tenant_id = ?", user.ID).Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch bookings: "+err.Error())
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListOwnerBookings returns bookings made against the owner's houses
func (h *BookingHandler) ListOwnerBookings(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var bookings []models.Booking
	if err := h.db.Preload("House").Preload("Tenant").Preload("Payments").
		Where("owner_id = ?", user.ID).Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch bookings: "+err.Error())
	}
	return c.JSON(http.StatusOK, bookings)
}

// ApproveBooking lets the house owner accept a pending booking. The
// house is taken off the market.
func (h *BookingHandler) ApproveBooking(c echo.Context) error {
	return h.decideBooking(c, models.BookingStatusApproved)
}

// RejectBooking lets the house owner decline a pending booking
func (h *BookingHandler) RejectBooking(c echo.Context) error {
	return h.decideBooking(c, models.BookingStatusRejected)
}

func (h *BookingHandler) decideBooking(c echo.Context, decision models.BookingStatus) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var booking models.Booking
	if err := h.db.Preload("House").First(&booking, c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	if booking.OwnerID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "you can only decide bookings on your own houses")
	}
	if booking.Status != models.BookingStatusPending {
		return echo.NewHTTPError(http.StatusBadRequest, "booking is already "+string(booking.Status))
	}

	if err := h.db.Model(&booking).Update("status", decision).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update booking: "+err.Error())
	}

	if decision == models.BookingStatusApproved {
		h.db.Model(&models.House{}).Where("id = ?", booking.HouseID).Update("is_available", false)
	}

	booking.Status = decision
	return c.JSON(http.StatusOK, booking)
}

// CancelBooking lets the tenant withdraw a booking; a still-pending
// commission payment is cancelled with it.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var booking models.Booking
	if err := h.db.First(&booking, c.Param("id")).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	if booking.TenantID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "you can only cancel your own bookings")
	}

	if err := h.bookings.CancelBooking(&booking); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}
