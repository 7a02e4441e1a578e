package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
)

// DashboardHandler serves owner summary figures
type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Dashboard returns listing and booking counts plus collected
// commission for the authenticated owner.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return err
	}

	var houseCount, pendingBookings, approvedBookings int64
	h.db.Model(&models.House{}).Where("owner_id = ?", user.ID).Count(&houseCount)
	h.db.Model(&models.Booking{}).Where("owner_id = ? AND status = ?", user.ID, models.BookingStatusPending).Count(&pendingBookings)
	h.db.Model(&models.Booking{}).Where("owner_id = ? AND status = ?", user.ID, models.BookingStatusApproved).Count(&approvedBookings)

	var commissionTotal float64
	h.db.Model(&models.Payment{}).
		Where("payee_id = ? AND status = ?", user.ID, models.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&commissionTotal)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"houses":            houseCount,
		"pending_bookings":  pendingBookings,
		"approved_bookings": approvedBookings,
		"commission_total":  commissionTotal,
	})
}
