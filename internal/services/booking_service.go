package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
)

// Validation errors are user-correctable and shown inline by the front end.
var (
	ErrBadDateFormat     = errors.New("dates must use the YYYY-MM-DD format")
	ErrEndNotAfterMoveIn = errors.New("end date must be strictly after the move-in date")
	ErrMoveInPast        = errors.New("move-in date cannot be before today")
)

const bookingDateLayout = "2006-01-02"

// BookingService creates bookings together with their commission
// payment. The commission fee is a fixed platform charge, independent
// of the house's rent.
type BookingService struct {
	db            *gorm.DB
	commissionFee float64
}

func NewBookingService(db *gorm.DB, commissionFee float64) *BookingService {
	return &BookingService{db: db, commissionFee: commissionFee}
}

// CommissionFee returns the configured fixed platform charge.
func (s *BookingService) CommissionFee() float64 {
	return s.commissionFee
}

// ValidateBookingDates parses and checks a candidate move-in/end date
// pair. On success both dates come back normalized to midnight.
func ValidateBookingDates(moveIn, end string) (time.Time, time.Time, error) {
	return validateBookingDatesAt(time.Now(), moveIn, end)
}

func validateBookingDatesAt(now time.Time, moveInStr, endStr string) (time.Time, time.Time, error) {
	moveIn, err := time.Parse(bookingDateLayout, moveInStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDateFormat
	}
	end, err := time.Parse(bookingDateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadDateFormat
	}

	if !end.After(moveIn) {
		return time.Time{}, time.Time{}, ErrEndNotAfterMoveIn
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, moveIn.Location())
	if moveIn.Before(today) {
		return time.Time{}, time.Time{}, ErrMoveInPast
	}

	return moveIn, end, nil
}

// CommissionDescription builds the human-readable payment description
// embedding the booking id and the listing title.
func CommissionDescription(bookingID uint, houseTitle string) string {
	return fmt.Sprintf("Commission fee for booking #%d (%s)", bookingID, houseTitle)
}

// CreateBookingWithCommission inserts the booking row and then its
// pending commission payment. There is no cross-row transaction; if
// the payment insert fails the booking is compensated to cancelled so
// no orphaned pending booking survives.
func (s *BookingService) CreateBookingWithCommission(tenant models.User, house models.House, moveIn, end time.Time, notes string) (*models.Booking, *models.Payment, error) {
	booking := models.Booking{
		TenantID:      tenant.ID,
		HouseID:       house.ID,
		OwnerID:       house.OwnerID,
		MoveInDate:    moveIn,
		EndDate:       end,
		MonthlyRent:   house.Price,
		CommissionFee: s.commissionFee,
		Notes:         notes,
		Status:        models.BookingStatusPending,
	}
	if err := s.db.Create(&booking).Error; err != nil {
		return nil, nil, err
	}

	payment := models.Payment{
		BookingID:   booking.ID,
		PayerID:     tenant.ID,
		PayeeID:     house.OwnerID,
		Amount:      s.commissionFee,
		Currency:    "XOF",
		Gateway:     models.PaymentGatewayWave,
		Description: CommissionDescription(booking.ID, house.Title),
		Status:      models.PaymentStatusPending,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		// Compensate the half-created booking instead of leaving it pending
		s.db.Model(&booking).Update("status", models.BookingStatusCancelled)
		return nil, nil, err
	}

	return &booking, &payment, nil
}

// releasesHouse reports whether cancelling a booking in this status
// puts its house back on the market. Only an approved booking took it
// off.
func releasesHouse(status models.BookingStatus) bool {
	return status == models.BookingStatusApproved
}

// CancelBooking marks a booking cancelled and, when a pending
// commission payment exists, cancels it too. Cancelling an approved
// booking restores the house's availability.
func (s *BookingService) CancelBooking(booking *models.Booking) error {
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusApproved {
		return fmt.Errorf("booking #%d is already %s", booking.ID, booking.Status)
	}
	release := releasesHouse(booking.Status)

	if err := s.db.Model(booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
		return err
	}

	if release {
		if err := s.db.Model(&models.House{}).Where("id = ?", booking.HouseID).
			Update("is_available", true).Error; err != nil {
			return err
		}
	}

	var payment models.Payment
	err := s.db.Where("booking_id = ? AND status = ?", booking.ID, models.PaymentStatusPending).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.db.Model(&payment).Update("status", models.PaymentStatusCancelled).Error
}
