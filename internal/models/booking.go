package models

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a tenant's request to rent a house for a period.
// MoveInDate and EndDate are calendar dates, normalized to midnight.
type Booking struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	TenantID uint `gorm:"index" json:"tenant_id"`
	HouseID  uint `gorm:"index" json:"house_id"`
	OwnerID  uint `gorm:"index" json:"owner_id"`

	MoveInDate    time.Time     `json:"move_in_date"`
	EndDate       time.Time     `json:"end_date"`
	MonthlyRent   float64       `gorm:"type:decimal(15,2)" json:"monthly_rent"`
	CommissionFee float64       `gorm:"type:decimal(15,2)" json:"commission_fee"`
	Notes         string        `gorm:"type:text" json:"notes"`
	Status        BookingStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	// Relationships
	Tenant   User      `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	House    House     `gorm:"foreignKey:HouseID" json:"house,omitempty"`
	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Payments []Payment `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
}

// RentDueDates expands the monthly rent schedule between MoveInDate and
// EndDate. The first occurrence is the move-in date itself.
func (b Booking) RentDueDates() []time.Time {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.MONTHLY,
		Dtstart: b.MoveInDate,
		Until:   b.EndDate,
	})
	if err != nil {
		return nil
	}
	return rule.All()
}

// Reference is the human-readable identifier embedded in payment
// descriptions and gateway client references.
func (b Booking) Reference() string {
	return fmt.Sprintf("booking #%d", b.ID)
}
