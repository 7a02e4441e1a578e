package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentGateway identifies which provider settles a payment
type PaymentGateway string

const (
	PaymentGatewayWave   PaymentGateway = "wave"
	PaymentGatewayManual PaymentGateway = "manual"
)

// PaymentStatus is the explicit state machine of a payment. A status
// only ever advances forward: pending is the single non-terminal
// state, and no transition out of a terminal state exists.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Terminal reports whether the status admits no further transition.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is allowed.
// Every status writer must check this before persisting.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	if s.Terminal() {
		return false
	}
	return next.Terminal()
}

// Payment settles the platform commission for one booking. The
// checkout session id is assigned lazily, once the payer proceeds to
// the gateway.
type Payment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	BookingID uint `gorm:"index" json:"booking_id"`
	PayerID   uint `gorm:"index" json:"payer_id"`
	PayeeID   uint `gorm:"index" json:"payee_id"`

	Amount      float64        `gorm:"type:decimal(15,2)" json:"amount"`
	Currency    string         `gorm:"type:varchar(10);default:'XOF'" json:"currency"`
	Gateway     PaymentGateway `gorm:"type:varchar(50);default:'wave'" json:"gateway"`
	Description string         `gorm:"type:text" json:"description"`
	SessionID   string         `gorm:"type:varchar(100);index" json:"session_id"`
	Status      PaymentStatus  `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	// Relationships
	Booking Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	Payer   User    `gorm:"foreignKey:PayerID" json:"payer,omitempty"`
	Payee   User    `gorm:"foreignKey:PayeeID" json:"payee,omitempty"`
}
