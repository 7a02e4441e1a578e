package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// CheckoutCallbackHistory records each gateway response observed while
// reconciling a checkout session. Audit only; reconciliation never
// reads it back.
type CheckoutCallbackHistory struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	PaymentID      uint            `gorm:"index" json:"payment_id"`
	SessionID      string          `gorm:"type:varchar(100);index" json:"session_id"`
	PaymentGateway PaymentGateway  `gorm:"type:varchar(50);not null" json:"payment_gateway"`
	Metadata       json.RawMessage `gorm:"type:jsonb" json:"metadata"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}
