package models

import (
	"time"

	"gorm.io/gorm"
)

// UserType represents the role of a user on the platform
type UserType string

const (
	UserTypeAdmin  UserType = "admin"
	UserTypeOwner  UserType = "owner"
	UserTypeTenant UserType = "tenant"
)

// User mirrors a Firebase-authenticated account in local storage
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	FirebaseUID string   `gorm:"type:varchar(128);uniqueIndex" json:"firebase_uid"`
	Name        string   `gorm:"type:varchar(255)" json:"name"`
	Phone       string   `gorm:"type:varchar(50)" json:"phone"`
	Email       string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	UserType    UserType `gorm:"type:varchar(20);default:'tenant'" json:"user_type"`

	// Relationships
	Houses   []House   `gorm:"foreignKey:OwnerID" json:"houses,omitempty"`
	Bookings []Booking `gorm:"foreignKey:TenantID" json:"bookings,omitempty"`
	Payments []Payment `gorm:"foreignKey:PayerID" json:"payments,omitempty"`
}
