package models

import (
	"time"

	"gorm.io/gorm"
)

// House represents a rental listing published by an owner
type House struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	OwnerID     uint    `gorm:"index" json:"owner_id"`
	Title       string  `gorm:"type:varchar(255)" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	City        string  `gorm:"type:varchar(100);index" json:"city"`
	Address     string  `gorm:"type:varchar(255)" json:"address"`
	Price       float64 `gorm:"type:decimal(15,2)" json:"price"` // monthly rent
	Rooms       int     `json:"rooms"`
	Bathrooms   int     `json:"bathrooms"`
	PhotoURL    string  `gorm:"type:text" json:"photo_url"`
	IsAvailable bool    `gorm:"default:true" json:"is_available"`

	// Relationships
	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Bookings []Booking `gorm:"foreignKey:HouseID" json:"bookings,omitempty"`
}
