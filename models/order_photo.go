package models

import (
	"time"
)

// OrderPhoto represents a photo attached to an order. The image itself
// lives in blob storage under the orders/photos/ namespace; ImageKey is
// the storage key and ImageURL is materialized per request.
type OrderPhoto struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID" json:"-"`
	ImageKey    string    `gorm:"size:512;not null" json:"image_key"`
	ImageURL    string    `gorm:"-" json:"image_url,omitempty"` // computed field
	Description string    `gorm:"size:256" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderPhoto model
func (OrderPhoto) TableName() string {
	return "order_photos"
}
