package models

import (
	"time"
)

// Workshop represents a production unit that can be assigned to orders
type Workshop struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	WorkshopNumber int       `gorm:"uniqueIndex;not null" json:"workshop_number"`
	Title          string    `gorm:"size:256;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	SupervisorID   *uint     `gorm:"index" json:"supervisor_id"` // nullable, set when a supervisor is appointed
	Supervisor     *User     `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Workers        []Worker  `gorm:"foreignKey:WorkshopID" json:"workers,omitempty"`
	Orders         []Order   `gorm:"many2many:order_workshops" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Workshop model
func (Workshop) TableName() string {
	return "workshops"
}
