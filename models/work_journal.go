package models

import (
	"time"
)

// OrderWorkJournal is a timestamped record of work performed on an
// order within a workshop by a set of workers
type OrderWorkJournal struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	OrderID         uint       `gorm:"not null;index" json:"order_id"`
	Order           Order      `gorm:"foreignKey:OrderID" json:"-"`
	WorkshopID      uint       `gorm:"not null;index" json:"workshop_id"`
	Workshop        Workshop   `gorm:"foreignKey:WorkshopID" json:"workshop"`
	Workers         []Worker   `gorm:"many2many:work_journal_workers" json:"workers,omitempty"`
	StartTime       time.Time  `gorm:"not null" json:"start_time"`
	EndTime         *time.Time `json:"end_time"` // nullable, open-ended while work is in progress
	WorkDescription string     `gorm:"type:text" json:"work_description"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the OrderWorkJournal model
func (OrderWorkJournal) TableName() string {
	return "order_work_journal"
}
