package models

import (
	"strings"
	"time"
)

// Worker represents a factory worker assigned to a workshop
type Worker struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Patronymic string    `gorm:"size:100" json:"patronymic"`
	Position   string    `gorm:"size:100" json:"position"`
	WorkshopID uint      `gorm:"not null;index" json:"workshop_id"`
	Workshop   Workshop  `gorm:"foreignKey:WorkshopID" json:"-"`
	HireDate   time.Time `gorm:"type:date" json:"hire_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Worker model
func (Worker) TableName() string {
	return "workers"
}

// FullName returns "LastName FirstName Patronymic" with empty parts skipped
func (w *Worker) FullName() string {
	parts := []string{w.LastName, w.FirstName}
	if w.Patronymic != "" {
		parts = append(parts, w.Patronymic)
	}
	return strings.Join(parts, " ")
}
