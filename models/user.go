package models

import (
	"time"
)

// User represents a staff account (manager or workshop supervisor)
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Auth0ID   string    `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"not null;default:'manager'" json:"role"` // "manager" or "supervisor"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
