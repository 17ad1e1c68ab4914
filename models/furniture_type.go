package models

import (
	"time"
)

// Furniture categories
const (
	CategoryUpholstered = "upholstered"
	CategoryCase        = "case"
	CategoryOffice      = "office"
	CategoryKitchen     = "kitchen"
)

// FurnitureCategories lists the allowed category values
var FurnitureCategories = []string{CategoryUpholstered, CategoryCase, CategoryOffice, CategoryKitchen}

// FurnitureType represents a kind of furniture the factory produces
type FurnitureType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:20;not null;default:'case'" json:"category"` // upholstered, case, office, kitchen
	Orders      []Order   `gorm:"foreignKey:FurnitureTypeID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the FurnitureType model
func (FurnitureType) TableName() string {
	return "furniture_types"
}

// IsValidCategory reports whether category is one of the allowed values
func IsValidCategory(category string) bool {
	for _, c := range FurnitureCategories {
		if c == category {
			return true
		}
	}
	return false
}
