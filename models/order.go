package models

import (
	"time"
)

// Order statuses
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Order priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// OrderStatuses lists the allowed status values
var OrderStatuses = []string{StatusNew, StatusInProgress, StatusCompleted, StatusCancelled}

// OrderPriorities lists the allowed priority values
var OrderPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Order represents a customer furniture commission
type Order struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	Title           string             `gorm:"size:256;not null" json:"title"`
	Description     string             `gorm:"type:text" json:"description"`
	CustomerName    string             `gorm:"size:200;not null" json:"customer_name"`
	CustomerPhone   string             `gorm:"size:20;not null" json:"customer_phone"`
	FurnitureTypeID uint               `gorm:"not null;index" json:"furniture_type_id"`
	FurnitureType   FurnitureType      `gorm:"foreignKey:FurnitureTypeID" json:"furniture_type"`
	Workshops       []Workshop         `gorm:"many2many:order_workshops" json:"workshops,omitempty"`
	Status          string             `gorm:"size:20;not null;default:'new'" json:"status"`      // new, in_progress, completed, cancelled
	Priority        string             `gorm:"size:10;not null;default:'medium'" json:"priority"` // low, medium, high, urgent
	Deadline        time.Time          `gorm:"type:date;not null" json:"deadline"`
	CompletionDate  *time.Time         `gorm:"type:date" json:"completion_date"` // nullable, set when the order is completed
	TotalCost       *float64           `gorm:"type:decimal(10,2)" json:"total_cost"`
	Notes           string             `gorm:"type:text" json:"notes"`
	WorkJournal     []OrderWorkJournal `gorm:"foreignKey:OrderID" json:"-"`
	Photos          []OrderPhoto       `gorm:"foreignKey:OrderID" json:"-"`
	IsOverdue       bool               `gorm:"-" json:"is_overdue"` // computed field
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsValidStatus reports whether status is one of the allowed values
func IsValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidPriority reports whether priority is one of the allowed values
func IsValidPriority(priority string) bool {
	for _, p := range OrderPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

// IsOverdueAt reports whether the order is overdue as of the given day.
// An order is overdue while it is still unresolved (new or in_progress)
// and its deadline has passed. Completed and cancelled orders are never
// overdue regardless of deadline.
func (o *Order) IsOverdueAt(today time.Time) bool {
	if o.Status != StatusNew && o.Status != StatusInProgress {
		return false
	}
	return truncateToDate(o.Deadline).Before(truncateToDate(today))
}

// ComputeOverdue fills the IsOverdue field against the current date
func (o *Order) ComputeOverdue() {
	o.IsOverdue = o.IsOverdueAt(time.Now())
}

// MarkCompleted sets the order to completed and stamps the completion
// date with the given day. The prior status is not checked, so a
// cancelled order can be force-completed.
func (o *Order) MarkCompleted(today time.Time) {
	completed := truncateToDate(today)
	o.Status = StatusCompleted
	o.CompletionDate = &completed
}

// truncateToDate drops the time-of-day component
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
