package models

import (
	"gorm.io/gorm"
)

// PageSize is the fixed page size for all list endpoints
const PageSize = 10

// ActiveOrders returns a query over orders currently in progress,
// newest first.
func ActiveOrders(db *gorm.DB) *gorm.DB {
	return db.Model(&Order{}).
		Where("status = ?", StatusInProgress).
		Order("id DESC")
}

// ActiveOrdersByFurnitureType narrows ActiveOrders to one furniture type
func ActiveOrdersByFurnitureType(db *gorm.DB, furnitureTypeID uint) *gorm.DB {
	return ActiveOrders(db).Where("furniture_type_id = ?", furnitureTypeID)
}

// WorkshopSummary holds the derived counters shown on workshop listings
type WorkshopSummary struct {
	WorkerCount      int64 `json:"worker_count"`
	ActiveOrderCount int64 `json:"active_order_count"`
}

// SummarizeWorkshop computes worker and in-progress order counts for a workshop
func SummarizeWorkshop(db *gorm.DB, workshopID uint) (WorkshopSummary, error) {
	var summary WorkshopSummary

	if err := db.Model(&Worker{}).
		Where("workshop_id = ?", workshopID).
		Count(&summary.WorkerCount).Error; err != nil {
		return summary, err
	}

	err := db.Model(&Order{}).
		Joins("JOIN order_workshops ow ON ow.order_id = orders.id").
		Where("ow.workshop_id = ? AND orders.status = ?", workshopID, StatusInProgress).
		Count(&summary.ActiveOrderCount).Error
	return summary, err
}

// PageDescByID limits a query to one page in descending id order.
// The cursor is the id of the last row of the previous page (0 for the
// first page), so page boundaries follow the ordering key and stay
// stable while the underlying set does not change.
func PageDescByID(q *gorm.DB, cursor uint) *gorm.DB {
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	return q.Limit(PageSize)
}

// PageAscByID is the ascending counterpart of PageDescByID
func PageAscByID(q *gorm.DB, cursor uint) *gorm.DB {
	if cursor > 0 {
		q = q.Where("id > ?", cursor)
	}
	return q.Order("id ASC").Limit(PageSize)
}
