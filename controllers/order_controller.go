package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/models"
	"github.com/mebelpro/factory-api/services"
	"gorm.io/gorm"
)

// OrderRequest represents the request body for creating or updating an order
type OrderRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	CustomerName    string   `json:"customer_name" binding:"required"`
	CustomerPhone   string   `json:"customer_phone" binding:"required"`
	FurnitureTypeID uint     `json:"furniture_type_id" binding:"required"`
	WorkshopIDs     []uint   `json:"workshop_ids"`
	Status          string   `json:"status" binding:"omitempty,oneof=new in_progress completed cancelled"`
	Priority        string   `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Deadline        string   `json:"deadline" binding:"required"`
	TotalCost       *float64 `json:"total_cost"`
	Notes           string   `json:"notes"`
}

// resolveOrderRefs validates the furniture type and workshop references,
// returning the workshops to associate
func resolveOrderRefs(db *gorm.DB, req *OrderRequest) ([]models.Workshop, string) {
	var furnitureType models.FurnitureType
	if err := db.First(&furnitureType, req.FurnitureTypeID).Error; err != nil {
		return nil, "furniture_type_id: furniture type does not exist"
	}

	var workshops []models.Workshop
	if len(req.WorkshopIDs) > 0 {
		if err := db.Find(&workshops, req.WorkshopIDs).Error; err != nil || len(workshops) != len(req.WorkshopIDs) {
			return nil, "workshop_ids: one or more workshops do not exist"
		}
	}
	return workshops, ""
}

// ListOrders handles GET /api/v1/orders - lists active orders, newest
// first, one fixed-size page per request. The cursor is the id of the
// last order on the previous page.
func ListOrders(c *gin.Context) {
	db := config.GetDB()
	cursor := parseCursor(c)

	var orders []models.Order
	query := models.PageDescByID(models.ActiveOrders(db), cursor).
		Preload("FurnitureType").
		Preload("Workshops")
	if err := query.Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch orders")
		return
	}

	for i := range orders {
		orders[i].ComputeOverdue()
	}

	var nextCursor uint
	if len(orders) == models.PageSize {
		nextCursor = orders[len(orders)-1].ID
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"meta": gin.H{
			"page_size":   models.PageSize,
			"next_cursor": nextCursor,
			"has_more":    nextCursor != 0,
		},
	})
}

// GetOrder handles GET /api/v1/orders/:id - order detail with its
// work journal and photos
func GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	err := db.Preload("FurnitureType").
		Preload("Workshops").
		Preload("WorkJournal", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time DESC")
		}).
		Preload("WorkJournal.Workshop").
		Preload("WorkJournal.Workers").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch order")
		return
	}

	order.ComputeOverdue()

	// Materialize photo URLs
	if imageService := services.GetImageService(); imageService != nil {
		for i := range order.Photos {
			url, err := imageService.GetImageURL(order.Photos[i].ImageKey)
			if err != nil {
				log.Printf("Failed to generate URL for photo %d: %v", order.Photos[i].ID, err)
				continue
			}
			order.Photos[i].ImageURL = url
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"data":         order,
		"work_journal": order.WorkJournal,
		"photos":       order.Photos,
	})
}

// CreateOrder handles POST /api/v1/orders - creates a new order with
// its workshop associations
func CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	deadline, err := parseDate(req.Deadline)
	if err != nil {
		respondValidationError(c, "deadline: must be a valid date in YYYY-MM-DD format")
		return
	}

	db := config.GetDB()
	workshops, refErr := resolveOrderRefs(db, &req)
	if refErr != "" {
		respondValidationError(c, refErr)
		return
	}

	order := models.Order{
		Title:           req.Title,
		Description:     req.Description,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		FurnitureTypeID: req.FurnitureTypeID,
		Status:          req.Status,
		Priority:        req.Priority,
		Deadline:        deadline,
		TotalCost:       req.TotalCost,
		Notes:           req.Notes,
	}
	if order.Status == "" {
		order.Status = models.StatusNew
	}
	if order.Priority == "" {
		order.Priority = models.PriorityMedium
	}

	// The order row and its workshop links are written in one transaction
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if len(workshops) > 0 {
			return tx.Model(&order).Association("Workshops").Replace(workshops)
		}
		return nil
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order")
		return
	}

	if err := db.Preload("FurnitureType").Preload("Workshops").First(&order, order.ID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load order details")
		return
	}
	order.ComputeOverdue()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT /api/v1/orders/:id - updates an order and
// replaces its workshop associations
func UpdateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch order")
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	deadline, err := parseDate(req.Deadline)
	if err != nil {
		respondValidationError(c, "deadline: must be a valid date in YYYY-MM-DD format")
		return
	}

	workshops, refErr := resolveOrderRefs(db, &req)
	if refErr != "" {
		respondValidationError(c, refErr)
		return
	}

	order.Title = req.Title
	order.Description = req.Description
	order.CustomerName = req.CustomerName
	order.CustomerPhone = req.CustomerPhone
	order.FurnitureTypeID = req.FurnitureTypeID
	order.Deadline = deadline
	order.TotalCost = req.TotalCost
	order.Notes = req.Notes
	if req.Status != "" {
		order.Status = req.Status
	}
	if req.Priority != "" {
		order.Priority = req.Priority
	}

	// Field update and association replacement are atomic
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return tx.Model(&order).Association("Workshops").Replace(workshops)
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order")
		return
	}

	if err := db.Preload("FurnitureType").Preload("Workshops").First(&order, order.ID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load order details")
		return
	}
	order.ComputeOverdue()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - deletes the order
// together with its photos and work-journal entries. Workshops and
// workers referenced by the order survive.
func DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch order")
		return
	}

	// Collect photo keys before the rows go away
	var photos []models.OrderPhoto
	if err := db.Where("order_id = ?", order.ID).Find(&photos).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch order photos")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderPhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM work_journal_workers WHERE order_work_journal_id IN (SELECT id FROM order_work_journal WHERE order_id = ?)",
			order.ID,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderWorkJournal{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM order_workshops WHERE order_id = ?", order.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order")
		return
	}

	// Remove blobs after the rows are gone; a failed blob delete only
	// leaves an orphan in storage
	if imageService := services.GetImageService(); imageService != nil {
		for _, photo := range photos {
			if err := imageService.DeleteImage(photo.ImageKey); err != nil {
				log.Printf("Failed to delete photo blob %s: %v", photo.ImageKey, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted",
	})
}

// CompleteOrder handles POST /api/v1/orders/:id/complete - marks the
// order completed and stamps today's date. There is no guard on the
// current status: any order, including a cancelled one, can be
// force-completed.
func CompleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch order")
		return
	}

	order.MarkCompleted(time.Now())
	if err := db.Model(&order).Select("status", "completion_date").Updates(&order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to complete order")
		return
	}

	order.ComputeOverdue()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
