package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/models"
	"gorm.io/gorm"
)

// WorkshopRequest represents the request body for creating or updating a workshop
type WorkshopRequest struct {
	WorkshopNumber int    `json:"workshop_number" binding:"required,gt=0"`
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	SupervisorID   *uint  `json:"supervisor_id"`
}

// workshopView is a workshop with its derived counters
type workshopView struct {
	models.Workshop
	models.WorkshopSummary
}

// ListWorkshops handles GET /api/v1/workshops - lists workshops in
// workshop-number order with worker and active-order counts. The cursor
// is the workshop_number of the last row of the previous page.
func ListWorkshops(c *gin.Context) {
	db := config.GetDB()
	cursor := parseCursor(c)

	query := db.Preload("Supervisor").Order("workshop_number ASC").Limit(models.PageSize)
	if cursor > 0 {
		query = query.Where("workshop_number > ?", cursor)
	}

	var workshops []models.Workshop
	if err := query.Find(&workshops).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch workshops")
		return
	}

	views := make([]workshopView, 0, len(workshops))
	for _, workshop := range workshops {
		summary, err := models.SummarizeWorkshop(db, workshop.ID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to summarize workshops")
			return
		}
		views = append(views, workshopView{Workshop: workshop, WorkshopSummary: summary})
	}

	var nextCursor int
	if len(workshops) == models.PageSize {
		nextCursor = workshops[len(workshops)-1].WorkshopNumber
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
		"meta": gin.H{
			"page_size":   models.PageSize,
			"next_cursor": nextCursor,
			"has_more":    nextCursor != 0,
		},
	})
}

// GetWorkshop handles GET /api/v1/workshops/:id - workshop detail with
// its workers and in-progress orders
func GetWorkshop(c *gin.Context) {
	workshopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var workshop models.Workshop
	err := db.Preload("Supervisor").Preload("Workers", func(db *gorm.DB) *gorm.DB {
		return db.Order("last_name, first_name")
	}).First(&workshop, workshopID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "WORKSHOP_NOT_FOUND", "Workshop not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch workshop")
		return
	}

	var orders []models.Order
	err = models.ActiveOrders(db).
		Joins("JOIN order_workshops ow ON ow.order_id = orders.id").
		Where("ow.workshop_id = ?", workshop.ID).
		Preload("FurnitureType").
		Find(&orders).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch workshop orders")
		return
	}
	for i := range orders {
		orders[i].ComputeOverdue()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    workshop,
		"orders":  orders,
	})
}

// CreateWorkshop handles POST /api/v1/workshops
func CreateWorkshop(c *gin.Context) {
	var req WorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	db := config.GetDB()
	if req.SupervisorID != nil {
		var supervisor models.User
		if err := db.First(&supervisor, *req.SupervisorID).Error; err != nil {
			respondValidationError(c, "supervisor_id: user does not exist")
			return
		}
	}

	workshop := models.Workshop{
		WorkshopNumber: req.WorkshopNumber,
		Title:          req.Title,
		Description:    req.Description,
		SupervisorID:   req.SupervisorID,
	}

	if err := db.Create(&workshop).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "DUPLICATE_WORKSHOP_NUMBER", "A workshop with this number already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create workshop")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    workshop,
	})
}

// UpdateWorkshop handles PUT /api/v1/workshops/:id
func UpdateWorkshop(c *gin.Context) {
	workshopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var workshop models.Workshop
	if err := db.First(&workshop, workshopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "WORKSHOP_NOT_FOUND", "Workshop not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch workshop")
		return
	}

	var req WorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if req.SupervisorID != nil {
		var supervisor models.User
		if err := db.First(&supervisor, *req.SupervisorID).Error; err != nil {
			respondValidationError(c, "supervisor_id: user does not exist")
			return
		}
	}

	workshop.WorkshopNumber = req.WorkshopNumber
	workshop.Title = req.Title
	workshop.Description = req.Description
	workshop.SupervisorID = req.SupervisorID

	if err := db.Save(&workshop).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "DUPLICATE_WORKSHOP_NUMBER", "A workshop with this number already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update workshop")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    workshop,
	})
}

// DeleteWorkshop handles DELETE /api/v1/workshops/:id - removes the
// workshop, its workers and its work-journal entries, and detaches it
// from every order. The orders themselves survive.
func DeleteWorkshop(c *gin.Context) {
	workshopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var workshop models.Workshop
	if err := db.First(&workshop, workshopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "WORKSHOP_NOT_FOUND", "Workshop not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch workshop")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Journal entries recorded in this workshop, with their worker links
		if err := tx.Exec(
			"DELETE FROM work_journal_workers WHERE order_work_journal_id IN (SELECT id FROM order_work_journal WHERE workshop_id = ?)",
			workshop.ID,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("workshop_id = ?", workshop.ID).Delete(&models.OrderWorkJournal{}).Error; err != nil {
			return err
		}
		// Workers staffed here, with their journal links
		if err := tx.Exec(
			"DELETE FROM work_journal_workers WHERE worker_id IN (SELECT id FROM workers WHERE workshop_id = ?)",
			workshop.ID,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("workshop_id = ?", workshop.ID).Delete(&models.Worker{}).Error; err != nil {
			return err
		}
		// Detach from orders without touching the orders
		if err := tx.Exec("DELETE FROM order_workshops WHERE workshop_id = ?", workshop.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&workshop).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete workshop")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Workshop deleted",
	})
}
