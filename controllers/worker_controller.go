package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/models"
	"gorm.io/gorm"
)

// WorkerRequest represents the request body for creating or updating a worker
type WorkerRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Patronymic string `json:"patronymic"`
	Position   string `json:"position"`
	WorkshopID uint   `json:"workshop_id" binding:"required"`
	HireDate   string `json:"hire_date"` // YYYY-MM-DD, defaults to today
}

// applyWorkerRequest validates references, parses the hire date and
// copies the fields onto the worker
func applyWorkerRequest(db *gorm.DB, worker *models.Worker, req *WorkerRequest) string {
	var workshop models.Workshop
	if err := db.First(&workshop, req.WorkshopID).Error; err != nil {
		return "workshop_id: workshop does not exist"
	}

	hireDate := time.Now()
	if req.HireDate != "" {
		parsed, err := parseDate(req.HireDate)
		if err != nil {
			return "hire_date: must be a valid date in YYYY-MM-DD format"
		}
		hireDate = parsed
	}

	worker.FirstName = req.FirstName
	worker.LastName = req.LastName
	worker.Patronymic = req.Patronymic
	worker.Position = req.Position
	worker.WorkshopID = req.WorkshopID
	worker.HireDate = hireDate
	return ""
}

// ListWorkers handles GET /api/v1/workers - paginated by id cursor
func ListWorkers(c *gin.Context) {
	db := config.GetDB()
	cursor := parseCursor(c)

	var workers []models.Worker
	query := models.PageAscByID(db.Model(&models.Worker{}), cursor)
	if err := query.Find(&workers).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch workers")
		return
	}

	var nextCursor uint
	if len(workers) == models.PageSize {
		nextCursor = workers[len(workers)-1].ID
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    workers,
		"meta": gin.H{
			"page_size":   models.PageSize,
			"next_cursor": nextCursor,
			"has_more":    nextCursor != 0,
		},
	})
}

// CreateWorker handles POST /api/v1/workers
func CreateWorker(c *gin.Context) {
	var req WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	db := config.GetDB()
	var worker models.Worker
	if errMsg := applyWorkerRequest(db, &worker, &req); errMsg != "" {
		respondValidationError(c, errMsg)
		return
	}

	if err := db.Create(&worker).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create worker")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    worker,
	})
}

// UpdateWorker handles PUT /api/v1/workers/:id
func UpdateWorker(c *gin.Context) {
	workerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var worker models.Worker
	if err := db.First(&worker, workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "WORKER_NOT_FOUND", "Worker not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch worker")
		return
	}

	var req WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if errMsg := applyWorkerRequest(db, &worker, &req); errMsg != "" {
		respondValidationError(c, errMsg)
		return
	}

	if err := db.Save(&worker).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update worker")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    worker,
	})
}

// DeleteWorker handles DELETE /api/v1/workers/:id - removes the worker
// and its journal links; journal entries themselves survive
func DeleteWorker(c *gin.Context) {
	workerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var worker models.Worker
	if err := db.First(&worker, workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "WORKER_NOT_FOUND", "Worker not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch worker")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM work_journal_workers WHERE worker_id = ?", worker.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&worker).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete worker")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Worker deleted",
	})
}
