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

// WorkJournalRequest represents the request body for creating or
// updating a work-journal entry
type WorkJournalRequest struct {
	WorkshopID      uint   `json:"workshop_id" binding:"required"`
	WorkerIDs       []uint `json:"worker_ids"`
	StartTime       string `json:"start_time"` // RFC 3339, defaults to now
	EndTime         string `json:"end_time"`   // RFC 3339, optional
	WorkDescription string `json:"work_description"`
}

// resolveJournalRefs validates the workshop and worker references and
// parses the time window
func resolveJournalRefs(db *gorm.DB, req *WorkJournalRequest) (workers []models.Worker, startTime time.Time, endTime *time.Time, errMsg string) {
	var workshop models.Workshop
	if err := db.First(&workshop, req.WorkshopID).Error; err != nil {
		return nil, time.Time{}, nil, "workshop_id: workshop does not exist"
	}

	if len(req.WorkerIDs) > 0 {
		if err := db.Find(&workers, req.WorkerIDs).Error; err != nil || len(workers) != len(req.WorkerIDs) {
			return nil, time.Time{}, nil, "worker_ids: one or more workers do not exist"
		}
	}

	startTime = time.Now()
	if req.StartTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			return nil, time.Time{}, nil, "start_time: must be a valid RFC 3339 timestamp"
		}
		startTime = parsed
	}

	if req.EndTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return nil, time.Time{}, nil, "end_time: must be a valid RFC 3339 timestamp"
		}
		if parsed.Before(startTime) {
			return nil, time.Time{}, nil, "end_time: must not be earlier than start_time"
		}
		endTime = &parsed
	}

	return workers, startTime, endTime, ""
}

// findOrderJournal loads a journal entry scoped to its owning order.
// A journal id belonging to a different order is a not-found, not a leak.
func findOrderJournal(c *gin.Context, db *gorm.DB, orderID, journalID uint) (*models.OrderWorkJournal, bool) {
	var journal models.OrderWorkJournal
	err := db.Where("id = ? AND order_id = ?", journalID, orderID).First(&journal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "JOURNAL_NOT_FOUND", "Work journal entry not found")
		} else {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch work journal entry")
		}
		return nil, false
	}
	return &journal, true
}

// AddWorkJournal handles POST /api/v1/orders/:id/journal - appends a
// work-journal entry to an order
func AddWorkJournal(c *gin.Context) {
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

	var req WorkJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	workers, startTime, endTime, refErr := resolveJournalRefs(db, &req)
	if refErr != "" {
		respondValidationError(c, refErr)
		return
	}

	journal := models.OrderWorkJournal{
		OrderID:         order.ID,
		WorkshopID:      req.WorkshopID,
		StartTime:       startTime,
		EndTime:         endTime,
		WorkDescription: req.WorkDescription,
	}

	// The entry and its worker links are written in one transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&journal).Error; err != nil {
			return err
		}
		if len(workers) > 0 {
			return tx.Model(&journal).Association("Workers").Replace(workers)
		}
		return nil
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create work journal entry")
		return
	}

	if err := db.Preload("Workshop").Preload("Workers").First(&journal, journal.ID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load work journal entry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    journal,
	})
}

// UpdateWorkJournal handles PUT /api/v1/orders/:id/journal/:journalID
func UpdateWorkJournal(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	journalID, ok := parseIDParam(c, "journalID")
	if !ok {
		return
	}

	db := config.GetDB()
	journal, ok := findOrderJournal(c, db, orderID, journalID)
	if !ok {
		return
	}

	var req WorkJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	workers, startTime, endTime, refErr := resolveJournalRefs(db, &req)
	if refErr != "" {
		respondValidationError(c, refErr)
		return
	}

	journal.WorkshopID = req.WorkshopID
	journal.StartTime = startTime
	journal.EndTime = endTime
	journal.WorkDescription = req.WorkDescription

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(journal).Error; err != nil {
			return err
		}
		return tx.Model(journal).Association("Workers").Replace(workers)
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update work journal entry")
		return
	}

	if err := db.Preload("Workshop").Preload("Workers").First(journal, journal.ID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load work journal entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    journal,
	})
}

// DeleteWorkJournal handles DELETE /api/v1/orders/:id/journal/:journalID
func DeleteWorkJournal(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	journalID, ok := parseIDParam(c, "journalID")
	if !ok {
		return
	}

	db := config.GetDB()
	journal, ok := findOrderJournal(c, db, orderID, journalID)
	if !ok {
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM work_journal_workers WHERE order_work_journal_id = ?", journal.ID).Error; err != nil {
			return err
		}
		return tx.Delete(journal).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete work journal entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Work journal entry deleted",
	})
}
