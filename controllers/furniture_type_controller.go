package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/models"
	"gorm.io/gorm"
)

// FurnitureTypeRequest represents the request body for creating or
// updating a furniture type
type FurnitureTypeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"omitempty,oneof=upholstered case office kitchen"`
}

// furnitureTypeView is a furniture type with its order counter
type furnitureTypeView struct {
	models.FurnitureType
	OrderCount int64 `json:"order_count"`
}

// ListFurnitureTypes handles GET /api/v1/furniture-types - paginated by
// id cursor, each row annotated with its total order count
func ListFurnitureTypes(c *gin.Context) {
	db := config.GetDB()
	cursor := parseCursor(c)

	var furnitureTypes []models.FurnitureType
	query := models.PageAscByID(db.Model(&models.FurnitureType{}), cursor)
	if err := query.Find(&furnitureTypes).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch furniture types")
		return
	}

	views := make([]furnitureTypeView, 0, len(furnitureTypes))
	for _, furnitureType := range furnitureTypes {
		var orderCount int64
		if err := db.Model(&models.Order{}).Where("furniture_type_id = ?", furnitureType.ID).Count(&orderCount).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count orders")
			return
		}
		views = append(views, furnitureTypeView{FurnitureType: furnitureType, OrderCount: orderCount})
	}

	var nextCursor uint
	if len(furnitureTypes) == models.PageSize {
		nextCursor = furnitureTypes[len(furnitureTypes)-1].ID
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

// GetFurnitureType handles GET /api/v1/furniture-types/:id - type
// detail with its active orders, paginated like the order index
func GetFurnitureType(c *gin.Context) {
	furnitureTypeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var furnitureType models.FurnitureType
	if err := db.First(&furnitureType, furnitureTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "FURNITURE_TYPE_NOT_FOUND", "Furniture type not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch furniture type")
		return
	}

	cursor := parseCursor(c)
	var orders []models.Order
	query := models.PageDescByID(models.ActiveOrdersByFurnitureType(db, furnitureType.ID), cursor).
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
		"data":    furnitureType,
		"orders":  orders,
		"meta": gin.H{
			"page_size":   models.PageSize,
			"next_cursor": nextCursor,
			"has_more":    nextCursor != 0,
		},
	})
}

// CreateFurnitureType handles POST /api/v1/furniture-types
func CreateFurnitureType(c *gin.Context) {
	var req FurnitureTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	furnitureType := models.FurnitureType{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if furnitureType.Category == "" {
		furnitureType.Category = models.CategoryCase
	}

	db := config.GetDB()
	if err := db.Create(&furnitureType).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create furniture type")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    furnitureType,
	})
}

// UpdateFurnitureType handles PUT /api/v1/furniture-types/:id
func UpdateFurnitureType(c *gin.Context) {
	furnitureTypeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var furnitureType models.FurnitureType
	if err := db.First(&furnitureType, furnitureTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "FURNITURE_TYPE_NOT_FOUND", "Furniture type not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch furniture type")
		return
	}

	var req FurnitureTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	furnitureType.Title = req.Title
	furnitureType.Description = req.Description
	if req.Category != "" {
		furnitureType.Category = req.Category
	}

	if err := db.Save(&furnitureType).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update furniture type")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    furnitureType,
	})
}

// DeleteFurnitureType handles DELETE /api/v1/furniture-types/:id.
// A type that still has orders cannot be deleted; dropping customer
// orders as a side effect of catalog cleanup is refused.
func DeleteFurnitureType(c *gin.Context) {
	furnitureTypeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var furnitureType models.FurnitureType
	if err := db.First(&furnitureType, furnitureTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "FURNITURE_TYPE_NOT_FOUND", "Furniture type not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch furniture type")
		return
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Where("furniture_type_id = ?", furnitureType.ID).Count(&orderCount).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count orders")
		return
	}
	if orderCount > 0 {
		respondError(c, http.StatusConflict, "FURNITURE_TYPE_IN_USE", "Furniture type has orders and cannot be deleted")
		return
	}

	if err := db.Delete(&furnitureType).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete furniture type")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Furniture type deleted",
	})
}
