package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/models"
	"github.com/mebelpro/factory-api/services"
	"github.com/mebelpro/factory-api/utils"
	"gorm.io/gorm"
)

// UploadOrderPhoto handles POST /api/v1/orders/:id/photos - accepts a
// multipart image, stores it under the orders/photos/ namespace and
// attaches the record to the order
func UploadOrderPhoto(c *gin.Context) {
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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondValidationError(c, "image: file is required")
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "Image storage is not configured")
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		log.Printf("Failed to upload photo for order %d: %v", order.ID, err)
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store image")
		return
	}

	photo := models.OrderPhoto{
		OrderID:     order.ID,
		ImageKey:    imageKey,
		Description: c.PostForm("description"),
	}

	if err := db.Create(&photo).Error; err != nil {
		// Remove the blob again if the row never made it in
		if deleteErr := imageService.DeleteImage(imageKey); deleteErr != nil {
			log.Printf("Failed to clean up photo blob %s: %v", imageKey, deleteErr)
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save photo")
		return
	}

	if url, err := imageService.GetImageURL(photo.ImageKey); err == nil {
		photo.ImageURL = url
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    photo,
	})
}

// ListOrderPhotos handles GET /api/v1/orders/:id/photos
func ListOrderPhotos(c *gin.Context) {
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

	var photos []models.OrderPhoto
	if err := db.Where("order_id = ?", order.ID).Order("created_at DESC").Find(&photos).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch photos")
		return
	}

	if imageService := services.GetImageService(); imageService != nil {
		for i := range photos {
			url, err := imageService.GetImageURL(photos[i].ImageKey)
			if err != nil {
				log.Printf("Failed to generate URL for photo %d: %v", photos[i].ID, err)
				continue
			}
			photos[i].ImageURL = url
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    photos,
	})
}

// DeleteOrderPhoto handles DELETE /api/v1/orders/:id/photos/:photoID -
// removes the record and its blob
func DeleteOrderPhoto(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	photoID, ok := parseIDParam(c, "photoID")
	if !ok {
		return
	}

	db := config.GetDB()
	var photo models.OrderPhoto
	err := db.Where("id = ? AND order_id = ?", photoID, orderID).First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "PHOTO_NOT_FOUND", "Photo not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch photo")
		return
	}

	if err := db.Delete(&photo).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete photo")
		return
	}

	if imageService := services.GetImageService(); imageService != nil {
		if err := imageService.DeleteImage(photo.ImageKey); err != nil {
			log.Printf("Failed to delete photo blob %s: %v", photo.ImageKey, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Photo deleted",
	})
}
