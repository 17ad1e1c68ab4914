package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/services"
)

// GetUploadedPhoto handles GET /api/v1/uploads/orders/photos/:filename -
// serves locally stored order photos when the local image backend is in use
func GetUploadedPhoto(c *gin.Context) {
	filename := c.Param("filename")

	if filename == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Filename is required")
		return
	}

	// Prevent directory traversal
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		respondError(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType := ""
	switch ext {
	case ".png":
		contentType = "image/png"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	default:
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only PNG and JPEG files are supported")
		return
	}

	cfg := config.GetConfig()
	filePath := filepath.Join(cfg.UploadDir, filepath.FromSlash(services.PhotoKeyPrefix), filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "Image not found")
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400") // Cache for 24 hours
	c.File(filePath)
}
