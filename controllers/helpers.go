package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// dateLayout is the wire format for date-only fields (deadline,
// completion_date, hire_date)
const dateLayout = "2006-01-02"

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondValidationError writes a VALIDATION_ERROR envelope with field details
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": details,
		},
	})
}

// parseDate parses a date-only field value
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// parseIDParam parses a numeric URL parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// parseCursor reads the optional ?cursor= pagination parameter
func parseCursor(c *gin.Context) uint {
	raw := c.Query("cursor")
	if raw == "" {
		return 0
	}
	cursor, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(cursor)
}

// isUniqueViolation detects a uniqueness constraint failure from the
// database error text (works with both PostgreSQL and SQLite)
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
