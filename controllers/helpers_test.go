package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/middleware"
	"github.com/mebelpro/factory-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Auto-migrate all models
	if err := db.AutoMigrate(
		&models.User{},
		&models.FurnitureType{},
		&models.Workshop{},
		&models.Worker{},
		&models.Order{},
		&models.OrderWorkJournal{},
		&models.OrderPhoto{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware simulates the Auth0 JWT middleware for testing
// It sets up the context exactly as the real EnsureValidToken middleware does
func mockAuthMiddleware(auth0ID, role, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Set("access_token", accessToken)

		customClaims := &middleware.CustomClaims{
			Role: role,
		}
		mockClaims := &validator.ValidatedClaims{
			CustomClaims: customClaims,
		}
		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

// performJSON issues a JSON request against the router and decodes the
// response envelope
func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Response is not valid JSON: %v", err)
		}
	}
	return w.Code, response
}

// errorCode extracts error.code from a response envelope
func errorCode(response map[string]interface{}) string {
	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errData["code"].(string)
	return code
}

// Fixture builders

func createTestFurnitureType(t *testing.T, db *gorm.DB, title, category string) models.FurnitureType {
	t.Helper()
	furnitureType := models.FurnitureType{Title: title, Category: category}
	if err := db.Create(&furnitureType).Error; err != nil {
		t.Fatalf("Failed to create furniture type: %v", err)
	}
	return furnitureType
}

func createTestWorkshop(t *testing.T, db *gorm.DB, number int, title string) models.Workshop {
	t.Helper()
	workshop := models.Workshop{WorkshopNumber: number, Title: title}
	if err := db.Create(&workshop).Error; err != nil {
		t.Fatalf("Failed to create workshop: %v", err)
	}
	return workshop
}

func createTestWorker(t *testing.T, db *gorm.DB, workshopID uint, lastName string) models.Worker {
	t.Helper()
	worker := models.Worker{
		FirstName:  "Иван",
		LastName:   lastName,
		Position:   "Столяр",
		WorkshopID: workshopID,
		HireDate:   time.Now(),
	}
	if err := db.Create(&worker).Error; err != nil {
		t.Fatalf("Failed to create worker: %v", err)
	}
	return worker
}

func createTestOrder(t *testing.T, db *gorm.DB, furnitureTypeID uint, status string, workshops ...models.Workshop) models.Order {
	t.Helper()
	order := models.Order{
		Title:           "Диван Уютный",
		CustomerName:    "Петрова Анна",
		CustomerPhone:   "+7-900-123-45-67",
		FurnitureTypeID: furnitureTypeID,
		Status:          status,
		Priority:        models.PriorityMedium,
		Deadline:        time.Now().AddDate(0, 0, 14),
		Workshops:       workshops,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	return order
}
