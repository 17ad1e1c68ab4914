package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mebelpro/factory-api/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateFurnitureType(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create furniture type",
			requestBody: map[string]interface{}{
				"title":    "Диван",
				"category": "upholstered",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Диван", data["title"])
				assert.Equal(t, "upholstered", data["category"])
			},
		},
		{
			name: "Category defaults to case",
			requestBody: map[string]interface{}{
				"title": "Шкаф",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "case", data["category"])
			},
		},
		{
			name: "Fail with missing title",
			requestBody: map[string]interface{}{
				"category": "office",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with unknown category",
			requestBody: map[string]interface{}{
				"title":    "Качели",
				"category": "garden",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/furniture-types", CreateFurnitureType)

			status, response := performJSON(t, router, http.MethodPost, "/furniture-types", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, status)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(response))
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestListFurnitureTypesWithOrderCounts(t *testing.T) {
	db := setupTestDB(t)
	sofa := createTestFurnitureType(t, db, "Диван", models.CategoryUpholstered)
	createTestFurnitureType(t, db, "Шкаф", models.CategoryCase)

	createTestOrder(t, db, sofa.ID, models.StatusInProgress)
	createTestOrder(t, db, sofa.ID, models.StatusCompleted)

	router := setupTestRouter()
	router.GET("/furniture-types", ListFurnitureTypes)

	status, response := performJSON(t, router, http.MethodGet, "/furniture-types", nil)
	assert.Equal(t, http.StatusOK, status)

	data := response["data"].([]interface{})
	assert.Len(t, data, 2)

	counts := make(map[string]float64)
	for _, raw := range data {
		view := raw.(map[string]interface{})
		counts[view["title"].(string)] = view["order_count"].(float64)
	}
	assert.Equal(t, float64(2), counts["Диван"], "order_count includes all statuses")
	assert.Equal(t, float64(0), counts["Шкаф"])
}

func TestGetFurnitureTypeFiltersActiveOrders(t *testing.T) {
	db := setupTestDB(t)
	sofa := createTestFurnitureType(t, db, "Диван", models.CategoryUpholstered)
	wardrobe := createTestFurnitureType(t, db, "Шкаф", models.CategoryCase)

	active := createTestOrder(t, db, sofa.ID, models.StatusInProgress)
	createTestOrder(t, db, sofa.ID, models.StatusCompleted)
	createTestOrder(t, db, wardrobe.ID, models.StatusInProgress)

	router := setupTestRouter()
	router.GET("/furniture-types/:id", GetFurnitureType)

	status, response := performJSON(t, router, http.MethodGet, fmt.Sprintf("/furniture-types/%d", sofa.ID), nil)
	assert.Equal(t, http.StatusOK, status)

	orders := response["orders"].([]interface{})
	if assert.Len(t, orders, 1, "only in_progress orders of this type are listed") {
		order := orders[0].(map[string]interface{})
		assert.Equal(t, float64(active.ID), order["id"])
	}

	status, response = performJSON(t, router, http.MethodGet, "/furniture-types/9999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "FURNITURE_TYPE_NOT_FOUND", errorCode(response))
}

func TestDeleteFurnitureType(t *testing.T) {
	db := setupTestDB(t)
	sofa := createTestFurnitureType(t, db, "Диван", models.CategoryUpholstered)
	unused := createTestFurnitureType(t, db, "Шкаф", models.CategoryCase)
	createTestOrder(t, db, sofa.ID, models.StatusInProgress)

	router := setupTestRouter()
	router.DELETE("/furniture-types/:id", DeleteFurnitureType)

	// A type with orders cannot be deleted
	status, response := performJSON(t, router, http.MethodDelete, fmt.Sprintf("/furniture-types/%d", sofa.ID), nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "FURNITURE_TYPE_IN_USE", errorCode(response))

	var count int64
	db.Model(&models.FurnitureType{}).Count(&count)
	assert.Equal(t, int64(2), count)

	// An unused type can
	status, _ = performJSON(t, router, http.MethodDelete, fmt.Sprintf("/furniture-types/%d", unused.ID), nil)
	assert.Equal(t, http.StatusOK, status)

	db.Model(&models.FurnitureType{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
