package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/models"
	"github.com/mebelpro/factory-api/services"
	"github.com/stretchr/testify/assert"
)

// setupMockAuth0Server simulates Auth0's /userinfo endpoint, mapping
// access tokens to user info
func setupMockAuth0Server(userInfoMap map[string]*services.Auth0UserInfo) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userinfo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if len(authHeader) < 8 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := authHeader[7:] // strip "Bearer "

		userInfo, exists := userInfoMap[token]
		if !exists {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(userInfo); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)

	auth0Server := setupMockAuth0Server(map[string]*services.Auth0UserInfo{
		"token-manager": {
			Sub:   "auth0|manager1",
			Email: "manager@factory.example",
			Name:  "Мария Иванова",
		},
		"token-noemail": {
			Sub:  "auth0|broken1",
			Name: "Без Почты",
		},
	})
	defer auth0Server.Close()

	config.SetConfig(&config.Config{
		DatabaseURL: "test",
		Auth0Domain: auth0Server.URL,
	})

	tests := []struct {
		name           string
		auth0ID        string
		role           string
		accessToken    string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Successfully create user",
			auth0ID:        "auth0|manager1",
			role:           "manager",
			accessToken:    "token-manager",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Fail on duplicate user",
			auth0ID:        "auth0|manager1",
			role:           "manager",
			accessToken:    "token-manager",
			expectedStatus: http.StatusConflict,
			expectedError:  "USER_EXISTS",
		},
		{
			name:           "Fail when Auth0 omits the email",
			auth0ID:        "auth0|broken1",
			role:           "manager",
			accessToken:    "token-noemail",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "MISSING_EMAIL",
		},
		{
			name:           "Fail with rejected token",
			auth0ID:        "auth0|unknown",
			role:           "manager",
			accessToken:    "bad-token",
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "AUTH0_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/users",
				mockAuthMiddleware(tt.auth0ID, tt.role, tt.accessToken),
				CreateUser,
			)

			status, response := performJSON(t, router, http.MethodPost, "/users", nil)
			assert.Equal(t, tt.expectedStatus, status)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(response))
			}
		})
	}

	// Exactly one user row was ever written
	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetCurrentUser(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{
		Auth0ID: "auth0|supervisor1",
		Name:    "Сергей Кузнецов",
		Email:   "supervisor@factory.example",
		Role:    "supervisor",
	}
	assert.NoError(t, db.Create(&user).Error)

	router := setupTestRouter()
	router.GET("/users/me",
		mockAuthMiddleware(user.Auth0ID, user.Role, "mock-token"),
		GetCurrentUser,
	)

	status, response := performJSON(t, router, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusOK, status)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, user.Email, data["email"])
	assert.Equal(t, "supervisor", data["role"])

	// Unknown profile
	router = setupTestRouter()
	router.GET("/users/me",
		mockAuthMiddleware("auth0|stranger", "manager", "mock-token"),
		GetCurrentUser,
	)
	status, response = performJSON(t, router, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(response))
}
