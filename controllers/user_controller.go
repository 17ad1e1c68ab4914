package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/middleware"
	"github.com/mebelpro/factory-api/models"
	"github.com/mebelpro/factory-api/services"
)

// CreateUser handles POST /api/v1/users - creates a staff profile from
// Auth0 userinfo. Requires authentication; name and email come from
// Auth0, the role from the token's custom claim.
func CreateUser(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user ID from token")
		return
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Access token not found")
		return
	}

	// Fetch user info from Auth0
	cfg := config.GetConfig()
	auth0Service := services.NewAuth0Service(cfg)
	userInfo, err := auth0Service.GetUserInfo(accessToken)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "AUTH0_ERROR", "Failed to fetch user information from Auth0")
		return
	}

	if userInfo.Email == "" {
		respondError(c, http.StatusBadRequest, "MISSING_EMAIL", "Email not provided by Auth0")
		return
	}
	if userInfo.Name == "" {
		respondError(c, http.StatusBadRequest, "MISSING_NAME", "Name not provided by Auth0")
		return
	}

	// Role comes from the custom claim when present
	role := "manager"
	if claims, err := middleware.GetClaims(c); err == nil {
		if customClaims, ok := claims.CustomClaims.(*middleware.CustomClaims); ok && customClaims.Role != "" {
			role = customClaims.Role
		}
	}

	user := models.User{
		Auth0ID: auth0ID,
		Name:    userInfo.Name,
		Email:   userInfo.Email,
		Role:    role,
	}

	db := config.GetDB()
	if err := db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusConflict, "USER_EXISTS", "A user with this Auth0 ID or email already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetCurrentUser handles GET /api/v1/users/me - returns the profile of
// the authenticated user
func GetCurrentUser(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user ID from token")
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User profile not found. Please create a profile first.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
