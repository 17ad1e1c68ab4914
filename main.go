package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mebelpro/factory-api/config"
	"github.com/mebelpro/factory-api/controllers"
	"github.com/mebelpro/factory-api/middleware"
	"github.com/mebelpro/factory-api/models"
	"github.com/mebelpro/factory-api/services"
)

func main() {
	log.Println("Starting Furniture Factory API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.FurnitureType{},
		&models.Workshop{},
		&models.Worker{},
		&models.Order{},
		&models.OrderWorkJournal{},
		&models.OrderPhoto{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize photo storage: S3 when a bucket is configured, local
	// disk otherwise
	if cfg.UseS3Storage() {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitS3ImageService(s3Service)
		log.Printf("Photo storage: S3 bucket %s", cfg.AWSS3Bucket)
	} else {
		services.InitLocalImageService(cfg.UploadDir)
		log.Printf("Photo storage: local directory %s", cfg.UploadDir)
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	requireAuth := middleware.EnsureValidToken(cfg)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public read routes
		v1.GET("/orders", controllers.ListOrders)
		v1.GET("/orders/:id", controllers.GetOrder)
		v1.GET("/orders/:id/photos", controllers.ListOrderPhotos)
		v1.GET("/furniture-types", controllers.ListFurnitureTypes)
		v1.GET("/furniture-types/:id", controllers.GetFurnitureType)
		v1.GET("/workshops", controllers.ListWorkshops)
		v1.GET("/workshops/:id", controllers.GetWorkshop)
		v1.GET("/workers", controllers.ListWorkers)
		v1.GET("/uploads/orders/photos/:filename", controllers.GetUploadedPhoto)

		// Mutation routes require an authenticated session
		authed := v1.Group("", requireAuth)
		{
			authed.POST("/orders", controllers.CreateOrder)
			authed.PUT("/orders/:id", controllers.UpdateOrder)
			authed.DELETE("/orders/:id", controllers.DeleteOrder)
			authed.POST("/orders/:id/complete", controllers.CompleteOrder)

			authed.POST("/orders/:id/journal", controllers.AddWorkJournal)
			authed.PUT("/orders/:id/journal/:journalID", controllers.UpdateWorkJournal)
			authed.DELETE("/orders/:id/journal/:journalID", controllers.DeleteWorkJournal)

			authed.POST("/orders/:id/photos", controllers.UploadOrderPhoto)
			authed.DELETE("/orders/:id/photos/:photoID", controllers.DeleteOrderPhoto)

			authed.POST("/furniture-types", controllers.CreateFurnitureType)
			authed.PUT("/furniture-types/:id", controllers.UpdateFurnitureType)
			authed.DELETE("/furniture-types/:id", controllers.DeleteFurnitureType)

			authed.POST("/workshops", controllers.CreateWorkshop)
			authed.PUT("/workshops/:id", controllers.UpdateWorkshop)
			authed.DELETE("/workshops/:id", controllers.DeleteWorkshop)

			authed.POST("/workers", controllers.CreateWorker)
			authed.PUT("/workers/:id", controllers.UpdateWorker)
			authed.DELETE("/workers/:id", controllers.DeleteWorker)

			authed.POST("/users", controllers.CreateUser)
			authed.GET("/users/me", controllers.GetCurrentUser)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Furniture Factory API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
