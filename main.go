package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gloucester-auto/dealership-api/config"
	"github.com/gloucester-auto/dealership-api/controllers"
	"github.com/gloucester-auto/dealership-api/middleware"
	"github.com/gloucester-auto/dealership-api/models"
	"github.com/gloucester-auto/dealership-api/repositories"
	"github.com/gloucester-auto/dealership-api/services"
)

func main() {
	logrus.Info("Starting dealership API server...")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.ConnectDatabase(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(&models.Car{}, &models.CarImage{}, &models.Lead{}); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}
	logrus.Info("Database migration completed successfully")

	store, err := services.InitImageStore(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize image store: %v", err)
	}
	services.InitAuthService(cfg)
	repositories.InitCarRepository(db, store)
	repositories.InitLeadRepository(db)

	router := setupRouter()

	addr := ":" + cfg.Port
	logrus.Infof("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the HTTP API. Public reads and the lead form take no
// auth; every mutating inventory/lead/upload route requires the admin bearer
// token.
func setupRouter() *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheck)

	// Storefront
	router.GET("/cars", controllers.ListCars)
	router.GET("/cars/search", controllers.SearchCars)
	router.GET("/cars/:id", controllers.GetCar)
	router.POST("/leads", controllers.CreateLead)
	router.POST("/auth/login", controllers.Login)

	// Admin
	router.POST("/cars", middleware.RequireAdmin(), controllers.CreateCar)
	router.PUT("/cars/:id", middleware.RequireAdmin(), controllers.UpdateCar)
	router.DELETE("/cars/:id", middleware.RequireAdmin(), controllers.DeleteCar)
	router.GET("/leads", middleware.RequireAdmin(), controllers.ListLeads)
	router.GET("/leads/status/:status", middleware.RequireAdmin(), controllers.ListLeadsByStatus)
	router.PATCH("/leads/:id", middleware.RequireAdmin(), controllers.UpdateLeadStatus)
	router.DELETE("/leads/:id", middleware.RequireAdmin(), controllers.DeleteLead)
	router.POST("/upload", middleware.RequireAdmin(), controllers.UploadImage)
	router.POST("/upload-multiple", middleware.RequireAdmin(), controllers.UploadMultipleImages)

	// Disk-backed uploads are served straight from the upload directory.
	if local, ok := services.GetImageStore().(*services.LocalImageStore); ok {
		router.Static("/uploads", local.Dir())
	}

	return router
}

// healthCheck reports database connectivity and table readiness
func healthCheck(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get database instance"})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	tables := gin.H{
		"cars":       db.Migrator().HasTable(&models.Car{}),
		"car_images": db.Migrator().HasTable(&models.CarImage{}),
		"leads":      db.Migrator().HasTable(&models.Lead{}),
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": tables,
	})
}
