package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/config"
	"github.com/benguluru-bhavan/ordering-app/middlewares"
	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/router"
	"github.com/benguluru-bhavan/ordering-app/services"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	bootstrapAdmin(db)

	monitor := services.NewOrderMonitor(db)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Profile{},
		&models.AdminRole{},
		&models.Category{},
		&models.MenuItem{},
		&models.Portion{},
		&models.Banner{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// bootstrapAdmin grants the first admin role to the profile named by
// ADMIN_EMAIL; every later grant goes through the admin users endpoint.
func bootstrapAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		return
	}

	var profile models.Profile
	if err := db.Where("email = ?", email).First(&profile).Error; err != nil {
		utils.InfoLogger.Printf("Admin bootstrap: no profile for %s yet", email)
		return
	}

	var count int64
	db.Model(&models.AdminRole{}).
		Where("profile_id = ? AND role = ?", profile.ID, models.RoleAdmin).
		Count(&count)
	if count > 0 {
		return
	}

	role := models.AdminRole{
		ProfileID: profile.ID,
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&role).Error; err != nil {
		utils.ErrorLogger.Printf("Admin bootstrap failed: %v", err)
		return
	}
	utils.InfoLogger.Printf("Admin bootstrap: granted admin role to %s", email)
}
