package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"restopos/config"
	"restopos/database"
	"restopos/middlewares"
	"restopos/router"
	"restopos/services"
	"restopos/utils"
)

func init() {
	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	utils.SetJWTSecret(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		utils.ErrorLogger.Println("Warning: JWT_SECRET not set, using development default")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Background expiry sweep: active sessions past their window get
	// finalized even if nobody logs in to trigger the rollover.
	sweeper := services.NewSweeper(db, cfg.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r := router.SetupRouter(db, cfg.SessionMinutes, rateLimiter)

	port := cfg.Port
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
