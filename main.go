package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rozgar-connect-server/config"
	"rozgar-connect-server/database"
	"rozgar-connect-server/jobs"
	"rozgar-connect-server/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// One-off seeding: `rozgar-connect-server seed`
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		seedDatabase()
		return
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouter()

	// Start background jobs
	schemeSyncJob := jobs.NewSchemeSyncJob()
	schemeSyncJob.Start()
	defer schemeSyncJob.Stop()

	otpCleanupJob := jobs.NewOtpCleanupJob()
	otpCleanupJob.Start()
	defer otpCleanupJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
