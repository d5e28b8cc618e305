package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rebeauty-backend/config"
	"rebeauty-backend/models"
	"rebeauty-backend/routes"
	"rebeauty-backend/services"
	"rebeauty-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Staff{},
		&models.Visit{},
		&models.VisitItem{},
	); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	digest := services.NewDigestService(db, logger)
	scheduler := digest.StartScheduler()
	defer scheduler.Stop()

	r := routes.SetupRouter(cfg, db, logger)
	printRoutes(r)

	logger.Info("listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
