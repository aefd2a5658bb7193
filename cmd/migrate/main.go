package main

import (
	"log"

	"activity-portal-api/config"
	"activity-portal-api/models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Affiliate{},
		&models.Submission{},
		&models.ActivityLog{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Migration completed")
}
