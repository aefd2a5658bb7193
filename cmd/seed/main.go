package main

import (
	"errors"
	"log"
	"time"

	"activity-portal-api/config"
	"activity-portal-api/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a demo student, an INTIMA administrator, two affiliates and one
// sample submission. Safe to run repeatedly.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()
	db := config.DB

	student := seedUser(db, models.User{
		ID:    "2021-00001",
		Name:  "Test User",
		Email: "testuser@example.com",
		Role:  models.RoleStudent,
	}, "password123")

	seedUser(db, models.User{
		ID:          "2021-00002",
		Name:        "INTIMA Admin",
		Email:       "intima@inti.edu",
		Role:        models.RoleIntima,
		Permissions: models.StringList{"admin"},
	}, "intima123")

	affiliate := seedAffiliate(db, models.Affiliate{
		Name:             "Test Affiliate",
		Description:      "A test affiliate for seeding purposes.",
		Category:         models.CategoryAcademic,
		Status:           models.AffiliateActive,
		AdvisorID:        "prof-001",
		CommitteeMembers: models.StringList{student.ID},
	})

	seedAffiliate(db, models.Affiliate{
		Name:             "Debate Society",
		Description:      "Weekly debates and public-speaking workshops.",
		Category:         models.CategorySpecialInterest,
		Status:           models.AffiliateActive,
		AdvisorID:        "prof-002",
		CommitteeMembers: models.StringList{student.ID},
	})

	if student.ID != "" && len(student.Affiliates) == 0 {
		db.Model(&models.User{}).Where("id = ?", student.ID).
			Update("affiliates", models.StringList{affiliate.ID})
	}

	var count int64
	db.Model(&models.Submission{}).Count(&count)
	if count == 0 {
		submission := models.Submission{
			FormType:               models.FormTypeSAP,
			AffiliateID:            affiliate.ID,
			ActivityName:           "Chess Night",
			Date:                   time.Now().AddDate(0, 1, 0),
			Description:            "Monthly chess tournament open to all members.",
			Status:                 models.StatusPendingValidation,
			SubmittedBy:            student.ID,
			Documents:              models.StringList{},
			Comments:               models.CommentList{},
			FinanceReviewStatus:    models.ReviewPending,
			FinanceComments:        models.CommentList{},
			ActivitiesReviewStatus: models.ReviewPending,
			ActivitiesComments:     models.CommentList{},
		}
		if err := db.Create(&submission).Error; err != nil {
			log.Printf("Failed to seed submission: %v", err)
		} else {
			log.Println("Seeded 1 sample submission")
		}
	}

	log.Println("Seeding completed")
}

func seedUser(db *gorm.DB, user models.User, password string) models.User {
	var existing models.User
	err := db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up user %s: %v", user.Email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	user.Password = string(hash)
	if user.Affiliates == nil {
		user.Affiliates = models.StringList{}
	}
	if user.Permissions == nil {
		user.Permissions = models.StringList{}
	}

	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to seed user %s: %v", user.Email, err)
	}
	log.Printf("Seeded user %s", user.Email)
	return user
}

func seedAffiliate(db *gorm.DB, affiliate models.Affiliate) models.Affiliate {
	var existing models.Affiliate
	err := db.Where("name = ?", affiliate.Name).First(&existing).Error
	if err == nil {
		return existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up affiliate %s: %v", affiliate.Name, err)
	}

	if err := db.Create(&affiliate).Error; err != nil {
		log.Fatalf("Failed to seed affiliate %s: %v", affiliate.Name, err)
	}
	log.Printf("Seeded affiliate %s", affiliate.Name)
	return affiliate
}
