package services

import (
	"fmt"
	"log"

	"activity-portal-api/config"
	"activity-portal-api/models"

	"gorm.io/gorm"
)

// NotifySubmitter emails the submitting student about a status change.
// Delivery is best effort: a misconfigured or unreachable relay only logs.
func NotifySubmitter(db *gorm.DB, submission *models.Submission, newStatus, message string) {
	if db == nil {
		db = config.DB
	}

	var user models.User
	if err := db.Where("id = ?", submission.SubmittedBy).First(&user).Error; err != nil {
		log.Printf("Notification skipped: submitter %s not found: %v", submission.SubmittedBy, err)
		return
	}

	subject := fmt.Sprintf("[INTIMA] %s submission update: %s", submission.FormType, submission.ActivityName)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your %s submission <strong>%s</strong> is now <strong>%s</strong>.</p><p>%s</p>",
		user.Name, submission.FormType, submission.ActivityName, newStatus, message,
	)

	if err := config.SendMail([]string{user.Email}, subject, body); err != nil {
		log.Printf("Failed to send notification to %s: %v", user.Email, err)
	}
}
