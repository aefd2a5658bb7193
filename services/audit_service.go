package services

import (
	"log"

	"activity-portal-api/config"
	"activity-portal-api/models"

	"gorm.io/gorm"
)

// RecordStatusChange appends an activity-log row for a submission action.
// Audit writes never fail the calling request; errors are logged and
// swallowed.
func RecordStatusChange(db *gorm.DB, userID, action string, submission *models.Submission, oldStatus, newStatus string) {
	if db == nil {
		db = config.DB
	}

	entry := models.ActivityLog{
		UserID:        userID,
		Action:        action,
		RelatedFormID: submission.ID,
		FormType:      submission.FormType,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Failed to write activity log for submission %s: %v", submission.ID, err)
	}
}
