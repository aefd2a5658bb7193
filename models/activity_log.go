package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLog records every status-changing action against a submission.
type ActivityLog struct {
	ID            string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	UserID        string    `gorm:"column:user_id;size:50;index" json:"userId"`
	Action        string    `gorm:"column:action;size:255" json:"action"`
	Timestamp     time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
	RelatedFormID string    `gorm:"column:related_form_id;size:36;index" json:"relatedFormId,omitempty"`
	FormType      string    `gorm:"column:form_type;size:10" json:"formType,omitempty"`
	OldStatus     string    `gorm:"column:old_status;size:50" json:"oldStatus,omitempty"`
	NewStatus     string    `gorm:"column:new_status;size:50" json:"newStatus,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
