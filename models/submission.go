package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission statuses. The set is closed; every status write is checked
// against it before it reaches the database.
const (
	StatusPendingValidation    = "Pending Validation"
	StatusAwaitingIntimaReview = "Awaiting INTIMA Review"
	StatusRequiresAmendment    = "Requires Amendment"
	StatusApproved             = "Approved"
	StatusRejected             = "Rejected"
)

// Department review statuses.
const (
	ReviewPending     = "Pending"
	ReviewApproved    = "Approved"
	ReviewRejected    = "Rejected"
	ReviewNotRequired = "Not Required"
)

// Form types.
const (
	FormTypeSAP = "SAP"
	FormTypeASF = "ASF"
)

// Department names for the two independent review tracks.
const (
	DepartmentFinance    = "Finance"
	DepartmentActivities = "Activities"
)

// Submission is an activity proposal (SAP) or activity summary (ASF).
// Both form types share one table with form_type as the discriminant.
type Submission struct {
	ID           string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	FormType     string    `gorm:"column:form_type;size:10;index" json:"type"`
	AffiliateID  string    `gorm:"column:affiliate_id;size:36;index" json:"affiliateId"`
	ActivityName string    `gorm:"column:activity_name;size:255" json:"activityName"`
	Date         time.Time `gorm:"column:date" json:"date"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	Status       string    `gorm:"column:status;size:50" json:"status"`
	SubmittedBy  string    `gorm:"column:submitted_by;size:50" json:"submittedBy"`

	Documents StringList  `gorm:"column:files;type:json" json:"documents"`
	Comments  CommentList `gorm:"column:comments;type:json" json:"feedback"`

	FinanceReviewStatus string      `gorm:"column:finance_review_status;size:20" json:"financeReviewStatus"`
	FinanceComments     CommentList `gorm:"column:finance_comments;type:json" json:"financeComments"`
	FinanceReviewedBy   string      `gorm:"column:finance_reviewed_by;size:50" json:"financeReviewedBy,omitempty"`
	FinanceReviewedAt   *time.Time  `gorm:"column:finance_reviewed_at" json:"financeReviewedAt,omitempty"`

	ActivitiesReviewStatus string      `gorm:"column:activities_review_status;size:20" json:"activitiesReviewStatus"`
	ActivitiesComments     CommentList `gorm:"column:activities_comments;type:json" json:"activitiesComments"`
	ActivitiesReviewedBy   string      `gorm:"column:activities_reviewed_by;size:50" json:"activitiesReviewedBy,omitempty"`
	ActivitiesReviewedAt   *time.Time  `gorm:"column:activities_reviewed_at" json:"activitiesReviewedAt,omitempty"`

	SubmittedAt time.Time `gorm:"column:submitted_at;autoCreateTime" json:"submittedAt"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	// Filled from the affiliates table on reads, never persisted here.
	AffiliateName string `gorm:"-" json:"affiliateName,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// BeforeCreate assigns the submission ID.
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Comment is one entry in a submission's comment stream. User and system
// comments, department review summaries and automated validation findings
// all share this shape; findings carry the extra field/severity columns.
type Comment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	AuthorID  string `json:"authorId"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`

	Department    string `json:"department,omitempty"`
	SignedFormURL string `json:"signedFormUrl,omitempty"`

	Field        string `json:"field,omitempty"`
	Severity     string `json:"severity,omitempty"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
}

// NewComment builds a user or system comment with a stable identifier.
func NewComment(author, authorID, text string) Comment {
	return Comment{
		ID:        uuid.NewString(),
		Author:    author,
		AuthorID:  authorID,
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ValidStatus reports whether status belongs to the closed enumeration.
func ValidStatus(status string) bool {
	switch status {
	case StatusPendingValidation, StatusAwaitingIntimaReview,
		StatusRequiresAmendment, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ValidReviewStatus reports whether status is a valid department review status.
func ValidReviewStatus(status string) bool {
	switch status {
	case ReviewPending, ReviewApproved, ReviewRejected, ReviewNotRequired:
		return true
	}
	return false
}

// ValidFormType reports whether formType is SAP or ASF.
func ValidFormType(formType string) bool {
	return formType == FormTypeSAP || formType == FormTypeASF
}
