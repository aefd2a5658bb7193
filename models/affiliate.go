package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Affiliate categories and statuses (closed sets).
const (
	CategorySports          = "Sports"
	CategoryAcademic        = "Academic"
	CategorySpecialInterest = "Special Interest"
	CategoryService         = "Service"

	AffiliateActive          = "Active"
	AffiliateInactive        = "Inactive"
	AffiliatePendingApproval = "Pending Approval"
)

// Affiliate is a student organization that owns submissions by reference.
type Affiliate struct {
	ID               string     `gorm:"primaryKey;column:id;size:36" json:"id"`
	Name             string     `gorm:"column:name;size:255" json:"name"`
	Description      string     `gorm:"column:description;type:text" json:"description"`
	Category         string     `gorm:"column:category;size:50" json:"category"`
	Status           string     `gorm:"column:status;size:50" json:"status"`
	MemberCount      int        `gorm:"column:member_count;default:0" json:"memberCount"`
	AdvisorID        string     `gorm:"column:advisor_id;size:50" json:"advisorId"`
	CommitteeMembers StringList `gorm:"column:committee_members;type:json" json:"committeeMembers"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}

func (a *Affiliate) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ValidCategory reports whether category belongs to the closed set.
func ValidCategory(category string) bool {
	switch category {
	case CategorySports, CategoryAcademic, CategorySpecialInterest, CategoryService:
		return true
	}
	return false
}

// ValidAffiliateStatus reports whether status belongs to the closed set.
func ValidAffiliateStatus(status string) bool {
	switch status {
	case AffiliateActive, AffiliateInactive, AffiliatePendingApproval:
		return true
	}
	return false
}
