package controllers

import (
	"errors"
	"net/http"
	"sort"

	"activity-portal-api/config"
	"activity-portal-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError writes the portal's error envelope. Every error response is
// a JSON object with a message field.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// requesterRole resolves the caller's role: the identity middleware wins,
// then a lookup of the user ID supplied in the request body. An empty
// return means the caller is unidentifiable and role checks stay advisory.
func requesterRole(c *gin.Context, userID string) string {
	if role, exists := c.Get("role"); exists {
		if s, ok := role.(string); ok && s != "" {
			return s
		}
	}
	if userID == "" {
		return ""
	}
	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return ""
	}
	return user.Role
}

// loadSubmission fetches a submission by ID, writing the 404 envelope on a
// miss. The boolean reports whether the caller may continue.
func loadSubmission(c *gin.Context, id string) (*models.Submission, bool) {
	var submission models.Submission
	if err := config.DB.Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Submission not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return nil, false
	}
	return &submission, true
}

// attachAffiliateNames fills the read-only AffiliateName field on each
// submission from one affiliates query.
func attachAffiliateNames(submissions []models.Submission) {
	if len(submissions) == 0 {
		return
	}

	ids := make([]string, 0, len(submissions))
	seen := make(map[string]bool, len(submissions))
	for _, s := range submissions {
		if !seen[s.AffiliateID] {
			seen[s.AffiliateID] = true
			ids = append(ids, s.AffiliateID)
		}
	}

	var affiliates []models.Affiliate
	if err := config.DB.Where("id IN ?", ids).Find(&affiliates).Error; err != nil {
		return
	}

	names := make(map[string]string, len(affiliates))
	for _, a := range affiliates {
		names[a.ID] = a.Name
	}

	for i := range submissions {
		if name, ok := names[submissions[i].AffiliateID]; ok {
			submissions[i].AffiliateName = name
		} else {
			submissions[i].AffiliateName = "Unknown"
		}
	}
}

// sortSubmissionsNewestFirst orders by submission time, newest first.
func sortSubmissionsNewestFirst(submissions []models.Submission) {
	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].SubmittedAt.After(submissions[j].SubmittedAt)
	})
}
