package controllers

import (
	"net/http"

	"activity-portal-api/config"
	"activity-portal-api/models"
	"activity-portal-api/services"

	"github.com/gin-gonic/gin"
)

// GetActivityLogs lists audit entries, newest first. Optional userId and
// formId query parameters narrow the result.
func GetActivityLogs(c *gin.Context) {
	if role := requesterRole(c, c.Query("requestedBy")); !services.Allow(role, services.CapActivityLogsRead) {
		respondError(c, http.StatusForbidden, "Not permitted to read activity logs")
		return
	}

	query := config.DB.Order("timestamp DESC")

	if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if formID := c.Query("formId"); formID != "" {
		query = query.Where("related_form_id = ?", formID)
	}

	var logs []models.ActivityLog
	if err := query.Find(&logs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, logs)
}
