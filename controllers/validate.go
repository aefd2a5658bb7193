package controllers

import (
	"net/http"

	"activity-portal-api/models"
	"activity-portal-api/services"

	"github.com/gin-gonic/gin"
)

// TriggerValidation queues the automated document validation pass for a
// submission (POST /api/validate-submission/:id). The work happens on the
// background worker; the endpoint only confirms scheduling.
func TriggerValidation(worker *services.ValidationWorker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The body is optional; an absent userId leaves the check advisory.
		var req struct {
			UserID string `json:"userId"`
		}
		_ = c.ShouldBindJSON(&req)
		if role := requesterRole(c, req.UserID); !services.Allow(role, services.CapValidationTrigger) {
			respondError(c, http.StatusForbidden, "Not permitted to trigger validation")
			return
		}

		submission, ok := loadSubmission(c, c.Param("id"))
		if !ok {
			return
		}

		if submission.Status != models.StatusPendingValidation {
			respondError(c, http.StatusBadRequest, "Submission is not pending validation")
			return
		}

		if err := worker.Enqueue(submission.ID); err != nil {
			respondError(c, http.StatusServiceUnavailable, "Validation queue is full, try again later")
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"message":      "Validation queued",
			"submissionId": submission.ID,
		})
	}
}
