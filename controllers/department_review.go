package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"activity-portal-api/config"
	"activity-portal-api/models"
	"activity-portal-api/services"

	"github.com/gin-gonic/gin"
)

type departmentReviewRequest struct {
	FormType                string `json:"formType"`
	FinanceReviewStatus     string `json:"financeReviewStatus"`
	FinanceReviewMessage    string `json:"financeReviewMessage"`
	ActivitiesReviewStatus  string `json:"activitiesReviewStatus"`
	ActivitiesReviewMessage string `json:"activitiesReviewMessage"`
	UserID                  string `json:"userId"`
}

// UpdateDepartmentReview records Finance and/or Activities review outcomes
// (PUT /api/submissions/:id/department-review). Each supplied department
// gets its own sub-record plus a department-tagged comment in the shared
// stream, and the parent submission always returns to INTIMA review.
func UpdateDepartmentReview(c *gin.Context) {
	var req departmentReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FinanceReviewStatus == "" && req.ActivitiesReviewStatus == "" {
		respondError(c, http.StatusBadRequest, "No review data provided")
		return
	}

	if req.FinanceReviewStatus != "" && !models.ValidReviewStatus(req.FinanceReviewStatus) {
		respondError(c, http.StatusBadRequest, "Invalid finance review status")
		return
	}
	if req.ActivitiesReviewStatus != "" && !models.ValidReviewStatus(req.ActivitiesReviewStatus) {
		respondError(c, http.StatusBadRequest, "Invalid activities review status")
		return
	}

	if role := requesterRole(c, req.UserID); !services.Allow(role, services.CapDepartmentReview) {
		respondError(c, http.StatusForbidden, "Not permitted to submit department reviews")
		return
	}

	submission, ok := loadSubmission(c, c.Param("id"))
	if !ok {
		return
	}

	reviewer := req.UserID
	if reviewer == "" {
		reviewer = "Unknown"
	}

	now := time.Now()
	comments := submission.Comments
	updates := map[string]interface{}{}

	if req.FinanceReviewStatus != "" {
		updates["finance_review_status"] = req.FinanceReviewStatus
		updates["finance_reviewed_by"] = reviewer
		updates["finance_reviewed_at"] = now

		shared := departmentComment(models.DepartmentFinance, reviewer, req.FinanceReviewStatus, req.FinanceReviewMessage)
		comments = append(comments, shared)

		if req.FinanceReviewMessage != "" {
			deptComments := append(submission.FinanceComments,
				models.NewComment(models.DepartmentFinance+" Department", reviewer, req.FinanceReviewMessage))
			updates["finance_comments"] = deptComments
		}
	}

	if req.ActivitiesReviewStatus != "" {
		updates["activities_review_status"] = req.ActivitiesReviewStatus
		updates["activities_reviewed_by"] = reviewer
		updates["activities_reviewed_at"] = now

		shared := departmentComment(models.DepartmentActivities, reviewer, req.ActivitiesReviewStatus, req.ActivitiesReviewMessage)
		comments = append(comments, shared)

		if req.ActivitiesReviewMessage != "" {
			deptComments := append(submission.ActivitiesComments,
				models.NewComment(models.DepartmentActivities+" Department", reviewer, req.ActivitiesReviewMessage))
			updates["activities_comments"] = deptComments
		}
	}

	newStatus, err := services.Transition(submission.Status, services.ActionDepartmentReview, "")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	updates["comments"] = comments
	updates["status"] = newStatus
	updates["updated_at"] = now

	if err := config.DB.Model(&models.Submission{}).Where("id = ?", submission.ID).Updates(updates).Error; err != nil {
		log.Printf("Error updating department review for %s: %v", submission.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	services.RecordStatusChange(nil, reviewer, "department-review", submission, submission.Status, newStatus)

	var updated models.Submission
	if err := config.DB.Where("id = ?", submission.ID).First(&updated).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Department review updated successfully",
		"submission": updated,
	})
}

// departmentComment builds the dual-purpose comment shared between the
// department view and the general comment stream.
func departmentComment(department, reviewer, status, message string) models.Comment {
	if message == "" {
		message = "No reason provided"
	}
	comment := models.NewComment(
		department+" Department",
		reviewer,
		fmt.Sprintf("Status: %s, Reason: %s", status, message),
	)
	comment.Department = department
	return comment
}
