package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"activity-portal-api/config"
	"activity-portal-api/models"
	"activity-portal-api/services"

	"github.com/gin-gonic/gin"
)

type statusUpdateRequest struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	SignedFormURL string `json:"signedFormUrl"`
	UserID        string `json:"userId"`
}

// UpdateSubmissionStatus handles the administrative final decision
// (PUT /api/submissions/:id/status). Approved and Rejected demand a signed
// form reference, which is appended to the document list before the system
// comment is recorded.
func UpdateSubmissionStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Status == "" || req.Message == "" {
		respondError(c, http.StatusBadRequest, "Status and message are required")
		return
	}

	if !models.ValidStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	if (req.Status == models.StatusApproved || req.Status == models.StatusRejected) && req.SignedFormURL == "" {
		respondError(c, http.StatusBadRequest, "Signed form is required for Approved or Rejected status")
		return
	}

	if role := requesterRole(c, req.UserID); !services.Allow(role, services.CapSubmissionDecide) {
		respondError(c, http.StatusForbidden, "Not permitted to update submission status")
		return
	}

	submission, ok := loadSubmission(c, c.Param("id"))
	if !ok {
		return
	}

	newStatus, err := services.Transition(submission.Status, services.ActionFinalDecision, req.Status)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	documents := submission.Documents
	if req.SignedFormURL != "" {
		documents = append(documents, req.SignedFormURL)
	}

	comment := models.NewComment("INTIMA Review", "system",
		fmt.Sprintf("Status updated to %q: %s", newStatus, req.Message))
	comment.SignedFormURL = req.SignedFormURL
	comments := append(submission.Comments, comment)

	updates := map[string]interface{}{
		"status":     newStatus,
		"comments":   comments,
		"files":      documents,
		"updated_at": time.Now(),
	}
	if err := config.DB.Model(&models.Submission{}).Where("id = ?", submission.ID).Updates(updates).Error; err != nil {
		log.Printf("Error updating status for %s: %v", submission.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	actor := req.UserID
	if actor == "" {
		actor = "system"
	}
	services.RecordStatusChange(nil, actor, "final-decision", submission, submission.Status, newStatus)
	go services.NotifySubmitter(nil, submission, newStatus, req.Message)

	submission.Status = newStatus
	submission.Comments = comments
	submission.Documents = documents

	c.JSON(http.StatusOK, gin.H{
		"message":         "Status updated successfully",
		"updatedStatus":   newStatus,
		"updatedComments": comments,
		"updatedFiles":    documents,
		"signedFormUrl":   req.SignedFormURL,
		"submission":      submission,
	})
}

type amendmentRequest struct {
	UserID           string `json:"userId"`
	NewDocument      string `json:"newDocument"`
	AmendmentComment string `json:"amendmentComment"`
	FormType         string `json:"formType"`
	Status           string `json:"status"`
}

// AmendSubmission handles the submitter's resubmission cycle
// (PATCH /api/submission/:id/status). Only reachable while the submission
// Requires Amendment; appends exactly one document and one amendment
// comment, then moves the submission back under INTIMA review.
func AmendSubmission(c *gin.Context) {
	var req amendmentRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.UserID == "" || req.NewDocument == "" || req.AmendmentComment == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	submission, ok := loadSubmission(c, c.Param("id"))
	if !ok {
		return
	}

	if submission.SubmittedBy != req.UserID {
		respondError(c, http.StatusForbidden, "Only the submitter can amend this submission")
		return
	}

	if role := requesterRole(c, req.UserID); !services.Allow(role, services.CapSubmissionAmend) {
		respondError(c, http.StatusForbidden, "Not permitted to amend submissions")
		return
	}

	newStatus, err := services.Transition(submission.Status, services.ActionAmend, "")
	if err != nil {
		if errors.Is(err, services.ErrTransitionNotAllowed) {
			respondError(c, http.StatusBadRequest, "Submission does not require amendment")
		} else {
			respondError(c, http.StatusBadRequest, "Invalid status")
		}
		return
	}

	text := req.AmendmentComment
	if !strings.HasPrefix(text, "[AMENDMENT]") {
		text = "[AMENDMENT] " + text
	}
	comment := models.NewComment("System", req.UserID, text)

	documents := append(submission.Documents, req.NewDocument)
	comments := append(submission.Comments, comment)

	updates := map[string]interface{}{
		"status":     newStatus,
		"comments":   comments,
		"files":      documents,
		"updated_at": time.Now(),
	}
	if err := config.DB.Model(&models.Submission{}).Where("id = ?", submission.ID).Updates(updates).Error; err != nil {
		log.Printf("Error amending submission %s: %v", submission.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	services.RecordStatusChange(nil, req.UserID, "amendment", submission, submission.Status, newStatus)

	submission.Status = newStatus
	submission.Comments = comments
	submission.Documents = documents

	c.JSON(http.StatusOK, gin.H{
		"message":    "Amendment submitted successfully",
		"submission": submission,
	})
}
