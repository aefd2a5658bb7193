package controllers

import (
	"log"
	"net/http"
	"time"

	"activity-portal-api/config"
	"activity-portal-api/models"
	"activity-portal-api/services"

	"github.com/gin-gonic/gin"
)

type addCommentRequest struct {
	Text     string `json:"text"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	// Legacy field from the two-table era; accepted and ignored.
	FormType string `json:"formType"`
}

// AddComment appends a user comment to a submission's shared stream.
func AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.UserID == "" || req.UserName == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	if role := requesterRole(c, req.UserID); !services.Allow(role, services.CapCommentAdd) {
		respondError(c, http.StatusForbidden, "Not permitted to comment")
		return
	}

	submission, ok := loadSubmission(c, c.Param("id"))
	if !ok {
		return
	}

	comment := models.NewComment(req.UserName, req.UserID, req.Text)
	comments := append(submission.Comments, comment)

	if err := config.DB.Model(&models.Submission{}).Where("id = ?", submission.ID).
		Updates(map[string]interface{}{"comments": comments, "updated_at": time.Now()}).Error; err != nil {
		log.Printf("Error adding comment to %s: %v", submission.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

type deleteCommentRequest struct {
	CommentID string `json:"commentId"`
	UserID    string `json:"userId"`
	FormType  string `json:"formType"`
}

// DeleteComment removes a comment by its stable ID. Only the original
// author may delete their own entry.
func DeleteComment(c *gin.Context) {
	var req deleteCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" || req.UserID == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	submission, ok := loadSubmission(c, c.Param("id"))
	if !ok {
		return
	}

	index := -1
	for i, comment := range submission.Comments {
		if comment.ID == req.CommentID {
			index = i
			break
		}
	}
	if index == -1 {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}

	if submission.Comments[index].AuthorID != req.UserID {
		respondError(c, http.StatusForbidden, "You can only delete your own comments")
		return
	}

	comments := append(models.CommentList{}, submission.Comments[:index]...)
	comments = append(comments, submission.Comments[index+1:]...)

	if err := config.DB.Model(&models.Submission{}).Where("id = ?", submission.ID).
		Updates(map[string]interface{}{"comments": comments, "updated_at": time.Now()}).Error; err != nil {
		log.Printf("Error deleting comment from %s: %v", submission.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
