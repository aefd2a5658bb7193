package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"activity-portal-api/config"
	"activity-portal-api/models"
	"activity-portal-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createSubmissionRequest struct {
	AffiliateID  string   `json:"affiliateId"`
	ActivityName string   `json:"activityName"`
	Date         string   `json:"date"`
	Description  string   `json:"description"`
	Files        []string `json:"files"`
	SubmittedBy  string   `json:"submittedBy"`
	// Accepted and ignored: the server owns the initial status.
	Status string `json:"status"`
}

// CreateSubmission handles POST /api/submission/sap and /asf. The form
// type comes from the route, the initial status is always forced to
// Pending Validation.
func CreateSubmission(formType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSubmissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.AffiliateID == "" || req.ActivityName == "" || req.Date == "" || req.SubmittedBy == "" {
			respondError(c, http.StatusBadRequest, "Missing required fields")
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid date")
			return
		}

		if role := requesterRole(c, req.SubmittedBy); !services.Allow(role, services.CapSubmissionCreate) {
			respondError(c, http.StatusForbidden, "Not permitted to create submissions")
			return
		}

		status, err := services.Transition("", services.ActionCreate, "")
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		documents := models.StringList{}
		if req.Files != nil {
			documents = models.StringList(req.Files)
		}

		submission := models.Submission{
			FormType:               formType,
			AffiliateID:            req.AffiliateID,
			ActivityName:           req.ActivityName,
			Date:                   date,
			Description:            req.Description,
			Status:                 status,
			SubmittedBy:            req.SubmittedBy,
			Documents:              documents,
			Comments:               models.CommentList{},
			FinanceReviewStatus:    models.ReviewPending,
			FinanceComments:        models.CommentList{},
			ActivitiesReviewStatus: models.ReviewPending,
			ActivitiesComments:     models.CommentList{},
		}

		if err := config.DB.Create(&submission).Error; err != nil {
			log.Printf("Error creating %s submission: %v", formType, err)
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		services.RecordStatusChange(nil, req.SubmittedBy, "create", &submission, "", status)

		c.JSON(http.StatusCreated, submission)
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// GetSubmissions lists every submission for the INTIMA dashboard, newest
// first, with affiliate names resolved.
func GetSubmissions(c *gin.Context) {
	var submissions []models.Submission
	if err := config.DB.Find(&submissions).Error; err != nil {
		log.Printf("Error fetching submissions: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	attachAffiliateNames(submissions)
	sortSubmissionsNewestFirst(submissions)

	c.JSON(http.StatusOK, submissions)
}

// GetUserSubmissions lists submissions belonging to the user's affiliates.
func GetUserSubmissions(c *gin.Context) {
	userID := c.Param("userId")

	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if len(user.Affiliates) == 0 {
		c.JSON(http.StatusOK, []models.Submission{})
		return
	}

	var submissions []models.Submission
	if err := config.DB.Where("affiliate_id IN ?", []string(user.Affiliates)).Find(&submissions).Error; err != nil {
		log.Printf("Error fetching submissions for user %s: %v", userID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	attachAffiliateNames(submissions)
	sortSubmissionsNewestFirst(submissions)

	c.JSON(http.StatusOK, submissions)
}

// GetSubmission returns a single submission by ID.
func GetSubmission(c *gin.Context) {
	submission, ok := loadSubmission(c, c.Param("id"))
	if !ok {
		return
	}

	list := []models.Submission{*submission}
	attachAffiliateNames(list)

	c.JSON(http.StatusOK, list[0])
}

// GetUserAffiliates returns the affiliates a user belongs to.
func GetUserAffiliates(c *gin.Context) {
	userID := c.Param("userId")

	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if len(user.Affiliates) == 0 {
		c.JSON(http.StatusOK, []models.Affiliate{})
		return
	}

	var affiliates []models.Affiliate
	if err := config.DB.Where("id IN ?", []string(user.Affiliates)).Find(&affiliates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, affiliates)
}
