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

type affiliateRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Status           string   `json:"status"`
	MemberCount      int      `json:"memberCount"`
	AdvisorID        string   `json:"advisorId"`
	CommitteeMembers []string `json:"committeeMembers"`
	RequestedBy      string   `json:"requestedBy"`
}

// GetAffiliates lists all affiliates.
func GetAffiliates(c *gin.Context) {
	var affiliates []models.Affiliate
	if err := config.DB.Order("name ASC").Find(&affiliates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, affiliates)
}

// GetAffiliate returns one affiliate by ID.
func GetAffiliate(c *gin.Context) {
	var affiliate models.Affiliate
	if err := config.DB.Where("id = ?", c.Param("id")).First(&affiliate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Affiliate not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	c.JSON(http.StatusOK, affiliate)
}

// CreateAffiliate registers a new affiliate.
func CreateAffiliate(c *gin.Context) {
	var req affiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.AdvisorID == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !models.ValidCategory(req.Category) {
		respondError(c, http.StatusBadRequest, "Invalid category")
		return
	}
	if !models.ValidAffiliateStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	if role := requesterRole(c, req.RequestedBy); !services.Allow(role, services.CapAffiliatesManage) {
		respondError(c, http.StatusForbidden, "Not permitted to manage affiliates")
		return
	}

	affiliate := models.Affiliate{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Status:           req.Status,
		MemberCount:      req.MemberCount,
		AdvisorID:        req.AdvisorID,
		CommitteeMembers: models.StringList(req.CommitteeMembers),
	}

	if err := config.DB.Create(&affiliate).Error; err != nil {
		log.Printf("Error creating affiliate %s: %v", req.Name, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, affiliate)
}

// UpdateAffiliate modifies an affiliate.
func UpdateAffiliate(c *gin.Context) {
	var req affiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if role := requesterRole(c, req.RequestedBy); !services.Allow(role, services.CapAffiliatesManage) {
		respondError(c, http.StatusForbidden, "Not permitted to manage affiliates")
		return
	}

	var affiliate models.Affiliate
	if err := config.DB.Where("id = ?", c.Param("id")).First(&affiliate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Affiliate not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		if !models.ValidCategory(req.Category) {
			respondError(c, http.StatusBadRequest, "Invalid category")
			return
		}
		updates["category"] = req.Category
	}
	if req.Status != "" {
		if !models.ValidAffiliateStatus(req.Status) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		updates["status"] = req.Status
	}
	if req.MemberCount > 0 {
		updates["member_count"] = req.MemberCount
	}
	if req.AdvisorID != "" {
		updates["advisor_id"] = req.AdvisorID
	}
	if req.CommitteeMembers != nil {
		updates["committee_members"] = models.StringList(req.CommitteeMembers)
	}

	if err := config.DB.Model(&models.Affiliate{}).Where("id = ?", affiliate.ID).Updates(updates).Error; err != nil {
		log.Printf("Error updating affiliate %s: %v", affiliate.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var updated models.Affiliate
	if err := config.DB.Where("id = ?", affiliate.ID).First(&updated).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAffiliate removes an affiliate. Submissions that reference it are
// deliberately left untouched; there is no cascading consistency.
func DeleteAffiliate(c *gin.Context) {
	var affiliate models.Affiliate
	if err := config.DB.Where("id = ?", c.Param("id")).First(&affiliate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Affiliate not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if err := config.DB.Delete(&affiliate).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Affiliate deleted successfully"})
}
