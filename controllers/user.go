package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"activity-portal-api/config"
	"activity-portal-api/models"
	"activity-portal-api/services"
	"activity-portal-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type userRequest struct {
	ID          string   `json:"id"`
	NewID       string   `json:"newId"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Affiliates  []string `json:"affiliates"`
	Permissions []string `json:"permissions"`
	// Identity of the administrator performing the change.
	RequestedBy string `json:"requestedBy"`
}

// GetUsers lists all accounts.
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one account by ID.
func GetUser(c *gin.Context) {
	var user models.User
	if err := config.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser registers a new account.
func CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID == "" || req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		respondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !utils.ValidateEmail(req.Email) {
		respondError(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		respondError(c, http.StatusBadRequest, msg)
		return
	}
	if !models.ValidRole(req.Role) {
		respondError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	if role := requesterRole(c, req.RequestedBy); !services.Allow(role, services.CapUsersManage) {
		respondError(c, http.StatusForbidden, "Not permitted to manage users")
		return
	}

	var existing models.User
	if err := config.DB.Where("id = ? OR email = ?", req.ID, req.Email).First(&existing).Error; err == nil {
		respondError(c, http.StatusBadRequest, "User with this ID or email already exists")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		ID:          req.ID,
		Name:        req.Name,
		Email:       req.Email,
		Password:    hash,
		Role:        req.Role,
		Affiliates:  models.StringList(req.Affiliates),
		Permissions: models.StringList(req.Permissions),
	}

	if err := config.DB.Create(&user).Error; err != nil {
		log.Printf("Error creating user %s: %v", req.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser modifies an account. The student ID is a mutable business
// key: supplying newId renames the account.
func UpdateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if role := requesterRole(c, req.RequestedBy); !services.Allow(role, services.CapUsersManage) {
		respondError(c, http.StatusForbidden, "Not permitted to manage users")
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		if !utils.ValidateEmail(req.Email) {
			respondError(c, http.StatusBadRequest, "Invalid email address")
			return
		}
		updates["email"] = req.Email
	}
	if req.Role != "" {
		if !models.ValidRole(req.Role) {
			respondError(c, http.StatusBadRequest, "Invalid role")
			return
		}
		updates["role"] = req.Role
	}
	if req.Affiliates != nil {
		updates["affiliates"] = models.StringList(req.Affiliates)
	}
	if req.Permissions != nil {
		updates["permissions"] = models.StringList(req.Permissions)
	}
	if req.Password != "" {
		if ok, msg := utils.ValidatePassword(req.Password); !ok {
			respondError(c, http.StatusBadRequest, msg)
			return
		}
		hash, err := HashPassword(req.Password)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		updates["password"] = hash
	}
	if req.NewID != "" && req.NewID != user.ID {
		updates["id"] = req.NewID
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		log.Printf("Error updating user %s: %v", user.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	finalID := user.ID
	if req.NewID != "" {
		finalID = req.NewID
	}
	var updated models.User
	if err := config.DB.Where("id = ?", finalID).First(&updated).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteUser removes an account. Submissions referencing the user are
// left untouched.
func DeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
		} else {
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
