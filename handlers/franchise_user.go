package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"franquia-backend/config"
	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type FranchiseUserHandler struct {
	DB *gorm.DB
}

func (h *FranchiseUserHandler) GetUsers(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var users []models.User
	if err := h.DB.Where("franchise_id = ?", franchiseID).
		Order("created_at ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// InviteUser creates a staff account for the caller's unit with a
// generated temporary password and emails the credentials.
func (h *FranchiseUserHandler) InviteUser(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	fID := franchiseID.(uuid.UUID)

	var req struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var existing models.User
	if err := h.DB.Unscoped().Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
		return
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate password"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:          uuid.New(),
		Email:       req.Email,
		Password:    string(hashed),
		Name:        req.Name,
		Phone:       req.Phone,
		Role:        models.RoleFranchisee,
		FranchiseID: &fID,
		IsActive:    true,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	var franchise models.Franchise
	h.DB.First(&franchise, "id = ?", fID)

	portalURL := config.GetEnv("FRANCHISE_URL", "http://localhost:3001")
	utils.SendUserInvitationEmail(user.Email, user.Name, franchise.Name, tempPassword, portalURL)

	c.JSON(http.StatusCreated, user)
}

func (h *FranchiseUserHandler) UpdateUser(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var user models.User
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		IsActive *bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *FranchiseUserHandler) RemoveUser(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	userID, _ := c.Get("user_id")
	id := c.Param("id")

	var user models.User
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.ID == userID.(uuid.UUID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot remove your own account"})
		return
	}

	var franchise models.Franchise
	if err := h.DB.First(&franchise, "id = ?", franchiseID).Error; err == nil && franchise.OwnerID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The franchise owner cannot be removed"})
		return
	}

	tx := h.DB.Begin()
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user"})
		return
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed"})
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
