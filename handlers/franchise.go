package handlers

import (
	"net/http"

	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type FranchiseHandler struct {
	DB *gorm.DB
}

// ========== Franchisor (network) endpoints ==========

func (h *FranchiseHandler) GetFranchise(c *gin.Context) {
	id := c.Param("id")

	var franchise models.Franchise
	if err := h.DB.Preload("Owner").Preload("Products").Preload("Products.Product").
		Where("id = ?", id).First(&franchise).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	c.JSON(http.StatusOK, franchise)
}

func (h *FranchiseHandler) CreateFranchise(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		OwnerEmail    string `json:"owner_email" binding:"required,email"`
		OwnerName     string `json:"owner_name"`
		OwnerPassword string `json:"owner_password" binding:"required,min=8"`
		Address       string `json:"address"`
		City          string `json:"city"`
		State         string `json:"state"`
		CNPJ          string `json:"cnpj"`
		Phone         string `json:"phone"`
		Email         string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	tx := h.DB.Begin()

	// Create or reuse the owner user (including soft-deleted users to avoid
	// unique constraint violation)
	var owner models.User
	if err := tx.Unscoped().Where("email = ?", req.OwnerEmail).First(&owner).Error; err != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.OwnerPassword), bcrypt.DefaultCost)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		owner = models.User{
			ID:       uuid.New(),
			Email:    req.OwnerEmail,
			Password: string(hashedPassword),
			Name:     req.OwnerName,
			Role:     models.RoleFranchisee,
			IsActive: true,
		}

		if err := tx.Create(&owner).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create owner user"})
			return
		}
	} else if owner.DeletedAt.Valid {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.OwnerPassword), bcrypt.DefaultCost)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		if err := tx.Unscoped().Model(&owner).Updates(map[string]interface{}{
			"deleted_at": nil,
			"role":       models.RoleFranchisee,
			"name":       req.OwnerName,
			"password":   string(hashedPassword),
			"is_active":  true,
		}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore owner user"})
			return
		}
	}
	// else: existing active user found, reuse as-is

	franchise := models.Franchise{
		Name:     req.Name,
		OwnerID:  owner.ID,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		CNPJ:     req.CNPJ,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}

	if err := tx.Create(&franchise).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create franchise: " + err.Error()})
		return
	}

	// Bind owner to the new unit
	tx.Model(&owner).Update("franchise_id", franchise.ID)

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize franchise creation"})
		return
	}

	utils.SendWelcomeEmail(owner.Email, owner.Name)

	h.DB.Preload("Owner").First(&franchise, franchise.ID)
	c.JSON(http.StatusCreated, franchise)
}

func (h *FranchiseHandler) UpdateFranchise(c *gin.Context) {
	id := c.Param("id")

	var franchise models.Franchise
	if err := h.DB.Where("id = ?", id).First(&franchise).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Address  *string `json:"address"`
		City     *string `json:"city"`
		State    *string `json:"state"`
		CNPJ     *string `json:"cnpj"`
		Phone    *string `json:"phone"`
		Email    *string `json:"email"`
		IsActive *bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		franchise.Name = *req.Name
	}
	if req.Address != nil {
		franchise.Address = *req.Address
	}
	if req.City != nil {
		franchise.City = *req.City
	}
	if req.State != nil {
		franchise.State = *req.State
	}
	if req.CNPJ != nil {
		franchise.CNPJ = *req.CNPJ
	}
	if req.Phone != nil {
		franchise.Phone = *req.Phone
	}
	if req.Email != nil {
		franchise.Email = *req.Email
	}
	if req.IsActive != nil {
		franchise.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&franchise).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update franchise"})
		return
	}

	h.DB.Preload("Owner").First(&franchise, franchise.ID)
	c.JSON(http.StatusOK, franchise)
}

func (h *FranchiseHandler) DeleteFranchise(c *gin.Context) {
	id := c.Param("id")

	var franchise models.Franchise
	if err := h.DB.Where("id = ?", id).First(&franchise).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	// Check for dependencies before deleting
	var leadCount int64
	h.DB.Model(&models.Lead{}).Where("franchise_id = ?", id).Count(&leadCount)

	var saleCount int64
	h.DB.Model(&models.Sale{}).Where("franchise_id = ?", id).Count(&saleCount)

	var userCount int64
	h.DB.Model(&models.User{}).Where("franchise_id = ?", id).Count(&userCount)

	if leadCount > 0 || saleCount > 0 || userCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Cannot delete franchise with existing dependencies. Consider deactivating instead.",
			"lead_count": leadCount,
			"sale_count": saleCount,
			"user_count": userCount,
		})
		return
	}

	if err := h.DB.Delete(&franchise).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete franchise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Franchise deleted successfully"})
}

// ========== Franchisee portal endpoints ==========

func (h *FranchiseHandler) GetMyFranchise(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var franchise models.Franchise
	if err := h.DB.Preload("Owner").Preload("Products").Preload("Products.Product").
		Where("id = ?", franchiseID).First(&franchise).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	c.JSON(http.StatusOK, franchise)
}

func (h *FranchiseHandler) UpdateMyFranchise(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var franchise models.Franchise
	if err := h.DB.Where("id = ?", franchiseID).First(&franchise).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	var req struct {
		Address *string `json:"address"`
		City    *string `json:"city"`
		State   *string `json:"state"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Address != nil {
		franchise.Address = *req.Address
	}
	if req.City != nil {
		franchise.City = *req.City
	}
	if req.State != nil {
		franchise.State = *req.State
	}
	if req.Phone != nil {
		franchise.Phone = *req.Phone
	}
	if req.Email != nil {
		franchise.Email = *req.Email
	}

	if err := h.DB.Save(&franchise).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update franchise"})
		return
	}

	c.JSON(http.StatusOK, franchise)
}
