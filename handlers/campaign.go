package handlers

import (
	"log"
	"net/http"
	"time"

	"franquia-backend/firebase"
	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

// GetCampaigns lists marketing campaigns. Franchisees only see active
// ones.
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	role, _ := c.Get("user_role")

	query := h.DB.Order("created_at DESC")
	if role != models.RoleFranchisor {
		query = query.Where("is_active = ?", true)
	}

	var campaigns []models.MarketingCampaign
	if err := query.Find(&campaigns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaigns"})
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// CreateCampaign accepts multipart form data with an optional image.
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req struct {
		Title       string     `form:"title" binding:"required"`
		Description string     `form:"description"`
		StartDate   *time.Time `form:"start_date" time_format:"2006-01-02"`
		EndDate     *time.Time `form:"end_date" time_format:"2006-01-02"`
	}

	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	campaign := models.MarketingCampaign{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    true,
	}

	fileHeader, err := c.FormFile("image")
	if err == nil {
		if err := utils.ValidateImageUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		url, err := h.Storage.UploadCampaignImage(file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			log.Printf("Failed to upload campaign image: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		campaign.ImageURL = url
	}

	if err := h.DB.Create(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign"})
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	id := c.Param("id")

	var campaign models.MarketingCampaign
	if err := h.DB.First(&campaign, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		IsActive    *bool      `json:"is_active"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Title != nil {
		campaign.Title = *req.Title
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.IsActive != nil {
		campaign.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		campaign.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		campaign.EndDate = req.EndDate
	}

	if err := h.DB.Save(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign"})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaignImage replaces the campaign image. The old object is
// removed best-effort.
func (h *CampaignHandler) UpdateCampaignImage(c *gin.Context) {
	id := c.Param("id")

	var campaign models.MarketingCampaign
	if err := h.DB.First(&campaign, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	if err := utils.ValidateImageUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadCampaignImage(file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("Failed to upload campaign image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	oldURL := campaign.ImageURL
	campaign.ImageURL = url
	if err := h.DB.Save(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign"})
		return
	}

	if oldURL != "" {
		if err := h.Storage.DeleteFile(oldURL); err != nil {
			log.Printf("Failed to delete old campaign image %s: %v", oldURL, err)
		}
	}

	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	id := c.Param("id")

	var campaign models.MarketingCampaign
	if err := h.DB.First(&campaign, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	if err := h.DB.Delete(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete campaign"})
		return
	}

	if campaign.ImageURL != "" {
		if err := h.Storage.DeleteFile(campaign.ImageURL); err != nil {
			log.Printf("Failed to delete campaign image %s: %v", campaign.ImageURL, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}
