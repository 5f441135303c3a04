package handlers

import (
	"net/http"

	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementHandler struct {
	DB *gorm.DB
}

// GetAnnouncements lists active announcements. Franchisors see inactive
// ones too when ?all=true.
func (h *AnnouncementHandler) GetAnnouncements(c *gin.Context) {
	role, _ := c.Get("user_role")

	query := h.DB.Order("created_at DESC")
	if !(role == models.RoleFranchisor && c.Query("all") == "true") {
		query = query.Where("is_active = ?", true)
	}

	var announcements []models.Announcement
	if err := query.Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	c.JSON(http.StatusOK, announcements)
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	announcement := models.Announcement{
		ID:       uuid.New(),
		Title:    req.Title,
		Body:     req.Body,
		IsActive: true,
	}

	if err := h.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id := c.Param("id")

	var announcement models.Announcement
	if err := h.DB.First(&announcement, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var req struct {
		Title    *string `json:"title"`
		Body     *string `json:"body"`
		IsActive *bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Body != nil {
		announcement.Body = *req.Body
	}
	if req.IsActive != nil {
		announcement.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update announcement"})
		return
	}

	c.JSON(http.StatusOK, announcement)
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id := c.Param("id")

	var announcement models.Announcement
	if err := h.DB.First(&announcement, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	if err := h.DB.Delete(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
