package handlers

import (
	"net/http"
	"time"

	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditHandler struct {
	DB *gorm.DB
}

// GetNetworkAudits lists audits across all units, optionally filtered
// by franchise.
func (h *AuditHandler) GetNetworkAudits(c *gin.Context) {
	query := h.DB.Order("date DESC")
	if fID := c.Query("franchise_id"); fID != "" {
		parsed, err := uuid.Parse(fID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid franchise ID"})
			return
		}
		query = query.Where("franchise_id = ?", parsed)
	}

	var audits []models.Audit
	if err := query.Find(&audits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audits"})
		return
	}

	c.JSON(http.StatusOK, audits)
}

func (h *AuditHandler) CreateAudit(c *gin.Context) {
	userID, _ := c.Get("user_id")

	// Score is a pointer so a legitimate score of 0 survives the
	// required check.
	var req struct {
		FranchiseID string     `json:"franchise_id" binding:"required"`
		Score       *int       `json:"score" binding:"required,min=0,max=100"`
		Notes       string     `json:"notes"`
		Date        *time.Time `json:"date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	franchiseID, err := uuid.Parse(req.FranchiseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid franchise ID"})
		return
	}

	var franchise models.Franchise
	if err := h.DB.First(&franchise, "id = ?", franchiseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	audit := models.Audit{
		ID:          uuid.New(),
		FranchiseID: franchiseID,
		AuditorID:   userID.(uuid.UUID),
		Score:       *req.Score,
		Notes:       req.Notes,
		Date:        date,
	}

	if err := h.DB.Create(&audit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create audit"})
		return
	}

	c.JSON(http.StatusCreated, audit)
}

func (h *AuditHandler) UpdateAudit(c *gin.Context) {
	id := c.Param("id")

	var audit models.Audit
	if err := h.DB.First(&audit, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
		return
	}

	var req struct {
		Score *int    `json:"score" binding:"omitempty,min=0,max=100"`
		Notes *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Score != nil {
		audit.Score = *req.Score
	}
	if req.Notes != nil {
		audit.Notes = *req.Notes
	}

	if err := h.DB.Save(&audit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update audit"})
		return
	}

	c.JSON(http.StatusOK, audit)
}

func (h *AuditHandler) DeleteAudit(c *gin.Context) {
	id := c.Param("id")

	var audit models.Audit
	if err := h.DB.First(&audit, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
		return
	}

	if err := h.DB.Delete(&audit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete audit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Audit deleted"})
}

// GetMyAudits lists the audits conducted on the caller's own unit.
func (h *AuditHandler) GetMyAudits(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var audits []models.Audit
	if err := h.DB.Where("franchise_id = ?", franchiseID).
		Order("date DESC").Find(&audits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audits"})
		return
	}

	c.JSON(http.StatusOK, audits)
}
