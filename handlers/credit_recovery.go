package handlers

import (
	"net/http"

	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditRecoveryHandler struct {
	DB *gorm.DB
}

var validRecoveryStatuses = map[string]bool{
	"open":        true,
	"negotiated":  true,
	"recovered":   true,
	"written_off": true,
}

func (h *CreditRecoveryHandler) GetCases(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	query := h.DB.Preload("Client").Where("franchise_id = ?", franchiseID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var cases []models.CreditRecoveryCase
	if err := query.Order("created_at DESC").Find(&cases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recovery cases"})
		return
	}

	c.JSON(http.StatusOK, cases)
}

func (h *CreditRecoveryHandler) CreateCase(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	fID := franchiseID.(uuid.UUID)

	var req struct {
		ClientID   string  `json:"client_id" binding:"required"`
		DebtAmount float64 `json:"debt_amount" binding:"required,gt=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}

	var client models.Client
	if err := h.DB.Where("id = ? AND franchise_id = ?", clientID, fID).First(&client).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client not found in this franchise"})
		return
	}

	rc := models.CreditRecoveryCase{
		ID:          uuid.New(),
		FranchiseID: fID,
		ClientID:    clientID,
		DebtAmount:  req.DebtAmount,
		Status:      "open",
	}

	if err := h.DB.Create(&rc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recovery case"})
		return
	}

	c.JSON(http.StatusCreated, rc)
}

func (h *CreditRecoveryHandler) UpdateCaseStatus(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var rc models.CreditRecoveryCase
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&rc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recovery case not found"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !validRecoveryStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be open, negotiated, recovered, or written_off"})
		return
	}

	rc.Status = req.Status
	if err := h.DB.Save(&rc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recovery case"})
		return
	}

	c.JSON(http.StatusOK, rc)
}

func (h *CreditRecoveryHandler) DeleteCase(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var rc models.CreditRecoveryCase
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&rc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recovery case not found"})
		return
	}

	if err := h.DB.Delete(&rc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recovery case"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recovery case deleted"})
}
