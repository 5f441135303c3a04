package handlers

import (
	"net/http"

	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsortiumHandler struct {
	DB *gorm.DB
}

func (h *ConsortiumHandler) GetConsortiums(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var consortiums []models.Consortium
	if err := h.DB.Preload("Client").Where("franchise_id = ?", franchiseID).
		Order("created_at DESC").Find(&consortiums).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consortiums"})
		return
	}

	c.JSON(http.StatusOK, consortiums)
}

func (h *ConsortiumHandler) CreateConsortium(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	fID := franchiseID.(uuid.UUID)

	var req struct {
		ClientID      string     `json:"client_id" binding:"required"`
		Value         float64    `json:"value" binding:"required,gt=0"`
		SalespersonID *uuid.UUID `json:"salesperson_id"`
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

	consortium := models.Consortium{
		ID:            uuid.New(),
		FranchiseID:   fID,
		ClientID:      clientID,
		Value:         req.Value,
		SalespersonID: req.SalespersonID,
		Status:        "active",
	}

	if err := h.DB.Create(&consortium).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create consortium"})
		return
	}

	c.JSON(http.StatusCreated, consortium)
}

func (h *ConsortiumHandler) UpdateConsortium(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var consortium models.Consortium
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&consortium).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consortium not found"})
		return
	}

	var req struct {
		Value         *float64   `json:"value"`
		SalespersonID *uuid.UUID `json:"salesperson_id"`
		Status        *string    `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Value != nil {
		consortium.Value = *req.Value
	}
	if req.SalespersonID != nil {
		consortium.SalespersonID = req.SalespersonID
	}
	if req.Status != nil {
		consortium.Status = *req.Status
	}

	if err := h.DB.Save(&consortium).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update consortium"})
		return
	}

	c.JSON(http.StatusOK, consortium)
}

func (h *ConsortiumHandler) DeleteConsortium(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var consortium models.Consortium
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&consortium).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consortium not found"})
		return
	}

	if err := h.DB.Delete(&consortium).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete consortium"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consortium deleted"})
}
