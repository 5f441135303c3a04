package handlers

import (
	"net/http"

	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientHandler struct {
	DB *gorm.DB
}

func (h *ClientHandler) GetClients(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var clients []models.Client
	query := h.DB.Where("franchise_id = ?", franchiseID)

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Order("name").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var client models.Client
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&client).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	fID := franchiseID.(uuid.UUID)

	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Document string `json:"document"`
		Address  string `json:"address"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	client := models.Client{
		ID:          uuid.New(),
		FranchiseID: fID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Document:    req.Document,
		Address:     req.Address,
	}

	if err := h.DB.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var client models.Client
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&client).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		Document *string `json:"document"`
		Address  *string `json:"address"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Document != nil {
		client.Document = *req.Document
	}
	if req.Address != nil {
		client.Address = *req.Address
	}

	if err := h.DB.Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var client models.Client
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&client).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	// A client with activity stays on the books
	var leadCount int64
	h.DB.Model(&models.Lead{}).Where("client_id = ?", id).Count(&leadCount)

	var saleCount int64
	h.DB.Model(&models.Sale{}).Where("client_id = ?", id).Count(&saleCount)

	if leadCount > 0 || saleCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Cannot delete client with existing leads or sales",
			"lead_count": leadCount,
			"sale_count": saleCount,
		})
		return
	}

	if err := h.DB.Delete(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
