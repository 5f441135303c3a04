package handlers

import (
	"net/http"

	"franquia-backend/models"
	"franquia-backend/store"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadHandler struct {
	DB     *gorm.DB
	Writer *store.FallbackWriter
}

// setDurabilityHeader marks the response when a mutation only reached the
// process-local fallback, so clients can warn about degraded durability.
func setDurabilityHeader(c *gin.Context, res store.WriteResult) {
	if !res.Durable() {
		c.Header("X-Write-Durability", string(res.Outcome))
	}
}

func (h *LeadHandler) GetLeads(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var leads []models.Lead
	query := h.DB.Preload("Client").Preload("Notes").Where("franchise_id = ?", franchiseID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}

	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) GetLead(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var lead models.Lead
	if err := h.DB.Preload("Client").Preload("Notes").
		Where("id = ? AND franchise_id = ?", id, franchiseID).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) CreateLead(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	fID := franchiseID.(uuid.UUID)

	var req struct {
		ClientID        string   `json:"client_id" binding:"required"`
		Status          string   `json:"status"`
		NegotiatedValue *float64 `json:"negotiated_value"`
		Source          string   `json:"source"`
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

	// The client must belong to the caller's unit
	var client models.Client
	if err := h.DB.Where("id = ? AND franchise_id = ?", clientID, fID).First(&client).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client not found in this franchise"})
		return
	}

	status := models.LeadStatus(req.Status)
	if req.Status == "" {
		status = models.LeadStatusNew
	}
	if !models.IsValidLeadStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead status"})
		return
	}

	lead := models.Lead{
		ID:              uuid.New(),
		FranchiseID:     fID,
		ClientID:        clientID,
		Status:          status,
		NegotiatedValue: req.NegotiatedValue,
		Source:          req.Source,
	}

	res := h.Writer.Create(&lead)
	setDurabilityHeader(c, res)

	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) UpdateLead(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var lead models.Lead
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	var req struct {
		NegotiatedValue *float64 `json:"negotiated_value"`
		Source          *string  `json:"source"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.NegotiatedValue != nil {
		lead.NegotiatedValue = req.NegotiatedValue
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}

	res := h.Writer.Save(&lead)
	setDurabilityHeader(c, res)

	c.JSON(http.StatusOK, lead)
}

// UpdateLeadStatus moves a lead to any pipeline status; transitions are
// unconstrained.
func (h *LeadHandler) UpdateLeadStatus(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var lead models.Lead
	if err := h.DB.Preload("Client").Where("id = ? AND franchise_id = ?", id, franchiseID).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	var req struct {
		Status models.LeadStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !models.IsValidLeadStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead status"})
		return
	}

	lead.Status = req.Status
	res := h.Writer.Save(&lead)
	setDurabilityHeader(c, res)

	// Congratulate the owner when a negotiation closes (non-blocking)
	if req.Status == models.LeadStatusWon {
		var franchise models.Franchise
		if err := h.DB.Preload("Owner").Where("id = ?", franchiseID).First(&franchise).Error; err == nil {
			value := 0.0
			if lead.NegotiatedValue != nil {
				value = *lead.NegotiatedValue
			}
			utils.SendLeadWonEmail(franchise.Owner.Email, franchise.Owner.Name, lead.Client.Name, value)
		}
	}

	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) DeleteLead(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var lead models.Lead
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	res := h.Writer.Delete(&lead)
	setDurabilityHeader(c, res)

	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted"})
}

func (h *LeadHandler) AddLeadNote(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	userID, _ := c.Get("user_id")
	id := c.Param("id")

	var lead models.Lead
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	note := models.LeadNote{
		ID:       uuid.New(),
		LeadID:   lead.ID,
		AuthorID: userID.(uuid.UUID),
		Body:     req.Body,
	}

	res := h.Writer.Create(&note)
	setDurabilityHeader(c, res)

	c.JSON(http.StatusCreated, note)
}
