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

type TransactionHandler struct {
	DB *gorm.DB
}

func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var transactions []models.Transaction
	query := h.DB.Where("franchise_id = ?", franchiseID)

	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}

	if err := query.Order("date DESC").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetNetworkTransactions lists franchisor-level transactions, the rows
// recorded against no specific unit.
func (h *TransactionHandler) GetNetworkTransactions(c *gin.Context) {
	var transactions []models.Transaction
	if err := h.DB.Where("franchise_id = ?", models.NetworkFranchiseID).
		Order("date DESC").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	fID := franchiseID.(uuid.UUID)

	var req struct {
		Amount      float64    `json:"amount" binding:"required,gt=0"`
		Type        string     `json:"type" binding:"required"`
		Date        *time.Time `json:"date"`
		Description string     `json:"description"`
		Category    string     `json:"category"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	txType := models.TransactionType(req.Type)
	if txType != models.TransactionIncome && txType != models.TransactionExpense {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be 'income' or 'expense'"})
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	transaction := models.Transaction{
		ID:          uuid.New(),
		FranchiseID: fID,
		Amount:      req.Amount,
		Type:        txType,
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
	}

	if err := h.DB.Create(&transaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var transaction models.Transaction
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&transaction).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	if err := h.DB.Delete(&transaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
