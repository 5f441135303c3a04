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

type SaleHandler struct {
	DB *gorm.DB
}

func (h *SaleHandler) GetSales(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var sales []models.Sale
	if err := h.DB.Preload("Client").Preload("Items").Preload("Items.Product").
		Where("franchise_id = ?", franchiseID).
		Order("created_at DESC").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var sale models.Sale
	if err := h.DB.Preload("Client").Preload("Items").Preload("Items.Product").
		Where("id = ? AND franchise_id = ?", id, franchiseID).First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// CreateSale records a sale and its line items in one transaction. Unit
// prices come from the catalog, never from the request body. If the
// franchise has an allow-list, every product must be on it.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	fID := franchiseID.(uuid.UUID)

	var req struct {
		ClientID string `json:"client_id" binding:"required"`
		Items    []struct {
			ProductID string `json:"product_id" binding:"required"`
			Quantity  int    `json:"quantity" binding:"required,gt=0"`
		} `json:"items" binding:"required,min=1,dive"`
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

	var allowListCount int64
	if err := h.DB.Model(&models.FranchiseProduct{}).Where("franchise_id = ?", fID).Count(&allowListCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check product catalog"})
		return
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	sale := models.Sale{
		ID:          uuid.New(),
		FranchiseID: fID,
		ClientID:    clientID,
	}

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		return
	}

	total := 0.0
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := tx.Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found or inactive"})
			return
		}

		if allowListCount > 0 {
			var allowed int64
			if err := tx.Model(&models.FranchiseProduct{}).
				Where("franchise_id = ? AND product_id = ?", fID, productID).
				Count(&allowed).Error; err != nil || allowed == 0 {
				tx.Rollback()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product not available for this franchise"})
				return
			}
		}

		saleItem := models.SaleItem{
			ID:        uuid.New(),
			SaleID:    sale.ID,
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		}

		if err := tx.Create(&saleItem).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale item"})
			return
		}

		total += product.Price * float64(item.Quantity)
	}

	sale.Total = total
	if err := tx.Model(&sale).Update("total", total).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sale total"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete sale"})
		return
	}

	h.DB.Preload("Items").Preload("Items.Product").First(&sale, "id = ?", sale.ID)
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) DeleteSale(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	id := c.Param("id")

	var sale models.Sale
	if err := h.DB.Where("id = ? AND franchise_id = ?", id, franchiseID).First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	tx := h.DB.Begin()
	if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale items"})
		return
	}
	if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.Contract{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale contract"})
		return
	}
	if err := tx.Delete(&sale).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
}

func (h *SaleHandler) GetContract(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	saleID := c.Param("id")

	var sale models.Sale
	if err := h.DB.Where("id = ? AND franchise_id = ?", saleID, franchiseID).First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	var contract models.Contract
	if err := h.DB.Where("sale_id = ?", sale.ID).First(&contract).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *SaleHandler) CreateContract(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	saleID := c.Param("id")

	var sale models.Sale
	if err := h.DB.Where("id = ? AND franchise_id = ?", saleID, franchiseID).First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	var existing models.Contract
	if err := h.DB.Where("sale_id = ?", sale.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Sale already has a contract"})
		return
	}

	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	contract := models.Contract{
		ID:     uuid.New(),
		SaleID: sale.ID,
		Title:  req.Title,
		Body:   req.Body,
	}

	if err := h.DB.Create(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contract"})
		return
	}

	c.JSON(http.StatusCreated, contract)
}

func (h *SaleHandler) SignContract(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")
	saleID := c.Param("id")

	var sale models.Sale
	if err := h.DB.Where("id = ? AND franchise_id = ?", saleID, franchiseID).First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	var contract models.Contract
	if err := h.DB.Where("sale_id = ?", sale.ID).First(&contract).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	if contract.SignedAt != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Contract already signed"})
		return
	}

	now := time.Now()
	contract.SignedAt = &now
	if err := h.DB.Save(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign contract"})
		return
	}

	c.JSON(http.StatusOK, contract)
}
