package handlers

import (
	"net/http"

	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Order("name ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		SKU         string  `json:"sku" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var existing models.Product
	if err := h.DB.Unscoped().Where("sku = ?", req.SKU).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A product with this SKU already exists"})
		return
	}

	product := models.Product{
		ID:          uuid.New(),
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price" binding:"omitempty,gt=0"`
		IsActive    *bool    `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var itemCount int64
	if err := h.DB.Model(&models.SaleItem{}).Where("product_id = ?", product.ID).Count(&itemCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check product usage"})
		return
	}
	if itemCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Product has recorded sales and cannot be deleted. Deactivate it instead"})
		return
	}

	tx := h.DB.Begin()
	if err := tx.Where("product_id = ?", product.ID).Delete(&models.FranchiseProduct{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetFranchiseProducts lists a franchise's allow-list. An empty list
// means the unit sells the full catalog.
func (h *ProductHandler) GetFranchiseProducts(c *gin.Context) {
	franchiseID := c.Param("id")

	var franchise models.Franchise
	if err := h.DB.First(&franchise, "id = ?", franchiseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	var entries []models.FranchiseProduct
	if err := h.DB.Preload("Product").Where("franchise_id = ?", franchise.ID).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch franchise products"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ProductHandler) AddFranchiseProduct(c *gin.Context) {
	franchiseID := c.Param("id")

	var franchise models.Franchise
	if err := h.DB.First(&franchise, "id = ?", franchiseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	if err := h.DB.First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var existing models.FranchiseProduct
	if err := h.DB.Where("franchise_id = ? AND product_id = ?", franchise.ID, productID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Product already assigned to this franchise"})
		return
	}

	entry := models.FranchiseProduct{
		ID:          uuid.New(),
		FranchiseID: franchise.ID,
		ProductID:   productID,
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign product"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *ProductHandler) RemoveFranchiseProduct(c *gin.Context) {
	franchiseID := c.Param("id")
	productID := c.Param("productId")

	var entry models.FranchiseProduct
	if err := h.DB.Where("franchise_id = ? AND product_id = ?", franchiseID, productID).
		First(&entry).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product assignment not found"})
		return
	}

	if err := h.DB.Delete(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove product assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product assignment removed"})
}

// GetAvailableProducts lists the active products the caller's unit may
// sell, honoring the allow-list when one exists.
func (h *ProductHandler) GetAvailableProducts(c *gin.Context) {
	franchiseID, _ := c.Get("franchise_id")

	var count int64
	if err := h.DB.Model(&models.FranchiseProduct{}).Where("franchise_id = ?", franchiseID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	var products []models.Product
	query := h.DB.Where("is_active = ?", true).Order("name ASC")
	if count > 0 {
		query = query.Where("id IN (?)", h.DB.Model(&models.FranchiseProduct{}).
			Select("product_id").Where("franchise_id = ?", franchiseID))
	}

	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
