package handlers

import (
	"log"
	"net/http"

	"franquia-backend/firebase"
	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

func (h *KnowledgeHandler) GetResources(c *gin.Context) {
	query := h.DB.Order("created_at DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var resources []models.KnowledgeBaseResource
	if err := query.Find(&resources).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resources"})
		return
	}

	c.JSON(http.StatusOK, resources)
}

// CreateResource accepts multipart form data with an optional document
// file. A resource without a file is a plain link or note.
func (h *KnowledgeHandler) CreateResource(c *gin.Context) {
	var req struct {
		Title       string `form:"title" binding:"required"`
		Description string `form:"description"`
		Category    string `form:"category"`
		FileURL     string `form:"file_url"`
	}

	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	resource := models.KnowledgeBaseResource{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		FileURL:     req.FileURL,
	}

	fileHeader, err := c.FormFile("file")
	if err == nil {
		if err := utils.ValidateDocumentUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		url, err := h.Storage.UploadResourceFile(file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			log.Printf("Failed to upload resource file: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
			return
		}
		resource.FileURL = url
	}

	if err := h.DB.Create(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resource"})
		return
	}

	c.JSON(http.StatusCreated, resource)
}

func (h *KnowledgeHandler) UpdateResource(c *gin.Context) {
	id := c.Param("id")

	var resource models.KnowledgeBaseResource
	if err := h.DB.First(&resource, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Title != nil {
		resource.Title = *req.Title
	}
	if req.Description != nil {
		resource.Description = *req.Description
	}
	if req.Category != nil {
		resource.Category = *req.Category
	}

	if err := h.DB.Save(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resource"})
		return
	}

	c.JSON(http.StatusOK, resource)
}

func (h *KnowledgeHandler) DeleteResource(c *gin.Context) {
	id := c.Param("id")

	var resource models.KnowledgeBaseResource
	if err := h.DB.First(&resource, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	if err := h.DB.Delete(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resource"})
		return
	}

	if resource.FileURL != "" {
		if err := h.Storage.DeleteFile(resource.FileURL); err != nil {
			log.Printf("Failed to delete resource file %s: %v", resource.FileURL, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted"})
}
