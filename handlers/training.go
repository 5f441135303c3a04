package handlers

import (
	"net/http"

	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainingHandler struct {
	DB *gorm.DB
}

// GetCourses lists training courses. Franchisees only see published
// ones.
func (h *TrainingHandler) GetCourses(c *gin.Context) {
	role, _ := c.Get("user_role")

	query := h.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("created_at DESC")
	if role != models.RoleFranchisor {
		query = query.Where("is_published = ?", true)
	}

	var courses []models.TrainingCourse
	if err := query.Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *TrainingHandler) GetCourse(c *gin.Context) {
	role, _ := c.Get("user_role")
	id := c.Param("id")

	query := h.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
	if role != models.RoleFranchisor {
		query = query.Where("is_published = ?", true)
	}

	var course models.TrainingCourse
	if err := query.First(&course, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *TrainingHandler) CreateCourse(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	course := models.TrainingCourse{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *TrainingHandler) UpdateCourse(c *gin.Context) {
	id := c.Param("id")

	var course models.TrainingCourse
	if err := h.DB.First(&course, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		IsPublished *bool   `json:"is_published"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := h.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *TrainingHandler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")

	var course models.TrainingCourse
	if err := h.DB.First(&course, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	tx := h.DB.Begin()
	if err := tx.Where("course_id = ?", course.ID).Delete(&models.TrainingModule{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course modules"})
		return
	}
	if err := tx.Delete(&course).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

func (h *TrainingHandler) AddModule(c *gin.Context) {
	courseID := c.Param("id")

	var course models.TrainingCourse
	if err := h.DB.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	var req struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content"`
		VideoURL string `json:"video_url"`
		Position *int   `json:"position"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		var count int64
		h.DB.Model(&models.TrainingModule{}).Where("course_id = ?", course.ID).Count(&count)
		position = int(count)
	}

	module := models.TrainingModule{
		ID:       uuid.New(),
		CourseID: course.ID,
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Position: position,
	}

	if err := h.DB.Create(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create module"})
		return
	}

	c.JSON(http.StatusCreated, module)
}

func (h *TrainingHandler) UpdateModule(c *gin.Context) {
	courseID := c.Param("id")
	moduleID := c.Param("moduleId")

	var module models.TrainingModule
	if err := h.DB.Where("id = ? AND course_id = ?", moduleID, courseID).First(&module).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		VideoURL *string `json:"video_url"`
		Position *int    `json:"position"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Title != nil {
		module.Title = *req.Title
	}
	if req.Content != nil {
		module.Content = *req.Content
	}
	if req.VideoURL != nil {
		module.VideoURL = *req.VideoURL
	}
	if req.Position != nil {
		module.Position = *req.Position
	}

	if err := h.DB.Save(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update module"})
		return
	}

	c.JSON(http.StatusOK, module)
}

func (h *TrainingHandler) DeleteModule(c *gin.Context) {
	courseID := c.Param("id")
	moduleID := c.Param("moduleId")

	var module models.TrainingModule
	if err := h.DB.Where("id = ? AND course_id = ?", moduleID, courseID).First(&module).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	if err := h.DB.Delete(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete module"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Module deleted"})
}
