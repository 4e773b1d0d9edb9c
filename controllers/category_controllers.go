package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetActiveCategories -> public menu view, active only
func (cc *CategoryController) GetActiveCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Where("is_active = ?", true).
		Order("display_order asc").
		Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active categories", categories)
}

// GetAllCategories -> admin list, including disabled
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Order("display_order asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

// CreateCategory
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		Name         string `json:"name" binding:"required"`
		Description  string `json:"description"`
		IsActive     *bool  `json:"is_active"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.Category{
		Name:         body.Name,
		Description:  body.Description,
		IsActive:     true,
		DisplayOrder: body.DisplayOrder,
	}
	if body.IsActive != nil {
		category.IsActive = *body.IsActive
	}

	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	idStr := c.Param("cat_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		IsActive     *bool   `json:"is_active"`
		DisplayOrder *int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		category.Name = *body.Name
	}
	if body.Description != nil {
		category.Description = *body.Description
	}
	if body.IsActive != nil {
		category.IsActive = *body.IsActive
	}
	if body.DisplayOrder != nil {
		category.DisplayOrder = *body.DisplayOrder
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory removes the row only. Menu items keep their category
// reference; there is no cascade in either direction.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	idStr := c.Param("cat_id")
	id, _ := strconv.Atoi(idStr)

	if err := cc.DB.Delete(&models.Category{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}
