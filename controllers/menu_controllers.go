package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAvailableItems -> public menu, available items with their portions
func (mc *MenuController) GetAvailableItems(c *gin.Context) {
	query := mc.DB.Where("is_available = ?", true).
		Preload("Portions", "is_available = ?", true).
		Order("display_order asc")

	if catStr := c.Query("category_id"); catStr != "" {
		catID, err := strconv.Atoi(catStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		query = query.Where("category_id = ?", catID)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available menu items", items)
}

// GetAllItems -> admin list, including unavailable items
func (mc *MenuController) GetAllItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Preload("Portions").
		Order("display_order asc").
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All menu items", items)
}

// GetItemByID
func (mc *MenuController) GetItemByID(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var item models.MenuItem
	if err := mc.DB.Preload("Portions").First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateItem
func (mc *MenuController) CreateItem(c *gin.Context) {
	var body struct {
		Name         string   `json:"name" binding:"required"`
		Description  string   `json:"description"`
		Price        *float64 `json:"price" binding:"required"`
		ImageURL     string   `json:"image_url"`
		CategoryID   *uint    `json:"category_id"`
		IsVegetarian *bool    `json:"is_vegetarian"`
		IsAvailable  *bool    `json:"is_available"`
		DisplayOrder int      `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		Name:         body.Name,
		Description:  body.Description,
		Price:        *body.Price,
		ImageURL:     body.ImageURL,
		CategoryID:   body.CategoryID,
		IsVegetarian: true,
		IsAvailable:  true,
		DisplayOrder: body.DisplayOrder,
	}
	if body.IsVegetarian != nil {
		item.IsVegetarian = *body.IsVegetarian
	}
	if body.IsAvailable != nil {
		item.IsAvailable = *body.IsAvailable
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateItem
func (mc *MenuController) UpdateItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name         *string  `json:"name"`
		Description  *string  `json:"description"`
		Price        *float64 `json:"price"`
		ImageURL     *string  `json:"image_url"`
		CategoryID   *uint    `json:"category_id"`
		IsVegetarian *bool    `json:"is_vegetarian"`
		IsAvailable  *bool    `json:"is_available"`
		DisplayOrder *int     `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Description != nil {
		item.Description = *body.Description
	}
	if body.Price != nil {
		item.Price = *body.Price
	}
	if body.ImageURL != nil {
		item.ImageURL = *body.ImageURL
	}
	if body.CategoryID != nil {
		item.CategoryID = body.CategoryID
	}
	if body.IsVegetarian != nil {
		item.IsVegetarian = *body.IsVegetarian
	}
	if body.IsAvailable != nil {
		item.IsAvailable = *body.IsAvailable
	}
	if body.DisplayOrder != nil {
		item.DisplayOrder = *body.DisplayOrder
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteItem
func (mc *MenuController) DeleteItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	if err := mc.DB.Delete(&models.MenuItem{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_item_id": id})
}
