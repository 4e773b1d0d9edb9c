package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

type PortionController struct {
	DB *gorm.DB
}

func NewPortionController(db *gorm.DB) *PortionController {
	return &PortionController{DB: db}
}

// GetAllPortions -> admin list, joined with the parent item name for display
func (pc *PortionController) GetAllPortions(c *gin.Context) {
	type portionRow struct {
		models.Portion
		ItemName string `json:"item_name"`
	}

	var rows []portionRow
	if err := pc.DB.Model(&models.Portion{}).
		Select("portions.*, menu_items.name as item_name").
		Joins("JOIN menu_items ON menu_items.id = portions.menu_item_id").
		Order("portions.menu_item_id asc, portions.display_order asc").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All portions", rows)
}

// CreatePortion
func (pc *PortionController) CreatePortion(c *gin.Context) {
	var body struct {
		MenuItemID   uint     `json:"menu_item_id" binding:"required"`
		Name         string   `json:"name" binding:"required"`
		Price        *float64 `json:"price" binding:"required"`
		IsAvailable  *bool    `json:"is_available"`
		DisplayOrder int      `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Parent must exist; portions of a missing item would never display.
	var item models.MenuItem
	if err := pc.DB.First(&item, body.MenuItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	portion := models.Portion{
		MenuItemID:   body.MenuItemID,
		Name:         body.Name,
		Price:        *body.Price,
		IsAvailable:  true,
		DisplayOrder: body.DisplayOrder,
	}
	if body.IsAvailable != nil {
		portion.IsAvailable = *body.IsAvailable
	}

	if err := pc.DB.Create(&portion).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Portion created", portion)
}

// UpdatePortion
func (pc *PortionController) UpdatePortion(c *gin.Context) {
	idStr := c.Param("portion_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name         *string  `json:"name"`
		Price        *float64 `json:"price"`
		IsAvailable  *bool    `json:"is_available"`
		DisplayOrder *int     `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var portion models.Portion
	if err := pc.DB.First(&portion, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		portion.Name = *body.Name
	}
	if body.Price != nil {
		portion.Price = *body.Price
	}
	if body.IsAvailable != nil {
		portion.IsAvailable = *body.IsAvailable
	}
	if body.DisplayOrder != nil {
		portion.DisplayOrder = *body.DisplayOrder
	}

	if err := pc.DB.Save(&portion).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Portion updated", portion)
}

// DeletePortion
func (pc *PortionController) DeletePortion(c *gin.Context) {
	idStr := c.Param("portion_id")
	id, _ := strconv.Atoi(idStr)

	if err := pc.DB.Delete(&models.Portion{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Portion deleted", gin.H{"portion_id": id})
}
