package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

type BannerController struct {
	DB *gorm.DB
}

func NewBannerController(db *gorm.DB) *BannerController {
	return &BannerController{DB: db}
}

// GetActiveBanners -> public daily specials, optionally filtered by section
func (bc *BannerController) GetActiveBanners(c *gin.Context) {
	query := bc.DB.Where("is_active = ?", true).Order("section asc, created_at desc")

	if section := c.Query("section"); section != "" {
		if !models.ValidBannerSection(section) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown banner section %q", section))
			return
		}
		query = query.Where("section = ?", section)
	}

	var banners []models.Banner
	if err := query.Find(&banners).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active banners", banners)
}

// GetAllBanners -> admin list
func (bc *BannerController) GetAllBanners(c *gin.Context) {
	var banners []models.Banner
	if err := bc.DB.Order("section asc, created_at desc").Find(&banners).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All banners", banners)
}

// CreateBanner
func (bc *BannerController) CreateBanner(c *gin.Context) {
	var body struct {
		Section      string `json:"section" binding:"required"`
		Title        string `json:"title" binding:"required"`
		Description  string `json:"description"`
		IsVegetarian *bool  `json:"is_vegetarian"`
		IsActive     *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidBannerSection(body.Section) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown banner section %q", body.Section))
		return
	}

	banner := models.Banner{
		Section:      body.Section,
		Title:        body.Title,
		Description:  body.Description,
		IsVegetarian: true,
		IsActive:     true,
	}
	if body.IsVegetarian != nil {
		banner.IsVegetarian = *body.IsVegetarian
	}
	if body.IsActive != nil {
		banner.IsActive = *body.IsActive
	}

	if err := bc.DB.Create(&banner).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Banner created", banner)
}

// UpdateBanner
func (bc *BannerController) UpdateBanner(c *gin.Context) {
	idStr := c.Param("banner_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Section      *string `json:"section"`
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		IsVegetarian *bool   `json:"is_vegetarian"`
		IsActive     *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var banner models.Banner
	if err := bc.DB.First(&banner, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Section != nil {
		if !models.ValidBannerSection(*body.Section) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown banner section %q", *body.Section))
			return
		}
		banner.Section = *body.Section
	}
	if body.Title != nil {
		banner.Title = *body.Title
	}
	if body.Description != nil {
		banner.Description = *body.Description
	}
	if body.IsVegetarian != nil {
		banner.IsVegetarian = *body.IsVegetarian
	}
	if body.IsActive != nil {
		banner.IsActive = *body.IsActive
	}

	if err := bc.DB.Save(&banner).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Banner updated", banner)
}

// DeleteBanner
func (bc *BannerController) DeleteBanner(c *gin.Context) {
	idStr := c.Param("banner_id")
	id, _ := strconv.Atoi(idStr)

	if err := bc.DB.Delete(&models.Banner{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Banner deleted", gin.H{"banner_id": id})
}
