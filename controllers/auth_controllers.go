package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register creates a customer profile.
func (ac *AuthController) Register(c *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"full_name" binding:"required"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	profile := models.Profile{
		Email:    req.Email,
		Password: string(hashed),
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := ac.DB.Create(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New profile registered: %s", profile.Email)

	utils.RespondJSON(c, http.StatusCreated, "Profile registered", gin.H{
		"profile_id": profile.ID,
	})
}

// Login verifies credentials and returns a JWT plus the admin flag so the
// client knows whether to show the admin console.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var profile models.Profile
	if err := ac.DB.Where("email = ?", input.Email).First(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(profile.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var adminCount int64
	ac.DB.Model(&models.AdminRole{}).
		Where("profile_id = ? AND role = ?", profile.ID, models.RoleAdmin).
		Count(&adminCount)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":    token,
		"is_admin": adminCount > 0,
	})
}

// Logout revokes the presented token.
func (ac *AuthController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 {
		utils.BlacklistToken(authHeader[7:])
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile returns the authenticated caller's profile.
func (ac *AuthController) GetProfile(c *gin.Context) {
	profileIDInterface, exists := c.Get("profile_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("profile id not found in context"))
		return
	}

	profileID, ok := profileIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid profile id type"))
		return
	}

	var profile models.Profile
	if err := ac.DB.First(&profile, profileID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", profile)
}
