package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

// AdminUserController ports the privileged add-admin function: a single
// action-dispatched endpoint that grants or lists admin roles. The caller
// must already hold the admin role (enforced by middleware).
type AdminUserController struct {
	DB *gorm.DB
}

func NewAdminUserController(db *gorm.DB) *AdminUserController {
	return &AdminUserController{DB: db}
}

// ManageAdmins handles {action:"add", email} and {action:"list"}.
func (auc *AdminUserController) ManageAdmins(c *gin.Context) {
	var body struct {
		Action string `json:"action"`
		Email  string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Action {
	case "add":
		auc.addAdmin(c, body.Email)
	case "list":
		auc.listAdmins(c)
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid action"))
	}
}

func (auc *AdminUserController) addAdmin(c *gin.Context, email string) {
	if email == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email is required"))
		return
	}

	var profile models.Profile
	err := auc.DB.Where("email = ?", email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found, they need to sign up first"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var existing models.AdminRole
	err = auc.DB.Where("profile_id = ? AND role = ?", profile.ID, models.RoleAdmin).
		First(&existing).Error
	if err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("user is already an admin"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	role := models.AdminRole{
		ProfileID: profile.ID,
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := auc.DB.Create(&role).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Admin role granted to %s", profile.Email)
	utils.RespondJSON(c, http.StatusOK, "Admin added successfully", gin.H{
		"profile_id": profile.ID,
	})
}

func (auc *AdminUserController) listAdmins(c *gin.Context) {
	var profiles []models.Profile
	if err := auc.DB.Model(&models.Profile{}).
		Joins("JOIN admin_roles ON admin_roles.profile_id = profiles.id AND admin_roles.role = ?", models.RoleAdmin).
		Find(&profiles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Admin list", gin.H{"admins": profiles})
}
