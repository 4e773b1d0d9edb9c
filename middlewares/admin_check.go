package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

// AdminCheck rejects callers without an admin role grant. The grant is read
// from the database on every request so a fresh grant or revoke takes
// effect without re-login.
func AdminCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileIDInterface, exists := c.Get("profile_id")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		profileID, ok := profileIDInterface.(uint)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid profile id"))
			c.Abort()
			return
		}

		var role models.AdminRole
		err := db.Where("profile_id = ? AND role = ?", profileID, models.RoleAdmin).
			First(&role).Error
		if err != nil {
			utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
			c.Abort()
			return
		}

		c.Set("is_admin", true)
		c.Next()
	}
}
