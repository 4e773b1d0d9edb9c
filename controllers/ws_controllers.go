package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/notifier"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OrderFeedHandler upgrades an admin connection and registers it with the
// hub. New-order and status events stream until the client disconnects.
func OrderFeedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetUint("profile_id")
		if profileID == 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Order events are for the admin console only.
		var role models.AdminRole
		if err := db.Where("profile_id = ? AND role = ?", profileID, models.RoleAdmin).
			First(&role).Error; err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		var profile models.Profile
		if err := db.First(&profile, profileID).Error; err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		notifier.RegisterClient(ws, profile.Email)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		notifier.UnregisterClient(ws)
	}
}
