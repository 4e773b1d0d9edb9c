package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/benguluru-bhavan/ordering-app/utils"
)

// AuthMiddleware parses the Bearer token and puts the caller's profile id
// on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.ProfileID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid profile id in token"))
			c.Abort()
			return
		}

		c.Set("profile_id", claims.ProfileID)
		c.Next()
	}
}

// WebSocketAuthMiddleware accepts the token as a query parameter because
// browsers cannot set headers on websocket upgrades.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set("profile_id", claims.ProfileID)
		c.Next()
	}
}
