package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/auth"
	"github.com/louamlemjid/caisse-api/config"
	"github.com/louamlemjid/caisse-api/models"
)

// RequireAuth validates the access token and stores the caller's
// identity in the request context. The token comes from the
// Authorization header, or from the access_token query parameter for
// websocket clients, which cannot set headers from the browser.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		authHeader := c.GetHeader("Authorization")
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		case c.Query("access_token") != "":
			tokenString = c.Query("access_token")
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing or invalid Authorization header"})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(cfg, tokenString)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_nom", claims.Nom)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// user's role is in the given list. Must run after RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := c.Get("user_role")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing authentication context"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Unauthorized: role not allowed"})
		c.Abort()
	}
}
