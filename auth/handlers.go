package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/config"
	"github.com/louamlemjid/caisse-api/models"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	MotDePasse string `json:"motDePasse" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ValidateRequest struct {
	AllowedRoles []string `json:"allowedRoles" binding:"required"`
}

// LoginHandler authenticates a user by email + password and returns the
// profile together with an access/refresh token pair.
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide email and password"})
			return
		}

		var user models.Utilisateur
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred during login"})
			}
			return
		}

		if !CheckPassword(user.MotDePasse, req.MotDePasse) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		pair, err := IssueTokenPair(cfg, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"user":          user,
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
			"expires_in":    pair.ExpiresIn,
		})
	}
}

// RefreshHandler exchanges a valid refresh token for a new token pair.
// The user is reloaded so revoked accounts and role changes take effect
// on the next refresh.
func RefreshHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Refresh token is required"})
			return
		}

		claims, err := ParseToken(cfg, req.RefreshToken)
		if err != nil || claims.TokenType != TokenTypeRefresh {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired refresh token"})
			return
		}

		var user models.Utilisateur
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User no longer exists"})
			return
		}

		pair, err := IssueTokenPair(cfg, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
			"expires_in":    pair.ExpiresIn,
		})
	}
}

// ValidateHandler checks a bearer token against a list of allowed roles.
// 401 for a missing/invalid token, 403 when the role is not permitted.
func ValidateHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		var req ValidateRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.AllowedRoles) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "allowedRoles must be a non-empty array"})
			return
		}

		allowedRoles := make([]models.Role, 0, len(req.AllowedRoles))
		for _, raw := range req.AllowedRoles {
			role, err := models.ParseRole(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role in allowedRoles"})
				return
			}
			allowedRoles = append(allowedRoles, role)
		}

		claims, err := ParseToken(cfg, tokenString)
		if err != nil || claims.TokenType != TokenTypeAccess {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		var user models.Utilisateur
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User profile not found"})
			return
		}

		permitted := false
		for _, role := range allowedRoles {
			if user.Role == role {
				permitted = true
				break
			}
		}
		if !permitted {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Unauthorized: role '" + string(user.Role) + "' not allowed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}
