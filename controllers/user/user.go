package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/auth"
	"github.com/louamlemjid/caisse-api/logger"
	"github.com/louamlemjid/caisse-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateUtilisateurRequest struct {
	Nom        string `json:"nom" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	MotDePasse string `json:"motDePasse" binding:"required,min=8"`
	Role       string `json:"role" binding:"required"`
}

type UpdateUtilisateurRequest struct {
	Nom        string `json:"nom"`
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
	Role       string `json:"role"`
}

// GetUtilisateurs handles GET /utilisateurs.
func GetUtilisateurs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var utilisateurs []models.Utilisateur
		if err := db.Order("date_creation DESC").Find(&utilisateurs).Error; err != nil {
			logger.Get().Error("failed to fetch users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(utilisateurs), "data": utilisateurs})
	}
}

// GetUtilisateurByID handles GET /utilisateurs/:id.
func GetUtilisateurByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var utilisateur models.Utilisateur
		if err := db.First(&utilisateur, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching user"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": utilisateur})
	}
}

// CreateUtilisateur handles POST /utilisateurs.
func CreateUtilisateur(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUtilisateurRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
			return
		}

		role, err := models.ParseRole(req.Role)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role"})
			return
		}

		var existing models.Utilisateur
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already in use"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while creating user"})
			return
		}

		hash, err := auth.HashPassword(req.MotDePasse)
		if err != nil {
			logger.Get().Error("failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while creating user"})
			return
		}

		utilisateur := models.Utilisateur{
			Nom:        req.Nom,
			Email:      req.Email,
			MotDePasse: hash,
			Role:       role,
		}
		if err := db.Create(&utilisateur).Error; err != nil {
			logger.Get().Error("failed to create user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while creating user"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": utilisateur})
	}
}

// UpdateUtilisateur handles PUT /utilisateurs/:id.
func UpdateUtilisateur(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var utilisateur models.Utilisateur
		if err := db.First(&utilisateur, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating user"})
			}
			return
		}

		var req UpdateUtilisateurRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}

		updates := map[string]interface{}{}
		if req.Nom != "" {
			updates["nom"] = req.Nom
		}
		if req.Email != "" {
			updates["email"] = req.Email
		}
		if req.Role != "" {
			role, err := models.ParseRole(req.Role)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role"})
				return
			}
			updates["role"] = role
		}
		if req.MotDePasse != "" {
			if len(req.MotDePasse) < 8 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 8 characters"})
				return
			}
			hash, err := auth.HashPassword(req.MotDePasse)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating user"})
				return
			}
			updates["mot_de_passe"] = hash
		}

		if len(updates) > 0 {
			if err := db.Model(&utilisateur).Updates(updates).Error; err != nil {
				logger.Get().Error("failed to update user", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating user"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": utilisateur})
	}
}

// DeleteUtilisateur handles DELETE /utilisateurs/:id.
func DeleteUtilisateur(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var utilisateur models.Utilisateur
		if err := db.First(&utilisateur, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while deleting user"})
			}
			return
		}

		if err := db.Delete(&utilisateur).Error; err != nil {
			logger.Get().Error("failed to delete user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while deleting user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}
