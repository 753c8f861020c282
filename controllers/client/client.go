package clientControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/logger"
	"github.com/louamlemjid/caisse-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientRequest struct {
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Adresse   string `json:"adresse"`
}

// GetClients handles GET /clients.
func GetClients(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var clients []models.Client
		if err := db.Order("date_creation DESC").Find(&clients).Error; err != nil {
			logger.Get().Error("failed to fetch clients", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching clients"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(clients), "data": clients})
	}
}

// GetClientByID handles GET /clients/:id.
func GetClientByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client models.Client
		if err := db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Client not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching client"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": client})
	}
}

// CreateClient handles POST /clients.
func CreateClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ClientRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Nom == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide client name"})
			return
		}

		client := models.Client{
			Nom:       req.Nom,
			Email:     req.Email,
			Telephone: req.Telephone,
			Adresse:   req.Adresse,
		}
		if err := db.Create(&client).Error; err != nil {
			logger.Get().Error("failed to create client", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while creating client"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": client})
	}
}

// UpdateClient handles PUT /clients/:id.
func UpdateClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client models.Client
		if err := db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Client not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating client"})
			}
			return
		}

		var req ClientRequest
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
		if req.Telephone != "" {
			updates["telephone"] = req.Telephone
		}
		if req.Adresse != "" {
			updates["adresse"] = req.Adresse
		}

		if len(updates) > 0 {
			if err := db.Model(&client).Updates(updates).Error; err != nil {
				logger.Get().Error("failed to update client", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating client"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": client})
	}
}

// DeleteClient handles DELETE /clients/:id. Sales keep their client_id as
// history, so deletion only detaches future lookups.
func DeleteClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client models.Client
		if err := db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Client not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while deleting client"})
			}
			return
		}

		if err := db.Delete(&client).Error; err != nil {
			logger.Get().Error("failed to delete client", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while deleting client"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}
