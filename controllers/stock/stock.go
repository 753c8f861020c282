package stockControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/logger"
	"github.com/louamlemjid/caisse-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UpdateStockRequest struct {
	Quantite    *int `json:"quantite"`
	SeuilAlerte *int `json:"seuilAlerte"`
}

// GetAllStock handles GET /stock.
func GetAllStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stocks []models.Stock
		if err := db.Preload("Produit").Order("quantite ASC").Find(&stocks).Error; err != nil {
			logger.Get().Error("failed to fetch stock", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching stock"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(stocks), "data": stocks})
	}
}

// GetStockAlerts handles GET /stock/alertes, every product at or below its
// alert threshold.
func GetStockAlerts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stocks []models.Stock
		if err := db.Preload("Produit").
			Where("quantite <= seuil_alerte").
			Order("quantite ASC").
			Find(&stocks).Error; err != nil {
			logger.Get().Error("failed to fetch stock alerts", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching stock alerts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(stocks), "data": stocks})
	}
}

// GetStockByProduct handles GET /stock/:productId.
func GetStockByProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stock models.Stock
		if err := db.Preload("Produit").
			Where("produit_id = ?", c.Param("productId")).
			First(&stock).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Stock not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching stock"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": stock})
	}
}

// UpdateStock handles POST /stock/:productId. Creates the ledger row on
// first write, otherwise updates quantity and/or threshold.
func UpdateStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStockRequest
		if err := c.ShouldBindJSON(&req); err != nil || (req.Quantite == nil && req.SeuilAlerte == nil) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide quantite or seuilAlerte"})
			return
		}
		if req.Quantite != nil && *req.Quantite < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity cannot be negative"})
			return
		}
		if req.SeuilAlerte != nil && *req.SeuilAlerte < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Threshold cannot be negative"})
			return
		}

		var produit models.Produit
		if err := db.First(&produit, "id = ?", c.Param("productId")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating stock"})
			}
			return
		}

		var stock models.Stock
		err := db.Transaction(func(tx *gorm.DB) error {
			err := tx.Where("produit_id = ?", produit.ID).First(&stock).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				stock = models.Stock{ProduitID: produit.ID}
			} else if err != nil {
				return err
			}

			if req.Quantite != nil {
				stock.Quantite = *req.Quantite
			}
			if req.SeuilAlerte != nil {
				stock.SeuilAlerte = *req.SeuilAlerte
			}
			stock.DerniereMAJ = time.Now()
			return tx.Save(&stock).Error
		})
		if err != nil {
			logger.Get().Error("failed to update stock", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating stock"})
			return
		}

		if stock.EnAlerte() {
			stock.Produit = produit
			BroadcastAlerte(stock)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": stock})
	}
}
