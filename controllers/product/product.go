package productControllers

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

type StockInit struct {
	Quantite    int `json:"quantite"`
	SeuilAlerte int `json:"seuilAlerte"`
}

type CreateProduitRequest struct {
	Nom         string           `json:"nom" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Prix        *models.Centimes `json:"prix" binding:"required"`
	Categorie   string           `json:"categorie" binding:"required"`
	Image       string           `json:"image"`
	Stock       *StockInit       `json:"stock"`
}

type UpdateProduitRequest struct {
	Nom         string           `json:"nom"`
	Description string           `json:"description"`
	Prix        *models.Centimes `json:"prix"`
	Categorie   string           `json:"categorie"`
	Image       string           `json:"image"`
}

// GetProduits handles GET /produits, optionally filtered by ?categorie=.
func GetProduits(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("date_creation DESC")
		if categorie := c.Query("categorie"); categorie != "" {
			query = query.Where("categorie = ?", categorie)
		}

		var produits []models.Produit
		if err := query.Find(&produits).Error; err != nil {
			logger.Get().Error("failed to fetch products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(produits), "data": produits})
	}
}

// GetProduitByID handles GET /produits/:id.
func GetProduitByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var produit models.Produit
		if err := db.First(&produit, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching product"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": produit})
	}
}

// CreateProduit handles POST /produits. An embedded stock block creates the
// product's ledger row in the same transaction.
func CreateProduit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProduitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
			return
		}
		if *req.Prix < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price cannot be negative"})
			return
		}
		if req.Stock != nil && (req.Stock.Quantite < 0 || req.Stock.SeuilAlerte < 0) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Stock values cannot be negative"})
			return
		}

		produit := models.Produit{
			Nom:         req.Nom,
			Description: req.Description,
			Prix:        *req.Prix,
			Categorie:   req.Categorie,
			Image:       req.Image,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&produit).Error; err != nil {
				return err
			}
			if req.Stock != nil {
				stock := models.Stock{
					ProduitID:   produit.ID,
					Quantite:    req.Stock.Quantite,
					SeuilAlerte: req.Stock.SeuilAlerte,
					DerniereMAJ: time.Now(),
				}
				return tx.Create(&stock).Error
			}
			return nil
		})
		if err != nil {
			logger.Get().Error("failed to create product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while creating product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": produit})
	}
}

// UpdateProduit handles PUT /produits/:id. Price changes never touch
// existing sale lines, which carry their own copied unit price.
func UpdateProduit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var produit models.Produit
		if err := db.First(&produit, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating product"})
			}
			return
		}

		var req UpdateProduitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}
		if req.Prix != nil && *req.Prix < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price cannot be negative"})
			return
		}

		updates := map[string]interface{}{}
		if req.Nom != "" {
			updates["nom"] = req.Nom
		}
		if req.Description != "" {
			updates["description"] = req.Description
		}
		if req.Prix != nil {
			updates["prix"] = *req.Prix
		}
		if req.Categorie != "" {
			updates["categorie"] = req.Categorie
		}
		if req.Image != "" {
			updates["image"] = req.Image
		}

		if len(updates) > 0 {
			if err := db.Model(&produit).Updates(updates).Error; err != nil {
				logger.Get().Error("failed to update product", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating product"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": produit})
	}
}

// DeleteProduit handles DELETE /produits/:id. Products referenced by sale
// lines keep their history and cannot be removed.
func DeleteProduit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var produit models.Produit
		if err := db.First(&produit, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while deleting product"})
			}
			return
		}

		var refs int64
		if err := db.Model(&models.LigneVente{}).Where("produit_id = ?", produit.ID).Count(&refs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while deleting product"})
			return
		}
		if refs > 0 {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Cannot delete a product referenced by sales"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("produit_id = ?", produit.ID).Delete(&models.Stock{}).Error; err != nil {
				return err
			}
			return tx.Delete(&produit).Error
		})
		if err != nil {
			logger.Get().Error("failed to delete product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while deleting product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}

// GetCategories handles GET /categories, the distinct category names in use.
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []string
		if err := db.Model(&models.Produit{}).
			Distinct("categorie").
			Order("categorie").
			Pluck("categorie", &categories).Error; err != nil {
			logger.Get().Error("failed to fetch categories", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(categories), "data": categories})
	}
}
