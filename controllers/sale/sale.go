package saleControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stockControllers "github.com/louamlemjid/caisse-api/controllers/stock"
	"github.com/louamlemjid/caisse-api/logger"
	"github.com/louamlemjid/caisse-api/metrics"
	"github.com/louamlemjid/caisse-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------

type LigneVenteRequest struct {
	Produit  uint `json:"produit"`
	Quantite int  `json:"quantite"`
}

type CreateVenteRequest struct {
	Client      *uint               `json:"client"`
	LignesVente []LigneVenteRequest `json:"lignesVente" binding:"required"`
	Remise      int                 `json:"remise"`
}

type UpdateVenteStatusRequest struct {
	Statut string `json:"statut" binding:"required"`
}

// notifyStockAlerte pushes a low-stock alert to the websocket feed.
// Indirection so tests can observe alerts without live connections.
var notifyStockAlerte = stockControllers.BroadcastAlerte

// generateVenteRef builds a unique, human-sortable sale reference.
func generateVenteRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// CreateVente reserves stock and persists the sale in one transaction.
// Stock rows are locked FOR UPDATE so concurrent sales on the same product
// serialize instead of overselling, and any failing line rolls back every
// decrement made before it. Returns the stock rows the sale left at or
// under their alert threshold so the caller can broadcast alerts after
// the commit.
func CreateVente(db *gorm.DB, req CreateVenteRequest, utilisateurID uint) (*models.Vente, []models.Stock, error) {
	var vente models.Vente
	var alertes []models.Stock

	err := db.Transaction(func(tx *gorm.DB) error {
		var lignes []models.LigneVente

		for _, ligne := range req.LignesVente {
			var produit models.Produit
			if err := tx.First(&produit, ligne.Produit).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %d", models.ErrProduitNotFound, ligne.Produit)
				}
				return err
			}

			var stock models.Stock
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("produit_id = ?", ligne.Produit).
				First(&stock).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", models.ErrStockNotFound, produit.Nom)
				}
				return err
			}

			if stock.Quantite < ligne.Quantite {
				return fmt.Errorf("%w: %s", models.ErrInsufficientStock, produit.Nom)
			}

			stock.Quantite -= ligne.Quantite
			stock.DerniereMAJ = time.Now()
			if err := tx.Save(&stock).Error; err != nil {
				return err
			}
			if stock.EnAlerte() {
				stock.Produit = produit
				alertes = append(alertes, stock)
			}

			lignes = append(lignes, models.LigneVente{
				ProduitID:    produit.ID,
				Quantite:     ligne.Quantite,
				PrixUnitaire: produit.Prix,
				SousTotal:    produit.Prix * models.Centimes(ligne.Quantite),
			})
		}

		vente = models.Vente{
			Ref:           generateVenteRef(),
			ClientID:      req.Client,
			UtilisateurID: utilisateurID,
			Date:          time.Now(),
			Lignes:        lignes,
			Remise:        req.Remise,
			Total:         models.ComputeTotal(lignes, req.Remise),
			Statut:        models.VenteEnCours,
		}

		return tx.Create(&vente).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &vente, alertes, nil
}

// restoreStock puts every line's quantity back on the shelf and returns
// the touched rows so callers can re-check alert thresholds after commit.
func restoreStock(tx *gorm.DB, lignes []models.LigneVente) ([]models.Stock, error) {
	var restored []models.Stock
	for _, ligne := range lignes {
		var stock models.Stock
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("produit_id = ?", ligne.ProduitID).
			First(&stock).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		stock.Quantite += ligne.Quantite
		stock.DerniereMAJ = time.Now()
		if err := tx.Save(&stock).Error; err != nil {
			return nil, err
		}
		restored = append(restored, stock)
	}
	return restored, nil
}

// -------- Handlers --------

// CreateVenteHandler handles POST /ventes.
func CreateVenteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateVenteRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.LignesVente) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide sale items"})
			return
		}
		for _, ligne := range req.LignesVente {
			if ligne.Quantite < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity must be at least 1"})
				return
			}
		}
		if req.Remise < 0 || req.Remise > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Discount must be between 0 and 100"})
			return
		}

		utilisateurID := c.GetUint("user_id")

		vente, alertes, err := CreateVente(db, req, utilisateurID)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrProduitNotFound):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			case errors.Is(err, models.ErrStockNotFound), errors.Is(err, models.ErrInsufficientStock):
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
			default:
				logger.Get().Error("failed to create sale", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while creating sale"})
			}
			return
		}

		metrics.VentesCreatedTotal.Inc()
		for _, stock := range alertes {
			notifyStockAlerte(stock)
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": vente})
	}
}

// GetVentesHandler handles GET /ventes.
func GetVentesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ventes []models.Vente
		if err := db.
			Preload("Lignes.Produit").
			Preload("Client").
			Preload("Utilisateur").
			Preload("Paiement").
			Order("date DESC").
			Find(&ventes).Error; err != nil {
			logger.Get().Error("failed to fetch sales", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching sales"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(ventes), "data": ventes})
	}
}

// GetVenteByIDHandler handles GET /ventes/:id.
func GetVenteByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vente models.Vente
		if err := db.
			Preload("Lignes.Produit").
			Preload("Client").
			Preload("Utilisateur").
			Preload("Paiement").
			First(&vente, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Sale not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching sale"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": vente})
	}
}

// UpdateVenteStatusHandler handles PUT /ventes/:id. Transitions are only
// defined out of "en cours"; cancelling restores stock and voids any
// linked payment. The sale row is locked and its status re-checked inside
// the transaction so concurrent transitions cannot both restore stock.
func UpdateVenteStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateVenteStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a valid status"})
			return
		}
		statut, err := models.ParseVenteStatus(req.Statut)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a valid status"})
			return
		}

		var vente models.Vente
		var restored []models.Stock
		changed := false

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&vente, "id = ?", c.Param("id")).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrVenteNotFound
				}
				return err
			}
			if err := tx.Where("vente_id = ?", vente.ID).Find(&vente.Lignes).Error; err != nil {
				return err
			}

			if statut == vente.Statut {
				return nil
			}
			if vente.Statut != models.VenteEnCours {
				return models.ErrVenteNotEnCours
			}

			if statut == models.VenteAnnulee {
				var err error
				if restored, err = restoreStock(tx, vente.Lignes); err != nil {
					return err
				}

				var paiement models.Paiement
				err = tx.Where("vente_id = ?", vente.ID).First(&paiement).Error
				if err == nil {
					if err := tx.Model(&paiement).
						Update("statut", models.PaiementAnnule).Error; err != nil {
						return err
					}
					paiement.Statut = models.PaiementAnnule
					vente.Paiement = &paiement
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
			}

			if err := tx.Model(&vente).Update("statut", statut).Error; err != nil {
				return err
			}
			vente.Statut = statut
			changed = true
			return nil
		})
		if err != nil {
			switch {
			case errors.Is(err, models.ErrVenteNotFound):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Sale not found"})
			case errors.Is(err, models.ErrVenteNotEnCours):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot change status of a finalized or cancelled sale"})
			default:
				logger.Get().Error("failed to update sale status", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while updating sale"})
			}
			return
		}

		if changed && statut == models.VenteAnnulee {
			metrics.VentesAnnuleesTotal.Inc()
			for _, stock := range restored {
				if stock.EnAlerte() {
					notifyStockAlerte(stock)
				}
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": vente})
	}
}

// DeleteVenteHandler handles DELETE /ventes/:id. Deletion is only allowed
// while the sale is still "en cours"; stock is restored and any payment
// removed along with the sale. Same locking discipline as the status
// transition: the policy check runs on the locked row inside the
// transaction.
func DeleteVenteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vente models.Vente
		var restored []models.Stock

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&vente, "id = ?", c.Param("id")).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrVenteNotFound
				}
				return err
			}
			if vente.Statut != models.VenteEnCours {
				return models.ErrVenteNotEnCours
			}
			if err := tx.Where("vente_id = ?", vente.ID).Find(&vente.Lignes).Error; err != nil {
				return err
			}

			var err error
			if restored, err = restoreStock(tx, vente.Lignes); err != nil {
				return err
			}
			if err := tx.Where("vente_id = ?", vente.ID).Delete(&models.Paiement{}).Error; err != nil {
				return err
			}
			if err := tx.Where("vente_id = ?", vente.ID).Delete(&models.LigneVente{}).Error; err != nil {
				return err
			}
			return tx.Delete(&vente).Error
		})
		if err != nil {
			switch {
			case errors.Is(err, models.ErrVenteNotFound):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Sale not found"})
			case errors.Is(err, models.ErrVenteNotEnCours):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete finalized or cancelled sales"})
			default:
				logger.Get().Error("failed to delete sale", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while deleting sale"})
			}
			return
		}

		metrics.VentesSupprimeesTotal.Inc()
		for _, stock := range restored {
			if stock.EnAlerte() {
				notifyStockAlerte(stock)
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}
