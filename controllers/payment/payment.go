package paymentControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/logger"
	"github.com/louamlemjid/caisse-api/metrics"
	"github.com/louamlemjid/caisse-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreatePaiementRequest struct {
	Vente         uint             `json:"vente" binding:"required"`
	Montant       *models.Centimes `json:"montant" binding:"required"`
	MontantClient *models.Centimes `json:"montantClient" binding:"required"`
	Type          string           `json:"type" binding:"required"`
	Statut        string           `json:"statut"`
}

// CreatePaiement links a payment to an in-progress sale. A "complété"
// payment finalizes the sale in the same transaction. The sale row is
// locked FOR UPDATE so a concurrent cancellation or second payment
// serializes behind this transaction instead of racing the status check.
func CreatePaiement(db *gorm.DB, req CreatePaiementRequest, paiementType models.PaiementType, statut models.PaiementStatus) (*models.Paiement, error) {
	var paiement models.Paiement
	err := db.Transaction(func(tx *gorm.DB) error {
		var vente models.Vente
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&vente, req.Vente).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrVenteNotFound
			}
			return err
		}
		if vente.Statut != models.VenteEnCours {
			return models.ErrVenteNotEnCours
		}

		var count int64
		if err := tx.Model(&models.Paiement{}).
			Where("vente_id = ?", vente.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return models.ErrPaiementExists
		}

		paiement = models.Paiement{
			VenteID:       vente.ID,
			Montant:       *req.Montant,
			MontantClient: *req.MontantClient,
			Type:          paiementType,
			Statut:        statut,
		}
		if err := tx.Create(&paiement).Error; err != nil {
			return err
		}

		if statut == models.PaiementComplete {
			return tx.Model(&vente).Update("statut", models.VenteFinalisee).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &paiement, nil
}

// CreatePaiementHandler handles POST /paiements.
func CreatePaiementHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePaiementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
			return
		}
		if *req.Montant < 0 || *req.MontantClient < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Amounts cannot be negative"})
			return
		}

		paiementType, err := models.ParsePaiementType(req.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment type"})
			return
		}
		statut := models.PaiementEnAttente
		if req.Statut != "" {
			if statut, err = models.ParsePaiementStatus(req.Statut); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment status"})
				return
			}
		}

		paiement, err := CreatePaiement(db, req, paiementType, statut)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrVenteNotFound):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Sale not found"})
			case errors.Is(err, models.ErrVenteNotEnCours):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sale is not in progress"})
			case errors.Is(err, models.ErrPaiementExists):
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Sale already has a payment"})
			default:
				logger.Get().Error("failed to create payment", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while creating payment"})
			}
			return
		}

		metrics.PaiementsTotal.WithLabelValues(string(paiement.Type)).Inc()
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": paiement})
	}
}

// GetPaiementsHandler handles GET /paiements.
func GetPaiementsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var paiements []models.Paiement
		if err := db.Order("date DESC").Find(&paiements).Error; err != nil {
			logger.Get().Error("failed to fetch payments", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching payments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(paiements), "data": paiements})
	}
}
