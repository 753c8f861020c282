package statsControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/logger"
	"github.com/louamlemjid/caisse-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DailySales struct {
	Date    string          `json:"date"`
	Count   int64           `json:"count"`
	Revenue models.Centimes `json:"revenue"`
}

type TopProduct struct {
	ProduitID     uint            `json:"produit_id"`
	Nom           string          `json:"nom"`
	TotalQuantite int64           `json:"quantite"`
	TotalRevenue  models.Centimes `json:"revenue"`
}

// GetStatistiques handles GET /statistiques: finalized-sale count, total
// revenue, daily series over the last 30 days, top products and current
// stock alerts.
func GetStatistiques(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		since := time.Now().AddDate(0, 0, -30)

		var totalSales int64
		if err := db.Model(&models.Vente{}).
			Where("statut = ?", models.VenteFinalisee).
			Count(&totalSales).Error; err != nil {
			statsError(c, err)
			return
		}

		var totalRevenue models.Centimes
		if err := db.Model(&models.Vente{}).
			Where("statut = ?", models.VenteFinalisee).
			Select("COALESCE(SUM(total), 0)").
			Scan(&totalRevenue).Error; err != nil {
			statsError(c, err)
			return
		}

		var recentSales []models.Vente
		if err := db.
			Preload("Lignes.Produit").
			Preload("Client").
			Preload("Utilisateur").
			Where("statut = ? AND date >= ?", models.VenteFinalisee, since).
			Order("date DESC").
			Limit(10).
			Find(&recentSales).Error; err != nil {
			statsError(c, err)
			return
		}

		var salesChart []DailySales
		if err := db.Model(&models.Vente{}).
			Select("to_char(date, 'YYYY-MM-DD') AS date, COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
			Where("statut = ? AND date >= ?", models.VenteFinalisee, since).
			Group("to_char(date, 'YYYY-MM-DD')").
			Order("date").
			Scan(&salesChart).Error; err != nil {
			statsError(c, err)
			return
		}

		var topProducts []TopProduct
		if err := db.Model(&models.LigneVente{}).
			Select("ligne_ventes.produit_id AS produit_id, produits.nom AS nom, SUM(ligne_ventes.quantite) AS total_quantite, COALESCE(SUM(ligne_ventes.sous_total), 0) AS total_revenue").
			Joins("JOIN ventes ON ventes.id = ligne_ventes.vente_id AND ventes.statut = ?", models.VenteFinalisee).
			Joins("JOIN produits ON produits.id = ligne_ventes.produit_id").
			Group("ligne_ventes.produit_id, produits.nom").
			Order("total_quantite DESC").
			Limit(5).
			Scan(&topProducts).Error; err != nil {
			statsError(c, err)
			return
		}

		var stockAlerts []models.Stock
		if err := db.Preload("Produit").
			Where("quantite <= seuil_alerte").
			Order("quantite ASC").
			Find(&stockAlerts).Error; err != nil {
			statsError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"total_ventes":    totalSales,
				"total_revenue":   totalRevenue,
				"ventes_recentes": recentSales,
				"ventes_par_jour": salesChart,
				"top_produits":    topProducts,
				"alertes_stock":   stockAlerts,
			},
		})
	}
}

func statsError(c *gin.Context, err error) {
	logger.Get().Error("failed to compute statistics", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while fetching statistics"})
}
