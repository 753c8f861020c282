package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/config"
	paymentControllers "github.com/louamlemjid/caisse-api/controllers/payment"
	saleControllers "github.com/louamlemjid/caisse-api/controllers/sale"
	"github.com/louamlemjid/caisse-api/middleware"
	"gorm.io/gorm"
)

// SetupSaleRoutes registers the sale and payment endpoints.
func SetupSaleRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(cfg))
	{
		ventes := authed.Group("/ventes")
		{
			ventes.GET("", saleControllers.GetVentesHandler(db))
			ventes.GET("/:id", saleControllers.GetVenteByIDHandler(db))
			ventes.POST("", saleControllers.CreateVenteHandler(db))
			ventes.PUT("/:id", saleControllers.UpdateVenteStatusHandler(db))
			ventes.DELETE("/:id", saleControllers.DeleteVenteHandler(db))
		}

		paiements := authed.Group("/paiements")
		{
			paiements.GET("", paymentControllers.GetPaiementsHandler(db))
			paiements.POST("", paymentControllers.CreatePaiementHandler(db))
		}
	}
}
