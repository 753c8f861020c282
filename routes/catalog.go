package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/config"
	clientControllers "github.com/louamlemjid/caisse-api/controllers/client"
	productControllers "github.com/louamlemjid/caisse-api/controllers/product"
	stockControllers "github.com/louamlemjid/caisse-api/controllers/stock"
	"github.com/louamlemjid/caisse-api/middleware"
	"github.com/louamlemjid/caisse-api/models"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers product, category, stock and client
// endpoints. Catalog writes are restricted to managers; stock writes to
// stock managers and managers.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(cfg))
	{
		produits := authed.Group("/produits")
		{
			produits.GET("", productControllers.GetProduits(db))
			produits.GET("/:id", productControllers.GetProduitByID(db))
			produits.POST("", middleware.RequireRoles(models.RoleManager), productControllers.CreateProduit(db))
			produits.PUT("/:id", middleware.RequireRoles(models.RoleManager), productControllers.UpdateProduit(db))
			produits.DELETE("/:id", middleware.RequireRoles(models.RoleManager), productControllers.DeleteProduit(db))
		}

		authed.GET("/categories", productControllers.GetCategories(db))

		stock := authed.Group("/stock")
		{
			stock.GET("", stockControllers.GetAllStock(db))
			stock.GET("/alertes", stockControllers.GetStockAlerts(db))
			stock.GET("/:productId", stockControllers.GetStockByProduct(db))
			stock.POST("/:productId",
				middleware.RequireRoles(models.RoleStockManager, models.RoleManager),
				stockControllers.UpdateStock(db))
		}

		clients := authed.Group("/clients")
		{
			clients.GET("", clientControllers.GetClients(db))
			clients.GET("/:id", clientControllers.GetClientByID(db))
			clients.POST("", clientControllers.CreateClient(db))
			clients.PUT("/:id", clientControllers.UpdateClient(db))
			clients.DELETE("/:id", clientControllers.DeleteClient(db))
		}

		// websocket endpoint for real-time low-stock alerts; clients
		// authenticate with ?access_token= since browsers cannot set
		// headers on websocket upgrades
		authed.GET("/ws/stock", stockControllers.StockWebSocketHandler)
	}
}
