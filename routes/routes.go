package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/config"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the auth, catalog,
// sales and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, cfg)

	// Products, categories, stock and clients (JWT-protected)
	SetupCatalogRoutes(r, db, cfg)

	// Sales and payments (JWT-protected)
	SetupSaleRoutes(r, db, cfg)

	// Users, statistics and reports (manager-only)
	SetupAdminRoutes(r, db, cfg)
}
