package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/config"
	statsControllers "github.com/louamlemjid/caisse-api/controllers/stats"
	userControllers "github.com/louamlemjid/caisse-api/controllers/user"
	"github.com/louamlemjid/caisse-api/middleware"
	"github.com/louamlemjid/caisse-api/models"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers user management, statistics and report
// endpoints. User management is manager-only.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(cfg))
	{
		utilisateurs := authed.Group("/utilisateurs")
		utilisateurs.Use(middleware.RequireRoles(models.RoleManager))
		{
			utilisateurs.GET("", userControllers.GetUtilisateurs(db))
			utilisateurs.GET("/:id", userControllers.GetUtilisateurByID(db))
			utilisateurs.POST("", userControllers.CreateUtilisateur(db))
			utilisateurs.PUT("/:id", userControllers.UpdateUtilisateur(db))
			utilisateurs.DELETE("/:id", userControllers.DeleteUtilisateur(db))
		}

		authed.GET("/statistiques", statsControllers.GetStatistiques(db))
		authed.GET("/rapports/ventes.xlsx",
			middleware.RequireRoles(models.RoleManager),
			statsControllers.ExportVentesToExcel(db))
	}
}
