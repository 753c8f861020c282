package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/auth"
	"github.com/louamlemjid/caisse-api/config"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", auth.LoginHandler(db, cfg))
		authGroup.POST("/refresh", auth.RefreshHandler(db, cfg))
		authGroup.POST("/validate", auth.ValidateHandler(db, cfg))
	}
}
