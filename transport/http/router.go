package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chainscore/walletauth/service"
)

// SetupRouter sets up the Gin router.
func SetupRouter(authService *service.AuthService, logger *zap.Logger) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(authService, logger)

	auth := router.Group("/auth")
	{
		auth.POST("/challenge", handlers.Challenge)
		auth.POST("/login", handlers.Login)
		auth.POST("/revoke", handlers.Revoke)
	}

	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/me", handlers.Me)
		api.GET("/authorize", handlers.Authorize)
	}

	return router
}
