package http

import (
	"github.com/gin-gonic/gin"

	"github.com/luckyroll/walletgate/ports"
	"github.com/luckyroll/walletgate/service"
)

// SetupRouter sets up the Gin router.
func SetupRouter(authService *service.AuthService, validator ports.SessionValidator, cookieSecure bool) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(authService, validator, cookieSecure)

	router.GET("/healthz", handlers.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/challenge", handlers.Challenge)
		auth.POST("/verify", handlers.Verify)
		auth.GET("/session", handlers.Session)
		auth.POST("/logout", handlers.Logout)
	}

	api := router.Group("/api")
	api.Use(AuthMiddleware(validator))
	{
		api.GET("/me", handlers.Me)
	}

	return router
}
