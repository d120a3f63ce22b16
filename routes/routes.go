package routes

import (
	"time"

	"vmake/config"
	"vmake/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.ProjectHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/hello", handlers.HelloHandler)
		api.GET("/health", h.HealthHandler)
		api.POST("/process-project", h.ProcessProjectHandler)
		api.POST("/store-project", h.StoreProjectHandler)
		api.POST("/verify-payment", h.VerifyPaymentHandler)
		api.POST("/update-project-status", h.UpdateProjectStatusHandler)
	}
}
