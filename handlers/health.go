package handlers

import (
	"net/http"

	"vmake/config"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service readiness, mirroring what the chat client
// polls before starting a conversation.
func (h *ProjectHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"aiService":        h.AI != nil,
		"geminiConfigured": config.GeminiConfigured(),
	})
}

// HelloHandler is a basic liveness endpoint.
func HelloHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is running!"})
}
