package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home describes the API
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Task Manager API",
		"endpoints": gin.H{
			"tasks":    "/api/tasks",
			"comments": "/api/tasks/<task_id>/comments",
		},
	})
}

// Health reports liveness
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Task API is running",
	})
}
