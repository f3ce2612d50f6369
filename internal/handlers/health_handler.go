package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports that the API is up.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health reports liveness
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "API is running"
// @Router      /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Message: "CampusCash API is running"})
}
