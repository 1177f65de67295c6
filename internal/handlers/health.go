package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Catalog string `json:"catalog"`
}

// HealthCheck handles the health check endpoint
func (a *API) HealthCheck(c *gin.Context) {
	response := HealthResponse{Status: "ok"}

	if _, err := a.Repo.Games(c.Request.Context()); err != nil {
		response.Catalog = "unavailable"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	response.Catalog = "available"

	c.JSON(http.StatusOK, response)
}
