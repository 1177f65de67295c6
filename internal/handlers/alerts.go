package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grabkey/deal-service/internal/stores"
)

// CreateAlertRequest represents a new price alert.
type CreateAlertRequest struct {
	GameID       string     `json:"gameId" binding:"required"`
	TargetPrice  float64    `json:"targetPrice" binding:"required,gt=0"`
	CurrentPrice float64    `json:"currentPrice" binding:"omitempty,gte=0"`
	Channels     []string   `json:"channels" binding:"omitempty,dive,oneof=email push in-app"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

// UpdateAlertRequest represents a partial alert update.
type UpdateAlertRequest struct {
	TargetPrice *float64   `json:"targetPrice" binding:"omitempty,gt=0"`
	Channels    []string   `json:"channels" binding:"omitempty,dive,oneof=email push in-app"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// ListAlerts returns all alerts, optionally filtered by game or status.
// GET /alerts?gameId=&active=true
func (a *API) ListAlerts(c *gin.Context) {
	var list []stores.PriceAlert
	switch {
	case c.Query("gameId") != "":
		list = a.Alerts.ForGame(c.Query("gameId"))
	case c.Query("active") == "true":
		list = a.Alerts.Active()
	default:
		list = a.Alerts.All()
	}

	c.JSON(http.StatusOK, gin.H{"alerts": list, "total": len(list)})
}

// CreateAlert registers a price alert for a game.
// POST /alerts
func (a *API) CreateAlert(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert := a.Alerts.Add(c.Request.Context(), req.GameID, req.TargetPrice, req.CurrentPrice, req.Channels, req.ExpiresAt)
	c.JSON(http.StatusCreated, alert)
}

// GetAlert returns a single alert by ID.
// GET /alerts/:id
func (a *API) GetAlert(c *gin.Context) {
	alert, ok := a.Alerts.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	c.JSON(http.StatusOK, alert)
}

// ToggleAlert flips an alert between active and paused. Triggered and
// expired alerts are terminal and stay untouched.
// POST /alerts/:id/toggle
func (a *API) ToggleAlert(c *gin.Context) {
	id := c.Param("id")
	if _, ok := a.Alerts.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	a.Alerts.Toggle(c.Request.Context(), id)
	alert, _ := a.Alerts.Get(id)
	c.JSON(http.StatusOK, alert)
}

// UpdateAlert applies a partial update to an alert.
// PATCH /alerts/:id
func (a *API) UpdateAlert(c *gin.Context) {
	id := c.Param("id")
	if _, ok := a.Alerts.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	var req UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a.Alerts.Update(c.Request.Context(), id, stores.AlertUpdate{
		TargetPrice: req.TargetPrice,
		Channels:    req.Channels,
		ExpiresAt:   req.ExpiresAt,
	})
	alert, _ := a.Alerts.Get(id)
	c.JSON(http.StatusOK, alert)
}

// RemoveAlert deletes an alert.
// DELETE /alerts/:id
func (a *API) RemoveAlert(c *gin.Context) {
	a.Alerts.Remove(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}
