package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grabkey/deal-service/internal/stores"
)

// UpdatePreferencesRequest represents a partial preferences update.
type UpdatePreferencesRequest struct {
	Region    *string  `json:"region" binding:"omitempty,len=2"`
	Currency  *string  `json:"currency" binding:"omitempty,len=3"`
	Platforms []string `json:"platforms"`
}

// LoginRequest represents a login.
type LoginRequest struct {
	ID    string `json:"id" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// UpdateUserRequest represents a partial profile update.
type UpdateUserRequest struct {
	Email *string `json:"email" binding:"omitempty,email"`
	Name  *string `json:"name"`
}

// GetPreferences returns the current preferences.
// GET /preferences
func (a *API) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, a.Preferences.State())
}

// UpdatePreferences applies the provided preference fields.
// PATCH /preferences
func (a *API) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if req.Region != nil {
		a.Preferences.SetRegion(ctx, *req.Region)
	}
	if req.Currency != nil {
		a.Preferences.SetCurrency(ctx, *req.Currency)
	}
	if req.Platforms != nil {
		a.Preferences.SetPlatforms(ctx, req.Platforms)
	}

	c.JSON(http.StatusOK, a.Preferences.State())
}

// Login establishes the authenticated user.
// POST /auth/login
func (a *API) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a.Auth.Login(c.Request.Context(), stores.User{ID: req.ID, Email: req.Email, Name: req.Name})
	user, _ := a.Auth.Current()
	c.JSON(http.StatusOK, gin.H{"user": user, "isAuthenticated": true})
}

// Logout clears the authenticated user.
// POST /auth/logout
func (a *API) Logout(c *gin.Context) {
	a.Auth.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
}

// CurrentUser returns the authenticated user, if any.
// GET /auth/me
func (a *API) CurrentUser(c *gin.Context) {
	user, ok := a.Auth.Current()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "isAuthenticated": true})
}

// UpdateUser applies a partial profile update to the authenticated user.
// PATCH /auth/me
func (a *API) UpdateUser(c *gin.Context) {
	if !a.Auth.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a.Auth.UpdateUser(c.Request.Context(), stores.UserUpdate{Email: req.Email, Name: req.Name})
	user, _ := a.Auth.Current()
	c.JSON(http.StatusOK, gin.H{"user": user, "isAuthenticated": true})
}
