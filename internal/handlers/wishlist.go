package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AddWishlistItemRequest represents a wishlist add.
type AddWishlistItemRequest struct {
	GameID      string   `json:"gameId" binding:"required"`
	TargetPrice *float64 `json:"targetPrice" binding:"omitempty,gte=0"`
}

// UpdateTargetPriceRequest represents a target-price change on a wishlist item.
type UpdateTargetPriceRequest struct {
	TargetPrice *float64 `json:"targetPrice" binding:"omitempty,gte=0"`
}

// ListWishlist returns the wishlist items.
// GET /wishlist
func (a *API) ListWishlist(c *gin.Context) {
	items := a.Wishlist.Items()
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// AddWishlistItem adds a game to the wishlist. Adding a game twice is a no-op.
// POST /wishlist
func (a *API) AddWishlistItem(c *gin.Context) {
	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a.Wishlist.Add(c.Request.Context(), req.GameID, req.TargetPrice)
	c.JSON(http.StatusCreated, gin.H{"gameId": req.GameID})
}

// UpdateWishlistTarget changes the target price on a wishlist item.
// PATCH /wishlist/:gameId
func (a *API) UpdateWishlistTarget(c *gin.Context) {
	gameID := c.Param("gameId")
	if !a.Wishlist.Contains(gameID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not in wishlist"})
		return
	}

	var req UpdateTargetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a.Wishlist.UpdateTargetPrice(c.Request.Context(), gameID, req.TargetPrice)
	c.JSON(http.StatusOK, gin.H{"gameId": gameID})
}

// RemoveWishlistItem removes a game from the wishlist.
// DELETE /wishlist/:gameId
func (a *API) RemoveWishlistItem(c *gin.Context) {
	a.Wishlist.Remove(c.Request.Context(), c.Param("gameId"))
	c.Status(http.StatusNoContent)
}
