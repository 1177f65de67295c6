package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/grabkey/deal-service/internal/dealscore"
	"github.com/grabkey/deal-service/internal/search"
)

// SearchGamesRequest represents query parameters for the game search.
// Price bounds arrive as raw strings: malformed numeric input is coerced to
// "no constraint" rather than rejected.
type SearchGamesRequest struct {
	Query        string   `form:"q"`
	Platforms    []string `form:"platform"`
	Genres       []string `form:"genre"`
	PriceMin     string   `form:"priceMin"`
	PriceMax     string   `form:"priceMax"`
	StoreIDs     []string `form:"store"`
	Region       string   `form:"region"`
	OnSaleOnly   bool     `form:"onSale"`
	MinDealScore int      `form:"minScore" binding:"omitempty,min=0,max=100"`
	Sort         string   `form:"sort"`
	Page         int      `form:"page" binding:"omitempty,min=1"`
}

// Filters converts the request into the engine's filter value object.
func (r SearchGamesRequest) Filters() search.Filters {
	return search.Filters{
		Query:        r.Query,
		Platforms:    r.Platforms,
		Genres:       r.Genres,
		PriceMin:     search.ParsePriceBound(r.PriceMin),
		PriceMax:     search.ParsePriceBound(r.PriceMax),
		StoreIDs:     r.StoreIDs,
		Region:       r.Region,
		OnSaleOnly:   r.OnSaleOnly,
		MinDealScore: r.MinDealScore,
		Sort:         search.SortKey(r.Sort),
	}
}

// SearchGames returns one page of filtered, sorted games.
// GET /games?q=&platform=&genre=&priceMin=&priceMax=&store=&onSale=&minScore=&sort=&page=
func (a *API) SearchGames(c *gin.Context) {
	var req SearchGamesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}

	page, err := a.Search.Search(c.Request.Context(), req.Filters(), req.Page, a.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search games"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetGame returns one game by slug.
// GET /games/:slug
func (a *API) GetGame(c *gin.Context) {
	slug := c.Param("slug")

	game, ok, err := a.Repo.GameBySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	c.JSON(http.StatusOK, game)
}

// GetGamePrices returns all price quotes for a game, cheapest first.
// GET /games/:slug/prices
func (a *API) GetGamePrices(c *gin.Context) {
	game, ok, err := a.Repo.GameBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	prices, err := a.Repo.PricesForGame(c.Request.Context(), game.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prices"})
		return
	}

	sort.Slice(prices, func(i, j int) bool {
		if prices[i].CurrentPrice != prices[j].CurrentPrice {
			return prices[i].CurrentPrice < prices[j].CurrentPrice
		}
		return prices[i].StoreID < prices[j].StoreID
	})

	c.JSON(http.StatusOK, gin.H{"gameId": game.ID, "prices": prices})
}

// GetGameHistory returns the price history series for a game.
// GET /games/:slug/history
func (a *API) GetGameHistory(c *gin.Context) {
	game, ok, err := a.Repo.GameBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	h, ok, err := a.Repo.HistoryForGame(c.Request.Context(), game.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no price history for game"})
		return
	}

	c.JSON(http.StatusOK, h)
}

// GetGamePrediction returns the price prediction for a game.
// GET /games/:slug/prediction
func (a *API) GetGamePrediction(c *gin.Context) {
	game, ok, err := a.Repo.GameBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	p, ok, err := a.Repo.PredictionForGame(c.Request.Context(), game.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prediction"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no prediction for game"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ListDeals returns the active deals with their tiers, best score first.
// GET /deals
func (a *API) ListDeals(c *gin.Context) {
	deals, err := a.Repo.Deals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	type dealWithTier struct {
		ID        string         `json:"id"`
		GameID    string         `json:"gameId"`
		StoreID   string         `json:"storeId"`
		Tags      []string       `json:"tags"`
		DealScore int            `json:"dealScore"`
		Tier      dealscore.Tier `json:"tier"`
	}

	sort.Slice(deals, func(i, j int) bool {
		if deals[i].DealScore != deals[j].DealScore {
			return deals[i].DealScore > deals[j].DealScore
		}
		return deals[i].ID < deals[j].ID
	})

	out := make([]dealWithTier, 0, len(deals))
	for _, d := range deals {
		tags := make([]string, 0, len(d.Tags))
		for _, t := range d.Tags {
			tags = append(tags, string(t))
		}
		out = append(out, dealWithTier{
			ID:        d.ID,
			GameID:    d.GameID,
			StoreID:   d.StoreID,
			Tags:      tags,
			DealScore: d.DealScore,
			Tier:      dealscore.ScoreToTier(d.DealScore),
		})
	}

	c.JSON(http.StatusOK, gin.H{"deals": out, "total": len(out)})
}

// ListStores returns the storefronts, most trusted first.
// GET /stores
func (a *API) ListStores(c *gin.Context) {
	list, err := a.Repo.Stores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stores"})
		return
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].TrustScore != list[j].TrustScore {
			return list[i].TrustScore > list[j].TrustScore
		}
		return list[i].ID < list[j].ID
	})

	c.JSON(http.StatusOK, gin.H{"stores": list, "total": len(list)})
}
