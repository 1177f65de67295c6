package catalog

import (
	"math"
	"time"
)

// Game is a catalog entry with its pricing summary across storefronts.
type Game struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Developer     string    `json:"developer"`
	Publisher     string    `json:"publisher"`
	ReleaseDate   time.Time `json:"releaseDate"`
	Genres        []string  `json:"genres"`
	Platforms     []string  `json:"platforms"`
	Features      []string  `json:"features"`
	Editions      []Edition `json:"editions"`
	BestPrice     float64   `json:"bestPrice"`
	OriginalPrice float64   `json:"originalPrice"`
	Discount      int       `json:"discount"`
	DealScore     int       `json:"dealScore"`
	IsOnSale      bool      `json:"isOnSale"`
}

// Edition is a purchasable variant of a game (standard, deluxe, ...).
type Edition struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DiscountPercent computes the rounded discount for an original/best price pair.
// Zero when the original price is not positive.
func DiscountPercent(originalPrice, bestPrice float64) int {
	if originalPrice <= 0 {
		return 0
	}
	return int(math.Round((originalPrice - bestPrice) / originalPrice * 100))
}

// Price is a single (game, store, edition, region) quote.
// It references its game by ID only; the game does not own the quote.
type Price struct {
	ID            string    `json:"id"`
	GameID        string    `json:"gameId"`
	StoreID       string    `json:"storeId"`
	EditionID     string    `json:"editionId"`
	Region        string    `json:"region"`
	CurrentPrice  float64   `json:"currentPrice"`
	OriginalPrice float64   `json:"originalPrice"`
	Discount      int       `json:"discount"`
	DealScore     int       `json:"dealScore"`
	InStock       bool      `json:"inStock"`
	LastSeenAt    time.Time `json:"lastSeenAt"`
}

// TrustLevel is the categorical rating derived from a store's trust score.
type TrustLevel string

const (
	TrustExcellent TrustLevel = "excellent"
	TrustGood      TrustLevel = "good"
	TrustAverage   TrustLevel = "average"
	TrustPoor      TrustLevel = "poor"
)

// Store is a storefront selling game keys.
type Store struct {
	ID           string     `json:"id"`
	Slug         string     `json:"slug"`
	Name         string     `json:"name"`
	TrustScore   float64    `json:"trustScore"`
	TrustLevel   TrustLevel `json:"trustLevel"`
	IsOfficial   bool       `json:"isOfficial"`
	DeliveryTime string     `json:"deliveryTime"`
	Regions      []string   `json:"regions"`
	Payments     []string   `json:"payments"`
}

// DealTag is one of the closed set of promotional labels on a deal.
type DealTag string

const (
	TagFlashSale     DealTag = "Flash Sale"
	TagHistoricalLow DealTag = "Historical Low"
	TagBundleDeal    DealTag = "Bundle Deal"
	TagNewRelease    DealTag = "New Release"
	TagEditorsPick   DealTag = "Editor's Pick"
	TagTrending      DealTag = "Trending"
	TagLimitedTime   DealTag = "Limited Time"
)

// Deal is a promotional projection of a game/price pair.
type Deal struct {
	ID        string             `json:"id"`
	GameID    string             `json:"gameId"`
	StoreID   string             `json:"storeId"`
	Tags      []DealTag          `json:"tags"`
	DealScore int                `json:"dealScore"`
	Breakdown DealScoreBreakdown `json:"breakdown"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// DealScoreBreakdown holds the seven weighted factor scores behind a deal score.
// Each factor is on the 0-100 scale; the weighted combination is the deal score.
type DealScoreBreakdown struct {
	HistoricalLow   int `json:"historicalLow"`
	Prediction      int `json:"prediction"`
	StoreTrust      int `json:"storeTrust"`
	PriceTrend      int `json:"priceTrend"`
	Region          int `json:"region"`
	Edition         int `json:"edition"`
	TimeSensitivity int `json:"timeSensitivity"`
}

// PricePoint is a single observation in a price history series.
type PricePoint struct {
	Date    time.Time `json:"date"`
	Price   float64   `json:"price"`
	StoreID string    `json:"storeId"`
}

// PriceHistory is an ordered series of price points for a game, optionally
// narrowed to one store. The aggregates are always recomputed from the points,
// never authored independently.
type PriceHistory struct {
	GameID       string       `json:"gameId"`
	StoreID      string       `json:"storeId,omitempty"`
	Points       []PricePoint `json:"points"`
	AllTimeLow   float64      `json:"allTimeLow"`
	AllTimeHigh  float64      `json:"allTimeHigh"`
	AveragePrice float64      `json:"averagePrice"`
}

// Recommendation is the buy/wait signal derived from prediction horizons.
type Recommendation string

const (
	RecommendStrongBuy  Recommendation = "strong-buy"
	RecommendBuy        Recommendation = "buy"
	RecommendWait       Recommendation = "wait"
	RecommendStrongWait Recommendation = "strong-wait"
)

// ForecastHorizons is the fixed set of prediction horizons in days.
var ForecastHorizons = []int{7, 14, 30, 90}

// HorizonForecast is the prediction for a single horizon.
type HorizonForecast struct {
	Days            int     `json:"days"`
	PredictedPrice  float64 `json:"predictedPrice"`
	Confidence      int     `json:"confidence"`
	DropProbability int     `json:"dropProbability"`
}

// PricePrediction is the per-game forecast across the fixed horizons.
type PricePrediction struct {
	GameID         string            `json:"gameId"`
	Horizons       []HorizonForecast `json:"horizons"`
	Recommendation Recommendation    `json:"recommendation"`
	Reasoning      string            `json:"reasoning"`
}
