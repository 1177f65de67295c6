// Package dealscore implements the fixed-weight deal scoring model and its
// tier/trust mappings.
package dealscore

import (
	"math"

	"github.com/grabkey/deal-service/internal/catalog"
)

// Factor weights, in percent. They must sum to 100.
const (
	WeightHistoricalLow   = 25
	WeightPrediction      = 20
	WeightStoreTrust      = 15
	WeightPriceTrend      = 15
	WeightRegion          = 10
	WeightEdition         = 10
	WeightTimeSensitivity = 5
)

// WeightSum is the total of all factor weights.
const WeightSum = WeightHistoricalLow + WeightPrediction + WeightStoreTrust +
	WeightPriceTrend + WeightRegion + WeightEdition + WeightTimeSensitivity

// Tier is the qualitative bucket for a deal score.
type Tier string

const (
	TierLegendary Tier = "legendary"
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// Compute combines the seven factor scores under the fixed weights into a
// 0-100 integer deal score. Factor scores outside [0,100] are clamped first.
func Compute(b catalog.DealScoreBreakdown) int {
	weighted := float64(clamp(b.HistoricalLow))*WeightHistoricalLow +
		float64(clamp(b.Prediction))*WeightPrediction +
		float64(clamp(b.StoreTrust))*WeightStoreTrust +
		float64(clamp(b.PriceTrend))*WeightPriceTrend +
		float64(clamp(b.Region))*WeightRegion +
		float64(clamp(b.Edition))*WeightEdition +
		float64(clamp(b.TimeSensitivity))*WeightTimeSensitivity

	return int(math.Round(weighted / WeightSum))
}

// ScoreToTier maps a deal score to its tier. Boundaries are inclusive:
// 90 is legendary, 75 excellent, 50 good, 25 fair.
func ScoreToTier(score int) Tier {
	switch {
	case score >= 90:
		return TierLegendary
	case score >= 75:
		return TierExcellent
	case score >= 50:
		return TierGood
	case score >= 25:
		return TierFair
	default:
		return TierPoor
	}
}

// TrustLevelFromScore maps a store's numeric trust score (0-5 scale) to its
// categorical level.
func TrustLevelFromScore(score float64) catalog.TrustLevel {
	switch {
	case score >= 4.5:
		return catalog.TrustExcellent
	case score >= 3.5:
		return catalog.TrustGood
	case score >= 2.5:
		return catalog.TrustAverage
	default:
		return catalog.TrustPoor
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
