package dealscore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grabkey/deal-service/internal/catalog"
)

func uniformBreakdown(v int) catalog.DealScoreBreakdown {
	return catalog.DealScoreBreakdown{
		HistoricalLow:   v,
		Prediction:      v,
		StoreTrust:      v,
		PriceTrend:      v,
		Region:          v,
		Edition:         v,
		TimeSensitivity: v,
	}
}

func TestWeightsSumToHundred(t *testing.T) {
	assert.Equal(t, 100, WeightSum)
}

func TestComputeUniformFactors(t *testing.T) {
	// With every factor equal the weighted mean collapses to the factor value.
	for _, v := range []int{0, 25, 50, 75, 100} {
		assert.Equal(t, v, Compute(uniformBreakdown(v)), "uniform factors at %d", v)
	}
}

func TestComputeWeightedMix(t *testing.T) {
	b := catalog.DealScoreBreakdown{
		HistoricalLow:   95, // 25%
		Prediction:      80, // 20%
		StoreTrust:      98, // 15%
		PriceTrend:      70, // 15%
		Region:          100, // 10%
		Edition:         100, // 10%
		TimeSensitivity: 60, // 5%
	}
	// 95*25 + 80*20 + 98*15 + 70*15 + 100*10 + 100*10 + 60*5 = 8795 → 88
	assert.Equal(t, 88, Compute(b))
}

func TestComputeClampsOutOfRangeFactors(t *testing.T) {
	b := uniformBreakdown(100)
	b.HistoricalLow = 250
	assert.Equal(t, 100, Compute(b))

	b = uniformBreakdown(0)
	b.Prediction = -40
	assert.Equal(t, 0, Compute(b))
}

func TestScoreToTierBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierLegendary},
		{90, TierLegendary},
		{89, TierExcellent},
		{75, TierExcellent},
		{74, TierGood},
		{50, TierGood},
		{49, TierFair},
		{25, TierFair},
		{24, TierPoor},
		{0, TierPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreToTier(tt.score), "score %d", tt.score)
	}
}

func TestTrustLevelFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  catalog.TrustLevel
	}{
		{4.9, catalog.TrustExcellent},
		{4.5, catalog.TrustExcellent},
		{4.4, catalog.TrustGood},
		{3.5, catalog.TrustGood},
		{3.4, catalog.TrustAverage},
		{2.5, catalog.TrustAverage},
		{2.4, catalog.TrustPoor},
		{0, catalog.TrustPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TrustLevelFromScore(tt.score), "score %.1f", tt.score)
	}
}
