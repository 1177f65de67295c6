// Package prediction derives buy/wait forecasts from a game's price history.
package prediction

import (
	"fmt"
	"math"

	"github.com/grabkey/deal-service/internal/catalog"
)

// Derive computes the forecast for a game from its history series and current
// best price. It is a total function: any well-formed history yields a
// prediction, with one entry per fixed horizon.
func Derive(gameID string, h catalog.PriceHistory, currentBest float64) catalog.PricePrediction {
	trend := weeklyTrend(h.Points)

	horizons := make([]catalog.HorizonForecast, 0, len(catalog.ForecastHorizons))
	for _, days := range catalog.ForecastHorizons {
		predicted := currentBest + trend*float64(days)/7
		predicted = clampPrice(predicted, h.AllTimeLow, math.Max(h.AllTimeHigh, currentBest))

		horizons = append(horizons, catalog.HorizonForecast{
			Days:            days,
			PredictedPrice:  round2(predicted),
			Confidence:      confidenceFor(days),
			DropProbability: dropProbability(currentBest, h, days),
		})
	}

	rec := recommend(currentBest, h, horizons)

	return catalog.PricePrediction{
		GameID:         gameID,
		Horizons:       horizons,
		Recommendation: rec,
		Reasoning:      reasoning(rec, currentBest, h),
	}
}

// weeklyTrend is the average per-week price movement across the series.
func weeklyTrend(points []catalog.PricePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	first := points[0].Price
	last := points[len(points)-1].Price
	return (last - first) / float64(len(points)-1)
}

// confidenceFor shrinks with the horizon: near-term forecasts are firmer.
func confidenceFor(days int) int {
	c := 92 - days/2
	if c < 35 {
		c = 35
	}
	return c
}

// dropProbability grows with headroom above the all-time low and with the
// horizon length.
func dropProbability(current float64, h catalog.PriceHistory, days int) int {
	span := h.AllTimeHigh - h.AllTimeLow
	headroom := 0.0
	if span > 0 {
		headroom = (current - h.AllTimeLow) / span
	}
	p := int(math.Round(headroom*70)) + days/6
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}

func recommend(current float64, h catalog.PriceHistory, horizons []catalog.HorizonForecast) catalog.Recommendation {
	if h.AllTimeLow > 0 && current <= h.AllTimeLow*1.05 {
		return catalog.RecommendStrongBuy
	}

	drop30 := 0
	for _, f := range horizons {
		if f.Days == 30 {
			drop30 = f.DropProbability
		}
	}

	switch {
	case drop30 < 30:
		return catalog.RecommendBuy
	case drop30 < 60:
		return catalog.RecommendWait
	default:
		return catalog.RecommendStrongWait
	}
}

func reasoning(rec catalog.Recommendation, current float64, h catalog.PriceHistory) string {
	switch rec {
	case catalog.RecommendStrongBuy:
		return fmt.Sprintf("Current price $%.2f is within 5%% of the all-time low of $%.2f.", current, h.AllTimeLow)
	case catalog.RecommendBuy:
		return fmt.Sprintf("Price $%.2f is stable near its recent average of $%.2f; a further drop is unlikely soon.", current, h.AveragePrice)
	case catalog.RecommendWait:
		return fmt.Sprintf("Price $%.2f sits well above the all-time low of $%.2f; sales recur every few weeks.", current, h.AllTimeLow)
	default:
		return fmt.Sprintf("Price $%.2f is near its historical high of $%.2f; a markdown is very likely.", current, h.AllTimeHigh)
	}
}

func clampPrice(v, lo, hi float64) float64 {
	if lo > 0 && v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
