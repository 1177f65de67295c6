// Package history synthesizes deterministic week-by-week price series.
// The generator stands in for real scraped data: it produces visually
// plausible sale cadences (roughly every 6-10 weeks) while staying fully
// reproducible from its seed parameters.
package history

import (
	"math"
	"time"

	"github.com/grabkey/deal-service/internal/catalog"
)

// SeriesWeeks is the fixed length of every synthesized series.
const SeriesWeeks = 52

// seriesEpoch is the fixed start of every series, one point per week after it.
var seriesEpoch = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

// Options tune the shape of a synthesized series.
type Options struct {
	// SaleProbability is the per-week chance of a discounted point.
	SaleProbability float64
	// SaleDepth is the base discount fraction on sale weeks; the generator
	// adds up to 0.15 on top of it.
	SaleDepth float64
	// TrendDown erodes the running base price by this many dollars per week.
	TrendDown float64
}

// DefaultOptions returns the tuning used for the seed catalog.
func DefaultOptions() Options {
	return Options{
		SaleProbability: 0.15,
		SaleDepth:       0.25,
		TrendDown:       0.08,
	}
}

// GenerateSeries produces the 52-week series for the given price band.
// Identical inputs always produce the identical series.
func GenerateSeries(originalPrice, floorPrice float64, seedKey string, opts Options) []catalog.PricePoint {
	rng := NewRand(SeedFor(originalPrice, floorPrice, seedKey))

	points := make([]catalog.PricePoint, 0, SeriesWeeks)
	base := originalPrice

	for week := 0; week < SeriesWeeks; week++ {
		base -= opts.TrendDown
		if base < floorPrice+5 {
			base = floorPrice + 5
		}

		var price float64
		if rng.Next() < opts.SaleProbability {
			depth := opts.SaleDepth + rng.Next()*0.15
			price = originalPrice * (1 - depth)
			if price < floorPrice {
				price = floorPrice
			}
			// One in five sale weeks lands exactly on the historical low.
			if rng.Next() < 0.20 {
				price = floorPrice
			}
		} else {
			fluctuation := (rng.Next() - 0.5) * 0.05 * originalPrice
			price = base + fluctuation
			if price < floorPrice+2 {
				price = floorPrice + 2
			}
			if price > originalPrice {
				price = originalPrice
			}
		}

		points = append(points, catalog.PricePoint{
			Date:  seriesEpoch.AddDate(0, 0, 7*week),
			Price: round2(price),
		})
	}

	return points
}

// Build assembles a PriceHistory with aggregates recomputed from the points.
func Build(gameID, storeID string, points []catalog.PricePoint) catalog.PriceHistory {
	low, high, avg := Aggregates(points)
	for i := range points {
		if points[i].StoreID == "" {
			points[i].StoreID = storeID
		}
	}
	return catalog.PriceHistory{
		GameID:       gameID,
		StoreID:      storeID,
		Points:       points,
		AllTimeLow:   low,
		AllTimeHigh:  high,
		AveragePrice: avg,
	}
}

// Aggregates returns the exact min, max and mean of the point prices.
// All zero for an empty series.
func Aggregates(points []catalog.PricePoint) (low, high, avg float64) {
	if len(points) == 0 {
		return 0, 0, 0
	}
	low = points[0].Price
	high = points[0].Price
	sum := 0.0
	for _, p := range points {
		if p.Price < low {
			low = p.Price
		}
		if p.Price > high {
			high = p.Price
		}
		sum += p.Price
	}
	return low, high, sum / float64(len(points))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
