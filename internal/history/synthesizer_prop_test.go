package history

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSeriesProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genOriginal := gen.Float64Range(9.99, 69.99)
	genFloorFrac := gen.Float64Range(0.3, 0.9)
	genKey := gen.Identifier()

	properties.Property("every point stays within the price band", prop.ForAll(
		func(original, floorFrac float64, key string) bool {
			floor := round2(original * floorFrac)
			points := GenerateSeries(original, floor, key, DefaultOptions())
			if len(points) != SeriesWeeks {
				return false
			}
			for _, p := range points {
				if p.Price < floor || p.Price > round2(original) {
					return false
				}
			}
			return true
		},
		genOriginal, genFloorFrac, genKey,
	))

	properties.Property("identical inputs reproduce the identical series", prop.ForAll(
		func(original, floorFrac float64, key string) bool {
			floor := round2(original * floorFrac)
			a := GenerateSeries(original, floor, key, DefaultOptions())
			b := GenerateSeries(original, floor, key, DefaultOptions())
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		genOriginal, genFloorFrac, genKey,
	))

	properties.Property("aggregates bound every point", prop.ForAll(
		func(original, floorFrac float64, key string) bool {
			floor := round2(original * floorFrac)
			points := GenerateSeries(original, floor, key, DefaultOptions())
			low, high, avg := Aggregates(points)
			return low <= avg && avg <= high
		},
		genOriginal, genFloorFrac, genKey,
	))

	properties.TestingRun(t)
}
