package search

import (
	"sort"

	"github.com/grabkey/deal-service/internal/catalog"
)

// SortGames returns a new slice ordered by the sort key. An unknown key sorts
// like relevance (deal score descending). Every ordering breaks ties on game
// ID ascending for determinism.
// Pure function: the input slice is not modified.
func SortGames(games []catalog.Game, key SortKey) []catalog.Game {
	sorted := make([]catalog.Game, len(games))
	copy(sorted, games)

	less := comparatorFor(key)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if cmp := less(a, b); cmp != 0 {
			return cmp < 0
		}
		return a.ID < b.ID
	})

	return sorted
}

// comparatorFor returns a three-way comparison for the primary sort key.
func comparatorFor(key SortKey) func(a, b catalog.Game) int {
	switch key {
	case SortPriceAsc:
		return func(a, b catalog.Game) int { return compareFloat(a.BestPrice, b.BestPrice) }
	case SortPriceDesc:
		return func(a, b catalog.Game) int { return compareFloat(b.BestPrice, a.BestPrice) }
	case SortReleaseDate:
		return func(a, b catalog.Game) int {
			switch {
			case a.ReleaseDate.After(b.ReleaseDate):
				return -1
			case b.ReleaseDate.After(a.ReleaseDate):
				return 1
			default:
				return 0
			}
		}
	case SortNameAsc:
		return func(a, b catalog.Game) int { return compareString(a.Title, b.Title) }
	case SortNameDesc:
		return func(a, b catalog.Game) int { return compareString(b.Title, a.Title) }
	case SortDealScore:
		return func(a, b catalog.Game) int { return b.DealScore - a.DealScore }
	default:
		// relevance and unknown keys fall back to deal score descending
		return func(a, b catalog.Game) int { return b.DealScore - a.DealScore }
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
