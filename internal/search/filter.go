package search

import (
	"strings"

	"github.com/grabkey/deal-service/internal/catalog"
)

// FilterGames returns the games passing every active predicate.
// Pure function: no I/O, input slices are never modified.
func FilterGames(games []catalog.Game, f Filters, prices []catalog.Price) []catalog.Game {
	var storesByGame map[string]map[string]bool
	if len(f.StoreIDs) > 0 {
		storesByGame = buildStoreIndex(prices)
	}

	out := make([]catalog.Game, 0, len(games))
	for _, g := range games {
		if matchesGame(g, f, storesByGame) {
			out = append(out, g)
		}
	}
	return out
}

func matchesGame(g catalog.Game, f Filters, storesByGame map[string]map[string]bool) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(g.Title), strings.ToLower(f.Query)) {
		return false
	}
	if len(f.Platforms) > 0 && !intersects(g.Platforms, f.Platforms) {
		return false
	}
	if len(f.Genres) > 0 && !intersects(g.Genres, f.Genres) {
		return false
	}
	if f.PriceMin != nil && g.BestPrice < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && g.BestPrice > *f.PriceMax {
		return false
	}
	if len(f.StoreIDs) > 0 && !soldByAny(g.ID, f.StoreIDs, storesByGame) {
		return false
	}
	if f.OnSaleOnly && !g.IsOnSale {
		return false
	}
	if f.MinDealScore > 0 && g.DealScore < f.MinDealScore {
		return false
	}
	return true
}

// buildStoreIndex maps gameID -> set of storeIDs with a price quote for it.
func buildStoreIndex(prices []catalog.Price) map[string]map[string]bool {
	idx := make(map[string]map[string]bool)
	for _, p := range prices {
		set := idx[p.GameID]
		if set == nil {
			set = make(map[string]bool)
			idx[p.GameID] = set
		}
		set[p.StoreID] = true
	}
	return idx
}

func soldByAny(gameID string, storeIDs []string, idx map[string]map[string]bool) bool {
	set := idx[gameID]
	if set == nil {
		return false
	}
	for _, id := range storeIDs {
		if set[id] {
			return true
		}
	}
	return false
}

// intersects reports whether the two string sets share at least one element.
func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
