// Package search implements the pure filter/sort engine over the catalog.
package search

import "strconv"

// SortKey selects the ordering applied by SortGames.
type SortKey string

const (
	SortRelevance   SortKey = "relevance"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortDealScore   SortKey = "deal-score"
	SortReleaseDate SortKey = "release-date"
	SortNameAsc     SortKey = "name-asc"
	SortNameDesc    SortKey = "name-desc"
)

// Filters is the value object describing one search. Absent/empty fields mean
// "no constraint". Two Filters are the same search iff Equal reports true.
type Filters struct {
	Query        string   `json:"query,omitempty"`
	Platforms    []string `json:"platforms,omitempty"`
	Genres       []string `json:"genres,omitempty"`
	PriceMin     *float64 `json:"priceMin,omitempty"`
	PriceMax     *float64 `json:"priceMax,omitempty"`
	StoreIDs     []string `json:"storeIds,omitempty"`
	Region       string   `json:"region,omitempty"`
	OnSaleOnly   bool     `json:"onSaleOnly,omitempty"`
	MinDealScore int      `json:"minDealScore,omitempty"`
	Sort         SortKey  `json:"sort,omitempty"`
}

// Equal reports structural equality, used to detect "filters changed"
// transitions in search sessions.
func (f Filters) Equal(other Filters) bool {
	if f.Query != other.Query ||
		f.Region != other.Region ||
		f.OnSaleOnly != other.OnSaleOnly ||
		f.MinDealScore != other.MinDealScore ||
		f.Sort != other.Sort {
		return false
	}
	if !floatPtrEqual(f.PriceMin, other.PriceMin) || !floatPtrEqual(f.PriceMax, other.PriceMax) {
		return false
	}
	return stringsEqual(f.Platforms, other.Platforms) &&
		stringsEqual(f.Genres, other.Genres) &&
		stringsEqual(f.StoreIDs, other.StoreIDs)
}

// ParsePriceBound coerces a raw numeric input into an optional price bound.
// Malformed or negative input is tolerated as "no constraint", never an error.
func ParsePriceBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
