package search

import (
	"context"
	"fmt"

	"github.com/grabkey/deal-service/internal/catalog"
)

// DefaultPageSize is the uniform page size for search results.
const DefaultPageSize = 24

// Page is one page of search results.
type Page struct {
	Items      []catalog.Game `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalCount int            `json:"totalCount"`
	HasMore    bool           `json:"hasMore"`
}

// HasMorePages reports whether results exist beyond the given page.
func HasMorePages(page, pageSize, totalCount int) bool {
	return page*pageSize < totalCount
}

// Paginate slices the ordered result set into the requested page.
// Pages are 1-based; pages past the end yield an empty (not nil) item slice.
func Paginate(items []catalog.Game, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]catalog.Game, end-start)
	copy(out, items[start:end])

	return Page{
		Items:      out,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		HasMore:    HasMorePages(page, pageSize, total),
	}
}

// Service runs the filter → sort → paginate pipeline over a repository.
type Service struct {
	repo catalog.Repository
}

// NewService creates a search service over the given catalog source.
func NewService(repo catalog.Repository) *Service {
	return &Service{repo: repo}
}

// Search evaluates the filters against the catalog and returns one page.
func (s *Service) Search(ctx context.Context, f Filters, page, pageSize int) (Page, error) {
	games, err := s.repo.Games(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("loading games: %w", err)
	}

	var prices []catalog.Price
	if len(f.StoreIDs) > 0 {
		prices, err = s.repo.Prices(ctx)
		if err != nil {
			return Page{}, fmt.Errorf("loading prices: %w", err)
		}
	}

	matched := FilterGames(games, f, prices)
	ordered := SortGames(matched, f.Sort)
	return Paginate(ordered, page, pageSize), nil
}
