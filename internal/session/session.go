// Package session implements the search/pagination state machine that drives
// the filter/sort engine incrementally as a client scrolls or changes filters.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/search"
)

// ViewMode is the presentation toggle; it never affects result state.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Searcher is the page fetch contract the session depends on.
type Searcher interface {
	Search(ctx context.Context, f search.Filters, page, pageSize int) (search.Page, error)
}

// Session accumulates result pages for one client search. Each fetch carries a
// monotonically increasing sequence token; responses for a superseded filter
// set are discarded rather than merged.
type Session struct {
	mu sync.Mutex

	searcher Searcher
	pageSize int
	logger   zerolog.Logger
	metrics  *MetricsRecorder

	filters     search.Filters
	currentPage int
	accumulated []catalog.Game
	totalCount  int
	hasMore     bool
	viewMode    ViewMode
	inFlight    bool
	seq         uint64
	loadedOnce  bool
}

// Snapshot is the externally visible session state.
type Snapshot struct {
	Filters     search.Filters `json:"filters"`
	CurrentPage int            `json:"currentPage"`
	Results     []catalog.Game `json:"results"`
	TotalCount  int            `json:"totalCount"`
	HasMore     bool           `json:"hasMore"`
	ViewMode    ViewMode       `json:"viewMode"`
	Loading     bool           `json:"loading"`
}

// New creates a session over the given searcher. Page size defaults to the
// engine's uniform page size when not positive.
func New(searcher Searcher, pageSize int, logger zerolog.Logger) *Session {
	if pageSize < 1 {
		pageSize = search.DefaultPageSize
	}
	return &Session{
		searcher: searcher,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "search_session").Logger(),
		metrics:  NewMetricsRecorder(),
		viewMode: ViewGrid,
	}
}

// SetFilters applies a filter change. An unchanged filter value is a no-op;
// otherwise the page resets to 1, accumulation clears, and a fresh page-1
// fetch replaces the visible set.
func (s *Session) SetFilters(ctx context.Context, f search.Filters) (Snapshot, error) {
	s.mu.Lock()
	if s.loadedOnce && f.Equal(s.filters) {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	s.filters = f
	s.currentPage = 1
	s.accumulated = nil
	s.totalCount = 0
	s.hasMore = false
	s.seq++
	s.inFlight = true
	token := s.seq
	s.mu.Unlock()

	s.metrics.RecordSearch()
	page, err := s.searcher.Search(ctx, f, 1, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		// A newer filter change superseded this fetch.
		s.metrics.RecordStaleResponse()
		s.logger.Debug().Uint64("token", token).Msg("Discarding stale page-1 response")
		return s.snapshotLocked(), nil
	}
	s.inFlight = false
	if err != nil {
		return s.snapshotLocked(), err
	}

	s.accumulated = page.Items
	s.totalCount = page.TotalCount
	s.hasMore = page.HasMore
	s.loadedOnce = true
	s.metrics.RecordResultCount(page.TotalCount)
	return s.snapshotLocked(), nil
}

// LoadMore fetches the next page and appends it. It is a no-op while a fetch
// is in flight or when no further pages exist.
func (s *Session) LoadMore(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if s.inFlight || !s.hasMore {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	nextPage := s.currentPage + 1
	s.inFlight = true
	token := s.seq
	filters := s.filters
	s.mu.Unlock()

	s.metrics.RecordPageLoad()
	page, err := s.searcher.Search(ctx, filters, nextPage, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		// The in-flight flag now belongs to the superseding fetch.
		s.metrics.RecordStaleResponse()
		s.logger.Debug().Uint64("token", token).Int("page", nextPage).Msg("Discarding stale page response")
		return s.snapshotLocked(), nil
	}
	s.inFlight = false
	if err != nil {
		return s.snapshotLocked(), err
	}

	if !s.alreadyMerged(page.Items) {
		s.accumulated = append(s.accumulated, page.Items...)
	}
	s.currentPage = nextPage
	s.totalCount = page.TotalCount
	s.hasMore = page.HasMore
	return s.snapshotLocked(), nil
}

// alreadyMerged guards against double-appending a page: the trailing ids of
// the accumulated set and of the new page coincide when the page was merged.
func (s *Session) alreadyMerged(items []catalog.Game) bool {
	if len(items) == 0 || len(s.accumulated) == 0 {
		return false
	}
	return s.accumulated[len(s.accumulated)-1].ID == items[len(items)-1].ID
}

// ToggleView flips between grid and list presentation, leaving results alone.
func (s *Session) ToggleView() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewMode == ViewGrid {
		s.viewMode = ViewList
	} else {
		s.viewMode = ViewGrid
	}
	return s.viewMode
}

// State returns the current session snapshot.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	results := make([]catalog.Game, len(s.accumulated))
	copy(results, s.accumulated)
	return Snapshot{
		Filters:     s.filters,
		CurrentPage: s.currentPage,
		Results:     results,
		TotalCount:  s.totalCount,
		HasMore:     s.hasMore,
		ViewMode:    s.viewMode,
		Loading:     s.inFlight,
	}
}
