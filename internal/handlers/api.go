// Package handlers exposes the catalog read paths and client-store mutations
// over HTTP.
package handlers

import (
	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/search"
	"github.com/grabkey/deal-service/internal/stores"
)

// API bundles the handler dependencies. Everything is injected explicitly;
// handlers hold no package-level state.
type API struct {
	Repo          catalog.Repository
	Search        *search.Service
	PageSize      int
	Wishlist      *stores.Wishlist
	Alerts        *stores.Alerts
	Notifications *stores.Notifications
	Auth          *stores.Auth
	Preferences   *stores.Preferences
}

// NewAPI creates the handler set over the given dependencies.
func NewAPI(repo catalog.Repository, pageSize int, wishlist *stores.Wishlist, alerts *stores.Alerts, notifications *stores.Notifications, auth *stores.Auth, prefs *stores.Preferences) *API {
	if pageSize < 1 {
		pageSize = search.DefaultPageSize
	}
	return &API{
		Repo:          repo,
		Search:        search.NewService(repo),
		PageSize:      pageSize,
		Wishlist:      wishlist,
		Alerts:        alerts,
		Notifications: notifications,
		Auth:          auth,
		Preferences:   prefs,
	}
}
