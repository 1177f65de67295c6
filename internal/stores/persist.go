// Package stores holds the persistent client-side state containers: wishlist,
// price alerts, notifications, auth session and preferences. Each store owns
// its collection exclusively, persists its whole state on every mutation, and
// rehydrates it at construction. The containers are explicit handles wired by
// the caller, never module-level singletons, so isolated sessions and tests
// cannot cross-contaminate.
package stores

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/grabkey/deal-service/internal/storage"
)

// Storage keys for the client store snapshots.
const (
	KeyWishlist      = "state/wishlist.json"
	KeyAlerts        = "state/alerts.json"
	KeyNotifications = "state/notifications.json"
	KeyAuth          = "state/auth.json"
	KeyPreferences   = "state/preferences.json"
)

// persister commits full-state snapshots to durable storage. Persistence is
// best-effort: a failed save is logged and the in-memory state stays
// authoritative for the session.
type persister struct {
	storage storage.Storage
	key     string
	logger  zerolog.Logger
}

func newPersister(st storage.Storage, key string, logger zerolog.Logger) persister {
	return persister{storage: st, key: key, logger: logger}
}

// commit serializes the state and writes it under the store's key.
func (p persister) commit(ctx context.Context, state any) {
	data, err := json.Marshal(state)
	if err != nil {
		p.logger.Error().Err(err).Str("key", p.key).Msg("Failed to encode state snapshot")
		return
	}
	if err := p.storage.Put(ctx, p.key, data); err != nil {
		p.logger.Warn().Err(err).Str("key", p.key).Msg("Failed to persist state snapshot")
	}
}

// load rehydrates the state from storage. Absence and decode failures leave
// dst untouched and report false.
func (p persister) load(ctx context.Context, dst any) bool {
	data, err := p.storage.Get(ctx, p.key)
	if err != nil {
		if !storage.IsNotFound(err) {
			p.logger.Warn().Err(err).Str("key", p.key).Msg("Failed to load state snapshot")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		p.logger.Warn().Err(err).Str("key", p.key).Msg("Failed to decode state snapshot")
		return false
	}
	return true
}
