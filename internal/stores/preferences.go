package stores

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/grabkey/deal-service/internal/storage"
)

// PreferencesState is the user's display and region settings. The fields are
// independent; no cross-field invariants exist.
type PreferencesState struct {
	Region    string   `json:"region"`
	Currency  string   `json:"currency"`
	Platforms []string `json:"platforms,omitempty"`
}

// DefaultPreferences are the settings before the user picks anything.
func DefaultPreferences() PreferencesState {
	return PreferencesState{Region: "us", Currency: "USD"}
}

// Preferences is the persistent preferences container.
type Preferences struct {
	mu      sync.RWMutex
	state   PreferencesState
	persist persister
}

// NewPreferences creates a preferences store rehydrated from storage.
func NewPreferences(st storage.Storage, logger zerolog.Logger) *Preferences {
	p := &Preferences{
		state:   DefaultPreferences(),
		persist: newPersister(st, KeyPreferences, logger.With().Str("store", "preferences").Logger()),
	}
	p.persist.load(context.Background(), &p.state)
	return p
}

// SetRegion updates the preferred region.
func (p *Preferences) SetRegion(ctx context.Context, region string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Region = region
	p.persist.commit(ctx, p.state)
}

// SetCurrency updates the preferred currency.
func (p *Preferences) SetCurrency(ctx context.Context, currency string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Currency = currency
	p.persist.commit(ctx, p.state)
}

// SetPlatforms updates the preferred platforms.
func (p *Preferences) SetPlatforms(ctx context.Context, platforms []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Platforms = platforms
	p.persist.commit(ctx, p.state)
}

// State returns the current preferences.
func (p *Preferences) State() PreferencesState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}
