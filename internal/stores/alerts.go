package stores

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/grabkey/deal-service/internal/pkg/cuid2"
	"github.com/grabkey/deal-service/internal/storage"
)

// AlertStatus is the lifecycle state of a price alert. Active and paused flip
// into each other; triggered and expired are terminal.
type AlertStatus string

const (
	AlertActive    AlertStatus = "active"
	AlertPaused    AlertStatus = "paused"
	AlertTriggered AlertStatus = "triggered"
	AlertExpired   AlertStatus = "expired"
)

// PriceAlert fires when a game's best price reaches the target.
type PriceAlert struct {
	ID           string      `json:"id"`
	GameID       string      `json:"gameId"`
	TargetPrice  float64     `json:"targetPrice"`
	CurrentPrice float64     `json:"currentPrice"`
	Status       AlertStatus `json:"status"`
	Channels     []string    `json:"channels"`
	CreatedAt    time.Time   `json:"createdAt"`
	TriggeredAt  *time.Time  `json:"triggeredAt,omitempty"`
	ExpiresAt    *time.Time  `json:"expiresAt,omitempty"`
}

// AlertUpdate holds the fields of a partial alert update; nil fields are
// left unchanged.
type AlertUpdate struct {
	TargetPrice  *float64   `json:"targetPrice,omitempty"`
	CurrentPrice *float64   `json:"currentPrice,omitempty"`
	Channels     []string   `json:"channels,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// Alerts is the persistent price-alert container.
type Alerts struct {
	mu      sync.RWMutex
	alerts  []PriceAlert
	persist persister
	now     func() time.Time
	newID   func() string
}

// NewAlerts creates an alert store rehydrated from storage.
func NewAlerts(st storage.Storage, logger zerolog.Logger) *Alerts {
	a := &Alerts{
		persist: newPersister(st, KeyAlerts, logger.With().Str("store", "alerts").Logger()),
		now:     time.Now,
		newID:   func() string { return cuid2.New("alr") },
	}
	a.persist.load(context.Background(), &a.alerts)
	return a
}

// Add creates an active alert with a fresh id and creation timestamp.
func (a *Alerts) Add(ctx context.Context, gameID string, targetPrice, currentPrice float64, channels []string, expiresAt *time.Time) PriceAlert {
	a.mu.Lock()
	defer a.mu.Unlock()
	alert := PriceAlert{
		ID:           a.newID(),
		GameID:       gameID,
		TargetPrice:  targetPrice,
		CurrentPrice: currentPrice,
		Status:       AlertActive,
		Channels:     channels,
		CreatedAt:    a.now(),
		ExpiresAt:    expiresAt,
	}
	a.alerts = append(a.alerts, alert)
	a.persist.commit(ctx, a.alerts)
	return alert
}

// Toggle flips an alert between active and paused. Alerts in a terminal state
// (triggered, expired) are never resurrected; the call is a no-op for them,
// as it is for an unknown id.
func (a *Alerts) Toggle(ctx context.Context, id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.alerts {
		if a.alerts[i].ID != id {
			continue
		}
		switch a.alerts[i].Status {
		case AlertActive:
			a.alerts[i].Status = AlertPaused
		case AlertPaused:
			a.alerts[i].Status = AlertActive
		default:
			return
		}
		a.persist.commit(ctx, a.alerts)
		return
	}
}

// Update merges the non-nil fields into the alert. Unknown ids are a no-op.
func (a *Alerts) Update(ctx context.Context, id string, upd AlertUpdate) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.alerts {
		if a.alerts[i].ID != id {
			continue
		}
		if upd.TargetPrice != nil {
			a.alerts[i].TargetPrice = *upd.TargetPrice
		}
		if upd.CurrentPrice != nil {
			a.alerts[i].CurrentPrice = *upd.CurrentPrice
		}
		if upd.Channels != nil {
			a.alerts[i].Channels = upd.Channels
		}
		if upd.ExpiresAt != nil {
			a.alerts[i].ExpiresAt = upd.ExpiresAt
		}
		a.persist.commit(ctx, a.alerts)
		return
	}
}

// MarkTriggered moves an active alert to triggered and stamps the trigger
// time. Only active alerts can trigger.
func (a *Alerts) MarkTriggered(ctx context.Context, id string, currentPrice float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.alerts {
		if a.alerts[i].ID != id || a.alerts[i].Status != AlertActive {
			continue
		}
		now := a.now()
		a.alerts[i].Status = AlertTriggered
		a.alerts[i].TriggeredAt = &now
		a.alerts[i].CurrentPrice = currentPrice
		a.persist.commit(ctx, a.alerts)
		return true
	}
	return false
}

// MarkExpired moves an alert past its expiry to expired. Terminal states stay
// untouched.
func (a *Alerts) MarkExpired(ctx context.Context, id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.alerts {
		if a.alerts[i].ID != id {
			continue
		}
		if a.alerts[i].Status != AlertActive && a.alerts[i].Status != AlertPaused {
			return false
		}
		a.alerts[i].Status = AlertExpired
		a.persist.commit(ctx, a.alerts)
		return true
	}
	return false
}

// Remove deletes an alert. Unknown ids are a no-op.
func (a *Alerts) Remove(ctx context.Context, id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.alerts {
		if a.alerts[i].ID == id {
			a.alerts = append(a.alerts[:i], a.alerts[i+1:]...)
			a.persist.commit(ctx, a.alerts)
			return
		}
	}
}

// All returns a copy of every alert.
func (a *Alerts) All() []PriceAlert {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]PriceAlert, len(a.alerts))
	copy(out, a.alerts)
	return out
}

// ForGame returns the alerts referencing the game.
func (a *Alerts) ForGame(gameID string) []PriceAlert {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []PriceAlert
	for _, alert := range a.alerts {
		if alert.GameID == gameID {
			out = append(out, alert)
		}
	}
	return out
}

// Active returns the alerts currently eligible to trigger.
func (a *Alerts) Active() []PriceAlert {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []PriceAlert
	for _, alert := range a.alerts {
		if alert.Status == AlertActive {
			out = append(out, alert)
		}
	}
	return out
}

// Get looks up an alert by id.
func (a *Alerts) Get(id string) (PriceAlert, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, alert := range a.alerts {
		if alert.ID == id {
			return alert, true
		}
	}
	return PriceAlert{}, false
}
