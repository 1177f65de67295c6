// Package sweepers holds the periodic background maintenance loops.
package sweepers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/stores"
)

// AlertSweeper periodically evaluates active price alerts against the
// catalog's current best prices, triggering and expiring them.
type AlertSweeper struct {
	repo          catalog.Repository
	alerts        *stores.Alerts
	notifications *stores.Notifications
	logger        *zerolog.Logger
	interval      time.Duration
	stopChan      chan struct{}
	now           func() time.Time
}

// NewAlertSweeper creates a sweeper over the given stores.
func NewAlertSweeper(repo catalog.Repository, alerts *stores.Alerts, notifications *stores.Notifications, logger *zerolog.Logger, interval time.Duration) *AlertSweeper {
	return &AlertSweeper{
		repo:          repo,
		alerts:        alerts,
		notifications: notifications,
		logger:        logger,
		interval:      interval,
		stopChan:      make(chan struct{}),
		now:           time.Now,
	}
}

// Start begins the periodic evaluation sweep.
func (s *AlertSweeper) Start(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("Starting alert sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Alert sweeper stopping (context cancelled)")
			return
		case <-s.stopChan:
			s.logger.Info().Msg("Alert sweeper stopping (stop signal)")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Alert sweep failed")
			}
		}
	}
}

// Stop signals the sweeper to stop.
func (s *AlertSweeper) Stop() {
	close(s.stopChan)
}

// Sweep evaluates every active alert once.
func (s *AlertSweeper) Sweep(ctx context.Context) error {
	active := s.alerts.Active()
	if len(active) == 0 {
		return nil
	}

	triggered := 0
	var expired atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	results := make(chan stores.PriceAlert, len(active))

	for _, alert := range active {
		alert := alert
		g.Go(func() error {
			if alert.ExpiresAt != nil && alert.ExpiresAt.Before(s.now()) {
				if s.alerts.MarkExpired(gctx, alert.ID) {
					expired.Add(1)
					s.logger.Debug().Str("id", alert.ID).Msg("Alert expired")
				}
				return nil
			}

			best, ok, err := s.bestPrice(gctx, alert.GameID)
			if err != nil {
				return fmt.Errorf("evaluating alert %s: %w", alert.ID, err)
			}
			if !ok || best > alert.TargetPrice {
				return nil
			}
			if s.alerts.MarkTriggered(gctx, alert.ID, best) {
				alert.CurrentPrice = best
				results <- alert
			}
			return nil
		})
	}

	err := g.Wait()
	close(results)

	for alert := range results {
		triggered++
		s.notifications.Add(ctx,
			stores.NotifyAlertTriggered,
			"Price alert triggered",
			fmt.Sprintf("A game on your alert list dropped to $%.2f (target $%.2f).", alert.CurrentPrice, alert.TargetPrice),
			alert.GameID,
		)
	}

	if triggered > 0 || expired.Load() > 0 {
		s.logger.Info().
			Int("triggered", triggered).
			Int32("expired", expired.Load()).
			Int("evaluated", len(active)).
			Msg("Alert sweep complete")
	}
	return err
}

// bestPrice is the lowest in-stock quote for the game.
func (s *AlertSweeper) bestPrice(ctx context.Context, gameID string) (float64, bool, error) {
	prices, err := s.repo.PricesForGame(ctx, gameID)
	if err != nil {
		return 0, false, err
	}
	best := 0.0
	found := false
	for _, p := range prices {
		if !p.InStock {
			continue
		}
		if !found || p.CurrentPrice < best {
			best = p.CurrentPrice
			found = true
		}
	}
	return best, found, nil
}
