package pricesource

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
)

// MarketSource supplies coin listings; satisfied by Client and by test
// fakes.
type MarketSource interface {
	Markets(ctx context.Context) ([]domain.Coin, error)
}

// Snapshot caches the latest market listing. Trades and valuations
// price against this cache, the same way the app priced against the
// coin list it had already fetched.
type Snapshot struct {
	source   MarketSource
	interval time.Duration
	logger   zerolog.Logger

	mu        sync.RWMutex
	coins     []domain.Coin
	byID      map[string]domain.Coin
	refreshed time.Time

	// onRefresh, when set, receives each new listing (websocket ticks)
	onRefresh func([]domain.Coin)
}

func NewSnapshot(source MarketSource, interval time.Duration, logger zerolog.Logger) *Snapshot {
	return &Snapshot{
		source:   source,
		interval: interval,
		logger:   logger,
		byID:     make(map[string]domain.Coin),
	}
}

// OnRefresh registers a callback invoked after every successful
// refresh. Must be called before Run.
func (s *Snapshot) OnRefresh(fn func([]domain.Coin)) {
	s.onRefresh = fn
}

// Run refreshes immediately and then on every tick until ctx ends.
func (s *Snapshot) Run(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Initial market refresh failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Market refresh failed, serving stale prices")
			}
		}
	}
}

func (s *Snapshot) Refresh(ctx context.Context) error {
	coins, err := s.source.Markets(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]domain.Coin, len(coins))
	for _, coin := range coins {
		byID[coin.ID] = coin
	}

	s.mu.Lock()
	s.coins = coins
	s.byID = byID
	s.refreshed = time.Now()
	s.mu.Unlock()

	s.logger.Debug().Int("coins", len(coins)).Msg("Market snapshot refreshed")

	if s.onRefresh != nil {
		s.onRefresh(coins)
	}
	return nil
}

// Coins returns the cached listing in rank order.
func (s *Snapshot) Coins() []domain.Coin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Coin, len(s.coins))
	copy(out, s.coins)
	return out
}

// Coin looks a single coin up by id.
func (s *Snapshot) Coin(id string) (domain.Coin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coin, ok := s.byID[id]
	return coin, ok
}

// RefreshedAt reports when the cache last succeeded, zero before the
// first successful fetch.
func (s *Snapshot) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed
}
