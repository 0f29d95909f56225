package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/averin/budgetwatch/internal/adapter"
	"github.com/averin/budgetwatch/internal/logger"
	"github.com/averin/budgetwatch/internal/store"
	"github.com/averin/budgetwatch/models"
)

// refreshFlagTTL bounds how long a persisted refreshing flag is honoured.
// A flag older than this belongs to a crashed holder and is ignored.
const refreshFlagTTL = time.Minute

type refreshingFlag struct {
	SetAt time.Time `json:"set_at"`
}

type tokenCoordinator struct {
	kv            store.KeyValue
	api           adapter.BudgetAPI
	renewalWindow time.Duration
	log           *logger.Logger

	now func() time.Time
	mu  sync.Mutex
}

// NewTokenCoordinator builds the [TokenService] implementation. The
// renewal window is the lead time before expiry during which a proactive
// refresh is triggered; it should exceed the duration of one sync cycle.
func NewTokenCoordinator(kv store.KeyValue, api adapter.BudgetAPI, renewalWindow time.Duration, log *logger.Logger) TokenService {
	return &tokenCoordinator{
		kv:            kv,
		api:           api,
		renewalWindow: renewalWindow,
		log:           log,
		now:           time.Now,
	}
}

func (c *tokenCoordinator) Current(ctx context.Context) (models.TokenData, bool, error) {
	return store.GetJSON[models.TokenData](ctx, c.kv, store.KeyToken)
}

func (c *tokenCoordinator) Store(ctx context.Context, token models.TokenData) error {
	if err := store.SetJSON(ctx, c.kv, store.KeyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	c.api.SetToken(token.AccessToken)
	return nil
}

// EnsureValid implements TokenService. The in-process mutex serialises
// concurrent callers within one process; the persisted flag makes the
// renewal advisory across processes. Either way at most one refresh call
// reaches the service per renewal window, and a lost race degrades to a
// redundant refresh, not corruption.
func (c *tokenCoordinator) EnsureValid(ctx context.Context) (models.TokenData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	token, ok, err := c.Current(ctx)
	if err != nil {
		return models.TokenData{}, fmt.Errorf("load token: %w", err)
	}
	if !ok || token.RefreshToken == "" {
		return models.TokenData{}, ErrNoToken
	}

	if token.Valid(now, c.renewalWindow) {
		c.api.SetToken(token.AccessToken)
		return token, nil
	}

	if c.refreshInFlight(ctx, now) {
		if token.Expired(now) {
			return models.TokenData{}, fmt.Errorf("token expired while another refresh is in flight: %w", ErrNoToken)
		}
		c.log.Warn().Msg("credential refresh already in flight, proceeding with stale token")
		c.api.SetToken(token.AccessToken)
		return token, nil
	}

	c.setRefreshFlag(ctx, now)
	defer c.clearRefreshFlag(ctx)

	fresh, err := c.api.RefreshCredential(ctx, token.RefreshToken)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			// the refresh token is dead; keeping it would only repeat the failure
			if delErr := c.kv.Delete(ctx, store.KeyToken); delErr != nil {
				c.log.Error().Err(delErr).Msg("clear rejected token")
			}
			return models.TokenData{}, fmt.Errorf("credential rejected: %w", ErrReauthRequired)
		}

		if !token.Expired(now) {
			c.log.Warn().Err(err).Msg("credential refresh failed, proceeding with stale token")
			c.api.SetToken(token.AccessToken)
			return token, nil
		}
		return models.TokenData{}, fmt.Errorf("refresh expired credential: %w", err)
	}

	if err := c.Store(ctx, fresh); err != nil {
		return models.TokenData{}, err
	}

	c.log.Info().Time("expires_at", fresh.ExpiresAt).Msg("credential refreshed")
	return fresh, nil
}

func (c *tokenCoordinator) refreshInFlight(ctx context.Context, now time.Time) bool {
	flag, ok, err := store.GetJSON[refreshingFlag](ctx, c.kv, store.KeyTokenRefreshing)
	if err != nil {
		c.log.Error().Err(err).Msg("read refreshing flag")
		return false
	}

	return ok && now.Sub(flag.SetAt) < refreshFlagTTL
}

func (c *tokenCoordinator) setRefreshFlag(ctx context.Context, now time.Time) {
	if err := store.SetJSON(ctx, c.kv, store.KeyTokenRefreshing, refreshingFlag{SetAt: now}); err != nil {
		c.log.Error().Err(err).Msg("set refreshing flag")
	}
}

func (c *tokenCoordinator) clearRefreshFlag(ctx context.Context) {
	if err := c.kv.Delete(ctx, store.KeyTokenRefreshing); err != nil {
		c.log.Error().Err(err).Msg("clear refreshing flag")
	}
}
