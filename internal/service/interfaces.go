// SPDX-License-Identifier: Apache-2.0

// Package service holds the incremental synchronization and alerting
// engine: the delta-merge algorithm, the cache/staleness fetch policy,
// the token lifecycle coordinator, the alert derivation logic, and the
// background sync cycle that orchestrates them.
package service

import (
	"context"

	"github.com/averin/budgetwatch/models"
)

// TokenService is the token lifecycle coordinator. It keeps the single
// process-wide credential pair fresh, renewing proactively before expiry
// with at most one renewal in flight (a persisted advisory flag extends
// the guarantee across processes, best effort).
type TokenService interface {
	// EnsureValid returns a usable access token, refreshing it first when
	// it is inside the renewal window. When another refresh is already in
	// flight the stale token is returned as long as it has not hard
	// expired. Returns [ErrNoToken] when no credential is stored and
	// [ErrReauthRequired] when the service rejected the refresh token and
	// the credential was cleared.
	EnsureValid(ctx context.Context) (models.TokenData, error)

	// Current returns the stored credential without triggering a refresh.
	// The second return value is false when none is stored.
	Current(ctx context.Context) (models.TokenData, bool, error)

	// Store persists a credential obtained out of band (initial
	// authorization) and arms the transport with its access token.
	Store(ctx context.Context, token models.TokenData) error
}

// ResourceService reads budget resources through the shared cache. The
// plain getters serve UI-triggered reads: they return the cached envelope
// while it is fresh and re-fetch otherwise. The Refresh variants always
// go to the service and are what the background cycle uses.
//
// Every refresh follows the same fetch policy: a nil stored cursor forces
// a full fetch, otherwise an incremental fetch with one automatic
// full-fetch fallback when the service no longer accepts the cursor. The
// stored cursor never moves backwards.
type ResourceService interface {
	Budgets(ctx context.Context) ([]models.Budget, error)
	RefreshBudgets(ctx context.Context) ([]models.Budget, error)

	Accounts(ctx context.Context, budgetID string) (models.Envelope[models.Account], error)
	RefreshAccounts(ctx context.Context, budgetID string) (models.Envelope[models.Account], error)

	Categories(ctx context.Context, budgetID string) (models.Envelope[models.Category], error)
	RefreshCategories(ctx context.Context, budgetID string) (models.Envelope[models.Category], error)

	Payees(ctx context.Context, budgetID string) (models.Envelope[models.Payee], error)
	RefreshPayees(ctx context.Context, budgetID string) (models.Envelope[models.Payee], error)

	// RefreshUnapprovedTransactions fetches the unapproved transactions of
	// the recent window. The endpoint has no delta support; the envelope
	// carries no cursor.
	RefreshUnapprovedTransactions(ctx context.Context, budgetID string) (models.Envelope[models.Transaction], error)
}

// SettingsService persists user configuration and derived alert state in
// the durable store: tracked budgets, per-budget thresholds, the
// notification switch, and the last alert snapshot per budget.
type SettingsService interface {
	TrackedBudgets(ctx context.Context) ([]string, error)
	SetTrackedBudgets(ctx context.Context, budgetIDs []string) error

	// Thresholds returns the alert configuration of a budget. The second
	// return value is false when the budget was never configured.
	Thresholds(ctx context.Context, budgetID string) (models.BudgetAlertThresholds, bool, error)
	SetThresholds(ctx context.Context, budgetID string, t models.BudgetAlertThresholds) error

	NotificationsEnabled(ctx context.Context) (bool, error)
	SetNotificationsEnabled(ctx context.Context, enabled bool) error

	// Snapshot returns the last persisted alert snapshot of a budget, or
	// nil when none is stored.
	Snapshot(ctx context.Context, budgetID string) (*models.AlertSnapshot, error)

	// SaveSnapshot replaces the persisted snapshot. A nil snapshot removes
	// the stored value ("no alerts, nothing to store").
	SaveSnapshot(ctx context.Context, budgetID string, snapshot *models.AlertSnapshot) error

	// RequestSync writes the sync-request key, waking any process watching
	// it into an immediate cycle.
	RequestSync(ctx context.Context) error
}

// CycleService runs one background synchronization cycle: token step,
// per-budget resource refresh driven by the enabled thresholds, alert
// derivation, snapshot diff, notification, and indicator update.
type CycleService interface {
	// Run executes one cycle. Returns [ErrCycleInProgress] when another
	// cycle holds the guard and [ErrNoTrackedBudgets] when there is
	// nothing to sync; per-budget failures are logged and isolated, never
	// returned.
	Run(ctx context.Context) error
}
