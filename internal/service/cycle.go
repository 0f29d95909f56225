package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/averin/budgetwatch/internal/logger"
	"github.com/averin/budgetwatch/internal/notify"
	"github.com/averin/budgetwatch/internal/store"
	"github.com/averin/budgetwatch/models"
	"github.com/google/uuid"
)

type cycleFlag struct {
	StartedAt time.Time `json:"started_at"`
}

type syncCycle struct {
	kv        store.KeyValue
	tokens    TokenService
	resources ResourceService
	settings  SettingsService
	notifier  notify.Notifier
	indicator notify.Indicator
	log       *logger.Logger

	// guardTTL bounds the persisted cycle flag; a flag older than this
	// belongs to a crashed cycle and is ignored. Set to the scheduler
	// interval so a long cycle makes the next trigger skip, not queue.
	guardTTL time.Duration
	now      func() time.Time
	running  atomic.Bool
}

// NewSyncCycle builds the [CycleService] implementation. guardTTL should
// equal the scheduler interval.
func NewSyncCycle(
	kv store.KeyValue,
	tokens TokenService,
	resources ResourceService,
	settings SettingsService,
	notifier notify.Notifier,
	indicator notify.Indicator,
	guardTTL time.Duration,
	log *logger.Logger,
) CycleService {
	return &syncCycle{
		kv:        kv,
		tokens:    tokens,
		resources: resources,
		settings:  settings,
		notifier:  notifier,
		indicator: indicator,
		guardTTL:  guardTTL,
		log:       log,
		now:       time.Now,
	}
}

// Run implements CycleService.
func (c *syncCycle) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrCycleInProgress
	}
	defer c.running.Store(false)

	now := c.now()
	if c.cycleInProgress(ctx, now) {
		return ErrCycleInProgress
	}
	// a credential refresh in another process also blocks the cycle: it
	// would otherwise run on a token that is being replaced underneath it
	if c.refreshInFlight(ctx, now) {
		return ErrCycleInProgress
	}
	c.setCycleFlag(ctx, now)
	defer c.clearCycleFlag(ctx)

	log := c.log.GetChildLogger()
	log.Logger = log.With().Str("cycle_id", uuid.NewString()).Logger()

	if _, err := c.tokens.EnsureValid(ctx); err != nil {
		log.Error().Err(err).Msg("cycle aborted: no valid token")
		return fmt.Errorf("ensure valid token: %w", err)
	}

	budgetIDs, err := c.settings.TrackedBudgets(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cycle aborted: tracked budgets unavailable")
		return fmt.Errorf("resolve tracked budgets: %w", err)
	}
	if len(budgetIDs) == 0 {
		log.Debug().Msg("cycle skipped: no tracked budgets")
		return ErrNoTrackedBudgets
	}

	notificationsEnabled, err := c.settings.NotificationsEnabled(ctx)
	if err != nil {
		log.Error().Err(err).Msg("read notifications switch")
		notificationsEnabled = false
	}

	totalAlerts := 0
	for _, budgetID := range budgetIDs {
		count, budgetErr := c.processBudget(ctx, log, budgetID, notificationsEnabled)
		if budgetErr != nil {
			// one failing budget never aborts the others
			log.Error().Err(budgetErr).Str("budget_id", budgetID).Msg("budget sync failed")
			continue
		}
		totalAlerts += count
	}

	c.indicator.SetCount(totalAlerts)
	c.indicator.SetTooltip(tooltipText(totalAlerts))

	log.Info().Int("alerts", totalAlerts).Int("budgets", len(budgetIDs)).Msg("cycle finished")
	return nil
}

// processBudget syncs the resources one budget's enabled thresholds
// require, derives the alert snapshot, diffs it against the stored one,
// and notifies on structural change (including resolution). The snapshot
// is persisted regardless, so stored state always reflects reality.
func (c *syncCycle) processBudget(ctx context.Context, log *logger.Logger, budgetID string, notificationsEnabled bool) (int, error) {
	thresholds, configured, err := c.settings.Thresholds(ctx, budgetID)
	if err != nil {
		return 0, err
	}
	if !configured {
		log.Debug().Str("budget_id", budgetID).Msg("budget has no alert config, skipping")
		return 0, nil
	}

	var inputs AlertInputs

	if thresholds.NeedsTransactions() {
		env, err := c.resources.RefreshUnapprovedTransactions(ctx, budgetID)
		if err != nil {
			return 0, err
		}
		inputs.Unapproved = env.Data
		inputs.UnapprovedFetched = true
	}
	if thresholds.NeedsAccounts() {
		env, err := c.resources.RefreshAccounts(ctx, budgetID)
		if err != nil {
			return 0, err
		}
		inputs.Accounts = env.Data
	}
	if thresholds.NeedsCategories() {
		env, err := c.resources.RefreshCategories(ctx, budgetID)
		if err != nil {
			return 0, err
		}
		inputs.Categories = env.Data
	}

	snapshot := DeriveAlerts(thresholds, inputs, c.now())

	previous, err := c.settings.Snapshot(ctx, budgetID)
	if err != nil {
		return 0, err
	}

	if !previous.Equal(snapshot) && notificationsEnabled {
		title, body := summarize(snapshot, c.budgetName(ctx, budgetID))
		c.notifier.Notify(title, body)
	}

	if err := c.settings.SaveSnapshot(ctx, budgetID, snapshot); err != nil {
		return 0, err
	}

	return snapshot.Count(), nil
}

func (c *syncCycle) budgetName(ctx context.Context, budgetID string) string {
	budgets, err := c.resources.Budgets(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("resolve budget name")
		return budgetID
	}
	for _, b := range budgets {
		if b.ID == budgetID {
			return b.Name
		}
	}
	return budgetID
}

func (c *syncCycle) cycleInProgress(ctx context.Context, now time.Time) bool {
	flag, ok, err := store.GetJSON[cycleFlag](ctx, c.kv, store.KeyCycleInProgress)
	if err != nil {
		c.log.Error().Err(err).Msg("read cycle flag")
		return false
	}

	return ok && now.Sub(flag.StartedAt) < c.guardTTL
}

func (c *syncCycle) refreshInFlight(ctx context.Context, now time.Time) bool {
	flag, ok, err := store.GetJSON[refreshingFlag](ctx, c.kv, store.KeyTokenRefreshing)
	if err != nil {
		c.log.Error().Err(err).Msg("read refreshing flag")
		return false
	}

	return ok && now.Sub(flag.SetAt) < refreshFlagTTL
}

func (c *syncCycle) setCycleFlag(ctx context.Context, now time.Time) {
	if err := store.SetJSON(ctx, c.kv, store.KeyCycleInProgress, cycleFlag{StartedAt: now}); err != nil {
		c.log.Error().Err(err).Msg("set cycle flag")
	}
}

func (c *syncCycle) clearCycleFlag(ctx context.Context) {
	if err := c.kv.Delete(ctx, store.KeyCycleInProgress); err != nil {
		c.log.Error().Err(err).Msg("clear cycle flag")
	}
}

// summarize renders a snapshot as a notification title and body. A nil
// or empty snapshot means the previous alerts resolved.
func summarize(s *models.AlertSnapshot, budgetName string) (string, string) {
	if s.Empty() {
		return budgetName, "All alerts resolved."
	}

	var lines []string

	accountIDs := sortedKeys(s.Accounts)
	for _, id := range accountIDs {
		alert := s.Accounts[id]
		if alert.ImportError {
			lines = append(lines, fmt.Sprintf("%s: import error", alert.Name))
		}
		if alert.ReconcileOverdue {
			lines = append(lines, fmt.Sprintf("%s: not reconciled for %d days", alert.Name, alert.DaysSinceReconcile))
		}
	}

	categoryIDs := sortedKeys(s.Categories)
	for _, id := range categoryIDs {
		alert := s.Categories[id]
		lines = append(lines, fmt.Sprintf("%s: overspent by %s", alert.Name, models.FormatMilliunits(-alert.Balance)))
	}

	if s.NumUnapprovedTxs > 0 {
		lines = append(lines, fmt.Sprintf("%d unapproved transactions", s.NumUnapprovedTxs))
	}

	return budgetName, strings.Join(lines, "\n")
}

func tooltipText(totalAlerts int) string {
	if totalAlerts == 0 {
		return "budgetwatch: no alerts"
	}
	if totalAlerts == 1 {
		return "budgetwatch: 1 alert"
	}
	return fmt.Sprintf("budgetwatch: %d alerts", totalAlerts)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
