package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/averin/budgetwatch/internal/store"
	"github.com/averin/budgetwatch/models"
)

type settingsService struct {
	kv store.KeyValue
}

// NewSettingsService builds the [SettingsService] implementation over the
// durable store.
func NewSettingsService(kv store.KeyValue) SettingsService {
	return &settingsService{kv: kv}
}

func (s *settingsService) TrackedBudgets(ctx context.Context) ([]string, error) {
	ids, _, err := store.GetJSON[[]string](ctx, s.kv, store.KeyTrackedBudgets)
	if err != nil {
		return nil, fmt.Errorf("load tracked budgets: %w", err)
	}
	return ids, nil
}

func (s *settingsService) SetTrackedBudgets(ctx context.Context, budgetIDs []string) error {
	if err := store.SetJSON(ctx, s.kv, store.KeyTrackedBudgets, budgetIDs); err != nil {
		return fmt.Errorf("save tracked budgets: %w", err)
	}
	return nil
}

func (s *settingsService) Thresholds(ctx context.Context, budgetID string) (models.BudgetAlertThresholds, bool, error) {
	thresholds, ok, err := store.GetJSON[models.BudgetAlertThresholds](ctx, s.kv, store.ThresholdsKey(budgetID))
	if err != nil {
		return models.BudgetAlertThresholds{}, false, fmt.Errorf("load thresholds for %s: %w", budgetID, err)
	}
	return thresholds, ok, nil
}

func (s *settingsService) SetThresholds(ctx context.Context, budgetID string, t models.BudgetAlertThresholds) error {
	if err := store.SetJSON(ctx, s.kv, store.ThresholdsKey(budgetID), t); err != nil {
		return fmt.Errorf("save thresholds for %s: %w", budgetID, err)
	}
	return nil
}

// NotificationsEnabled defaults to true until the user switches it off.
func (s *settingsService) NotificationsEnabled(ctx context.Context) (bool, error) {
	enabled, ok, err := store.GetJSON[bool](ctx, s.kv, store.KeyNotificationsEnabled)
	if err != nil {
		return false, fmt.Errorf("load notifications switch: %w", err)
	}
	if !ok {
		return true, nil
	}
	return enabled, nil
}

func (s *settingsService) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	if err := store.SetJSON(ctx, s.kv, store.KeyNotificationsEnabled, enabled); err != nil {
		return fmt.Errorf("save notifications switch: %w", err)
	}
	return nil
}

func (s *settingsService) Snapshot(ctx context.Context, budgetID string) (*models.AlertSnapshot, error) {
	snapshot, ok, err := store.GetJSON[models.AlertSnapshot](ctx, s.kv, store.SnapshotKey(budgetID))
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", budgetID, err)
	}
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}

func (s *settingsService) SaveSnapshot(ctx context.Context, budgetID string, snapshot *models.AlertSnapshot) error {
	key := store.SnapshotKey(budgetID)

	if snapshot == nil {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear snapshot for %s: %w", budgetID, err)
		}
		return nil
	}

	if err := store.SetJSON(ctx, s.kv, key, *snapshot); err != nil {
		return fmt.Errorf("save snapshot for %s: %w", budgetID, err)
	}
	return nil
}

func (s *settingsService) RequestSync(ctx context.Context) error {
	stamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := s.kv.Set(ctx, store.KeySyncRequest, []byte(stamp)); err != nil {
		return fmt.Errorf("request sync: %w", err)
	}
	return nil
}
