package service

import (
	"context"
	"testing"

	"github.com/averin/budgetwatch/internal/store"
	"github.com/averin/budgetwatch/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_TrackedBudgetsRoundTrip(t *testing.T) {
	svc := NewSettingsService(newTestKV(t))
	ctx := context.Background()

	got, err := svc.TrackedBudgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, svc.SetTrackedBudgets(ctx, []string{"b1", "b2"}))

	got, err = svc.TrackedBudgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, got)
}

func TestSettings_ThresholdsAbsentUntilConfigured(t *testing.T) {
	svc := NewSettingsService(newTestKV(t))
	ctx := context.Background()

	_, configured, err := svc.Thresholds(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, configured)

	want := models.BudgetAlertThresholds{
		Overspending:        true,
		ReconcileMaxAgeDays: map[string]int{"a1": 7},
	}
	require.NoError(t, svc.SetThresholds(ctx, "b1", want))

	got, configured, err := svc.Thresholds(ctx, "b1")
	require.NoError(t, err)
	require.True(t, configured)
	assert.Equal(t, want, got)

	// per-budget isolation
	_, configured, err = svc.Thresholds(ctx, "b2")
	require.NoError(t, err)
	assert.False(t, configured)
}

func TestSettings_NotificationsEnabledDefaultsTrue(t *testing.T) {
	svc := NewSettingsService(newTestKV(t))
	ctx := context.Background()

	enabled, err := svc.NotificationsEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, svc.SetNotificationsEnabled(ctx, false))

	enabled, err = svc.NotificationsEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestSettings_SnapshotRoundTrip(t *testing.T) {
	svc := NewSettingsService(newTestKV(t))
	ctx := context.Background()

	got, err := svc.Snapshot(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, got)

	snapshot := &models.AlertSnapshot{
		Accounts:         map[string]models.AccountAlert{"a1": {Name: "Checking", ImportError: true}},
		Categories:       map[string]models.CategoryAlert{},
		NumUnapprovedTxs: 3,
	}
	require.NoError(t, svc.SaveSnapshot(ctx, "b1", snapshot))

	got, err = svc.Snapshot(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, snapshot.Equal(got))
}

func TestSettings_SaveNilSnapshotDeletes(t *testing.T) {
	svc := NewSettingsService(newTestKV(t))
	ctx := context.Background()

	snapshot := &models.AlertSnapshot{NumUnapprovedTxs: 1}
	require.NoError(t, svc.SaveSnapshot(ctx, "b1", snapshot))
	require.NoError(t, svc.SaveSnapshot(ctx, "b1", nil))

	got, err := svc.Snapshot(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettings_RequestSyncWritesWatchKey(t *testing.T) {
	kv := newTestKV(t)
	svc := NewSettingsService(kv)
	ctx := context.Background()

	require.NoError(t, svc.RequestSync(ctx))

	raw, err := kv.Get(ctx, store.KeySyncRequest)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}
