package service

import (
	"testing"
	"time"

	"github.com/averin/budgetwatch/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daysAgo(now time.Time, days int) *time.Time {
	t := now.Add(-time.Duration(days) * 24 * time.Hour)
	return &t
}

func TestDeriveAlerts_NoConditionsReturnsNil(t *testing.T) {
	now := time.Now()
	thresholds := models.BudgetAlertThresholds{Overspending: true, ImportError: true}
	in := AlertInputs{
		Accounts:   []models.Account{{ID: "a1", Name: "Checking"}},
		Categories: []models.Category{{ID: "c1", Name: "Food", Balance: 5000}},
	}

	assert.Nil(t, DeriveAlerts(thresholds, in, now))
}

func TestDeriveAlerts_ImportError(t *testing.T) {
	now := time.Now()
	thresholds := models.BudgetAlertThresholds{ImportError: true}
	in := AlertInputs{
		Accounts: []models.Account{
			{ID: "a1", Name: "Checking", DirectImportInError: true},
			{ID: "a2", Name: "Savings"},
		},
	}

	got := DeriveAlerts(thresholds, in, now)

	require.NotNil(t, got)
	require.Contains(t, got.Accounts, "a1")
	assert.True(t, got.Accounts["a1"].ImportError)
	assert.Equal(t, "Checking", got.Accounts["a1"].Name)
	assert.NotContains(t, got.Accounts, "a2")
}

func TestDeriveAlerts_ImportErrorDisabledIsIgnored(t *testing.T) {
	now := time.Now()
	thresholds := models.BudgetAlertThresholds{Overspending: true}
	in := AlertInputs{
		Accounts: []models.Account{{ID: "a1", DirectImportInError: true}},
	}

	assert.Nil(t, DeriveAlerts(thresholds, in, now))
}

func TestDeriveAlerts_SkipsClosedAndDeletedAccounts(t *testing.T) {
	now := time.Now()
	thresholds := models.BudgetAlertThresholds{ImportError: true}
	in := AlertInputs{
		Accounts: []models.Account{
			{ID: "a1", Closed: true, DirectImportInError: true},
			{ID: "a2", Deleted: true, DirectImportInError: true},
		},
	}

	assert.Nil(t, DeriveAlerts(thresholds, in, now))
}

func TestDeriveAlerts_ReconcileOverdue(t *testing.T) {
	now := time.Now()
	thresholds := models.BudgetAlertThresholds{
		ReconcileMaxAgeDays: map[string]int{"a1": 7, "a2": 30},
	}
	in := AlertInputs{
		Accounts: []models.Account{
			{ID: "a1", Name: "Checking", LastReconciledAt: daysAgo(now, 10)},
			{ID: "a2", Name: "Savings", LastReconciledAt: daysAgo(now, 10)},
		},
	}

	got := DeriveAlerts(thresholds, in, now)

	require.NotNil(t, got)
	require.Contains(t, got.Accounts, "a1")
	assert.True(t, got.Accounts["a1"].ReconcileOverdue)
	assert.Equal(t, 10, got.Accounts["a1"].DaysSinceReconcile)
	assert.NotContains(t, got.Accounts, "a2")
}

func TestDeriveAlerts_NeverReconciledAccountDoesNotFire(t *testing.T) {
	now := time.Now()
	thresholds := models.BudgetAlertThresholds{
		ReconcileMaxAgeDays: map[string]int{"a1": 7},
	}
	in := AlertInputs{
		Accounts: []models.Account{{ID: "a1", Name: "Checking"}},
	}

	assert.Nil(t, DeriveAlerts(thresholds, in, now))
}

func TestDeriveAlerts_Overspending(t *testing.T) {
	now := time.Now()
	thresholds := models.BudgetAlertThresholds{Overspending: true}
	in := AlertInputs{
		Categories: []models.Category{
			{ID: "c1", Name: "Food", Balance: -12340},
			{ID: "c2", Name: "Rent", Balance: 0},
			{ID: "c3", Name: "Fun", Balance: -1, Hidden: true},
			{ID: "c4", Name: "Gone", Balance: -1, Deleted: true},
		},
	}

	got := DeriveAlerts(thresholds, in, now)

	require.NotNil(t, got)
	assert.Len(t, got.Categories, 1)
	assert.Equal(t, models.CategoryAlert{Name: "Food", Balance: -12340}, got.Categories["c1"])
}

func TestDeriveAlerts_UnapprovedCount(t *testing.T) {
	now := time.Now()
	thresholds := models.BudgetAlertThresholds{UnapprovedTransactions: true}
	in := AlertInputs{
		Unapproved:        []models.Transaction{{ID: "t1"}, {ID: "t2"}},
		UnapprovedFetched: true,
	}

	got := DeriveAlerts(thresholds, in, now)

	require.NotNil(t, got)
	assert.Equal(t, 2, got.NumUnapprovedTxs)
	assert.Equal(t, 1, got.Count())
}

func TestDeriveAlerts_CountSumsConditions(t *testing.T) {
	now := time.Now()
	thresholds := models.BudgetAlertThresholds{
		Overspending:           true,
		ImportError:            true,
		UnapprovedTransactions: true,
		ReconcileMaxAgeDays:    map[string]int{"a1": 1},
	}
	in := AlertInputs{
		Accounts: []models.Account{
			{ID: "a1", Name: "Checking", DirectImportInError: true, LastReconciledAt: daysAgo(now, 5)},
		},
		Categories:        []models.Category{{ID: "c1", Name: "Food", Balance: -100}},
		Unapproved:        []models.Transaction{{ID: "t1"}},
		UnapprovedFetched: true,
	}

	got := DeriveAlerts(thresholds, in, now)

	require.NotNil(t, got)
	// import error + reconcile overdue + overspent category + unapproved batch
	assert.Equal(t, 4, got.Count())
}

// ── Snapshot comparison ──────────────────────────────────────────────────────

func TestAlertSnapshot_EqualIgnoresMapOrder(t *testing.T) {
	a := &models.AlertSnapshot{
		Accounts: map[string]models.AccountAlert{
			"a1": {Name: "Checking", ImportError: true},
			"a2": {Name: "Savings", ReconcileOverdue: true, DaysSinceReconcile: 12},
		},
		Categories: map[string]models.CategoryAlert{},
	}
	b := &models.AlertSnapshot{
		Accounts: map[string]models.AccountAlert{
			"a2": {Name: "Savings", ReconcileOverdue: true, DaysSinceReconcile: 12},
			"a1": {Name: "Checking", ImportError: true},
		},
		Categories: map[string]models.CategoryAlert{},
	}

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestAlertSnapshot_EqualDetectsValueChange(t *testing.T) {
	a := &models.AlertSnapshot{
		Categories: map[string]models.CategoryAlert{"c1": {Name: "Food", Balance: -100}},
	}
	b := &models.AlertSnapshot{
		Categories: map[string]models.CategoryAlert{"c1": {Name: "Food", Balance: -200}},
	}

	assert.False(t, a.Equal(b))
}

func TestAlertSnapshot_NilAndEmptyAreDistinct(t *testing.T) {
	var absent *models.AlertSnapshot
	cleared := &models.AlertSnapshot{
		Accounts:   map[string]models.AccountAlert{},
		Categories: map[string]models.CategoryAlert{},
	}

	assert.False(t, absent.Equal(cleared))
	assert.False(t, cleared.Equal(absent))
	assert.True(t, absent.Equal(nil))
	assert.True(t, absent.Empty())
	assert.True(t, cleared.Empty())
}
