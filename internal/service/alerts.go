package service

import (
	"time"

	"github.com/averin/budgetwatch/models"
)

// AlertInputs carries the synced resources the alert derivation works on.
// Inputs are fetched lazily; a nil slice with its fetched flag unset means
// the corresponding threshold was disabled and the data was never
// requested.
type AlertInputs struct {
	Accounts   []models.Account
	Categories []models.Category

	Unapproved        []models.Transaction
	UnapprovedFetched bool
}

// DeriveAlerts maps a budget's synced resources plus the user-configured
// thresholds to an alert snapshot. Pure and deterministic for a fixed now.
//
// Returns nil when no alert condition holds at all; otherwise the full
// snapshot including empty sub-maps, so a caller diffing against a
// previous snapshot can detect "there used to be alerts, now none".
func DeriveAlerts(thresholds models.BudgetAlertThresholds, in AlertInputs, now time.Time) *models.AlertSnapshot {
	snapshot := &models.AlertSnapshot{
		Accounts:   make(map[string]models.AccountAlert),
		Categories: make(map[string]models.CategoryAlert),
	}

	for _, account := range in.Accounts {
		if account.Deleted || account.Closed {
			continue
		}

		var alert models.AccountAlert
		if thresholds.ImportError && account.DirectImportInError {
			alert.ImportError = true
		}

		maxAgeDays, configured := thresholds.ReconcileMaxAgeDays[account.ID]
		if configured && account.LastReconciledAt != nil {
			age := now.Sub(*account.LastReconciledAt)
			if age > time.Duration(maxAgeDays)*24*time.Hour {
				alert.ReconcileOverdue = true
				alert.DaysSinceReconcile = int(age.Hours() / 24)
			}
		}

		if alert.ImportError || alert.ReconcileOverdue {
			alert.Name = account.Name
			snapshot.Accounts[account.ID] = alert
		}
	}

	if thresholds.Overspending {
		for _, category := range in.Categories {
			if category.Deleted || category.Hidden {
				continue
			}
			if category.Balance < 0 {
				snapshot.Categories[category.ID] = models.CategoryAlert{
					Name:    category.Name,
					Balance: category.Balance,
				}
			}
		}
	}

	if thresholds.UnapprovedTransactions && in.UnapprovedFetched {
		snapshot.NumUnapprovedTxs = len(in.Unapproved)
	}

	if snapshot.Empty() {
		return nil
	}

	return snapshot
}
