package models

import "github.com/shopspring/decimal"

// BudgetAlertThresholds is the per-budget alert configuration set by the
// user. A budget without stored thresholds is never processed by the
// background cycle.
type BudgetAlertThresholds struct {
	// Overspending enables per-category negative-balance alerts.
	Overspending bool `json:"overspending"`

	// ImportError enables per-account direct-import failure alerts.
	ImportError bool `json:"import_error"`

	// UnapprovedTransactions enables counting of unapproved transactions.
	UnapprovedTransactions bool `json:"unapproved_transactions"`

	// ReconcileMaxAgeDays maps an account id to the maximum number of days
	// since its last reconciliation before a reconcile alert fires.
	ReconcileMaxAgeDays map[string]int `json:"reconcile_max_age_days,omitempty"`
}

// NeedsAccounts reports whether any enabled threshold requires account data.
func (t BudgetAlertThresholds) NeedsAccounts() bool {
	return t.ImportError || len(t.ReconcileMaxAgeDays) > 0
}

// NeedsCategories reports whether any enabled threshold requires category data.
func (t BudgetAlertThresholds) NeedsCategories() bool {
	return t.Overspending
}

// NeedsTransactions reports whether unapproved transactions must be fetched.
func (t BudgetAlertThresholds) NeedsTransactions() bool {
	return t.UnapprovedTransactions
}

// AccountAlert is the set of alert conditions currently true for one account.
type AccountAlert struct {
	Name               string `json:"name"`
	ImportError        bool   `json:"import_error,omitempty"`
	ReconcileOverdue   bool   `json:"reconcile_overdue,omitempty"`
	DaysSinceReconcile int    `json:"days_since_reconcile,omitempty"`
}

func (a AccountAlert) conditions() int {
	n := 0
	if a.ImportError {
		n++
	}
	if a.ReconcileOverdue {
		n++
	}
	return n
}

// CategoryAlert is the alert state of one overspent category.
type CategoryAlert struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"` // milliunits, negative when overspent
}

// AlertSnapshot is the full set of currently-true alert conditions for one
// budget. It is derived, never hand-edited: recomputed every sync cycle,
// compared structurally against the previously persisted snapshot, and
// stored regardless of whether it changed.
type AlertSnapshot struct {
	Accounts         map[string]AccountAlert  `json:"accounts"`
	Categories       map[string]CategoryAlert `json:"categories"`
	NumUnapprovedTxs int                      `json:"num_unapproved_txs"`
}

// Empty reports whether the snapshot carries no alert conditions at all.
func (s *AlertSnapshot) Empty() bool {
	return s == nil || (len(s.Accounts) == 0 && len(s.Categories) == 0 && s.NumUnapprovedTxs == 0)
}

// Count returns the number of individual alert conditions in the snapshot,
// used for the aggregate badge indicator.
func (s *AlertSnapshot) Count() int {
	if s == nil {
		return 0
	}

	n := len(s.Categories)
	for _, a := range s.Accounts {
		n += a.conditions()
	}
	if s.NumUnapprovedTxs > 0 {
		n++
	}
	return n
}

// Equal compares two snapshots structurally. Map iteration order never
// influences the result, so snapshots that differ only by insertion order
// compare equal. Nil and empty snapshots are distinct: nil means "no
// snapshot stored", an empty snapshot means "alerts existed and cleared".
func (s *AlertSnapshot) Equal(o *AlertSnapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.NumUnapprovedTxs != o.NumUnapprovedTxs {
		return false
	}
	if len(s.Accounts) != len(o.Accounts) || len(s.Categories) != len(o.Categories) {
		return false
	}

	for id, a := range s.Accounts {
		if b, ok := o.Accounts[id]; !ok || a != b {
			return false
		}
	}
	for id, c := range s.Categories {
		if d, ok := o.Categories[id]; !ok || c != d {
			return false
		}
	}
	return true
}

// FormatMilliunits renders a milliunit amount as a plain decimal currency
// string, e.g. -12340 -> "-12.34".
func FormatMilliunits(amount int64) string {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(1000)).StringFixed(2)
}
