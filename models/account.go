package models

import "time"

// Account is one budget account as reported by the budgeting service.
// Balance is in milliunits (1/1000 of the currency unit), matching the
// upstream wire format.
type Account struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	OnBudget            bool       `json:"on_budget"`
	Closed              bool       `json:"closed"`
	Balance             int64      `json:"balance"`
	DirectImportInError bool       `json:"direct_import_in_error"`
	LastReconciledAt    *time.Time `json:"last_reconciled_at,omitempty"`
	Deleted             bool       `json:"deleted"`
}

// RecordID implements Record.
func (a Account) RecordID() string { return a.ID }

// IsDeleted implements Record.
func (a Account) IsDeleted() bool { return a.Deleted }
