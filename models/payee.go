package models

// Payee is one payee record of a budget.
type Payee struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// RecordID implements Record.
func (p Payee) RecordID() string { return p.ID }

// IsDeleted implements Record.
func (p Payee) IsDeleted() bool { return p.Deleted }
