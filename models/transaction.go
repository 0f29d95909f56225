package models

// Transaction is one budget transaction. Amount is in milliunits; negative
// amounts are outflows. Only the fields the alert engine needs are mapped;
// everything else the service returns is dropped at the adapter boundary.
type Transaction struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Amount    int64  `json:"amount"`
	PayeeName string `json:"payee_name,omitempty"`
	Approved  bool   `json:"approved"`
	Deleted   bool   `json:"deleted"`
}

// RecordID implements Record.
func (t Transaction) RecordID() string { return t.ID }

// IsDeleted implements Record.
func (t Transaction) IsDeleted() bool { return t.Deleted }
