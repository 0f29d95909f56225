package models

import "time"

// Budget is one budget visible to the authenticated user.
type Budget struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	LastModifiedOn *time.Time `json:"last_modified_on,omitempty"`
}

// RecordID implements Record.
func (b Budget) RecordID() string { return b.ID }

// IsDeleted implements Record. The budget list endpoint never returns
// tombstones; a removed budget simply disappears from the full fetch.
func (b Budget) IsDeleted() bool { return false }
