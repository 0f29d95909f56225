package models

// Category is one budget category. Group membership is carried on the
// record itself (GroupID/GroupName) rather than by position in the
// response, so the merge algorithm can treat categories as a flat
// collection. Balance is in milliunits.
type Category struct {
	ID        string `json:"id"`
	GroupID   string `json:"category_group_id"`
	GroupName string `json:"category_group_name,omitempty"`
	Name      string `json:"name"`
	Hidden    bool   `json:"hidden"`
	Budgeted  int64  `json:"budgeted"`
	Activity  int64  `json:"activity"`
	Balance   int64  `json:"balance"`
	Deleted   bool   `json:"deleted"`
}

// RecordID implements Record.
func (c Category) RecordID() string { return c.ID }

// IsDeleted implements Record.
func (c Category) IsDeleted() bool { return c.Deleted }

// CategoryChanges is the result of one categories fetch: the changed
// category records plus the ids of category groups the service reported
// as deleted. Deleted groups do not necessarily itemize child tombstones,
// so the fetch policy drops members of those groups after the merge.
type CategoryChanges struct {
	Categories      []Category
	DeletedGroupIDs []string
}
