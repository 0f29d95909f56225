package service

import (
	"github.com/averin/budgetwatch/models"
)

// Merge folds a delta batch into an existing collection and returns the
// new collection. It is pure and idempotent under replay: each record in
// the batch fully replaces any existing record with the same id, so
// applying the same batch twice equals applying it once.
//
// Records are processed in batch order; when the same id appears more
// than once in one batch, the last occurrence wins. Tombstones
// (IsDeleted) remove the record; an upsert for an unknown id is an
// insert. Existing records keep their relative order, inserts are
// appended in first-appearance order. O(len(existing) + len(delta)).
//
// Deleting a container record does not cascade to its children here;
// see [DropGroupMembers] for the reconciliation pass the category fetch
// runs after every merge.
func Merge[T models.Record](existing, delta []T) []T {
	byID := make(map[string]T, len(existing)+len(delta))
	order := make([]string, 0, len(existing)+len(delta))
	ordered := make(map[string]struct{}, len(existing)+len(delta))

	appendOrder := func(id string) {
		if _, ok := ordered[id]; !ok {
			ordered[id] = struct{}{}
			order = append(order, id)
		}
	}

	for _, r := range existing {
		id := r.RecordID()
		appendOrder(id)
		byID[id] = r
	}

	for _, r := range delta {
		id := r.RecordID()
		if r.IsDeleted() {
			delete(byID, id)
			continue
		}
		appendOrder(id)
		byID[id] = r
	}

	merged := make([]T, 0, len(byID))
	for _, id := range order {
		if r, ok := byID[id]; ok {
			merged = append(merged, r)
		}
	}

	return merged
}

// DropGroupMembers removes the categories belonging to any of the given
// deleted groups. The upstream service does not guarantee child
// tombstones when a whole group is deleted, so the category fetch runs
// this pass after each merge. Pure; returns the input slice untouched
// when there is nothing to drop.
func DropGroupMembers(categories []models.Category, deletedGroupIDs []string) []models.Category {
	if len(deletedGroupIDs) == 0 {
		return categories
	}

	deleted := make(map[string]struct{}, len(deletedGroupIDs))
	for _, id := range deletedGroupIDs {
		deleted[id] = struct{}{}
	}

	kept := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if _, gone := deleted[c.GroupID]; !gone {
			kept = append(kept, c)
		}
	}

	return kept
}
