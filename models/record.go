package models

import "time"

// Cursor is the opaque "server knowledge" marker issued by the budgeting
// service. It is monotonically increasing: a cursor returned by a fetch is
// never older than the cursor that was sent with the request. A nil *Cursor
// means the collection has never been fetched and forces a full fetch.
type Cursor int64

// Record is the minimal contract the sync engine needs from a cached
// resource. All other fields of a resource are opaque to the merge
// algorithm; only identity and tombstone state matter.
type Record interface {
	// RecordID returns the stable server-side identifier of the record.
	RecordID() string

	// IsDeleted reports whether the record is a tombstone. Tombstoned
	// records are removed from the cached collection during a merge.
	IsDeleted() bool
}

// Envelope is one cached resource collection together with its sync cursor
// and the time of the last successful refresh. Envelopes are replaced
// atomically in the cache store; callers never observe a partially merged
// collection.
type Envelope[T any] struct {
	// Data is the full cached collection.
	Data []T `json:"data"`

	// Cursor marks the point up to which Data is known to be current.
	// Nil means the collection was produced without delta support
	// (e.g. the budget list) or has never been fetched.
	Cursor *Cursor `json:"cursor,omitempty"`

	// LastRefreshedAt is when the envelope was last written after a
	// successful fetch, even if the fetch carried no changes.
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

// StaleAfter reports whether the envelope is older than the given ttl at
// the provided instant.
func (e Envelope[T]) StaleAfter(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.LastRefreshedAt) > ttl
}
