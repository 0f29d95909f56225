package store

// Durable-store keys. Flags are advisory cross-process coordination
// markers (see the token coordinator and the sync cycle); everything else
// is plain persisted state.
const (
	KeyToken                = "session:token"
	KeyTokenRefreshing      = "flags:token_refreshing"
	KeyCycleInProgress      = "flags:cycle_in_progress"
	KeyTrackedBudgets       = "budgets:tracked"
	KeyNotificationsEnabled = "settings:notifications"
	KeySyncRequest          = "sync:request"
	KeyBudgetList           = "cache:budgets"
)

// Resource kinds cached per budget.
const (
	KindAccounts     = "accounts"
	KindCategories   = "categories"
	KindPayees       = "payees"
	KindTransactions = "transactions"
)

// CacheKey builds the cache key for one (resource kind, budget) pair.
func CacheKey(kind, budgetID string) string {
	return "cache:" + kind + ":" + budgetID
}

// ThresholdsKey builds the key holding a budget's alert thresholds.
func ThresholdsKey(budgetID string) string {
	return "alerts:config:" + budgetID
}

// SnapshotKey builds the key holding a budget's last alert snapshot.
func SnapshotKey(budgetID string) string {
	return "alerts:snapshot:" + budgetID
}
