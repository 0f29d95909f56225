package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/averin/budgetwatch/internal/adapter"
	"github.com/averin/budgetwatch/internal/logger"
	"github.com/averin/budgetwatch/internal/store"
	"github.com/averin/budgetwatch/models"
)

// unapprovedWindow is how far back the unapproved-transaction fetch
// looks. Older unapproved transactions are treated as deliberately left
// alone by the user.
const unapprovedWindow = 30 * 24 * time.Hour

type resourceService struct {
	kv  store.KeyValue
	api adapter.BudgetAPI
	log *logger.Logger

	budgetListTTL time.Duration
	resourceTTL   time.Duration
	now           func() time.Time
}

// NewResourceService builds the [ResourceService] implementation with the
// given per-kind staleness durations.
func NewResourceService(kv store.KeyValue, api adapter.BudgetAPI, budgetListTTL, resourceTTL time.Duration, log *logger.Logger) ResourceService {
	return &resourceService{
		kv:            kv,
		api:           api,
		log:           log,
		budgetListTTL: budgetListTTL,
		resourceTTL:   resourceTTL,
		now:           time.Now,
	}
}

// deltaFetch is one cursor-aware remote call: nil requests a full fetch.
type deltaFetch[T models.Record] func(ctx context.Context, cursor *models.Cursor) ([]T, models.Cursor, error)

// refreshEnvelope is the fetch policy shared by every cursor-aware
// resource kind. It reads the cached envelope, chooses full vs
// incremental fetch from the stored cursor, falls back to a full fetch
// exactly once when the service rejects the cursor, merges, and replaces
// the envelope atomically. Callers never observe an intermediate state:
// the previous envelope stays readable until the new one is committed.
func refreshEnvelope[T models.Record](ctx context.Context, col *store.Collection[T], fetch deltaFetch[T], now time.Time) (models.Envelope[T], error) {
	var zero models.Envelope[T]

	prev, ok, err := col.Get(ctx)
	if err != nil {
		return zero, fmt.Errorf("read cached %s: %w", col.Key(), err)
	}

	var cursor *models.Cursor
	if ok {
		cursor = prev.Cursor
	}

	delta, newCursor, err := fetch(ctx, cursor)
	if err != nil && cursor != nil && errors.Is(err, adapter.ErrCursorInvalid) {
		cursor = nil
		delta, newCursor, err = fetch(ctx, nil)
	}
	if err != nil {
		return zero, fmt.Errorf("fetch %s: %w", col.Key(), err)
	}

	data := delta
	if cursor != nil {
		data = Merge(prev.Data, delta)
		// cursors are monotonic; never store one older than what we sent
		if newCursor < *cursor {
			newCursor = *cursor
		}
	}

	next := models.Envelope[T]{Data: data, Cursor: &newCursor, LastRefreshedAt: now}
	if err := col.Put(ctx, next); err != nil {
		return zero, fmt.Errorf("store %s: %w", col.Key(), err)
	}

	return next, nil
}

// cachedOrRefresh serves the UI read path: the cached envelope while it
// is fresh, a refresh otherwise.
func cachedOrRefresh[T models.Record](ctx context.Context, col *store.Collection[T], refresh func(context.Context) (models.Envelope[T], error), now time.Time) (models.Envelope[T], error) {
	env, ok, err := col.Get(ctx)
	if err != nil {
		var zero models.Envelope[T]
		return zero, fmt.Errorf("read cached %s: %w", col.Key(), err)
	}
	if ok && col.Fresh(env, now) {
		return env, nil
	}

	return refresh(ctx)
}

// ── Budget list ──────────────────────────────────────────────────────────────

func (s *resourceService) budgetList() *store.Collection[models.Budget] {
	return store.NewCollection[models.Budget](s.kv, store.KeyBudgetList, s.budgetListTTL)
}

func (s *resourceService) Budgets(ctx context.Context) ([]models.Budget, error) {
	env, err := cachedOrRefresh(ctx, s.budgetList(), s.refreshBudgets, s.now())
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (s *resourceService) RefreshBudgets(ctx context.Context) ([]models.Budget, error) {
	env, err := s.refreshBudgets(ctx)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// refreshBudgets always does a full fetch: the budget list endpoint has
// no delta support, so the response replaces the envelope wholesale.
func (s *resourceService) refreshBudgets(ctx context.Context) (models.Envelope[models.Budget], error) {
	var zero models.Envelope[models.Budget]

	budgets, err := s.api.Budgets(ctx)
	if err != nil {
		return zero, fmt.Errorf("fetch budgets: %w", err)
	}

	next := models.Envelope[models.Budget]{Data: budgets, LastRefreshedAt: s.now()}
	if err := s.budgetList().Put(ctx, next); err != nil {
		return zero, fmt.Errorf("store budgets: %w", err)
	}

	return next, nil
}

// ── Accounts ─────────────────────────────────────────────────────────────────

func (s *resourceService) accounts(budgetID string) *store.Collection[models.Account] {
	return store.NewCollection[models.Account](s.kv, store.CacheKey(store.KindAccounts, budgetID), s.resourceTTL)
}

func (s *resourceService) Accounts(ctx context.Context, budgetID string) (models.Envelope[models.Account], error) {
	return cachedOrRefresh(ctx, s.accounts(budgetID), func(ctx context.Context) (models.Envelope[models.Account], error) {
		return s.RefreshAccounts(ctx, budgetID)
	}, s.now())
}

func (s *resourceService) RefreshAccounts(ctx context.Context, budgetID string) (models.Envelope[models.Account], error) {
	fetch := func(ctx context.Context, cursor *models.Cursor) ([]models.Account, models.Cursor, error) {
		return s.api.Accounts(ctx, budgetID, cursor)
	}
	return refreshEnvelope(ctx, s.accounts(budgetID), fetch, s.now())
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *resourceService) categories(budgetID string) *store.Collection[models.Category] {
	return store.NewCollection[models.Category](s.kv, store.CacheKey(store.KindCategories, budgetID), s.resourceTTL)
}

func (s *resourceService) Categories(ctx context.Context, budgetID string) (models.Envelope[models.Category], error) {
	return cachedOrRefresh(ctx, s.categories(budgetID), func(ctx context.Context) (models.Envelope[models.Category], error) {
		return s.RefreshCategories(ctx, budgetID)
	}, s.now())
}

// RefreshCategories follows the shared fetch policy but additionally
// drops members of groups the service reported deleted, inside the same
// envelope replace, so no reader ever sees orphaned categories.
func (s *resourceService) RefreshCategories(ctx context.Context, budgetID string) (models.Envelope[models.Category], error) {
	var zero models.Envelope[models.Category]
	col := s.categories(budgetID)

	prev, ok, err := col.Get(ctx)
	if err != nil {
		return zero, fmt.Errorf("read cached %s: %w", col.Key(), err)
	}

	var cursor *models.Cursor
	if ok {
		cursor = prev.Cursor
	}

	changes, newCursor, err := s.api.Categories(ctx, budgetID, cursor)
	if err != nil && cursor != nil && errors.Is(err, adapter.ErrCursorInvalid) {
		cursor = nil
		changes, newCursor, err = s.api.Categories(ctx, budgetID, nil)
	}
	if err != nil {
		return zero, fmt.Errorf("fetch %s: %w", col.Key(), err)
	}

	data := changes.Categories
	if cursor != nil {
		data = Merge(prev.Data, changes.Categories)
		if newCursor < *cursor {
			newCursor = *cursor
		}
	}
	data = DropGroupMembers(data, changes.DeletedGroupIDs)

	next := models.Envelope[models.Category]{Data: data, Cursor: &newCursor, LastRefreshedAt: s.now()}
	if err := col.Put(ctx, next); err != nil {
		return zero, fmt.Errorf("store %s: %w", col.Key(), err)
	}

	return next, nil
}

// ── Payees ───────────────────────────────────────────────────────────────────

func (s *resourceService) payees(budgetID string) *store.Collection[models.Payee] {
	return store.NewCollection[models.Payee](s.kv, store.CacheKey(store.KindPayees, budgetID), s.resourceTTL)
}

func (s *resourceService) Payees(ctx context.Context, budgetID string) (models.Envelope[models.Payee], error) {
	return cachedOrRefresh(ctx, s.payees(budgetID), func(ctx context.Context) (models.Envelope[models.Payee], error) {
		return s.RefreshPayees(ctx, budgetID)
	}, s.now())
}

func (s *resourceService) RefreshPayees(ctx context.Context, budgetID string) (models.Envelope[models.Payee], error) {
	fetch := func(ctx context.Context, cursor *models.Cursor) ([]models.Payee, models.Cursor, error) {
		return s.api.Payees(ctx, budgetID, cursor)
	}
	return refreshEnvelope(ctx, s.payees(budgetID), fetch, s.now())
}

// ── Unapproved transactions ──────────────────────────────────────────────────

func (s *resourceService) transactions(budgetID string) *store.Collection[models.Transaction] {
	return store.NewCollection[models.Transaction](s.kv, store.CacheKey(store.KindTransactions, budgetID), s.resourceTTL)
}

func (s *resourceService) RefreshUnapprovedTransactions(ctx context.Context, budgetID string) (models.Envelope[models.Transaction], error) {
	var zero models.Envelope[models.Transaction]

	since := s.now().Add(-unapprovedWindow)
	txs, err := s.api.UnapprovedTransactions(ctx, budgetID, since)
	if err != nil {
		return zero, fmt.Errorf("fetch unapproved transactions: %w", err)
	}

	next := models.Envelope[models.Transaction]{Data: txs, LastRefreshedAt: s.now()}
	if err := s.transactions(budgetID).Put(ctx, next); err != nil {
		return zero, fmt.Errorf("store unapproved transactions: %w", err)
	}

	return next, nil
}
