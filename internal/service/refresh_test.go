package service

import (
	"context"
	"testing"
	"time"

	"github.com/averin/budgetwatch/internal/adapter"
	"github.com/averin/budgetwatch/internal/logger"
	"github.com/averin/budgetwatch/internal/mock"
	"github.com/averin/budgetwatch/internal/store"
	"github.com/averin/budgetwatch/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestResources(t *testing.T, api adapter.BudgetAPI) (*resourceService, store.KeyValue) {
	t.Helper()

	kv := newTestKV(t)
	svc := NewResourceService(kv, api, time.Hour, time.Minute, logger.Nop()).(*resourceService)

	return svc, kv
}

func seedAccounts(t *testing.T, kv store.KeyValue, budgetID string, env models.Envelope[models.Account]) {
	t.Helper()
	col := store.NewCollection[models.Account](kv, store.CacheKey(store.KindAccounts, budgetID), time.Minute)
	require.NoError(t, col.Put(context.Background(), env))
}

// ── Fetch policy ─────────────────────────────────────────────────────────────

func TestRefreshAccounts_EmptyCacheDoesFullFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	api.EXPECT().
		Accounts(gomock.Any(), "b1", gomock.Nil()).
		Return([]models.Account{{ID: "a1", Name: "Checking"}}, models.Cursor(100), nil).
		Times(1)

	svc, _ := newTestResources(t, api)

	env, err := svc.RefreshAccounts(context.Background(), "b1")
	require.NoError(t, err)
	assert.Len(t, env.Data, 1)
	require.NotNil(t, env.Cursor)
	assert.Equal(t, models.Cursor(100), *env.Cursor)
	assert.False(t, env.LastRefreshedAt.IsZero())
}

func TestRefreshAccounts_IncrementalMergesDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	api.EXPECT().
		Accounts(gomock.Any(), "b1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, cursor *models.Cursor) ([]models.Account, models.Cursor, error) {
			require.NotNil(t, cursor)
			assert.Equal(t, models.Cursor(100), *cursor)
			return []models.Account{
				{ID: "a1", Name: "Checking renamed"},
				{ID: "a2", Deleted: true},
				{ID: "a3", Name: "Brokerage"},
			}, models.Cursor(150), nil
		}).
		Times(1)

	svc, kv := newTestResources(t, api)
	cursor := models.Cursor(100)
	seedAccounts(t, kv, "b1", models.Envelope[models.Account]{
		Data: []models.Account{
			{ID: "a1", Name: "Checking"},
			{ID: "a2", Name: "Old savings"},
		},
		Cursor:          &cursor,
		LastRefreshedAt: time.Now().Add(-time.Hour),
	})

	env, err := svc.RefreshAccounts(context.Background(), "b1")
	require.NoError(t, err)

	names := make(map[string]string, len(env.Data))
	for _, a := range env.Data {
		names[a.ID] = a.Name
	}
	assert.Equal(t, map[string]string{"a1": "Checking renamed", "a3": "Brokerage"}, names)
	require.NotNil(t, env.Cursor)
	assert.Equal(t, models.Cursor(150), *env.Cursor)
}

func TestRefreshAccounts_CursorNeverMovesBackwards(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	api.EXPECT().
		Accounts(gomock.Any(), "b1", gomock.Any()).
		Return(nil, models.Cursor(90), nil).
		Times(1)

	svc, kv := newTestResources(t, api)
	cursor := models.Cursor(100)
	seedAccounts(t, kv, "b1", models.Envelope[models.Account]{
		Data:            []models.Account{{ID: "a1"}},
		Cursor:          &cursor,
		LastRefreshedAt: time.Now().Add(-time.Hour),
	})

	env, err := svc.RefreshAccounts(context.Background(), "b1")
	require.NoError(t, err)
	require.NotNil(t, env.Cursor)
	assert.Equal(t, models.Cursor(100), *env.Cursor)
}

func TestRefreshAccounts_RejectedCursorFallsBackToFullFetchOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	gomock.InOrder(
		api.EXPECT().
			Accounts(gomock.Any(), "b1", gomock.Not(gomock.Nil())).
			Return(nil, models.Cursor(0), adapter.ErrCursorInvalid),
		api.EXPECT().
			Accounts(gomock.Any(), "b1", gomock.Nil()).
			Return([]models.Account{{ID: "a9", Name: "Rebuilt"}}, models.Cursor(200), nil),
	)

	svc, kv := newTestResources(t, api)
	cursor := models.Cursor(100)
	seedAccounts(t, kv, "b1", models.Envelope[models.Account]{
		Data:            []models.Account{{ID: "a1"}, {ID: "a2"}},
		Cursor:          &cursor,
		LastRefreshedAt: time.Now().Add(-time.Hour),
	})

	env, err := svc.RefreshAccounts(context.Background(), "b1")
	require.NoError(t, err)

	// the full fetch replaces the collection, stale records are gone
	require.Len(t, env.Data, 1)
	assert.Equal(t, "a9", env.Data[0].ID)
	require.NotNil(t, env.Cursor)
	assert.Equal(t, models.Cursor(200), *env.Cursor)
}

func TestRefreshAccounts_FullFetchFailureKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	api.EXPECT().
		Accounts(gomock.Any(), "b1", gomock.Any()).
		Return(nil, models.Cursor(0), adapter.ErrCursorInvalid).
		Times(2)

	svc, kv := newTestResources(t, api)
	cursor := models.Cursor(100)
	seeded := models.Envelope[models.Account]{
		Data:            []models.Account{{ID: "a1"}},
		Cursor:          &cursor,
		LastRefreshedAt: time.Now().Add(-time.Hour),
	}
	seedAccounts(t, kv, "b1", seeded)

	_, err := svc.RefreshAccounts(context.Background(), "b1")
	require.ErrorIs(t, err, adapter.ErrCursorInvalid)

	col := store.NewCollection[models.Account](kv, store.CacheKey(store.KindAccounts, "b1"), time.Minute)
	got, ok, err := col.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, seeded.Data, got.Data)
}

// ── Read path ────────────────────────────────────────────────────────────────

func TestAccounts_FreshCacheSkipsRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	// no remote expectations: a fresh cache must be served as-is

	svc, kv := newTestResources(t, api)
	cursor := models.Cursor(100)
	seedAccounts(t, kv, "b1", models.Envelope[models.Account]{
		Data:            []models.Account{{ID: "a1"}},
		Cursor:          &cursor,
		LastRefreshedAt: time.Now(),
	})

	env, err := svc.Accounts(context.Background(), "b1")
	require.NoError(t, err)
	assert.Len(t, env.Data, 1)
}

func TestAccounts_StaleCacheRefreshes(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	api.EXPECT().
		Accounts(gomock.Any(), "b1", gomock.Any()).
		Return([]models.Account{{ID: "a2", Name: "Fresh"}}, models.Cursor(150), nil).
		Times(1)

	svc, kv := newTestResources(t, api)
	cursor := models.Cursor(100)
	seedAccounts(t, kv, "b1", models.Envelope[models.Account]{
		Data:            []models.Account{{ID: "a1"}},
		Cursor:          &cursor,
		LastRefreshedAt: time.Now().Add(-time.Hour),
	})

	env, err := svc.Accounts(context.Background(), "b1")
	require.NoError(t, err)
	require.NotNil(t, env.Cursor)
	assert.Equal(t, models.Cursor(150), *env.Cursor)
}

// ── Budget list ──────────────────────────────────────────────────────────────

func TestBudgets_FullFetchAndCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	api.EXPECT().
		Budgets(gomock.Any()).
		Return([]models.Budget{{ID: "b1", Name: "Family"}}, nil).
		Times(1)

	svc, _ := newTestResources(t, api)

	first, err := svc.Budgets(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// second read is served from the cache inside the TTL
	second, err := svc.Budgets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// ── Categories ───────────────────────────────────────────────────────────────

func TestRefreshCategories_DropsDeletedGroupMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	api.EXPECT().
		Categories(gomock.Any(), "b1", gomock.Any()).
		Return(models.CategoryChanges{
			Categories:      []models.Category{{ID: "c3", GroupID: "g2", Name: "New"}},
			DeletedGroupIDs: []string{"g1"},
		}, models.Cursor(150), nil).
		Times(1)

	svc, kv := newTestResources(t, api)
	cursor := models.Cursor(100)
	col := store.NewCollection[models.Category](kv, store.CacheKey(store.KindCategories, "b1"), time.Minute)
	require.NoError(t, col.Put(context.Background(), models.Envelope[models.Category]{
		Data: []models.Category{
			{ID: "c1", GroupID: "g1", Name: "Orphaned"},
			{ID: "c2", GroupID: "g2", Name: "Kept"},
		},
		Cursor:          &cursor,
		LastRefreshedAt: time.Now().Add(-time.Hour),
	}))

	env, err := svc.RefreshCategories(context.Background(), "b1")
	require.NoError(t, err)

	got := make([]string, 0, len(env.Data))
	for _, c := range env.Data {
		got = append(got, c.ID)
	}
	assert.ElementsMatch(t, []string{"c2", "c3"}, got)
}

// ── Unapproved transactions ──────────────────────────────────────────────────

func TestRefreshUnapprovedTransactions_NoCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockBudgetAPI(ctrl)
	api.EXPECT().
		UnapprovedTransactions(gomock.Any(), "b1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, since time.Time) ([]models.Transaction, error) {
			assert.WithinDuration(t, time.Now().Add(-unapprovedWindow), since, time.Minute)
			return []models.Transaction{{ID: "t1"}}, nil
		}).
		Times(1)

	svc, _ := newTestResources(t, api)

	env, err := svc.RefreshUnapprovedTransactions(context.Background(), "b1")
	require.NoError(t, err)
	assert.Len(t, env.Data, 1)
	assert.Nil(t, env.Cursor)
}
