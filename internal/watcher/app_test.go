package watcher

import (
	"testing"
	"time"

	"github.com/averin/budgetwatch/internal/config"
	"github.com/averin/budgetwatch/internal/logger"
	"github.com/averin/budgetwatch/internal/mock"
	"github.com/averin/budgetwatch/internal/notify"
	"github.com/averin/budgetwatch/internal/service"
	"github.com/averin/budgetwatch/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewApp_NilServices(t *testing.T) {
	kv, err := store.NewBadgerStore(store.InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	_, err = NewApp(nil, kv, config.WatcherWorkers{}, logger.Nop())
	assert.Error(t, err)
}

func TestNewApp_WiresSyncJobIntoWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv, err := store.NewBadgerStore(store.InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	services := service.NewServices(
		kv,
		mock.NewMockBudgetAPI(ctrl),
		notify.NewLogNotifier(logger.Nop()),
		notify.NewLogIndicator(logger.Nop()),
		config.WatcherConfig{},
		logger.Nop(),
	)

	app, err := NewApp(services, kv, config.WatcherWorkers{SyncInterval: time.Minute}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.NotNil(t, app.syncJob)
	assert.NotNil(t, app.workers)
}
