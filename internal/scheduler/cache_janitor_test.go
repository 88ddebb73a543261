package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/cache"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
)

func newJanitorConfig(enabled bool, interval int) *config.Config {
	return &config.Config{
		CacheJanitor: config.CacheJanitor{
			IntervalSeconds: interval,
			Enabled:         enabled,
		},
	}
}

func TestCacheJanitorService_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	responseCache := cache.New(10, cache.WithClock(func() time.Time { return now }))

	responseCache.Set("campaigns:act_1:last_7d:campaign::", "curta", time.Minute)
	responseCache.Set("campaigns:act_2:last_7d:campaign::", "curta", time.Minute)
	responseCache.Set("summary:act_1:last_90d:account::", "longa", time.Hour)

	service := NewCacheJanitorService(responseCache, newJanitorConfig(true, 60))

	now = now.Add(2 * time.Minute)
	service.sweep()

	assert.Equal(t, 1, responseCache.Len())

	status := service.GetStatus()
	assert.Equal(t, 2, status["last_sweep_removed"])
	assert.Equal(t, 2, status["total_removed"])
	assert.Equal(t, false, status["sweep_running"])

	stats, ok := status["cache"].(cache.Stats)
	require.True(t, ok)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 10, stats.MaxEntries)

	t.Run("deve acumular o total entre varreduras", func(t *testing.T) {
		now = now.Add(2 * time.Hour)
		service.sweep()

		status := service.GetStatus()
		assert.Equal(t, 1, status["last_sweep_removed"])
		assert.Equal(t, 3, status["total_removed"])
		assert.Zero(t, responseCache.Len())
	})

	t.Run("deve registrar zero quando nada venceu", func(t *testing.T) {
		service.sweep()

		status := service.GetStatus()
		assert.Equal(t, 0, status["last_sweep_removed"])
		assert.Equal(t, 3, status["total_removed"])
	})
}

func TestCacheJanitorService_TriggerManualSync(t *testing.T) {
	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	responseCache := cache.New(10, cache.WithClock(func() time.Time { return now }))
	responseCache.Set("daily:act_1:today:account::", "valor", time.Second)

	now = now.Add(time.Minute)
	service := NewCacheJanitorService(responseCache, newJanitorConfig(true, 60))

	service.TriggerManualSync()

	assert.Eventually(t, func() bool {
		status := service.GetStatus()
		return status["total_removed"] == 1 && status["sweep_running"] == false
	}, time.Second, 10*time.Millisecond)
}

func TestCacheJanitorService_Start(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		interval int
		wantErr  bool
	}{
		{
			name:     "deve ignorar quando desabilitado",
			enabled:  false,
			interval: 0,
		},
		{
			name:     "deve falhar com intervalo inválido",
			enabled:  true,
			interval: 0,
			wantErr:  true,
		},
		{
			name:     "deve agendar com intervalo válido",
			enabled:  true,
			interval: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			service := NewCacheJanitorService(cache.New(10), newJanitorConfig(tt.enabled, tt.interval))

			err := service.Start(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			status := service.GetStatus()
			assert.Equal(t, tt.enabled, status["sweep_enabled"])
			assert.Equal(t, tt.interval, status["sweep_interval_seconds"])
		})
	}
}
