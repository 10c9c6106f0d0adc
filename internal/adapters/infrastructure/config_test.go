package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"synergyai.app/internal/config"
)

func TestConfigProviderAdapter(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8000, AllowedOrigins: []string{"http://localhost:3000"}},
		Cache: config.CacheConfig{
			Type:              config.CacheTypeRedis,
			DefaultTTLSeconds: 300,
			KeyPrefix:         "synergy",
			Redis:             config.RedisConfig{Addr: "redis:6379", DialTimeout: 5},
		},
		Warming: config.WarmingConfig{
			CriticalTimeoutSeconds: 5,
			CriticalEntities:       []string{"team", "alerts"},
			MaxRetries:             1,
			RetryBackoffMillis:     250,
			Concurrency:            4,
		},
		Scheduler: config.SchedulerConfig{
			Enabled:                  true,
			SeedLimit:                100,
			ActiveWindowMinutes:      30,
			MissionControlMinutes:    2,
			AlertsAndScoresMinutes:   3,
			UserDashboardsMinutes:    5,
			ProjectDataMinutes:       10,
			AIContentMinutes:         10,
			ValuationTemplateMinutes: 15,
		},
	}
	provider := NewConfigProviderAdapter(cfg)

	app := provider.GetAppConfig()
	assert.Equal(t, 8000, app.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, app.AllowedOrigins)

	cache := provider.GetCacheConfig()
	assert.Equal(t, "redis", cache.Type)
	assert.Equal(t, 5*time.Minute, cache.DefaultTTL)
	assert.Equal(t, "redis:6379", cache.Redis.Addr)

	warming := provider.GetWarmingConfig()
	assert.Equal(t, 5*time.Second, warming.CriticalTimeout)
	assert.Equal(t, 250*time.Millisecond, warming.RetryBackoff)
	assert.Equal(t, []string{"team", "alerts"}, warming.CriticalEntities)
	warming.CriticalEntities[0] = "mutated"
	assert.Equal(t, "team", cfg.Warming.CriticalEntities[0])

	scheduler := provider.GetSchedulerConfig()
	assert.True(t, scheduler.Enabled)
	assert.Equal(t, 30*time.Minute, scheduler.ActiveWindow)
	assert.Equal(t, 2*time.Minute, scheduler.MissionControl)
	assert.Equal(t, 15*time.Minute, scheduler.ValuationTemplates)
}
