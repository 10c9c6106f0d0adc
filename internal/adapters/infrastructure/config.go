package infrastructure

import (
	"time"

	"synergyai.app/internal/config"
	"synergyai.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetAppConfig returns server configuration
func (c *ConfigProviderAdapter) GetAppConfig() ports.AppConfig {
	return ports.AppConfig{
		Port:           c.config.Server.Port,
		AllowedOrigins: c.config.Server.AllowedOrigins,
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type:       c.config.Cache.Type.String(),
		KeyPrefix:  c.config.Cache.KeyPrefix,
		DefaultTTL: time.Duration(c.config.Cache.DefaultTTLSeconds) * time.Second,
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			Password:     c.config.Cache.Redis.Password,
			DB:           c.config.Cache.Redis.DB,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
	}
}

// GetWarmingConfig returns warm orchestration settings
func (c *ConfigProviderAdapter) GetWarmingConfig() ports.WarmingConfig {
	w := c.config.Warming
	return ports.WarmingConfig{
		CriticalTimeout:  time.Duration(w.CriticalTimeoutSeconds) * time.Second,
		CriticalEntities: append([]string(nil), w.CriticalEntities...),
		MaxRetries:       w.MaxRetries,
		RetryBackoff:     time.Duration(w.RetryBackoffMillis) * time.Millisecond,
		Concurrency:      w.Concurrency,
	}
}

// GetSchedulerConfig returns scheduler configuration
func (c *ConfigProviderAdapter) GetSchedulerConfig() ports.SchedulerConfig {
	s := c.config.Scheduler
	return ports.SchedulerConfig{
		Enabled:            s.Enabled,
		SeedFromStore:      s.SeedFromStore,
		SeedLimit:          s.SeedLimit,
		ActiveWindow:       minutes(s.ActiveWindowMinutes),
		MissionControl:     minutes(s.MissionControlMinutes),
		AlertsAndScores:    minutes(s.AlertsAndScoresMinutes),
		UserDashboards:     minutes(s.UserDashboardsMinutes),
		ProjectData:        minutes(s.ProjectDataMinutes),
		AIContent:          minutes(s.AIContentMinutes),
		ValuationTemplates: minutes(s.ValuationTemplateMinutes),
	}
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
