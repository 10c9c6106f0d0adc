package ports

import "time"

// AppConfig represents application configuration
type AppConfig struct {
	Port           int
	AllowedOrigins []string
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type       string
	KeyPrefix  string
	DefaultTTL time.Duration
	Redis      RedisConfig
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// WarmingConfig represents warm orchestration settings
type WarmingConfig struct {
	CriticalTimeout  time.Duration
	CriticalEntities []string
	MaxRetries       int
	RetryBackoff     time.Duration
	Concurrency      int
}

// SchedulerConfig represents scheduler configuration
type SchedulerConfig struct {
	Enabled            bool
	SeedFromStore      bool
	SeedLimit          int
	ActiveWindow       time.Duration
	MissionControl     time.Duration
	AlertsAndScores    time.Duration
	UserDashboards     time.Duration
	ProjectData        time.Duration
	AIContent          time.Duration
	ValuationTemplates time.Duration
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetAppConfig() AppConfig
	GetCacheConfig() CacheConfig
	GetWarmingConfig() WarmingConfig
	GetSchedulerConfig() SchedulerConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
