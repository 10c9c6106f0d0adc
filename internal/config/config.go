package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"synergyai.app/pkg/errors"
)

const (
	maxRedisDB          = 15
	maxPortNumber       = 65535
	maxScheduleMinutes  = 1440
	maxWarmRetries      = 5
	maxCriticalTimeoutS = 60
)

// Config represents the application configuration structure
type Config struct {
	Server     ServerConfig     `split_words:"true"`
	DataSource DataSourceConfig `split_words:"true"`
	Supabase   SupabaseConfig   `split_words:"true"`
	Database   DatabaseConfig   `split_words:"true"`
	LLM        LLMConfig        `split_words:"true"`
	RAG        RAGConfig        `split_words:"true"`
	Auth       AuthConfig       `split_words:"true"`
	Cache      CacheConfig      `split_words:"true"`
	Warming    WarmingConfig    `split_words:"true"`
	Scheduler  SchedulerConfig  `split_words:"true"`
	Log        LogConfig        `split_words:"true"`
	Tracing    TracingConfig    `split_words:"true"`
}

type ServerConfig struct {
	Port           int      `envconfig:"SERVER_PORT" default:"8000"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
}

// DataSourceType selects the row-fetch backend
type DataSourceType int

const (
	DataSourceUnknown DataSourceType = iota
	DataSourceSupabase
	DataSourcePostgres
)

func (d DataSourceType) String() string {
	switch d {
	case DataSourceSupabase:
		return "supabase"
	case DataSourcePostgres:
		return "postgres"
	default:
		return "unknown"
	}
}

func (d DataSourceType) IsValid() bool {
	return d == DataSourceSupabase || d == DataSourcePostgres
}

func DataSourceTypeFromString(s string) DataSourceType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supabase":
		return DataSourceSupabase
	case "postgres":
		return DataSourcePostgres
	default:
		return DataSourceUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (d *DataSourceType) UnmarshalText(text []byte) error {
	*d = DataSourceTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (d DataSourceType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type DataSourceConfig struct {
	Type DataSourceType `envconfig:"DATA_SOURCE" default:"supabase"`
}

type SupabaseConfig struct {
	URL            string `envconfig:"SUPABASE_URL"`
	ServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"synergyai"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type LLMConfig struct {
	BaseURL         string `envconfig:"LLM_BASE_URL" default:"http://localhost:11434"`
	Model           string `envconfig:"LLM_MODEL" default:"synergyai-specialist"`
	TimeoutSeconds  int    `envconfig:"LLM_TIMEOUT_SECONDS" default:"180"`
	BreakerFailures uint32 `envconfig:"LLM_BREAKER_FAILURES" default:"5"`
	BreakerOpenSecs int    `envconfig:"LLM_BREAKER_OPEN_SECONDS" default:"60"`
}

type RAGConfig struct {
	BaseURL        string `envconfig:"RAG_BASE_URL" default:"http://localhost:8100"`
	TimeoutSeconds int    `envconfig:"RAG_TIMEOUT_SECONDS" default:"30"`
}

// AuthMode selects how bearer tokens are resolved to user ids
type AuthMode int

const (
	AuthModeUnknown AuthMode = iota
	AuthModeSupabase
	AuthModeHeader
)

func (a AuthMode) String() string {
	switch a {
	case AuthModeSupabase:
		return "supabase"
	case AuthModeHeader:
		return "header"
	default:
		return "unknown"
	}
}

func (a AuthMode) IsValid() bool {
	return a == AuthModeSupabase || a == AuthModeHeader
}

func AuthModeFromString(s string) AuthMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supabase":
		return AuthModeSupabase
	case "header":
		return AuthModeHeader
	default:
		return AuthModeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (a *AuthMode) UnmarshalText(text []byte) error {
	*a = AuthModeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (a AuthMode) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

type AuthConfig struct {
	Mode AuthMode `envconfig:"AUTH_MODE" default:"supabase"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type              CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	DefaultTTLSeconds int         `envconfig:"CACHE_DEFAULT_TTL_SECONDS" default:"300"`
	KeyPrefix         string      `envconfig:"CACHE_KEY_PREFIX" default:"synergy"`
	Redis             RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type WarmingConfig struct {
	CriticalTimeoutSeconds int      `envconfig:"WARM_CRITICAL_TIMEOUT_SECONDS" default:"5"`
	CriticalEntities       []string `envconfig:"WARM_CRITICAL_ENTITIES" default:"team,documents,alerts,risk_profile,synergy_score,access_summary"`
	MaxRetries             int      `envconfig:"WARM_MAX_RETRIES" default:"1"`
	RetryBackoffMillis     int      `envconfig:"WARM_RETRY_BACKOFF_MILLIS" default:"500"`
	Concurrency            int      `envconfig:"WARM_CONCURRENCY" default:"8"`
}

type SchedulerConfig struct {
	Enabled                  bool `envconfig:"SCHEDULER_ENABLED" default:"true"`
	SeedFromStore            bool `envconfig:"SCHEDULER_SEED_FROM_STORE" default:"true"`
	SeedLimit                int  `envconfig:"SCHEDULER_SEED_LIMIT" default:"200"`
	ActiveWindowMinutes      int  `envconfig:"ACTIVE_WINDOW_MINUTES" default:"30"`
	ActiveTargetsMax         int  `envconfig:"ACTIVE_TARGETS_MAX" default:"5000"`
	MissionControlMinutes    int  `envconfig:"SCHEDULE_MISSION_CONTROL_MINUTES" default:"2"`
	AlertsAndScoresMinutes   int  `envconfig:"SCHEDULE_ALERTS_AND_SCORES_MINUTES" default:"3"`
	UserDashboardsMinutes    int  `envconfig:"SCHEDULE_USER_DASHBOARDS_MINUTES" default:"5"`
	ProjectDataMinutes       int  `envconfig:"SCHEDULE_PROJECT_DATA_MINUTES" default:"10"`
	AIContentMinutes         int  `envconfig:"SCHEDULE_AI_CONTENT_MINUTES" default:"10"`
	ValuationTemplateMinutes int  `envconfig:"SCHEDULE_VALUATION_TEMPLATES_MINUTES" default:"15"`
}

type LogConfig struct {
	Level             string `envconfig:"LOG_LEVEL" default:"info"`
	CollaboratorCalls bool   `envconfig:"LOG_COLLABORATOR_CALLS" default:"false"`
}

// TracingConfig enables OTLP span export when an endpoint is set
type TracingConfig struct {
	Endpoint    string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string  `envconfig:"OTEL_SERVICE_NAME" default:"synergy-cache"`
	Environment string  `envconfig:"DEPLOY_ENV" default:"development"`
	SampleRatio float64 `envconfig:"OTEL_SAMPLE_RATIO" default:"1"`
	Insecure    bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// Enabled reports whether spans leave the process
func (t *TracingConfig) Enabled() bool {
	return strings.TrimSpace(t.Endpoint) != ""
}

func (t *TracingConfig) Validate() error {
	if t.SampleRatio < 0 || t.SampleRatio > 1 {
		return errors.NewConfigurationError("OTEL_SAMPLE_RATIO must be between 0 and 1", nil)
	}
	if t.Enabled() && strings.TrimSpace(t.ServiceName) == "" {
		return errors.NewConfigurationError("OTEL_SERVICE_NAME is required when tracing is enabled", nil)
	}
	return nil
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if !c.DataSource.Type.IsValid() {
		return errors.NewConfigurationError("DATA_SOURCE must be one of: supabase, postgres", nil)
	}
	if c.DataSource.Type == DataSourceSupabase || c.Auth.Mode == AuthModeSupabase {
		if err := c.Supabase.Validate(); err != nil {
			return err
		}
	}
	if c.DataSource.Type == DataSourcePostgres {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	if !c.Auth.Mode.IsValid() {
		return errors.NewConfigurationError("AUTH_MODE must be one of: supabase, header", nil)
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.RAG.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Warming.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Tracing.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (s *SupabaseConfig) Validate() error {
	if s.URL == "" {
		return errors.NewConfigurationError("SUPABASE_URL is required when DATA_SOURCE or AUTH_MODE is supabase", nil)
	}
	if !isHTTPURL(s.URL) {
		return errors.NewConfigurationError("SUPABASE_URL must start with http:// or https://", nil)
	}
	if s.ServiceRoleKey == "" {
		return errors.NewConfigurationError("SUPABASE_SERVICE_ROLE_KEY is required when DATA_SOURCE or AUTH_MODE is supabase", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (l *LLMConfig) Validate() error {
	if !isHTTPURL(l.BaseURL) {
		return errors.NewConfigurationError("LLM_BASE_URL must start with http:// or https://", nil)
	}
	if l.Model == "" {
		return errors.NewConfigurationError("LLM_MODEL cannot be empty", nil)
	}
	if l.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("LLM_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if l.BreakerFailures < 1 {
		return errors.NewConfigurationError("LLM_BREAKER_FAILURES must be at least 1", nil)
	}
	if l.BreakerOpenSecs < 1 {
		return errors.NewConfigurationError("LLM_BREAKER_OPEN_SECONDS must be at least 1", nil)
	}
	return nil
}

func (r *RAGConfig) Validate() error {
	if !isHTTPURL(r.BaseURL) {
		return errors.NewConfigurationError("RAG_BASE_URL must start with http:// or https://", nil)
	}
	if r.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("RAG_TIMEOUT_SECONDS must be at least 1", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.DefaultTTLSeconds < 1 {
		return errors.NewConfigurationError("CACHE_DEFAULT_TTL_SECONDS must be at least 1", nil)
	}
	if c.KeyPrefix == "" || strings.Contains(c.KeyPrefix, ":") {
		return errors.NewConfigurationError("CACHE_KEY_PREFIX must be non-empty and must not contain ':'", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (w *WarmingConfig) Validate() error {
	if w.CriticalTimeoutSeconds < 1 || w.CriticalTimeoutSeconds > maxCriticalTimeoutS {
		return errors.NewConfigurationError("WARM_CRITICAL_TIMEOUT_SECONDS must be between 1 and 60", nil)
	}
	if len(w.CriticalEntities) == 0 {
		return errors.NewConfigurationError("WARM_CRITICAL_ENTITIES cannot be empty", nil)
	}
	if w.MaxRetries < 0 || w.MaxRetries > maxWarmRetries {
		return errors.NewConfigurationError("WARM_MAX_RETRIES must be between 0 and 5", nil)
	}
	if w.RetryBackoffMillis < 0 {
		return errors.NewConfigurationError("WARM_RETRY_BACKOFF_MILLIS cannot be negative", nil)
	}
	if w.Concurrency < 1 {
		return errors.NewConfigurationError("WARM_CONCURRENCY must be at least 1", nil)
	}
	return nil
}

func (s *SchedulerConfig) Validate() error {
	intervals := map[string]int{
		"SCHEDULE_MISSION_CONTROL_MINUTES":     s.MissionControlMinutes,
		"SCHEDULE_ALERTS_AND_SCORES_MINUTES":   s.AlertsAndScoresMinutes,
		"SCHEDULE_USER_DASHBOARDS_MINUTES":     s.UserDashboardsMinutes,
		"SCHEDULE_PROJECT_DATA_MINUTES":        s.ProjectDataMinutes,
		"SCHEDULE_AI_CONTENT_MINUTES":          s.AIContentMinutes,
		"SCHEDULE_VALUATION_TEMPLATES_MINUTES": s.ValuationTemplateMinutes,
	}
	for name, minutes := range intervals {
		if minutes < 1 || minutes > maxScheduleMinutes {
			return errors.NewConfigurationError(fmt.Sprintf("%s must be between 1 and 1440 minutes", name), nil)
		}
	}
	if s.ActiveWindowMinutes < 1 {
		return errors.NewConfigurationError("ACTIVE_WINDOW_MINUTES must be at least 1 minute", nil)
	}
	if s.ActiveTargetsMax < 1 {
		return errors.NewConfigurationError("ACTIVE_TARGETS_MAX must be at least 1", nil)
	}
	if s.SeedLimit < 0 {
		return errors.NewConfigurationError("SCHEDULER_SEED_LIMIT cannot be negative", nil)
	}
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
