package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Auth          AuthConfig
	Directory     DirectoryConfig
	Cache         CacheConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int32
	MinConns       int32
	WorkOffline    bool
	SeedFile       string // Offline mode only: JSON file with profiles to load into the memory store
	MigrationsPath string
}

type RedisConfig struct {
	URL                  string // Empty disables the shared skill stats cache
	Password             string
	SkillStatsTTLSeconds int
}

type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
	CookieDomain    string
	CookieSecure    bool

	// InternalAPIToken guards the internal cache endpoints. Empty disables them.
	InternalAPIToken string
}

type DirectoryConfig struct {
	TalentsPerPage        int
	PagerMaxButtons       int
	SkillCloudLimit       int
	SkillBarsLimit        int
	SkillTopCategoryLimit int
}

type CacheConfig struct {
	ProfileTTLSeconds   int  // Profile cache TTL in seconds
	DisableProfileCache bool // Read from the store on every request
}

type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type ObservabilityConfig struct {
	AlloyEndpoint     string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("MIGRATIONS_PATH", "file://./migrations")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 14)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "alloy:4318") // OTLP over HTTP
	v.SetDefault("O11Y_BE_SERVICE_NAME", "talentmap-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "talentmap-dev")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "talentmap-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("PROFILE_CACHE_TTL", 300) // 5 minutes in seconds
	v.SetDefault("DISABLE_PROFILE_CACHE", false)
	v.SetDefault("SKILL_STATS_TTL", 600)

	// Directory defaults
	v.SetDefault("TALENTS_PER_PAGE", 20)
	v.SetDefault("PAGER_MAX_BUTTONS", 5)
	v.SetDefault("SKILL_CLOUD_LIMIT", 50)
	v.SetDefault("SKILL_BARS_LIMIT", 20)
	v.SetDefault("SKILL_TOP_CATEGORY_LIMIT", 5)

	// Member session defaults
	v.SetDefault("JWT_ISSUER", "talentmap-api")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: allowedOrigins,
		},
		Database: DatabaseConfig{
			URL:            v.GetString("DATABASE_URL"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			MinConns:       v.GetInt32("DB_MIN_CONNS"),
			WorkOffline:    v.GetBool("DB_WORK_OFFLINE"),
			SeedFile:       v.GetString("OFFLINE_SEED_FILE"),
			MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		},
		Redis: RedisConfig{
			URL:                  v.GetString("REDIS_URL"),
			Password:             v.GetString("REDIS_PASSWORD"),
			SkillStatsTTLSeconds: v.GetInt("SKILL_STATS_TTL"),
		},
		Auth: AuthConfig{
			JWTSecret:        v.GetString("JWT_SECRET"),
			JWTIssuer:        v.GetString("JWT_ISSUER"),
			SessionTTLHours:  v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain:     v.GetString("COOKIE_DOMAIN"),
			CookieSecure:     v.GetBool("COOKIE_SECURE"),
			InternalAPIToken: v.GetString("INTERNAL_API_TOKEN"),
		},
		Directory: DirectoryConfig{
			TalentsPerPage:        v.GetInt("TALENTS_PER_PAGE"),
			PagerMaxButtons:       v.GetInt("PAGER_MAX_BUTTONS"),
			SkillCloudLimit:       v.GetInt("SKILL_CLOUD_LIMIT"),
			SkillBarsLimit:        v.GetInt("SKILL_BARS_LIMIT"),
			SkillTopCategoryLimit: v.GetInt("SKILL_TOP_CATEGORY_LIMIT"),
		},
		Cache: CacheConfig{
			ProfileTTLSeconds:   v.GetInt("PROFILE_CACHE_TTL"),
			DisableProfileCache: v.GetBool("DISABLE_PROFILE_CACHE"),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Dir:        v.GetString("LOG_DIR"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Observability: ObservabilityConfig{
			AlloyEndpoint:     v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Database configuration
	if !c.Database.WorkOffline && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when not in offline mode")
	}

	// Member sessions
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	// Directory
	if c.Directory.TalentsPerPage <= 0 {
		return fmt.Errorf("TALENTS_PER_PAGE must be positive")
	}
	if c.Directory.PagerMaxButtons <= 0 {
		return fmt.Errorf("PAGER_MAX_BUTTONS must be positive")
	}

	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
