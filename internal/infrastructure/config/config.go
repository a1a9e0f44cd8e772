package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Store    StoreConfig    `mapstructure:"store"`
	AutoSave AutoSaveConfig `mapstructure:"autosave"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	BodyLimit       string        `mapstructure:"body_limit"`
}

// BackendConfig points at the REST backend that stores the documents
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StoreConfig sizes the in-memory ledgers
type StoreConfig struct {
	HistoryLimit      int  `mapstructure:"history_limit"`
	BackupLimit       int  `mapstructure:"backup_limit"`
	NotificationLimit int  `mapstructure:"notification_limit"`
	LoadOnStart       bool `mapstructure:"load_on_start"`
}

// AutoSaveConfig controls periodic saving
type AutoSaveConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// UploadsConfig limits asset uploads
type UploadsConfig struct {
	MaxSize      int64  `mapstructure:"max_size"`
	PublicPrefix string `mapstructure:"public_prefix"`
}

// DatabaseConfig holds the revision archive database configuration
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// AuthConfig holds the bearer token verification settings. An empty secret
// disables authentication.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from defaults, an optional config file, .env and
// the environment, in increasing order of precedence.
func Load(file string) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "sitecms")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.body_limit", "20M")

	// Backend defaults
	v.SetDefault("backend.base_url", "http://localhost:4000")
	v.SetDefault("backend.timeout", "15s")

	// Store defaults
	v.SetDefault("store.history_limit", 10)
	v.SetDefault("store.backup_limit", 10)
	v.SetDefault("store.notification_limit", 50)
	v.SetDefault("store.load_on_start", true)

	// Auto-save defaults
	v.SetDefault("autosave.enabled", true)
	v.SetDefault("autosave.interval", "30s")

	// Upload defaults
	v.SetDefault("uploads.max_size", 10<<20)
	v.SetDefault("uploads.public_prefix", "/rachef-uploads/")

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "sitecms")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.conn_max_idle_time", "30s")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.token_ttl", "12h")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.filename", "")

	// Security defaults
	v.SetDefault("security.cors_allowed_origins", "*")
	v.SetDefault("security.rate_limit_requests", 100)
	v.SetDefault("security.rate_limit_window", "1m")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
}

func bindEnvVars(v *viper.Viper) {
	// App
	_ = v.BindEnv("app.environment", "APP_ENVIRONMENT")
	_ = v.BindEnv("app.debug", "APP_DEBUG")

	// Server
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.host", "SERVER_HOST")

	// Backend
	_ = v.BindEnv("backend.base_url", "BACKEND_URL")
	_ = v.BindEnv("backend.timeout", "BACKEND_TIMEOUT")

	// Auto-save
	_ = v.BindEnv("autosave.enabled", "AUTOSAVE_ENABLED")
	_ = v.BindEnv("autosave.interval", "AUTOSAVE_INTERVAL")

	// Database
	_ = v.BindEnv("database.enabled", "DB_ENABLED")
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.ssl_mode", "DB_SSL_MODE")

	// Auth
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("auth.issuer", "JWT_ISSUER")
	_ = v.BindEnv("auth.token_ttl", "JWT_TOKEN_TTL")

	// Logger
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
	_ = v.BindEnv("logger.format", "LOG_FORMAT")
	_ = v.BindEnv("logger.output", "LOG_OUTPUT")

	// Security
	_ = v.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")

	// Metrics
	_ = v.BindEnv("metrics.enabled", "ENABLE_METRICS")
}

// Validate rejects configurations the service cannot run with.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server port must be between 1 and 65535")
	}

	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend base_url %q must be an absolute URL", cfg.Backend.BaseURL)
	}

	if cfg.AutoSave.Enabled && cfg.AutoSave.Interval <= 0 {
		return errors.New("autosave interval must be positive")
	}

	if cfg.Store.HistoryLimit < 2 {
		return errors.New("store history_limit must be at least 2 for undo to work")
	}

	if cfg.Store.BackupLimit < 1 {
		return errors.New("store backup_limit must be at least 1")
	}

	if !strings.HasPrefix(cfg.Uploads.PublicPrefix, "/") || !strings.HasSuffix(cfg.Uploads.PublicPrefix, "/") {
		return fmt.Errorf("uploads public_prefix %q must start and end with a slash", cfg.Uploads.PublicPrefix)
	}

	if cfg.Database.Enabled && (cfg.Database.Host == "" || cfg.Database.Name == "") {
		return errors.New("database host and name are required when the archive is enabled")
	}

	if cfg.App.IsProduction() && cfg.Auth.JWTSecret == "" {
		return errors.New("JWT secret must be set in production")
	}

	return nil
}

// GetDSN returns the database connection string
func (cfg *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
}

// Address returns the host:port the HTTP server listens on
func (cfg *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
