package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Session slot backends
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// DefaultAdminRole is the role string the backend assigns to administrators.
const DefaultAdminRole = "系统管理员"

// Config holds all console configuration
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// BackendConfig describes the marketplace REST backend
type BackendConfig struct {
	BaseURL      string        // scheme://host[:port] of the backend
	BasePath     string        // path prefix of every API call, "/api"
	Timeout      time.Duration // fixed per-call network timeout
	UserAgent    string
	AssetBaseURL string // base used when rewriting image URLs
}

// SessionConfig holds the persisted token slot settings
type SessionConfig struct {
	Store      string // file, sqlite, redis, memory
	Key        string // slot key, "token"
	FilePath   string
	SQLitePath string
	AdminRole  string
}

// RedisConfig holds Redis connection settings for the redis slot
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stderr, stdout, or file path
}

// MetricsConfig controls the request metrics of the pipeline
type MetricsConfig struct {
	Enabled  bool
	Textfile string // when set, metrics are written here on exit
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with CONSOLE_ prefix (e.g., CONSOLE_BACKEND_BASE_URL)
// 2. the file given by path, or config.toml found in . or $HOME/.console
// 3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if dir, err := stateDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Backend: BackendConfig{
			BaseURL:      v.GetString("backend.base_url"),
			BasePath:     v.GetString("backend.base_path"),
			Timeout:      v.GetDuration("backend.timeout"),
			UserAgent:    v.GetString("backend.user_agent"),
			AssetBaseURL: v.GetString("backend.asset_base_url"),
		},
		Session: SessionConfig{
			Store:      v.GetString("session.store"),
			Key:        v.GetString("session.key"),
			FilePath:   v.GetString("session.file_path"),
			SQLitePath: v.GetString("session.sqlite_path"),
			AdminRole:  v.GetString("session.admin_role"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("redis.host"),
			Port:      v.GetInt("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Metrics: MetricsConfig{
			Enabled:  v.GetBool("metrics.enabled"),
			Textfile: v.GetString("metrics.textfile"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "secondhand-console"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8080"
	}
	cfg.Backend.BaseURL = strings.TrimSuffix(cfg.Backend.BaseURL, "/")
	if cfg.Backend.BasePath == "" {
		cfg.Backend.BasePath = "/api"
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}
	if cfg.Backend.UserAgent == "" {
		cfg.Backend.UserAgent = "secondhand-console/1.0"
	}
	if cfg.Backend.AssetBaseURL == "" {
		cfg.Backend.AssetBaseURL = cfg.Backend.BaseURL
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = StoreFile
	}
	if cfg.Session.Key == "" {
		cfg.Session.Key = "token"
	}
	dir, err := stateDir()
	if err != nil {
		dir = "."
	}
	if cfg.Session.FilePath == "" {
		cfg.Session.FilePath = filepath.Join(dir, "session.json")
	}
	if cfg.Session.SQLitePath == "" {
		cfg.Session.SQLitePath = filepath.Join(dir, "session.db")
	}
	if cfg.Session.AdminRole == "" {
		cfg.Session.AdminRole = DefaultAdminRole
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "console:session:"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must use http or https, got %q", c.Backend.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.base_url must include a host, got %q", c.Backend.BaseURL)
	}
	if !strings.HasPrefix(c.Backend.BasePath, "/") {
		return fmt.Errorf("backend.base_path must start with '/', got %q", c.Backend.BasePath)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout cannot be negative")
	}

	switch c.Session.Store {
	case StoreFile, StoreSQLite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("session.store must be one of file, sqlite, redis, memory, got %q", c.Session.Store)
	}

	if c.App.Env == "production" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must use https in production (bearer tokens travel in headers)")
	}

	return nil
}

// Addr returns the host:port of the redis server
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// stateDir is where the console keeps its config and session by default.
func stateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".console"), nil
}
