package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Store drivers
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Logger LoggerConfig `mapstructure:"logger"`
	Locale LocaleConfig `mapstructure:"locale"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Lark   LarkConfig   `mapstructure:"lark"`
	Export ExportConfig `mapstructure:"export"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// BaseURL is where the CLI reaches a running server
	BaseURL string `mapstructure:"base_url"`
}

// StoreConfig selects and configures the key-value backend
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	RedisURL  string `mapstructure:"redis_url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// LocaleConfig holds the display language and currency
type LocaleConfig struct {
	Language string `mapstructure:"language"`
	Currency string `mapstructure:"currency"`
}

// AuthConfig holds the default admin login written on first start
type AuthConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

// LarkConfig holds Lark API configuration. Empty credentials disable the Lark notifier.
type LarkConfig struct {
	AppID     string `mapstructure:"app_id"`
	AppSecret string `mapstructure:"app_secret"`
	ChatID    string `mapstructure:"chat_id"`
}

// Enabled reports whether Lark notifications are configured
func (c LarkConfig) Enabled() bool {
	return c.AppID != "" && c.AppSecret != "" && c.ChatID != ""
}

// ExportConfig holds statement export configuration
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// Load loads configuration from an optional .env, the YAML file and environment variables.
// A missing config file leaves the defaults in place.
func Load(configPath string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// Override with environment variables
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.base_url", "http://localhost:8080")

	// Store defaults
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.path", "data/ledger.db")
	v.SetDefault("store.redis_url", "redis://localhost:6379/0")
	v.SetDefault("store.key_prefix", "")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")

	// Locale defaults
	v.SetDefault("locale.language", "ar")
	v.SetDefault("locale.currency", "SAR")

	// Auth defaults
	v.SetDefault("auth.admin_email", "deltastars777@gmail.com")
	v.SetDefault("auth.admin_password", "Admin123!")

	// Export defaults
	v.SetDefault("export.output_dir", "exports")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) {
	// Sensitive credentials from environment
	_ = v.BindEnv("lark.app_id", "LARK_APP_ID")
	_ = v.BindEnv("lark.app_secret", "LARK_APP_SECRET")
	_ = v.BindEnv("lark.chat_id", "LARK_CHAT_ID")
	_ = v.BindEnv("store.redis_url", "REDIS_URL", "LEDGER_STORE_REDIS_URL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite driver")
		}
	case DriverRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for the redis driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	switch c.Locale.Language {
	case "ar", "en":
	default:
		return fmt.Errorf("locale.language must be ar or en, got %q", c.Locale.Language)
	}
	switch c.Locale.Currency {
	case "SAR", "USD", "EUR":
	default:
		return fmt.Errorf("locale.currency must be SAR, USD or EUR, got %q", c.Locale.Currency)
	}

	if c.Auth.AdminEmail == "" || c.Auth.AdminPassword == "" {
		return fmt.Errorf("auth.admin_email and auth.admin_password are required")
	}

	if (c.Lark.AppID == "") != (c.Lark.AppSecret == "") {
		return fmt.Errorf("lark.app_id and lark.app_secret must be set together")
	}

	return nil
}

// Address returns host:port for the HTTP listener
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
