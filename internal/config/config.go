package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Mirror   MirrorConfig   `mapstructure:"mirror"`
}

// APIConfig holds backend API configuration
type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	VersionPrefix        string `mapstructure:"version_prefix"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	PageSize             int    `mapstructure:"page_size"`
}

// StorageConfig selects and configures the durable local store
type StorageConfig struct {
	Backend   string `mapstructure:"backend"` // "file" or "redis"
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// DatabaseConfig holds database configuration for the offline mirror
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// MirrorConfig toggles the offline catalog mirror
type MirrorConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config.yaml is fine, defaults plus env cover a dev setup
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:5000")
	viper.SetDefault("api.version_prefix", "/api/v1")
	viper.SetDefault("api.timeout", 20)
	viper.SetDefault("api.max_requests_per_second", 10)
	viper.SetDefault("api.page_size", 10)

	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.path", "./dealspot_storage.json")
	viper.SetDefault("storage.namespace", "dealspot")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "dealspot")
	viper.SetDefault("database.user", "dealspot_user")
	viper.SetDefault("database.password", "dealspot_pass")

	viper.SetDefault("mirror.enabled", false)
}
