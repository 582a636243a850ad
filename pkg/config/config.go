package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. STATIONCAST_SERVER_PORT
const EnvPrefix = "STATIONCAST"

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load(filepath.Clean("./config/settings.yaml"))
	})

	return initErr
}

func load(configPath string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, defaults and env vars still apply
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("station.url") == "" {
		return fmt.Errorf("station.url is required")
	}

	switch backend := viper.GetString("storage.backend"); backend {
	case "filesystem", "s3":
	default:
		return fmt.Errorf("unknown storage backend: %q", backend)
	}

	if err := validateAPIKey(); err != nil {
		return err
	}

	// Auto-correct invalid worker count
	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", 2)
	}

	if viper.GetInt("processing.reconcile_batch") <= 0 {
		viper.Set("processing.reconcile_batch", 100)
	}

	return nil
}

// validateAPIKey rejects placeholder station keys in production
func validateAPIKey() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	apiKey := viper.GetString("station.api_key")
	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid station API key: cannot use placeholder values in production")
			}
			log.Printf("[WARN] station API key is using a placeholder value")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Station.URL == "" {
		return fmt.Errorf("station.url is required")
	}

	if c.Storage.Backend != "filesystem" && c.Storage.Backend != "s3" {
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}

	if c.Processing.Workers <= 0 {
		c.Processing.Workers = 2
	}

	if c.Processing.ReconcileBatch <= 0 {
		c.Processing.ReconcileBatch = 100
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 5*time.Minute)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_upload_bytes", 512*1024*1024)

	// Database defaults
	viper.SetDefault("database.path", "./data/stationcast.db")
	viper.SetDefault("database.log_queries", false)

	// Station defaults
	viper.SetDefault("station.url", "http://localhost:8080/")
	viper.SetDefault("station.api_key", "changeme")
	viper.SetDefault("station.podcast_title", "Station Podcast")

	// Storage defaults
	viper.SetDefault("storage.backend", "filesystem")
	viper.SetDefault("storage.dir", "./data/media")
	viper.SetDefault("storage.temp_dir", os.TempDir())
	viper.SetDefault("storage.s3.region", "us-east-1")
	viper.SetDefault("storage.s3.use_ssl", true)

	// Processing defaults
	viper.SetDefault("processing.workers", 2)
	viper.SetDefault("processing.poll_interval", 2*time.Second)
	viper.SetDefault("processing.reconcile_interval", 5*time.Second)
	viper.SetDefault("processing.reconcile_batch", 100)
	viper.SetDefault("processing.job_retention_days", 30)
	viper.SetDefault("processing.download_timeout", 30*time.Minute)
	viper.SetDefault("processing.max_download_size", 1024*1024*1024)
	viper.SetDefault("processing.user_agent", "stationcast/1.0")

	// Feed defaults
	viper.SetDefault("feeds.timeout", 15*time.Second)
	viper.SetDefault("feeds.cache_ttl", 5*time.Minute)
	viper.SetDefault("feeds.user_agent", "stationcast/1.0")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.caller", false)
}
