package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Station     StationConfig    `mapstructure:"station"`
	Storage     StorageConfig    `mapstructure:"storage"`
	Processing  ProcessingConfig `mapstructure:"processing"`
	Feeds       FeedsConfig      `mapstructure:"feeds"`
	Logging     LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// StationConfig describes the station this service publishes for
type StationConfig struct {
	// URL is the externally reachable base URL, e.g. https://radio.example.com/
	URL          string `mapstructure:"url"`
	APIKey       string `mapstructure:"api_key"`
	PodcastTitle string `mapstructure:"podcast_title"`
}

// StorageConfig contains media storage settings
type StorageConfig struct {
	Backend string          `mapstructure:"backend"` // filesystem or s3
	Dir     string          `mapstructure:"dir"`
	TempDir string          `mapstructure:"temp_dir"`
	S3      S3StorageConfig `mapstructure:"s3"`
}

// S3StorageConfig contains S3-compatible object storage settings
type S3StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// ProcessingConfig contains background job settings
type ProcessingConfig struct {
	Workers           int           `mapstructure:"workers"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`
	ReconcileBatch    int           `mapstructure:"reconcile_batch"`
	JobRetentionDays  int           `mapstructure:"job_retention_days"`
	DownloadTimeout   time.Duration `mapstructure:"download_timeout"`
	MaxDownloadSize   int64         `mapstructure:"max_download_size"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// FeedsConfig contains RSS fetching settings
type FeedsConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	UserAgent string        `mapstructure:"user_agent"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Caller bool   `mapstructure:"caller"`
}
