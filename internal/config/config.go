// Package config loads TechDivulga configuration from YAML files, .env files
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the TechDivulga services.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Cache         CacheConfig         `yaml:"cache"`
	Chat          ChatConfig          `yaml:"chat"`
	Files         FilesConfig         `yaml:"files"`
	Content       ContentConfig       `yaml:"content"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	MaxBodyBytes     int64         `yaml:"max_body_bytes"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"` // sqlite or postgres
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// PostgresConfig holds Postgres-specific settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// CacheConfig holds the session and analysis store settings.
type CacheConfig struct {
	Driver     string      `yaml:"driver"` // memory or redis
	MaxEntries int         `yaml:"max_entries"`
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	Prefix   string `yaml:"prefix"`
}

// ChatConfig holds chatbot settings.
type ChatConfig struct {
	// ConfidenceThreshold overrides every intent threshold when > 0.
	ConfidenceThreshold float64       `yaml:"confidence_threshold"`
	AnalysisLogSize     int           `yaml:"analysis_log_size"`
	VoiceMaxChars       int           `yaml:"voice_max_chars"`
	SessionTTL          time.Duration `yaml:"session_ttl"`
	RateLimitPerSecond  float64       `yaml:"rate_limit_per_second"`
	RateLimitBurst      int           `yaml:"rate_limit_burst"`
}

// FilesConfig holds the document backend settings.
type FilesConfig struct {
	DataDir          string   `yaml:"data_dir"`
	Extensions       []string `yaml:"extensions"`
	MaxDocumentChars int      `yaml:"max_document_chars"`
	MaxConcurrent    int      `yaml:"max_concurrent"`
	ChunkSize        int      `yaml:"chunk_size"`
	ChunkOverlap     int      `yaml:"chunk_overlap"`
	ReindexSchedule  string   `yaml:"reindex_schedule"`
}

// ContentConfig holds content API settings.
type ContentConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
	SearchLimit  int `yaml:"search_limit"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file and applies environment overrides.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}

		cfg.Files.DataDir = ResolveRelativePath(path, cfg.Files.DataDir)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             3000,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     60 * time.Second,
			IdleTimeout:      120 * time.Second,
			RequestTimeout:   60 * time.Second,
			GracefulShutdown: 10 * time.Second,
			AllowedOrigins:   []string{"*"},
			MaxBodyBytes:     50 << 20,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path:         "techdivulga.db",
				MaxOpenConns: 1,
			},
			Postgres: PostgresConfig{
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 5 * time.Minute,
			},
		},
		Cache: CacheConfig{
			Driver:     "memory",
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				PoolSize: 10,
				Prefix:   "td:",
			},
		},
		Chat: ChatConfig{
			AnalysisLogSize:    100,
			VoiceMaxChars:      500,
			SessionTTL:         24 * time.Hour,
			RateLimitPerSecond: 5,
			RateLimitBurst:     10,
		},
		Files: FilesConfig{
			DataDir:          "data",
			Extensions:       []string{".pdf", ".txt", ".json", ".md"},
			MaxDocumentChars: 100000,
			MaxConcurrent:    4,
			ChunkSize:        1000,
			ChunkOverlap:     100,
			ReindexSchedule:  "@every 10m",
		},
		Content: ContentConfig{
			DefaultLimit: 100,
			MaxLimit:     1000,
			SearchLimit:  5,
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "techdivulga",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("invalid database driver: %s", c.Database.Driver)
	}

	if c.Database.Driver == "postgres" && c.Database.Postgres.DSN == "" {
		return fmt.Errorf("postgres driver requires database.postgres.dsn")
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Chat.ConfidenceThreshold < 0 || c.Chat.ConfidenceThreshold > 1 {
		return fmt.Errorf("chat.confidence_threshold must be between 0 and 1")
	}

	if c.Chat.AnalysisLogSize < 1 {
		return fmt.Errorf("chat.analysis_log_size must be positive")
	}

	if c.Chat.VoiceMaxChars < 1 {
		return fmt.Errorf("chat.voice_max_chars must be positive")
	}

	if c.Files.DataDir == "" {
		return fmt.Errorf("files.data_dir is required")
	}

	if c.Files.ChunkSize < 1 || c.Files.ChunkOverlap < 0 || c.Files.ChunkOverlap >= c.Files.ChunkSize {
		return fmt.Errorf("files.chunk_overlap must be smaller than files.chunk_size")
	}

	if c.Content.DefaultLimit < 1 || c.Content.DefaultLimit > c.Content.MaxLimit {
		return fmt.Errorf("content.default_limit must be between 1 and content.max_limit")
	}

	return nil
}

// DatabaseDSN returns the appropriate database connection string.
func (c *Config) DatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLite.Path
	}
	return c.Database.Postgres.DSN
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	// PORT is the platform convention; SERVER_PORT wins when both are set.
	for _, key := range []string{"PORT", "SERVER_PORT"} {
		if v := os.Getenv(key); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				cfg.Server.Port = port
			}
		}
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		if strings.HasPrefix(v, "sqlite:") {
			cfg.Database.Driver = "sqlite"
			cfg.Database.SQLite.Path = strings.TrimPrefix(v, "sqlite:")
		} else if strings.HasPrefix(v, "postgres") {
			cfg.Database.Driver = "postgres"
			cfg.Database.Postgres.DSN = v
		}
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Files.DataDir = v
	}

	if v := os.Getenv("CHAT_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Chat.ConfidenceThreshold = f
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}

// ResolveRelativePath resolves a path relative to the config file location.
func ResolveRelativePath(configPath, targetPath string) string {
	if targetPath == "" || filepath.IsAbs(targetPath) {
		return targetPath
	}
	return filepath.Join(filepath.Dir(configPath), targetPath)
}
