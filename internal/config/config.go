// Package config loads server configuration from a YAML file, an adjacent
// .env file and the environment, in that order of increasing precedence.
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

	"github.com/mmynk/dropin/internal/ocr"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"-"` // DROPIN_REDIS_PASSWORD
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type StorageConfig struct {
	// Backend holds the local roster snapshot: "sqlite" or "redis".
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`

	// RemoteDSN enables the Postgres sync table when set.
	RemoteDSN string `yaml:"-"` // DROPIN_REMOTE_DSN
}

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage StorageConfig `yaml:"storage"`

	Session struct {
		Courts int `yaml:"courts"`
	} `yaml:"session"`

	OCR struct {
		Endpoint string        `yaml:"endpoint"`
		APIKey   string        `yaml:"-"` // DROPIN_OCR_API_KEY
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"ocr"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.Path = "./data/dropin.db"
	cfg.Storage.Redis.Addr = "localhost:6379"
	cfg.Storage.Redis.Prefix = "dropin:"
	cfg.Session.Courts = 3
	cfg.OCR.Endpoint = ocr.DefaultEndpoint
	cfg.OCR.Timeout = 30 * time.Second
	cfg.Log.Level = "info"
	return &cfg
}

// Load reads configPath over the defaults, then applies the environment.
// An empty configPath skips the file and reads .env from the working
// directory.
func Load(configPath string) (*Config, error) {
	envPath := ".env"
	if configPath != "" {
		envPath = filepath.Join(filepath.Dir(configPath), ".env")
	}
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DROPIN_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DROPIN_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("DROPIN_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	// A Redis address in the environment selects the Redis backend.
	if v := os.Getenv("DROPIN_REDIS_ADDR"); v != "" {
		c.Storage.Backend = BackendRedis
		c.Storage.Redis.Addr = v
	}
	c.Storage.Redis.Password = os.Getenv("DROPIN_REDIS_PASSWORD")
	c.Storage.RemoteDSN = os.Getenv("DROPIN_REMOTE_DSN")
	c.OCR.APIKey = os.Getenv("DROPIN_OCR_API_KEY")
	if v := os.Getenv("DROPIN_OCR_ENDPOINT"); v != "" {
		c.OCR.Endpoint = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Session.Courts < 1 {
		return fmt.Errorf("session courts must be at least 1")
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for sqlite")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for redis")
		}
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", c.Log.Level)
	}
	return nil
}

// OCREnabled reports whether image scanning can be offered.
func (c *Config) OCREnabled() bool {
	return c.OCR.APIKey != ""
}
