package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Environment string

	// Backend
	APIBaseURL string
	Timeout    time.Duration
	UserAgent  string

	// Session token for the CLI; client calls still take it explicitly
	Token string

	// Logging
	LogLevel string
}

// File is the optional YAML config file layout
type File struct {
	Environment string `yaml:"environment"`
	API         struct {
		BaseURL   string `yaml:"base_url"`
		Timeout   string `yaml:"timeout"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"api"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads .env, then the YAML file named by path (or PAW_CONFIG), then
// the environment. Later sources win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Environment: "production",
		Timeout:     30 * time.Second,
		UserAgent:   "pawctl/1",
		LogLevel:    "info",
	}

	if path == "" {
		path = strings.TrimSpace(os.Getenv("PAW_CONFIG"))
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Environment = getEnv("PAW_ENV", cfg.Environment)
	cfg.APIBaseURL = getEnv("PAW_API_URL", cfg.APIBaseURL)
	cfg.UserAgent = getEnv("PAW_USER_AGENT", cfg.UserAgent)
	cfg.LogLevel = getEnv("PAW_LOG_LEVEL", cfg.LogLevel)
	cfg.Token = getEnv("PAW_TOKEN", cfg.Token)
	if secs := getEnvInt("PAW_TIMEOUT_SECONDS", 0); secs > 0 {
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("PAW_API_URL is required")
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if f.Environment != "" {
		c.Environment = f.Environment
	}
	if f.API.BaseURL != "" {
		c.APIBaseURL = f.API.BaseURL
	}
	if f.API.UserAgent != "" {
		c.UserAgent = f.API.UserAgent
	}
	if f.API.Timeout != "" {
		d, err := time.ParseDuration(f.API.Timeout)
		if err != nil {
			return fmt.Errorf("parse api.timeout: %w", err)
		}
		c.Timeout = d
	}
	if f.Log.Level != "" {
		c.LogLevel = f.Log.Level
	}
	return nil
}

// Debug reports whether debug logging should be enabled
func (c *Config) Debug() bool {
	return c.Environment == "development" || strings.EqualFold(c.LogLevel, "debug")
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}
