// Package config loads runtime settings from the environment, optionally
// seeded from a dotenv file. Invalid values never abort startup; they warn
// and fall back to defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/clearstonehq/regmock/internal/mock"
)

const (
	DefaultPort        = 7700
	DefaultMetricsPort = 9095

	// StateFileName is the dotenv file the file store keeps under DataDir.
	StateFileName = "state.env"
)

// Config is the resolved runtime configuration.
type Config struct {
	Host        string
	Port        int
	MetricsPort int

	// DataDir holds the state file or sqlite database.
	DataDir      string
	StoreBackend string // memory, file, sqlite, redis
	RedisURL     string

	KYCBaseURL string
	DelayMin   time.Duration
	DelayMax   time.Duration

	// AllowedOrigins is a comma-separated list of WebSocket origin
	// patterns, wildcards permitted. Empty means same-host only.
	AllowedOrigins string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// DefaultDataDir is the per-user data directory used when REGMOCK_DATA_DIR
// is unset.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, "regmock")
}

// Load resolves the configuration. When envFile is non-empty it is loaded
// first; values already present in the process environment always win.
func Load(envFile string) *Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", envFile).Msg("failed to load env file")
		}
	} else {
		// Best-effort .env in the working directory.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Host:           strings.TrimSpace(os.Getenv("REGMOCK_HOST")),
		Port:           parseIntEnv("REGMOCK_PORT", DefaultPort, 1),
		MetricsPort:    parseIntEnv("REGMOCK_METRICS_PORT", DefaultMetricsPort, 0),
		DataDir:        strings.TrimSpace(os.Getenv("REGMOCK_DATA_DIR")),
		StoreBackend:   strings.TrimSpace(os.Getenv("REGMOCK_STORE")),
		RedisURL:       strings.TrimSpace(os.Getenv("REGMOCK_REDIS_URL")),
		KYCBaseURL:     strings.TrimSpace(os.Getenv("REGMOCK_KYC_BASE_URL")),
		DelayMin:       parseMillisEnv("REGMOCK_DELAY_MIN_MS", mock.DefaultDelayMin),
		DelayMax:       parseMillisEnv("REGMOCK_DELAY_MAX_MS", mock.DefaultDelayMax),
		AllowedOrigins: strings.TrimSpace(os.Getenv("REGMOCK_ALLOWED_ORIGINS")),
		LogLevel:       strings.TrimSpace(os.Getenv("REGMOCK_LOG_LEVEL")),
		LogFormat:      strings.TrimSpace(os.Getenv("REGMOCK_LOG_FORMAT")),
		LogFile:        strings.TrimSpace(os.Getenv("REGMOCK_LOG_FILE")),
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}

	return cfg
}

// ListenAddr is the API bind address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsAddr is the Prometheus bind address. Empty when the metrics server
// is disabled (REGMOCK_METRICS_PORT=0).
func (c *Config) MetricsAddr() string {
	if c.MetricsPort <= 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// StateFilePath is where the file store keeps its data.
func (c *Config) StateFilePath() string {
	return filepath.Join(c.DataDir, StateFileName)
}

func parseIntEnv(envName string, defaultValue int, minValue int) int {
	val := strings.TrimSpace(os.Getenv(envName))
	if val == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().
			Err(err).
			Str("env_var", envName).
			Str("value", val).
			Int("default", defaultValue).
			Msg("invalid integer value; using default")
		return defaultValue
	}
	if parsed < minValue {
		log.Warn().
			Str("env_var", envName).
			Int("value", parsed).
			Int("min", minValue).
			Int("default", defaultValue).
			Msg("integer below minimum; using default")
		return defaultValue
	}

	return parsed
}

func parseMillisEnv(envName string, defaultValue time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(envName))
	if val == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().
			Err(err).
			Str("env_var", envName).
			Str("value", val).
			Dur("default", defaultValue).
			Msg("invalid millisecond value; using default")
		return defaultValue
	}
	if parsed < 0 {
		log.Warn().
			Str("env_var", envName).
			Int("value", parsed).
			Dur("default", defaultValue).
			Msg("negative millisecond value; using default")
		return defaultValue
	}

	return time.Duration(parsed) * time.Millisecond
}
