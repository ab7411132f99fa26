package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clearstonehq/regmock/internal/mock"
)

// clearRegmockEnv unsets every variable Load reads so ambient environment
// does not bleed into assertions.
func clearRegmockEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"REGMOCK_HOST", "REGMOCK_PORT", "REGMOCK_METRICS_PORT",
		"REGMOCK_DATA_DIR", "REGMOCK_STORE", "REGMOCK_REDIS_URL",
		"REGMOCK_KYC_BASE_URL", "REGMOCK_DELAY_MIN_MS", "REGMOCK_DELAY_MAX_MS",
		"REGMOCK_ALLOWED_ORIGINS", "REGMOCK_LOG_LEVEL", "REGMOCK_LOG_FORMAT",
		"REGMOCK_LOG_FILE",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearRegmockEnv(t)

	cfg := Load("")

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.MetricsPort != DefaultMetricsPort {
		t.Errorf("MetricsPort = %d, want %d", cfg.MetricsPort, DefaultMetricsPort)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir is empty, want xdg default")
	}
	if cfg.DelayMin != mock.DefaultDelayMin {
		t.Errorf("DelayMin = %v, want %v", cfg.DelayMin, mock.DefaultDelayMin)
	}
	if cfg.DelayMax != mock.DefaultDelayMax {
		t.Errorf("DelayMax = %v, want %v", cfg.DelayMax, mock.DefaultDelayMax)
	}
	if cfg.StoreBackend != "" {
		t.Errorf("StoreBackend = %q, want empty (file default applied downstream)", cfg.StoreBackend)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearRegmockEnv(t)
	t.Setenv("REGMOCK_HOST", "127.0.0.1")
	t.Setenv("REGMOCK_PORT", "8800")
	t.Setenv("REGMOCK_METRICS_PORT", "0")
	t.Setenv("REGMOCK_DATA_DIR", "/tmp/regmock-test")
	t.Setenv("REGMOCK_STORE", "sqlite")
	t.Setenv("REGMOCK_KYC_BASE_URL", "https://kyc.example.test/verify")
	t.Setenv("REGMOCK_DELAY_MIN_MS", "100")
	t.Setenv("REGMOCK_DELAY_MAX_MS", "200")

	cfg := Load("")

	if cfg.ListenAddr() != "127.0.0.1:8800" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr())
	}
	if cfg.MetricsAddr() != "" {
		t.Errorf("MetricsAddr = %q, want disabled", cfg.MetricsAddr())
	}
	if cfg.StoreBackend != "sqlite" {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	if cfg.KYCBaseURL != "https://kyc.example.test/verify" {
		t.Errorf("KYCBaseURL = %q", cfg.KYCBaseURL)
	}
	if cfg.DelayMin != 100*time.Millisecond || cfg.DelayMax != 200*time.Millisecond {
		t.Errorf("delay bounds = %v/%v, want 100ms/200ms", cfg.DelayMin, cfg.DelayMax)
	}
	if got := cfg.StateFilePath(); got != filepath.Join("/tmp/regmock-test", StateFileName) {
		t.Errorf("StateFilePath = %q", got)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearRegmockEnv(t)
	t.Setenv("REGMOCK_PORT", "not-a-port")
	t.Setenv("REGMOCK_METRICS_PORT", "-5")
	t.Setenv("REGMOCK_DELAY_MIN_MS", "fast")
	t.Setenv("REGMOCK_DELAY_MAX_MS", "-100")

	cfg := Load("")

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default on parse failure", cfg.Port)
	}
	if cfg.MetricsPort != DefaultMetricsPort {
		t.Errorf("MetricsPort = %d, want default on below-minimum", cfg.MetricsPort)
	}
	if cfg.DelayMin != mock.DefaultDelayMin {
		t.Errorf("DelayMin = %v, want default", cfg.DelayMin)
	}
	if cfg.DelayMax != mock.DefaultDelayMax {
		t.Errorf("DelayMax = %v, want default", cfg.DelayMax)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearRegmockEnv(t)

	envFile := filepath.Join(t.TempDir(), "regmock.env")
	content := strings.Join([]string{
		"REGMOCK_PORT=9100",
		"REGMOCK_STORE=redis",
		"REGMOCK_REDIS_URL=redis://localhost:6379/2",
	}, "\n")
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// Process environment wins over the file.
	t.Setenv("REGMOCK_STORE", "memory")

	cfg := Load(envFile)

	if cfg.Port != 9100 {
		t.Errorf("Port = %d, want 9100 from env file", cfg.Port)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("StoreBackend = %q, want process env to win", cfg.StoreBackend)
	}
	if cfg.RedisURL != "redis://localhost:6379/2" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearRegmockEnv(t)

	cfg := Load(filepath.Join(t.TempDir(), "absent.env"))
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default when env file missing", cfg.Port)
	}
}
