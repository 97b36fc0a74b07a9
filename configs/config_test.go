package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimos082/website-monitor/configs"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "monitor")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "monitor_db")
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("CONFIG_FILE", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := configs.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "monitor:secret@tcp(localhost:3306)/monitor_db?parseTime=true", cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.JWTLifetime)
	assert.Equal(t, 1, cfg.ScanDepth)
	assert.Equal(t, 5*time.Second, cfg.ScanTimeout)
	assert.Equal(t, 4, cfg.MaxWorkers)
	assert.Equal(t, 128, cfg.QueueSize)
	assert.Equal(t, 12, cfg.ProbeConcurrency)
	assert.Equal(t, "WebsiteMonitor-Bot/1.0", cfg.UserAgent)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SCAN_DEPTH", "3")
	t.Setenv("SCAN_TIMEOUT_SECONDS", "10")
	t.Setenv("MAX_CONCURRENT_SCANS", "8")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("USER_AGENT", "Custom-Bot/2.0")

	cfg, err := configs.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 3, cfg.ScanDepth)
	assert.Equal(t, 10*time.Second, cfg.ScanTimeout)
	assert.Equal(t, 8, cfg.MaxWorkers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Custom-Bot/2.0", cfg.UserAgent)
}

func TestLoad_YAMLFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"logLevel: warning\nscanDepth: 4\nscanTimeoutSeconds: 30\nuserAgent: File-Bot/1.0\n",
	), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := configs.Load()
	require.NoError(t, err)

	assert.Equal(t, "warning", cfg.LogLevel)
	assert.Equal(t, 4, cfg.ScanDepth)
	assert.Equal(t, 30*time.Second, cfg.ScanTimeout)
	assert.Equal(t, "File-Bot/1.0", cfg.UserAgent)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scanDepth: 4\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SCAN_DEPTH", "9")

	cfg, err := configs.Load()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.ScanDepth)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Run("database", func(t *testing.T) {
		t.Setenv("DB_USER", "")
		t.Setenv("DB_PASSWORD", "")
		t.Setenv("DB_NAME", "")
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("CONFIG_FILE", "")

		_, err := configs.Load()
		assert.ErrorContains(t, err, "database env vars")
	})

	t.Run("jwt secret", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := configs.Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}

func TestLoad_BadValues(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		setRequiredEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scanDepth: [not an int\n"), 0o644))
		t.Setenv("CONFIG_FILE", path)

		_, err := configs.Load()
		assert.Error(t, err)
	})

	t.Run("bad int env", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SCAN_DEPTH", "three")

		_, err := configs.Load()
		assert.ErrorContains(t, err, "SCAN_DEPTH")
	})

	t.Run("bad lifetime", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_LIFETIME", "sometime")

		_, err := configs.Load()
		assert.ErrorContains(t, err, "JWT_LIFETIME")
	})
}
