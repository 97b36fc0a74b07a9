package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config holds the application configuration values.
type Config struct {
	ServerHost       string
	ServerPort       string
	ServerMode       string
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseURL      string
	LogFile          string
	LogLevel         string
	JWTSecret        string
	JWTLifetime      time.Duration
	ScanDepth        int
	ScanTimeout      time.Duration
	MaxWorkers       int
	QueueSize        int
	ProbeConcurrency int
	UserAgent        string
}

// fileConfig is the optional YAML config file shape. Environment variables
// override anything set here.
type fileConfig struct {
	LogFile     string `yaml:"logFile"`
	LogLevel    string `yaml:"logLevel"`
	ScanDepth   *int   `yaml:"scanDepth"`
	ScanTimeout *int   `yaml:"scanTimeoutSeconds"`
	UserAgent   string `yaml:"userAgent"`
}

// Load reads configuration from an optional YAML file (CONFIG_FILE) and from
// environment variables (optionally a .env file), env taking precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	fc, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	// Server
	cfg.ServerHost = getEnv("HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("PORT", "8080")
	cfg.ServerMode = getEnv("GIN_MODE", "debug")

	// Database
	cfg.DatabaseHost = getEnv("DB_HOST", "localhost")
	cfg.DatabasePort = getEnv("DB_PORT", "3306")
	cfg.DatabaseUser = getEnv("DB_USER", "")
	cfg.DatabasePassword = getEnv("DB_PASSWORD", "")
	cfg.DatabaseName = getEnv("DB_NAME", "")
	if cfg.DatabaseUser == "" || cfg.DatabasePassword == "" || cfg.DatabaseName == "" {
		return nil, fmt.Errorf("missing required database env vars")
	}
	cfg.DatabaseURL = fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DatabaseUser, cfg.DatabasePassword,
		cfg.DatabaseHost, cfg.DatabasePort,
		cfg.DatabaseName,
	)

	// Logging
	cfg.LogFile = getEnv("LOG_FILE", fc.LogFile)
	cfg.LogLevel = getEnv("LOG_LEVEL", defStr(fc.LogLevel, "info"))

	// Auth
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET environment variable")
	}
	d, err := time.ParseDuration(getEnv("JWT_LIFETIME", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_LIFETIME: %w", err)
	}
	cfg.JWTLifetime = d

	// Scanning
	cfg.ScanDepth, err = intEnv("SCAN_DEPTH", defInt(fc.ScanDepth, 1))
	if err != nil {
		return nil, err
	}
	timeoutSec, err := intEnv("SCAN_TIMEOUT_SECONDS", defInt(fc.ScanTimeout, 5))
	if err != nil {
		return nil, err
	}
	cfg.ScanTimeout = time.Duration(timeoutSec) * time.Second

	cfg.MaxWorkers, err = intEnv("MAX_CONCURRENT_SCANS", 4)
	if err != nil {
		return nil, err
	}
	cfg.QueueSize, err = intEnv("SCAN_QUEUE_SIZE", 128)
	if err != nil {
		return nil, err
	}
	cfg.ProbeConcurrency, err = intEnv("IMAGE_PROBE_CONCURRENCY", 12)
	if err != nil {
		return nil, err
	}

	cfg.UserAgent = getEnv("USER_AGENT", defStr(fc.UserAgent, "WebsiteMonitor-Bot/1.0"))

	return cfg, nil
}

// loadFile parses the optional YAML config file; an empty path yields zero values.
func loadFile(path string) (*fileConfig, error) {
	fc := &fileConfig{}
	if path == "" {
		return fc, nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(contents, fc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return fc, nil
}

// getEnv returns env var or default.
func getEnv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func intEnv(key string, def int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func defStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
