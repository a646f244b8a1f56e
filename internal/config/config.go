package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"aura/internal/services/correlation"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ExecutorSimulated = "simulated"
	ExecutorScript    = "script"
)

type Config struct {
	Env        string
	ListenAddr string

	StoreDriver string
	DatabaseURL string
	SQLitePath  string

	ToolWorkers    int
	ToolGrace      time.Duration
	ExecutorMode   string
	ScriptsDir     string
	SimulatedScale float64

	CorrelationWorkers int
	CorrelationPoll    time.Duration

	RetentionMaxAge   time.Duration
	RetentionInterval time.Duration

	WSCommandsPerMinute int

	Weights    correlation.Weights
	Thresholds correlation.Thresholds
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the configuration from the environment, after loading .env
// files when present. The returned error reports a misconfiguration the
// caller decides on; cfg is always populated.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	w := correlation.DefaultWeights()
	w.PerPlatform = getenvFloat("RISK_PER_PLATFORM", w.PerPlatform)
	w.PlatformCap = getenvFloat("RISK_PLATFORM_CAP", w.PlatformCap)
	w.Toxicity = getenvFloat("RISK_TOXICITY", w.Toxicity)
	w.PerAlert = getenvFloat("RISK_PER_ALERT", w.PerAlert)
	w.AlertCap = getenvFloat("RISK_ALERT_CAP", w.AlertCap)

	th := correlation.DefaultThresholds()
	th.EmailMatch = getenvFloat("CORRELATION_EMAIL_MATCH", th.EmailMatch)
	th.EvidenceMatch = getenvFloat("CORRELATION_EVIDENCE_MATCH", th.EvidenceMatch)
	th.BioSimilarity = getenvFloat("CORRELATION_BIO_SIMILARITY", th.BioSimilarity)
	th.HighConfidence = getenvFloat("CORRELATION_HIGH_CONFIDENCE", th.HighConfidence)
	th.ToxicAbove = getenvFloat("CORRELATION_TOXIC_ABOVE", th.ToxicAbove)
	th.ProximityWindow = getenvDuration("CORRELATION_PROXIMITY_WINDOW", th.ProximityWindow)
	th.NetworkLookback = getenvDuration("CORRELATION_NETWORK_LOOKBACK", th.NetworkLookback)
	th.MinTemporal = getenvInt("CORRELATION_MIN_TEMPORAL", th.MinTemporal)
	th.MinContent = getenvInt("CORRELATION_MIN_CONTENT", th.MinContent)

	cfg := Config{
		Env:                 getenv("APP_ENV", "development"),
		ListenAddr:          getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SQLitePath:          getenv("SQLITE_PATH", "data/aura.db"),
		ToolWorkers:         getenvInt("TOOL_WORKERS", 3),
		ToolGrace:           getenvDuration("TOOL_GRACE", 10*time.Second),
		ExecutorMode:        strings.ToLower(getenv("EXECUTOR_MODE", ExecutorSimulated)),
		ScriptsDir:          getenv("TOOL_SCRIPTS_DIR", "tools.d"),
		SimulatedScale:      getenvFloat("SIMULATED_SCALE", 1),
		CorrelationWorkers:  getenvInt("CORRELATION_WORKERS", 1),
		CorrelationPoll:     getenvDuration("CORRELATION_POLL", 2*time.Second),
		RetentionMaxAge:     getenvDuration("RETENTION_MAX_AGE", 24*time.Hour),
		RetentionInterval:   getenvDuration("RETENTION_INTERVAL", 5*time.Minute),
		WSCommandsPerMinute: getenvInt("WS_COMMANDS_PER_MINUTE", 60),
		Weights:             w,
		Thresholds:          th,
	}
	cfg.StoreDriver = strings.ToLower(os.Getenv("STORE_DRIVER"))
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = DriverSQLite
		if cfg.DatabaseURL != "" {
			cfg.StoreDriver = DriverPostgres
		}
	}

	switch cfg.StoreDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return cfg, fmt.Errorf("DATABASE_URL not set")
		}
	default:
		return cfg, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.ExecutorMode != ExecutorSimulated && cfg.ExecutorMode != ExecutorScript {
		return cfg, fmt.Errorf("unknown EXECUTOR_MODE %q", cfg.ExecutorMode)
	}
	return cfg, nil
}

func (c Config) Production() bool { return c.Env == "production" }

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.Atoi(v); err == nil {
			return out
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.ParseFloat(v, 64); err == nil {
			return out
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if out, err := time.ParseDuration(v); err == nil {
			return out
		}
	}
	return def
}
