// Package config loads the service configuration from environment variables,
// applying defaults, normalizing values, and validating the result before the
// server starts. Everything tunable lives here: listener timeouts, logging,
// the SQLite path, edge rate limits, write quotas, CORS, and tracing.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leadstack/buyer-intake/internal/sysutil"
)

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig tunes the hardening headers, HSTS in particular.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig carries the OpenTelemetry exporter settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT, host:port
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE disables TLS
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0,1]
}

// QuotaConfig defines the per-user write quotas enforced by the fixed-window
// limiter. Create covers new-lead traffic (single create and CSV import),
// Update covers full updates and status transitions.
type QuotaConfig struct {
	CreateMax     int           // CREATE_QUOTA_MAX requests per window
	CreateWindow  time.Duration // CREATE_QUOTA_WINDOW
	UpdateMax     int           // UPDATE_QUOTA_MAX requests per window
	UpdateWindow  time.Duration // UPDATE_QUOTA_WINDOW
	SweepInterval time.Duration // QUOTA_SWEEP_INTERVAL for expired buckets
}

// Config holds every runtime setting the service reads at startup.
type Config struct {
	// Server
	Port              string        // listener port, digits only
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	MaxBodyBytes      int64         // request body cap; must exceed the 5MB CSV limit
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath string // SQLite path

	// Edge rate limiting (token bucket per user/IP)
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Business write quotas (fixed window per user)
	Quota QuotaConfig

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from the environment, applies defaults, folds
// aliases, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              envStr("PORT", "8080"),
		ReadTimeout:       envDur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: envDur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      envDur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       envDur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    envInt("MAX_HEADER_BYTES", 1<<20),
		MaxBodyBytes:      int64(envInt("MAX_BODY_BYTES", 6<<20)),
		GinMode:           strings.ToLower(envStr("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(envStr("LOG_LEVEL", "info")),
		LogPretty:      envBool("LOG_PRETTY", false),
		SwaggerEnabled: envBool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(envStr("API_BASE_PATH", "/api/v1")),

		// App
		DBPath: envStr("DB_PATH", "app.db"),

		// Edge rate limiting
		RateRPS:   envFloat("RATE_RPS", 5.0),
		RateBurst: envInt("RATE_BURST", 10),

		// Business write quotas
		Quota: QuotaConfig{
			CreateMax:     envInt("CREATE_QUOTA_MAX", 10),
			CreateWindow:  envDur("CREATE_QUOTA_WINDOW", time.Hour),
			UpdateMax:     envInt("UPDATE_QUOTA_MAX", 50),
			UpdateWindow:  envDur("UPDATE_QUOTA_WINDOW", time.Hour),
			SweepInterval: envDur("QUOTA_SWEEP_INTERVAL", time.Minute),
		},

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(envStr("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: envBool("ENABLE_HSTS", false),
			HSTSMaxAge: envDur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     envBool("OTEL_ENABLED", false),
			Endpoint:    envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: envStr("OTEL_SERVICE_NAME", "buyer-intake"),
			SampleRatio: envFloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// normalize folds accepted aliases into canonical values. Unknown Gin modes
// fall back to release so a typo cannot start the server in debug mode.
func (c *Config) normalize() {
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
}

// logLevels is the accepted LOG_LEVEL set after normalize folds "warning".
var logLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {}, "fatal": {}, "panic": {},
}

// validate rejects settings the server cannot safely start with. The first
// offending value wins; its message names the environment variable to fix.
func (c Config) validate() error {
	if _, ok := logLevels[c.LogLevel]; !ok {
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if c.ReadTimeout <= 0 || c.ReadHeaderTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 {
		return errors.New("timeouts must be positive durations")
	}
	if c.MaxHeaderBytes <= 0 {
		return errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be > 0")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("DB_PATH must not be empty")
	}
	if c.RateRPS < 0 {
		return errors.New("RATE_RPS must be >= 0")
	}
	if c.RateBurst < 1 {
		return errors.New("RATE_BURST must be >= 1")
	}
	if c.Quota.CreateMax < 1 || c.Quota.UpdateMax < 1 {
		return errors.New("quota maximums must be >= 1")
	}
	if c.Quota.CreateWindow <= 0 || c.Quota.UpdateWindow <= 0 {
		return errors.New("quota windows must be positive durations")
	}
	if c.Quota.SweepInterval <= 0 {
		return errors.New("QUOTA_SWEEP_INTERVAL must be > 0")
	}
	if c.Security.HSTSMaxAge < 0 {
		return errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1 {
		return errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	// if c.APIBasePath == "" || c.APIBasePath[0] != '/' {
	// 	return errors.New("API_BASE_PATH must start with '/'")
	// }
	return nil
}

// ---- env helpers ----
//
// Set-but-unparsable values fall back to the default rather than failing the
// boot; validate catches values that are parsable but out of range.

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	if sysutil.IsTruthy(v) {
		return true
	}
	switch v {
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// splitCSV splits a comma-separated value into trimmed, non-empty entries.
// Empty input yields nil.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeBasePath reduces p to "/segment/path" form: surrounding space and
// slashes trimmed, one leading slash, no trailing slash. Empty input maps
// to "/".
func normalizeBasePath(p string) string {
	if p = strings.Trim(strings.TrimSpace(p), "/"); p == "" {
		return "/"
	}
	return "/" + p
}
