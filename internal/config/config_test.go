package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// Keep the suite hermetic regardless of what the host shell exports.
func TestMain(m *testing.M) {
	os.Unsetenv("PORT")
	os.Exit(m.Run())
}

// loadWith applies env overrides for the test's duration and loads the
// config, failing the test on validation errors.
func loadWith(t *testing.T, env map[string]string) Config {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return cfg
}

func TestLoad_OverridesAndNormalization(t *testing.T) {
	cfg := loadWith(t, map[string]string{
		"PORT":                "8088",
		"READ_TIMEOUT":        "2s",
		"READ_HEADER_TIMEOUT": "1s",
		"WRITE_TIMEOUT":       "3s",
		"IDLE_TIMEOUT":        "4s",
		"MAX_HEADER_BYTES":    "8192",
		"MAX_BODY_BYTES":      "1048576",
		"GIN_MODE":            "weird", // unknown mode folds to release

		"LOG_LEVEL":       "warning", // alias folds to warn
		"LOG_PRETTY":      "yes",
		"SWAGGER_ENABLED": "on",
		"API_BASE_PATH":   "api/v1/", // missing lead slash, stray tail slash

		"DB_PATH": "db.sqlite",

		// Unparsable numbers fall back to their defaults.
		"RATE_RPS":   "x",
		"RATE_BURST": "nope",

		"CREATE_QUOTA_MAX":     "3",
		"CREATE_QUOTA_WINDOW":  "30m",
		"UPDATE_QUOTA_MAX":     "20",
		"UPDATE_QUOTA_WINDOW":  "2h",
		"QUOTA_SWEEP_INTERVAL": "10s",

		"CORS_ALLOWED_ORIGINS": " https://a.com , , http://b ",
		"ENABLE_HSTS":          "TRUE",
		"HSTS_MAX_AGE":         "24h",

		"OTEL_ENABLED":                "1",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "otel:4317",
		"OTEL_EXPORTER_OTLP_INSECURE": "0",
		"OTEL_SERVICE_NAME":           "svc",
		"OTEL_TRACES_SAMPLER_ARG":     "0.75",
	})

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.MaxBodyBytes != 1<<20 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging/docs fields unexpected: %+v", cfg)
	}
	if cfg.DBPath != "db.sqlite" {
		t.Fatalf("db path unexpected: %+v", cfg)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate defaults not applied on bad parse: %+v", cfg)
	}
	if cfg.Quota.CreateMax != 3 || cfg.Quota.CreateWindow != 30*time.Minute ||
		cfg.Quota.UpdateMax != 20 || cfg.Quota.UpdateWindow != 2*time.Hour ||
		cfg.Quota.SweepInterval != 10*time.Second {
		t.Fatalf("quota fields unexpected: %+v", cfg.Quota)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security fields unexpected: %+v", cfg.Security)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure ||
		cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel fields unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadWith(t, map[string]string{"DB_PATH": "db.sqlite"})

	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("API_BASE_PATH default = %q; want /api/v1", cfg.APIBasePath)
	}
	if cfg.Quota.CreateMax != 10 || cfg.Quota.CreateWindow != time.Hour {
		t.Fatalf("create quota defaults unexpected: %+v", cfg.Quota)
	}
	if cfg.Quota.UpdateMax != 50 || cfg.Quota.UpdateWindow != time.Hour {
		t.Fatalf("update quota defaults unexpected: %+v", cfg.Quota)
	}
	if cfg.OTEL.ServiceName != "buyer-intake" {
		t.Fatalf("service name default = %q", cfg.OTEL.ServiceName)
	}
}

// Each case breaks exactly one variable; the error must name it (or its
// validation group) so operators know what to fix.
func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name, key, value, wantErr string
	}{
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"blank port", "PORT", "   ", "PORT must not be empty"},
		{"zero timeout", "READ_TIMEOUT", "0s", "timeouts must be positive"},
		{"zero header cap", "MAX_HEADER_BYTES", "0", "MAX_HEADER_BYTES"},
		{"negative body cap", "MAX_BODY_BYTES", "-1", "MAX_BODY_BYTES"},
		{"blank db path", "DB_PATH", "   ", "DB_PATH must not be empty"},
		{"negative rps", "RATE_RPS", "-1", "RATE_RPS"},
		{"zero burst", "RATE_BURST", "0", "RATE_BURST"},
		{"zero create quota", "CREATE_QUOTA_MAX", "0", "quota maximums"},
		{"zero update window", "UPDATE_QUOTA_WINDOW", "0s", "quota windows"},
		{"zero sweep interval", "QUOTA_SWEEP_INTERVAL", "0s", "QUOTA_SWEEP_INTERVAL"},
		{"negative hsts age", "HSTS_MAX_AGE", "-1s", "HSTS_MAX_AGE"},
		{"sample ratio beyond 1", "OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Load() error = %v; want mention of %s", err, tc.wantErr)
			}
		})
	}

	// API_BASE_PATH can never fail validation: normalizeBasePath always
	// yields a leading slash and maps empty input to "/".
}

func TestMustLoad(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("MustLoad panicked on valid defaults: %v", r)
			}
		}()
		if cfg := MustLoad(); cfg.APIBasePath == "" {
			t.Fatal("MustLoad returned an empty config")
		}
	})

	t.Run("panics on invalid config", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		defer func() {
			if recover() == nil {
				t.Fatal("MustLoad did not panic on an invalid LOG_LEVEL")
			}
		}()
		_ = MustLoad()
	})
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	t.Setenv("X_SET", "val")
	if envStr("X_EMPTY", "d") != "d" || envStr("X_SET", "d") != "val" {
		t.Fatal("envStr default/set behavior unexpected")
	}

	t.Setenv("X_FLOAT", "3.14")
	t.Setenv("X_FLOAT_BAD", "nope")
	if envFloat("X_FLOAT", 0) != 3.14 || envFloat("X_FLOAT_BAD", 1.23) != 1.23 {
		t.Fatal("envFloat parse/fallback behavior unexpected")
	}

	t.Setenv("X_INT", "42")
	t.Setenv("X_INT_BAD", "x")
	if envInt("X_INT", 0) != 42 || envInt("X_INT_BAD", 7) != 7 {
		t.Fatal("envInt parse/fallback behavior unexpected")
	}

	t.Setenv("X_DUR", "150ms")
	t.Setenv("X_DUR_BAD", "zzz")
	if envDur("X_DUR", time.Second) != 150*time.Millisecond || envDur("X_DUR_BAD", 2*time.Second) != 2*time.Second {
		t.Fatal("envDur parse/fallback behavior unexpected")
	}
}

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"} {
		t.Setenv("X_FLAG", v)
		if !envBool("X_FLAG", false) {
			t.Fatalf("envBool(%q) = false; want true", v)
		}
	}
	for _, v := range []string{"0", "false", "FALSE", " no ", "N", "off", "Off"} {
		t.Setenv("X_FLAG", v)
		if envBool("X_FLAG", true) {
			t.Fatalf("envBool(%q) = true; want false", v)
		}
	}

	// Empty and unrecognized values keep the caller's default.
	t.Setenv("X_FLAG", "")
	if !envBool("X_FLAG", true) || envBool("X_FLAG", false) {
		t.Fatal("empty value must keep the default")
	}
	t.Setenv("X_FLAG", "maybe")
	if !envBool("X_FLAG", true) || envBool("X_FLAG", false) {
		t.Fatal("unrecognized value must keep the default")
	}
}

func TestSplitCSV(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV(\"\") = %#v; want nil", out)
	}
	want := []string{"a", "b", "c"}
	if got := splitCSV(" a, ,b ,  c  ,"); !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV = %#v; want %#v", got, want)
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "/"},
		{" / ", "/"},
		{"v1", "/v1"},
		{"/v1/", "/v1"},
		{"//v1//", "/v1"},
		{" api/v1 ", "/api/v1"},
	}
	for _, tc := range cases {
		if got := normalizeBasePath(tc.in); got != tc.want {
			t.Errorf("normalizeBasePath(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
