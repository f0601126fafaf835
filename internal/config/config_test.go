package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jaekwang-park/doit-client/internal/config"
	"github.com/jaekwang-park/doit-client/internal/gate"
)

// clearEnv empties every variable Load reads and points the user config
// directory at a temp dir so a developer's own config file is never picked up.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DOIT_API_URL", "APP_ENV", "LOG_LEVEL", "DOIT_LOG_FILE",
		"DOIT_REQUEST_TIMEOUT", "DOIT_SESSION_FILE", "DOIT_GATE_POLICY",
		"SERVER_PORT", "DOIT_WEB_ROOT", "DOIT_CONFIG",
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func mustLoad(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := mustLoad(t)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"APIURL", cfg.APIURL, "http://localhost:8080/api"},
		{"AppEnv", cfg.AppEnv, "local"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFile", cfg.LogFile, ""},
		{"RequestTimeout", cfg.RequestTimeout, "30s"},
		{"GatePolicy", cfg.GatePolicy, "fail-closed"},
		{"Web.Port", cfg.Web.Port, "8081"},
		{"Web.Root", cfg.Web.Root, "./front"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}

	t.Run("SessionFile", func(t *testing.T) {
		if !strings.HasSuffix(cfg.SessionFile, filepath.Join("doit", "session.json")) {
			t.Errorf("got SessionFile=%s, want it under doit/", cfg.SessionFile)
		}
	})

	t.Run("Valid", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate, got %v", err)
		}
	})
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOIT_API_URL", "https://todo.example.com/api")
	t.Setenv("APP_ENV", "beta")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DOIT_LOG_FILE", "/tmp/doit.log")
	t.Setenv("DOIT_REQUEST_TIMEOUT", "5s")
	t.Setenv("DOIT_SESSION_FILE", "/tmp/session.json")
	t.Setenv("DOIT_GATE_POLICY", "fail-closed")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DOIT_WEB_ROOT", "/srv/doit")

	cfg := mustLoad(t)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"APIURL", cfg.APIURL, "https://todo.example.com/api"},
		{"AppEnv", cfg.AppEnv, "beta"},
		{"LogLevel", cfg.LogLevel, "debug"},
		{"LogFile", cfg.LogFile, "/tmp/doit.log"},
		{"RequestTimeout", cfg.RequestTimeout, "5s"},
		{"SessionFile", cfg.SessionFile, "/tmp/session.json"},
		{"GatePolicy", cfg.GatePolicy, "fail-closed"},
		{"Web.Port", cfg.Web.Port, "9090"},
		{"Web.Root", cfg.Web.Root, "/srv/doit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOIT_CONFIG", writeFile(t, `
api_url: https://file.example.com/api
app_env: alpha
request_timeout: 10s
web:
  port: "7000"
`))

	cfg := mustLoad(t)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"APIURL", cfg.APIURL, "https://file.example.com/api"},
		{"AppEnv", cfg.AppEnv, "alpha"},
		{"RequestTimeout", cfg.RequestTimeout, "10s"},
		{"Web.Port", cfg.Web.Port, "7000"},
		// keys missing from the file keep their defaults
		{"LogLevel", cfg.LogLevel, "info"},
		{"Web.Root", cfg.Web.Root, "./front"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_FileEmptyValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOIT_CONFIG", writeFile(t, `
api_url: https://file.example.com/api
session_file: ""
log_level: ""
web:
  root: ""
`))

	cfg := mustLoad(t)
	defaults := config.Defaults()

	if cfg.APIURL != "https://file.example.com/api" {
		t.Errorf("APIURL = %s, want the file value", cfg.APIURL)
	}
	if cfg.SessionFile != defaults.SessionFile {
		t.Errorf("SessionFile = %q, want default %q", cfg.SessionFile, defaults.SessionFile)
	}
	if cfg.LogLevel != defaults.LogLevel {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, defaults.LogLevel)
	}
	if cfg.Web.Root != defaults.Web.Root {
		t.Errorf("Web.Root = %q, want default %q", cfg.Web.Root, defaults.Web.Root)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOIT_CONFIG", writeFile(t, "api_url: https://file.example.com/api\nlog_level: warn\n"))
	t.Setenv("DOIT_API_URL", "https://env.example.com/api")

	cfg := mustLoad(t)

	if cfg.APIURL != "https://env.example.com/api" {
		t.Errorf("got APIURL=%s, want env value", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("got LogLevel=%s, want file value warn", cfg.LogLevel)
	}
}

func TestLoad_DefaultFileLocation(t *testing.T) {
	clearEnv(t)

	path := config.DefaultConfigFile()
	if path == "" {
		t.Skip("no user config directory on this platform")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("app_env: prod\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := mustLoad(t)
	if cfg.AppEnv != "prod" {
		t.Errorf("got AppEnv=%s, want prod", cfg.AppEnv)
	}
}

func TestLoad_FileErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "explicit file missing",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			wantErr: "failed to read config",
		},
		{
			name:    "malformed yaml",
			path:    func(t *testing.T) string { return writeFile(t, "api_url: [unclosed\n") },
			wantErr: "failed to parse YAML config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DOIT_CONFIG", tt.path(t))

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_ParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cfg := config.Config{LogLevel: tt.input}
			if got := cfg.ParseLogLevel(); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfig_ParseRequestTimeout(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"30s", 30 * time.Second},
		{"1m", time.Minute},
		{"0", 0},
		{"0s", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cfg := config.Config{RequestTimeout: tt.input}
			if got := cfg.ParseRequestTimeout(); got != tt.want {
				t.Errorf("ParseRequestTimeout(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfig_ParseGatePolicy(t *testing.T) {
	if got := (config.Config{GatePolicy: "fail-open"}).ParseGatePolicy(); got != gate.FailOpen {
		t.Errorf("got %v, want fail-open", got)
	}
	if got := (config.Config{}).ParseGatePolicy(); got != gate.DefaultPolicy {
		t.Errorf("got %v, want default policy", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			APIURL:         "http://localhost:8080/api",
			AppEnv:         "local",
			LogLevel:       "info",
			RequestTimeout: "30s",
			SessionFile:    "/tmp/session.json",
			GatePolicy:     "fail-closed",
			Web:            config.WebConfig{Port: "8081", Root: "./front"},
		}
	}

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid config",
			modify: func(c *config.Config) {},
		},
		{
			name:   "fail-open in local",
			modify: func(c *config.Config) { c.GatePolicy = "fail-open" },
		},
		{
			name:   "timeout disabled",
			modify: func(c *config.Config) { c.RequestTimeout = "0" },
		},
		{
			name:    "relative API URL",
			modify:  func(c *config.Config) { c.APIURL = "/api" },
			wantErr: "DOIT_API_URL",
		},
		{
			name:    "unsupported scheme",
			modify:  func(c *config.Config) { c.APIURL = "ftp://example.com/api" },
			wantErr: "must be an absolute http(s) URL",
		},
		{
			name:    "invalid APP_ENV",
			modify:  func(c *config.Config) { c.AppEnv = "staging" },
			wantErr: "invalid APP_ENV",
		},
		{
			name:    "unparseable timeout",
			modify:  func(c *config.Config) { c.RequestTimeout = "soon" },
			wantErr: "invalid DOIT_REQUEST_TIMEOUT",
		},
		{
			name:    "negative timeout",
			modify:  func(c *config.Config) { c.RequestTimeout = "-1s" },
			wantErr: "must not be negative",
		},
		{
			name:    "unknown gate policy",
			modify:  func(c *config.Config) { c.GatePolicy = "maybe" },
			wantErr: "invalid DOIT_GATE_POLICY",
		},
		{
			name: "fail-open outside local",
			modify: func(c *config.Config) {
				c.AppEnv = "prod"
				c.GatePolicy = "fail-open"
			},
			wantErr: "must not be enabled in prod",
		},
		{
			name:    "non-numeric port",
			modify:  func(c *config.Config) { c.Web.Port = "http" },
			wantErr: "invalid SERVER_PORT",
		},
		{
			name:    "missing session file",
			modify:  func(c *config.Config) { c.SessionFile = "" },
			wantErr: "DOIT_SESSION_FILE is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
