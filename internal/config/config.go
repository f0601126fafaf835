package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jaekwang-park/doit-client/internal/gate"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

// Config is read from an optional YAML file and then from the environment;
// environment variables win.
type Config struct {
	APIURL         string    `yaml:"api_url"`
	AppEnv         string    `yaml:"app_env"`
	LogLevel       string    `yaml:"log_level"`
	LogFile        string    `yaml:"log_file"`
	RequestTimeout string    `yaml:"request_timeout"`
	SessionFile    string    `yaml:"session_file"`
	GatePolicy     string    `yaml:"gate_policy"`
	Web            WebConfig `yaml:"web"`
}

type WebConfig struct {
	Port string `yaml:"port"`
	Root string `yaml:"root"`
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseRequestTimeout returns the API timeout; zero disables it. Call
// Validate first.
func (c Config) ParseRequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// ParseGatePolicy returns the navigation gate policy. Call Validate first.
func (c Config) ParseGatePolicy() gate.Policy {
	p, err := gate.ParsePolicy(c.GatePolicy)
	if err != nil {
		return gate.DefaultPolicy
	}
	return p
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid DOIT_API_URL %q: %w", c.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid DOIT_API_URL %q: must be an absolute http(s) URL", c.APIURL)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if d, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid DOIT_REQUEST_TIMEOUT %q: %w", c.RequestTimeout, err)
	} else if d < 0 {
		return fmt.Errorf("invalid DOIT_REQUEST_TIMEOUT %q: must not be negative", c.RequestTimeout)
	}
	policy, err := gate.ParsePolicy(c.GatePolicy)
	if err != nil {
		return fmt.Errorf("invalid DOIT_GATE_POLICY: %w", err)
	}
	if policy == gate.FailOpen && c.AppEnv != "local" {
		return fmt.Errorf("DOIT_GATE_POLICY fail-open must not be enabled in %s environment", c.AppEnv)
	}
	if _, err := strconv.Atoi(c.Web.Port); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.Web.Port, err)
	}
	if c.SessionFile == "" {
		return fmt.Errorf("DOIT_SESSION_FILE is required")
	}
	return nil
}

func Defaults() Config {
	return Config{
		APIURL:         "http://localhost:8080/api",
		AppEnv:         "local",
		LogLevel:       "info",
		RequestTimeout: "30s",
		SessionFile:    defaultSessionFile(),
		GatePolicy:     gate.DefaultPolicy.String(),
		Web: WebConfig{
			Port: "8081",
			Root: "./front",
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// DOIT_CONFIG (or the default location when present) and the environment.
func Load() (Config, error) {
	cfg := Defaults()

	path, explicit := os.Getenv("DOIT_CONFIG"), true
	if path == "" {
		path, explicit = DefaultConfigFile(), false
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	cfg.APIURL = envOrDefault("DOIT_API_URL", cfg.APIURL)
	cfg.AppEnv = envOrDefault("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envOrDefault("DOIT_LOG_FILE", cfg.LogFile)
	cfg.RequestTimeout = envOrDefault("DOIT_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.SessionFile = envOrDefault("DOIT_SESSION_FILE", cfg.SessionFile)
	cfg.GatePolicy = envOrDefault("DOIT_GATE_POLICY", cfg.GatePolicy)
	cfg.Web.Port = envOrDefault("SERVER_PORT", cfg.Web.Port)
	cfg.Web.Root = envOrDefault("DOIT_WEB_ROOT", cfg.Web.Root)

	return cfg, nil
}

// mergeFile overlays the non-empty values of a YAML file onto c. A key
// set to "" keeps the value c already has, as an unset env var does.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", path, err)
	}

	overlay(&c.APIURL, file.APIURL)
	overlay(&c.AppEnv, file.AppEnv)
	overlay(&c.LogLevel, file.LogLevel)
	overlay(&c.LogFile, file.LogFile)
	overlay(&c.RequestTimeout, file.RequestTimeout)
	overlay(&c.SessionFile, file.SessionFile)
	overlay(&c.GatePolicy, file.GatePolicy)
	overlay(&c.Web.Port, file.Web.Port)
	overlay(&c.Web.Root, file.Web.Root)
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// DefaultConfigFile is doit/config.yaml under the user config directory,
// or "" when that directory is unknown.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "doit", "config.yaml")
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "doit-session.json")
	}
	return filepath.Join(dir, "doit", "session.json")
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
