// Package config loads emoscope configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (EMOSCOPE_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order, unless a path is given explicitly:
//  1. .emoscope.yaml in current directory
//  2. ~/.config/emoscope/config.yaml
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendHuggingFace = "huggingface"
	BackendGemini      = "gemini"
	BackendOpenAI      = "openai"
	BackendAnthropic   = "anthropic"
)

// Backends lists the supported backend names.
var Backends = []string{BackendHuggingFace, BackendGemini, BackendOpenAI, BackendAnthropic}

// apiKeyFallbacks are consulted in order when no API key is configured.
var apiKeyFallbacks = map[string][]string{
	BackendHuggingFace: {"HF_TOKEN", "HUGGINGFACEHUB_API_TOKEN"},
	BackendGemini:      {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	BackendOpenAI:      {"OPENAI_API_KEY"},
	BackendAnthropic:   {"ANTHROPIC_API_KEY"},
}

// Config holds all emoscope configuration.
type Config struct {
	// Classifier settings
	Backend      string `yaml:"backend"`
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"base_url"`
	APIKey       string `yaml:"api_key"`
	Timeout      string `yaml:"timeout"`      // Go duration string, e.g. "30s"
	LoadTimeout  string `yaml:"load_timeout"` // Go duration string, e.g. "5m"
	MaxBatchSize int    `yaml:"max_batch_size"`
	Concurrency  int    `yaml:"concurrency"`
	Retry        bool   `yaml:"retry"`

	// Presentation
	Theme string `yaml:"theme"`

	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// Parsed durations (not from YAML, set after loading)
	TimeoutDuration     time.Duration `yaml:"-"`
	LoadTimeoutDuration time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`

	getenv      func(string) string
	keyFallback bool // APIKey came from a per-backend variable
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Backend:      BackendHuggingFace,
		Timeout:      "30s",
		LoadTimeout:  "5m",
		MaxBatchSize: 32,
		Concurrency:  4,
		Theme:        "dark",
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from file and environment variables.
// A non-empty path must exist; otherwise the default locations are searched.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = getenv("EMOSCOPE_CONFIG")
	}

	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		path, data, err = findConfigFile()
		if err != nil && !errors.Is(err, errNoConfigFile) {
			return nil, err
		}
	}

	if data != nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg, getenv)
	cfg.getenv = getenv

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var errNoConfigFile = errors.New("no config file found")

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".emoscope.yaml"); err == nil {
		return ".emoscope.yaml", data, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "emoscope", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, errNoConfigFile
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	setString(&cfg.Backend, file.Backend)
	setString(&cfg.Model, file.Model)
	setString(&cfg.BaseURL, file.BaseURL)
	setString(&cfg.APIKey, file.APIKey)
	setString(&cfg.Timeout, file.Timeout)
	setString(&cfg.LoadTimeout, file.LoadTimeout)
	if file.MaxBatchSize > 0 {
		cfg.MaxBatchSize = file.MaxBatchSize
	}
	if file.Concurrency > 0 {
		cfg.Concurrency = file.Concurrency
	}
	if file.Retry {
		cfg.Retry = true
	}
	setString(&cfg.Theme, file.Theme)
	setString(&cfg.Server.Host, file.Server.Host)
	if file.Server.Port > 0 {
		cfg.Server.Port = file.Server.Port
	}
	setString(&cfg.Log.Level, file.Log.Level)
	setString(&cfg.Log.Format, file.Log.Format)
	setString(&cfg.OTELEndpoint, file.OTELEndpoint)
	setString(&cfg.OTELHeaders, file.OTELHeaders)
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config, getenv func(string) string) {
	setString(&cfg.Backend, getenv("EMOSCOPE_BACKEND"))
	setString(&cfg.Model, getenv("EMOSCOPE_MODEL"))
	setString(&cfg.BaseURL, getenv("EMOSCOPE_BASE_URL"))
	setString(&cfg.APIKey, getenv("EMOSCOPE_API_KEY"))
	setString(&cfg.Timeout, getenv("EMOSCOPE_TIMEOUT"))
	setString(&cfg.LoadTimeout, getenv("EMOSCOPE_LOAD_TIMEOUT"))
	if n, err := strconv.Atoi(getenv("EMOSCOPE_MAX_BATCH_SIZE")); err == nil && n > 0 {
		cfg.MaxBatchSize = n
	}
	if n, err := strconv.Atoi(getenv("EMOSCOPE_CONCURRENCY")); err == nil && n > 0 {
		cfg.Concurrency = n
	}
	if v := getenv("EMOSCOPE_RETRY"); v != "" {
		cfg.Retry = v == "true" || v == "1"
	}
	setString(&cfg.Theme, getenv("EMOSCOPE_THEME"))
	setString(&cfg.Server.Host, getenv("EMOSCOPE_HOST"))
	if n, err := strconv.Atoi(getenv("EMOSCOPE_PORT")); err == nil && n > 0 {
		cfg.Server.Port = n
	}
	setString(&cfg.Log.Level, getenv("EMOSCOPE_LOG_LEVEL"))
	setString(&cfg.Log.Format, getenv("EMOSCOPE_LOG_FORMAT"))
	setString(&cfg.OTELEndpoint, getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	setString(&cfg.OTELEndpoint, getenv("EMOSCOPE_OTEL_ENDPOINT"))
	setString(&cfg.OTELHeaders, getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	setString(&cfg.OTELHeaders, getenv("EMOSCOPE_OTEL_HEADERS"))
}

// finish validates cfg and fills in the parsed fields.
func (c *Config) finish() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.resolveAPIKey()
	var err error
	c.TimeoutDuration, err = parseDurationOrDisable(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	c.LoadTimeoutDuration, err = parseDurationOrDisable(c.LoadTimeout)
	if err != nil {
		return fmt.Errorf("invalid load timeout %q: %w", c.LoadTimeout, err)
	}
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Backend) {
		return fmt.Errorf("unknown backend %q (want one of %v)", c.Backend, Backends)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("unknown log format %q (want json or console)", c.Log.Format)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	return nil
}

// Reparse recomputes the derived fields after fields were changed, e.g. by
// command-line flags. A changed Backend picks up its own API key variable
// unless the key was set explicitly.
func (c *Config) Reparse() error {
	return c.finish()
}

// SetAPIKey sets an explicit API key. Backend key variables never replace it.
func (c *Config) SetAPIKey(key string) {
	c.APIKey = key
	c.keyFallback = false
}

// resolveAPIKey fills APIKey from the backend's key variables when no key
// was configured explicitly.
func (c *Config) resolveAPIKey() {
	if c.APIKey != "" && !c.keyFallback {
		return
	}
	getenv := c.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	c.APIKey, c.keyFallback = "", false
	for _, name := range apiKeyFallbacks[c.Backend] {
		if v := getenv(name); v != "" {
			c.APIKey, c.keyFallback = v, true
			return
		}
	}
}

// parseDurationOrDisable parses a duration string. "0", "off", "disable" and
// the empty string return 0, meaning no bound.
func parseDurationOrDisable(s string) (time.Duration, error) {
	if s == "" || s == "0" || s == "off" || s == "disable" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
