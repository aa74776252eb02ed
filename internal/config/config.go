// Package config loads the service configuration: defaults, then the YAML file, then
// FIELDCALC_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/mmcdani2/field-cheat-sheets/internal/pricing"
	"github.com/mmcdani2/field-cheat-sheets/internal/readiness"
)

// DefaultRefLogEndpoint is the Apps Script web app the refrigerant logs post to.
const DefaultRefLogEndpoint = "https://script.google.com/macros/s/AKfycbxXQMKS7z9XqZNUGBCAMiE12YgNnq0w-ZjjZ_vcv-X0q5URtFgc3JvRWKJeVAificqx/exec"

// Config is read-only after Load returns.
type Config struct {
	Server       ServerConfig         `yaml:"server"`
	Log          LogConfig            `yaml:"log"`
	Telemetry    TelemetryConfig      `yaml:"telemetry"`
	RefLog       RefLogConfig         `yaml:"reflog"`
	Policy       pricing.Policy       `yaml:"policy"`
	Preparedness readiness.Thresholds `yaml:"install_preparedness"`
}

type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TelemetryConfig switches the OTLP exporters. Prometheus /metrics is always served.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
	// ExportLogs additionally tees zap output to the OTLP log exporter.
	ExportLogs bool `yaml:"export_logs"`
}

type RefLogConfig struct {
	Endpoint string   `yaml:"endpoint"`
	Timeout  Duration `yaml:"timeout"`
}

// Duration is a time.Duration written as "30s" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load reads FIELDCALC_CONFIG_PATH (default config/fieldcalc.yaml); a missing file
// leaves the defaults in place.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("FIELDCALC_CONFIG_PATH", "config/fieldcalc.yaml")

	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from path, which must exist.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Log: LogConfig{
			Level: "info",
		},
		RefLog: RefLogConfig{
			Endpoint: DefaultRefLogEndpoint,
		},
		Policy:       pricing.DefaultPolicy(),
		Preparedness: readiness.DefaultThresholds(),
	}
}

func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies non-empty FIELDCALC_* variables. Unlike YAML typos, a
// malformed variable is an error: it usually means a deploy manifest is wrong.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("FIELDCALC_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("FIELDCALC_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FIELDCALC_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.Server.ShutdownTimeout = Duration(d)
	}

	if v := os.Getenv("FIELDCALC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("FIELDCALC_TELEMETRY_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FIELDCALC_TELEMETRY_ENABLED: %w", err)
		}
		cfg.Telemetry.Enabled = enabled
	}

	if v := os.Getenv("FIELDCALC_REFLOG_ENDPOINT"); v != "" {
		cfg.RefLog.Endpoint = v
	}

	return nil
}

func (c *Config) validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if u, err := url.ParseRequestURI(c.RefLog.Endpoint); err != nil || u.Host == "" {
		errs = append(errs, fmt.Errorf("reflog.endpoint %q is not an absolute URL", c.RefLog.Endpoint))
	}
	if c.RefLog.Timeout < 0 {
		errs = append(errs, errors.New("reflog.timeout must not be negative"))
	}

	if err := c.Policy.Validate(); err != nil {
		errs = append(errs, err)
	}

	t := c.Preparedness
	if t.NearReadyPct < 0 || t.NearReadyPct > t.ReadyPct || t.ReadyPct > 100 {
		errs = append(errs, fmt.Errorf("install_preparedness thresholds must satisfy 0 <= near_ready_pct <= ready_pct <= 100, got %g / %g",
			t.NearReadyPct, t.ReadyPct))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
