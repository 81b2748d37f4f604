package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/astroconst/internal/observability"
)

// Config holds the server settings. Values come from DefaultConfig, then the
// YAML file named by --config, then LOG_* and ASTROCONST_TRACING_* from the
// environment, then explicitly set flags.
type Config struct {
	ListenAddress  string `yaml:"listen_address"`
	MetricsAddress string `yaml:"metrics_address"` // empty disables /metrics

	EnableTLS   bool   `yaml:"enable_tls"`
	TLSCertPath string `yaml:"tls_cert_path"`
	TLSKeyPath  string `yaml:"tls_key_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Tracing observability.TracingConfig `yaml:"tracing"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddress:  ":50061",
		MetricsAddress: ":9091",
		LogLevel:       "info",
		LogFormat:      "text",
		Tracing:        observability.DefaultTracingConfig(),
	}
}

// ApplyDefaults fills empty fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.ListenAddress == "" {
		c.ListenAddress = def.ListenAddress
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = def.Tracing.ServiceName
	}
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = def.Tracing.Exporter
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("listen_address is required")
	}
	if c.EnableTLS && (c.TLSCertPath == "" || c.TLSKeyPath == "") {
		return fmt.Errorf("enable_tls requires tls_cert_path and tls_key_path")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if r := c.Tracing.SampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("tracing.sample_ratio must be between 0 and 1, got %v", r)
	}
	return nil
}

// LoadConfigFile overlays the YAML file at path on DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// parseConfig resolves the final Config from command-line args and the
// environment.
func parseConfig(args []string, getenv func(string) string) (Config, error) {
	fs := pflag.NewFlagSet("astroconst-server", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "path to a YAML config file")
	listen := fs.String("grpc-addr", "", "TCP address the gRPC server listens on")
	metrics := fs.String("metrics-addr", "", "HTTP address for Prometheus /metrics (empty string disables)")
	enableTLS := fs.Bool("tls", false, "serve gRPC over TLS")
	certPath := fs.String("tls-cert", "", "TLS certificate file")
	keyPath := fs.String("tls-key", "", "TLS private key file")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "log format: text or json")
	tracing := fs.Bool("tracing", false, "enable OpenTelemetry tracing")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfigFile(*configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	cfg.Tracing = observability.TracingConfigFromEnv(cfg.Tracing)

	if fs.Changed("grpc-addr") {
		cfg.ListenAddress = *listen
	}
	if fs.Changed("metrics-addr") {
		cfg.MetricsAddress = *metrics
	}
	if fs.Changed("tls") {
		cfg.EnableTLS = *enableTLS
	}
	if fs.Changed("tls-cert") {
		cfg.TLSCertPath = *certPath
	}
	if fs.Changed("tls-key") {
		cfg.TLSKeyPath = *keyPath
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = *logFormat
	}
	if fs.Changed("tracing") {
		cfg.Tracing.Enabled = *tracing
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
