package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "fareview.yaml"

// Config represents the top-level fareview.yaml configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Source  SourceConfig  `yaml:"source"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig controls the web view listener.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// SourceConfig describes the card activity page and how to read it.
type SourceConfig struct {
	Endpoint            string        `yaml:"endpoint"`
	CardParam           string        `yaml:"card_param"`
	SummarySelector     string        `yaml:"summary_selector"`
	TransactionSelector string        `yaml:"transaction_selector"`
	SuccessNote         string        `yaml:"success_note"`
	LeadingField        string        `yaml:"leading_field,omitempty"`
	Timezone            string        `yaml:"timezone"` // IANA name, e.g. "America/Denver"
	Timeout             time.Duration `yaml:"timeout"`
	CacheTTL            time.Duration `yaml:"cache_ttl"`
}

// DisplayConfig controls currency and column rendering.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	Locale         string `yaml:"locale"` // BCP 47 tag used for digit grouping
	ShowAmount     bool   `yaml:"show_amount"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Environment variables that override file values.
const (
	envAddr     = "FAREVIEW_ADDR"
	envEndpoint = "FAREVIEW_ENDPOINT"
	envTimezone = "FAREVIEW_TIMEZONE"
	envCacheTTL = "FAREVIEW_CACHE_TTL"
	envLogLevel = "FAREVIEW_LOG_LEVEL"
	envPretty   = "FAREVIEW_LOG_PRETTY"
)

// Load reads a fareview.yaml file from disk. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config pointed at the UTA FarePay card activity page.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Source: SourceConfig{
			Endpoint:            "https://farepay.rideuta.com/cardActivity.html",
			CardParam:           "cardNum",
			SummarySelector:     ".basicTable",
			TransactionSelector: "#table",
			SuccessNote:         "Success",
			Timezone:            "America/Denver",
			Timeout:             20 * time.Second,
			CacheTTL:            5 * time.Minute,
		},
		Display: DisplayConfig{
			CurrencySymbol: "$",
			Locale:         "en-US",
			ShowAmount:     true,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// ApplyEnv overrides cfg with any FAREVIEW_* variables that lookup finds.
// Pass os.LookupEnv in production.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(envAddr); ok && v != "" {
		cfg.Server.Addr = v
	}
	if v, ok := lookup(envEndpoint); ok && v != "" {
		cfg.Source.Endpoint = v
	}
	if v, ok := lookup(envTimezone); ok && v != "" {
		cfg.Source.Timezone = v
	}
	if v, ok := lookup(envCacheTTL); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", envCacheTTL, v, err)
		}
		cfg.Source.CacheTTL = ttl
	}
	if v, ok := lookup(envLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(envPretty); ok && v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", envPretty, v, err)
		}
		cfg.Log.Pretty = pretty
	}
	return nil
}

// Location resolves Source.Timezone. An empty timezone means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Source.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Source.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Source.Timezone, err)
	}
	return loc, nil
}
