// Package config loads the converter settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // named zones on hosts without a zoneinfo database

	"github.com/fwojciec/sbmb"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBase     = "http://www.ejustice.just.fgov.be/eli"
	DefaultCache    = "sbmb.db"
	DefaultOutDir   = "."
	DefaultWait     = 2 * time.Second
	DefaultLogLevel = "info"
)

// Environment variables overriding file values.
const (
	EnvCache  = "SBMB_CACHE"
	EnvBase   = "SBMB_BASE"
	EnvOutDir = "SBMB_OUTDIR"
)

// Configuration validation errors.
var (
	ErrMissingBase       = errors.New("base is required")
	ErrMissingDocType    = errors.New("doctype is required")
	ErrNoLanguages       = errors.New("at least one language is required")
	ErrMissingLang       = errors.New("languages[].lang is required")
	ErrMissingType       = errors.New("languages[].type is required")
	ErrDuplicateLanguage = errors.New("language configured twice")
	ErrMissingCache      = errors.New("cache is required")
	ErrInvalidWait       = errors.New("wait must be non-negative")
	ErrInvalidTimezone   = errors.New("timezone is not a known location")
	ErrInvalidLogLevel   = errors.New("log_level must be one of: debug, info, warn, error")
)

// Config holds the converter settings.
type Config struct {
	Base    string `yaml:"base"`
	DocType string `yaml:"doctype"`

	// Languages lists the page languages in processing order.
	Languages []Language `yaml:"languages"`

	Cache    string        `yaml:"cache"`
	OutDir   string        `yaml:"outdir"`
	Wait     time.Duration `yaml:"wait"`
	Timezone string        `yaml:"timezone"`
	LogLevel string        `yaml:"log_level"`
}

// Language binds a page language to its type label.
type Language struct {
	Lang string `yaml:"lang"`
	Type string `yaml:"type"`

	// IRI overrides the language authority IRI.
	IRI string `yaml:"iri,omitempty"`
}

// Default returns a configuration with every optional value set.
// DocType and the languages have no default.
func Default() *Config {
	return &Config{
		Base:     DefaultBase,
		Cache:    DefaultCache,
		OutDir:   DefaultOutDir,
		Wait:     DefaultWait,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the YAML file at path over the defaults. It does not validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with the SBMB_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvCache)); v != "" {
		c.Cache = v
	}
	if v := strings.TrimSpace(getenv(EnvBase)); v != "" {
		c.Base = v
	}
	if v := strings.TrimSpace(getenv(EnvOutDir)); v != "" {
		c.OutDir = v
	}
}

// SetType sets the type label of lang, appending the language when it is
// not configured yet.
func (c *Config) SetType(lang, typ string) {
	for i := range c.Languages {
		if c.Languages[i].Lang == lang {
			c.Languages[i].Type = typ
			return
		}
	}
	c.Languages = append(c.Languages, Language{Lang: lang, Type: typ})
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Base) == "" {
		return ErrMissingBase
	}
	if c.DocType == "" {
		return ErrMissingDocType
	}
	if len(c.Languages) == 0 {
		return ErrNoLanguages
	}

	seen := make(map[string]bool, len(c.Languages))
	for i, l := range c.Languages {
		if l.Lang == "" {
			return fmt.Errorf("%w: languages[%d]", ErrMissingLang, i)
		}
		if l.Type == "" {
			return fmt.Errorf("%w: languages[%d]", ErrMissingType, i)
		}
		if seen[l.Lang] {
			return fmt.Errorf("%w: %s", ErrDuplicateLanguage, l.Lang)
		}
		seen[l.Lang] = true
	}

	if c.Cache == "" {
		return ErrMissingCache
	}
	if c.Wait < 0 {
		return ErrInvalidWait
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// BaseURL returns the normalised base URL.
func (c *Config) BaseURL() string {
	return sbmb.NormalizeBase(c.Base)
}

// Labels returns the configured languages as type labels.
func (c *Config) Labels() sbmb.TypeLabels {
	labels := make(sbmb.TypeLabels, 0, len(c.Languages))
	for _, l := range c.Languages {
		labels = append(labels, sbmb.TypeLabel{
			Lang:  sbmb.Language(l.Lang),
			Label: l.Type,
			IRI:   l.IRI,
		})
	}
	return labels
}

// Location returns the time zone used for date literals. An empty
// Timezone means the process time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, c.Timezone)
	}
	return loc, nil
}

// Level returns the minimum log level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, ErrInvalidLogLevel
	}
}
