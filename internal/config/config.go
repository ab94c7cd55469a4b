// Package config loads showcase settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const EnvConfigFile = "SHOWCASE_CONFIG"

const minSecretLen = 32

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Channel  string `yaml:"channel"`
}

type Page struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Config struct {
	Addr           string        `yaml:"addr"`
	TrustProxy     bool          `yaml:"trust_proxy"`
	LogLevel       string        `yaml:"log_level"`
	SessionSecret  string        `yaml:"session_secret"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	ReapInterval   time.Duration `yaml:"reap_interval"`
	AnimationDelay time.Duration `yaml:"animation_delay"`
	DatabaseURL    string        `yaml:"database_url"`
	Metrics        Metrics       `yaml:"metrics"`
	Redis          Redis         `yaml:"redis"`
	Page           Page          `yaml:"page"`
}

func Default() Config {
	return Config{
		Addr:           ":8080",
		LogLevel:       "info",
		SessionTTL:     30 * time.Minute,
		ReapInterval:   time.Minute,
		AnimationDelay: 300 * time.Millisecond,
		Metrics:        Metrics{Enabled: true},
		Redis:          Redis{Channel: "showcase:completions"},
		Page: Page{
			Title:       "TechStore Pro",
			Description: "Discover amazing products",
		},
	}
}

// Load reads path (if not empty) over the defaults, then applies the
// environment and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		c.Addr = ":" + v
	}
	str("LOG_LEVEL", &c.LogLevel)
	str("SESSION_SECRET", &c.SessionSecret)
	str("DATABASE_URL", &c.DatabaseURL)
	str("METRICS_TOKEN", &c.Metrics.Token)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	str("REDIS_CHANNEL", &c.Redis.Channel)
	str("SHOWCASE_TITLE", &c.Page.Title)
	str("SHOWCASE_DESCRIPTION", &c.Page.Description)

	if v, ok := lookup("TRUST_PROXY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRUST_PROXY: %w", err)
		}
		c.TrustProxy = b
	}
	if v, ok := lookup("METRICS_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		c.Metrics.Enabled = b
	}

	return errors.Join(
		dur("SESSION_TTL", &c.SessionTTL),
		dur("REAP_INTERVAL", &c.ReapInterval),
		dur("ANIMATION_DELAY", &c.AnimationDelay),
	)
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session_ttl must be positive"))
	}
	if c.ReapInterval <= 0 {
		errs = append(errs, errors.New("reap_interval must be positive"))
	}
	if c.AnimationDelay <= 0 {
		errs = append(errs, errors.New("animation_delay must be positive"))
	}
	if c.SessionSecret != "" && len(c.SessionSecret) < minSecretLen {
		errs = append(errs, fmt.Errorf("session_secret must be at least %d chars", minSecretLen))
	}
	return errors.Join(errs...)
}
