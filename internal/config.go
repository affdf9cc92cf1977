package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable parts of the pipeline. Zero values mean "use the
// built-in default" for the classifier settings.
type Config struct {
	TriggerTerms       []string `yaml:"trigger_terms,omitempty"`
	CommonWords        []string `yaml:"common_words,omitempty"`
	DuplicateMinLength int      `yaml:"duplicate_min_length,omitempty"`
	MinimalMaxLength   int      `yaml:"minimal_max_length,omitempty"`
	Timezone           string   `yaml:"timezone,omitempty"`
	DatabaseURL        string   `yaml:"database_url,omitempty"`
}

const (
	EnvConfigPath   = "CHAT_TRANSCRIPTS_CONFIG"
	EnvTriggerTerms = "CHAT_TRANSCRIPTS_TRIGGER_TERMS"
	EnvTimezone     = "CHAT_TRANSCRIPTS_TIMEZONE"
	EnvDuplicateMin = "CHAT_TRANSCRIPTS_DUPLICATE_MIN_LENGTH"
	EnvMinimalMax   = "CHAT_TRANSCRIPTS_MINIMAL_MAX_LENGTH"
	EnvDatabaseURL  = "DATABASE_URL"
)

// LoadConfig reads the YAML config at path (or $CHAT_TRANSCRIPTS_CONFIG when
// path is empty) and applies environment overrides. No file is not an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := decodeConfig(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		LogDebug("Loaded config from %s", path)
	}

	cfg.applyEnv()

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if cfg.DuplicateMinLength < 0 || cfg.MinimalMaxLength < 0 {
		return fmt.Errorf("length thresholds must not be negative")
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := envStr(EnvTriggerTerms, ""); v != "" {
		c.TriggerTerms = splitList(v)
	}
	c.DuplicateMinLength = envInt(EnvDuplicateMin, c.DuplicateMinLength)
	c.MinimalMaxLength = envInt(EnvMinimalMax, c.MinimalMaxLength)
	c.Timezone = envStr(EnvTimezone, c.Timezone)
	c.DatabaseURL = envStr(EnvDatabaseURL, c.DatabaseURL)
}

// Location resolves Timezone; an empty value keeps each timestamp's own offset
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
		LogWarn("Ignoring invalid %s=%q", key, v)
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
