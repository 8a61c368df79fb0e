package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces environment overrides: RESUME_SERVER__PORT -> server.port.
const EnvPrefix = "RESUME_"

// Load reads configuration from the given YAML file, then overlays
// RESUME_* environment variables and the plain variables the site has
// always honoured (PORT, SMTP_*, TO_EMAIL, ADMIN_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.applyLegacyEnv()
	return cfg, nil
}

func (c *Config) applyLegacyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	setIf := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIf(&c.SMTP.Host, "SMTP_HOST")
	setIf(&c.SMTP.Port, "SMTP_PORT")
	setIf(&c.SMTP.User, "SMTP_USER")
	setIf(&c.SMTP.Pass, "SMTP_PASS")
	setIf(&c.SMTP.To, "TO_EMAIL")
	setIf(&c.Admin.Username, "ADMIN_USERNAME")
	setIf(&c.Admin.Password, "ADMIN_PASSWORD")
	setIf(&c.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server.mode %q: must be one of debug, release, test", c.Server.Mode)
	}

	if len(c.Navigation.Sections) == 0 {
		return fmt.Errorf("navigation.sections must not be empty")
	}
	seen := make(map[string]bool, len(c.Navigation.Sections))
	for _, s := range c.Navigation.Sections {
		if s == "" {
			return fmt.Errorf("navigation.sections contains an empty id")
		}
		if seen[s] {
			return fmt.Errorf("duplicate section %q in navigation.sections", s)
		}
		seen[s] = true
	}
	if c.Navigation.TransitionMS <= 0 {
		return fmt.Errorf("navigation.transition_ms must be positive")
	}
	if c.Navigation.CooldownMS <= 0 {
		return fmt.Errorf("navigation.cooldown_ms must be positive")
	}
	if c.Navigation.ThresholdPX <= 0 {
		return fmt.Errorf("navigation.threshold_px must be positive")
	}

	if c.Database.RetentionDays <= 0 {
		return fmt.Errorf("database.retention_days must be positive")
	}
	if c.Session.IdleMinutes <= 0 {
		return fmt.Errorf("session.idle_minutes must be positive")
	}
	if c.Artwork.BlobCount < 0 || c.Artwork.BlobPoints < 3 || c.Artwork.CircuitPaths < 0 || c.Artwork.Particles < 0 {
		return fmt.Errorf("artwork counts must be non-negative and blob_points at least 3")
	}
	return nil
}
