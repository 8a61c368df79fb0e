package config

import "time"

// Config is the top-level site configuration, corresponding to resume.yml.
type Config struct {
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	Database   DatabaseConfig   `yaml:"database" koanf:"database"`
	Navigation NavigationConfig `yaml:"navigation" koanf:"navigation"`
	Content    ContentConfig    `yaml:"content" koanf:"content"`
	Artwork    ArtworkConfig    `yaml:"artwork" koanf:"artwork"`
	Analytics  AnalyticsConfig  `yaml:"analytics" koanf:"analytics"`
	Admin      AdminConfig      `yaml:"admin" koanf:"admin"`
	SMTP       SMTPConfig       `yaml:"smtp" koanf:"smtp"`
	Session    SessionConfig    `yaml:"session" koanf:"session"`
}

type ServerConfig struct {
	Port int    `yaml:"port" koanf:"port"`
	Mode string `yaml:"mode" koanf:"mode"` // gin mode: debug, release, test
}

type DatabaseConfig struct {
	Path          string `yaml:"path" koanf:"path"`
	RetentionDays int    `yaml:"retention_days" koanf:"retention_days"`
}

// NavigationConfig carries the hand-tuned input constants.
type NavigationConfig struct {
	Sections     []string `yaml:"sections" koanf:"sections"`
	TransitionMS int      `yaml:"transition_ms" koanf:"transition_ms"`
	CooldownMS   int      `yaml:"cooldown_ms" koanf:"cooldown_ms"`
	ThresholdPX  float64  `yaml:"threshold_px" koanf:"threshold_px"`
}

type ContentConfig struct {
	Path  string `yaml:"path" koanf:"path"`
	Watch bool   `yaml:"watch" koanf:"watch"`
}

type ArtworkConfig struct {
	Seed         uint64 `yaml:"seed" koanf:"seed"`
	BlobCount    int    `yaml:"blob_count" koanf:"blob_count"`
	BlobPoints   int    `yaml:"blob_points" koanf:"blob_points"`
	CircuitPaths int    `yaml:"circuit_paths" koanf:"circuit_paths"`
	Particles    int    `yaml:"particles" koanf:"particles"`
}

type AnalyticsConfig struct {
	Enabled       bool   `yaml:"enabled" koanf:"enabled"`
	MeasurementID string `yaml:"measurement_id" koanf:"measurement_id"`
}

type AdminConfig struct {
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
	// PasswordHash is a bcrypt hash; when set it takes precedence over Password.
	PasswordHash string `yaml:"password_hash" koanf:"password_hash"`
}

type SMTPConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port string `yaml:"port" koanf:"port"`
	User string `yaml:"user" koanf:"user"`
	Pass string `yaml:"pass" koanf:"pass"`
	To   string `yaml:"to" koanf:"to"`
}

type SessionConfig struct {
	IdleMinutes int `yaml:"idle_minutes" koanf:"idle_minutes"`
}

func (n NavigationConfig) Transition() time.Duration {
	return time.Duration(n.TransitionMS) * time.Millisecond
}

func (n NavigationConfig) Cooldown() time.Duration {
	return time.Duration(n.CooldownMS) * time.Millisecond
}

func (d DatabaseConfig) Retention() time.Duration {
	return time.Duration(d.RetentionDays) * 24 * time.Hour
}

func (s SessionConfig) Idle() time.Duration {
	return time.Duration(s.IdleMinutes) * time.Minute
}
