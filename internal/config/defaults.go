package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Mode: "release",
		},
		Database: DatabaseConfig{
			Path:          "resume.db",
			RetentionDays: 365,
		},
		Navigation: NavigationConfig{
			Sections:     []string{"hero", "about", "experience", "skills", "projects"},
			TransitionMS: 600,
			CooldownMS:   400,
			ThresholdPX:  30,
		},
		Artwork: ArtworkConfig{
			Seed:         1,
			BlobCount:    2,
			BlobPoints:   8,
			CircuitPaths: 12,
			Particles:    40,
		},
		Analytics: AnalyticsConfig{
			Enabled: true,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Session: SessionConfig{
			IdleMinutes: 30,
		},
	}
}
