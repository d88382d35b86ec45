// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Reminder ReminderConfig `mapstructure:"reminder" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains the settings used to verify caller identity.
// Token issuance happens outside this service; only the shared signing
// secret is needed here.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// ReminderConfig controls the due-soon notification job.
type ReminderConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// LeadTimeHours is how far ahead of a due date the reminder fires.
	LeadTimeHours int `mapstructure:"lead_time_hours" validate:"required,gt=0"`
	// CheckIntervalMinutes is how often the job scans for upcoming tasks.
	CheckIntervalMinutes int `mapstructure:"check_interval_minutes" validate:"required,gt=0"`
}
