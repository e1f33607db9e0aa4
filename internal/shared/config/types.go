package config

import (
	"fmt"
	"time"
)

type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (a *APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	// Verbose shows source locations on every level.
	Verbose bool `mapstructure:"verbose"`
}

// SessionConfig selects where the bearer token is persisted between runs.
type SessionConfig struct {
	Store    string `mapstructure:"store"` // "file" or "redis"
	FilePath string `mapstructure:"file_path"`
	Key      string `mapstructure:"key"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// IntegrationsConfig holds the backend path segments for the two integrations.
type IntegrationsConfig struct {
	HelpdeskPath string `mapstructure:"helpdesk_path"`
	CRMPath      string `mapstructure:"crm_path"`
}
