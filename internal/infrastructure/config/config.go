package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "supportdesk/internal/shared/config"
)

// AppName names the config directory and the env prefix.
const AppName = "supportdesk"

type Config struct {
	API          sharedConfig.APIConfig          `mapstructure:"api"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Session      sharedConfig.SessionConfig      `mapstructure:"session"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Integrations sharedConfig.IntegrationsConfig `mapstructure:"integrations"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configuration from an optional config file, a .env file and
// environment variables. A missing config file is not an error; every key has a
// default. When path is non-empty only that file is read.
func Load(path string) (*Config, error) {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Session.FilePath == "" {
		config.Session.FilePath = filepath.Join(xdg.StateHome, AppName, "session.yaml")
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout_seconds", 30)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.verbose", false)

	v.SetDefault("session.store", "file")
	v.SetDefault("session.file_path", "")
	v.SetDefault("session.key", "auth_token")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("integrations.helpdesk_path", "freshdesk")
	v.SetDefault("integrations.crm_path", "hubspot")
}
