package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig   `mapstructure:"app"`
	Log   LogConfig   `mapstructure:"log"`
	Audit AuditConfig `mapstructure:"audit"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	TimeFormat string `mapstructure:"time_format"`
}

type AuditConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("clinica")
	viper.AutomaticEnv()

	viper.SetDefault("app.name", "clinica")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.time_format", "15:04:05")
	viper.SetDefault("audit.max_entries", 1000)

	if err := viper.ReadInConfig(); err != nil {
		// The CLI must come up without a config file; only a malformed
		// file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
