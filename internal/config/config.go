package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/healthdesk/clinic-api/internal/chat"
	"github.com/healthdesk/clinic-api/internal/email"
)

// Config holds everything the api binary needs. The outbox worker is a
// separate binary configured entirely from the environment, so redis
// and outbox settings live there, not here.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Email    email.Config   `mapstructure:"email"`
	Telegram chat.Config    `mapstructure:"telegram"`
	Binding  BindingConfig  `mapstructure:"binding"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type BindingConfig struct {
	CodeTTLMinutes int `mapstructure:"code_ttl_minutes"`
}

func (c BindingConfig) TTL() time.Duration {
	return time.Duration(c.CodeTTLMinutes) * time.Minute
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
