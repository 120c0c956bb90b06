package config

import (
	"time"

	"finis-oculus/pkg/config"
)

// Server is the API service the dashboard talks to.
type Server struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Auth holds the identity token of the signed-in user.
type Auth struct {
	Token string `mapstructure:"token"`
}

// Telegram configures the optional Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Refresh configures watch mode.
type Refresh struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Config holds the full configuration for the dashboard.
type Config struct {
	App      config.App    `mapstructure:"app"`
	Logger   config.Logger `mapstructure:"logger"`
	Server   Server        `mapstructure:"server"`
	Auth     Auth          `mapstructure:"auth"`
	Telegram Telegram      `mapstructure:"telegram"`
	Refresh  Refresh       `mapstructure:"refresh"`
}

var defaults = map[string]interface{}{
	"logger.level":     "warn",
	"logger.encoding":  "console",
	"server.base_url":  "http://localhost:8080",
	"server.timeout":   "15s",
	"refresh.interval": "1m",
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
