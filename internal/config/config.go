package config

import "time"

// Config holds client configuration values.
type Config struct {
	ServerURL   string        `mapstructure:"server_url" yaml:"server_url"`
	Username    string        `mapstructure:"username" yaml:"username"`
	Avatar      string        `mapstructure:"avatar" yaml:"avatar"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		ServerURL:   "ws://localhost:5000",
		Avatar:      "avatars/default.png",
		LogLevel:    "info",
		DialTimeout: 10 * time.Second,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.ServerURL != "" {
		c.ServerURL = other.ServerURL
	}
	if other.Username != "" {
		c.Username = other.Username
	}
	if other.Avatar != "" {
		c.Avatar = other.Avatar
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.DialTimeout != 0 {
		c.DialTimeout = other.DialTimeout
	}
}
