package main

import (
	"fmt"
	"strings"
	"time"

	"tarra_waitlist/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	Admin       AdminConfig       `yaml:"admin"`
	RateLimit   RateLimitConfig   `yaml:"rateLimit"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Fraud       FraudConfig       `yaml:"fraud"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AdminConfig struct {
	Token string `yaml:"token"`
}

type RateLimitConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	Window      time.Duration `yaml:"window"`
	MaxOrigins  int           `yaml:"maxOrigins"`
}

// LeaderboardConfig selects the blending policy: "union", "ghost-floor" or
// "recency". GhostFloor is the N for ghost-floor.
type LeaderboardConfig struct {
	BlendPolicy string `yaml:"blendPolicy"`
	GhostFloor  int    `yaml:"ghostFloor"`
}

type FraudConfig struct {
	VolumeThreshold int `yaml:"volumeThreshold"`
	PrefixLength    int `yaml:"prefixLength"`
	PrefixThreshold int `yaml:"prefixThreshold"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
