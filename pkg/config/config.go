// Package config loads process configuration from the environment and an
// optional config file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerHost string        `mapstructure:"server_host"`
	ServerPort string        `mapstructure:"server_port"`
	RedisURL   string        `mapstructure:"redis_url"`
	DBPath     string        `mapstructure:"db_path"`
	AWSRegion  string        `mapstructure:"aws_region"`
	Advisor    AdvisorConfig `mapstructure:"advisor"`
	Worker     WorkerConfig  `mapstructure:"worker"`
}

type AdvisorConfig struct {
	Command string `mapstructure:"command"`
	Model   string `mapstructure:"model"`
}

type WorkerConfig struct {
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Load reads configuration from the given file (optional) with environment
// variables taking precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("redis_url", "redis://localhost:6379")
	v.SetDefault("db_path", "arch-atlas.db")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("advisor.command", "claude")
	v.SetDefault("advisor.model", "sonnet")
	v.SetDefault("worker.batch_size", 10)
	v.SetDefault("worker.poll_interval", 5*time.Second)

	v.SetEnvPrefix("ARCH_ATLAS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
