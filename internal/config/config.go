package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Redis          RedisConfig `json:"redis"`
	DataDir        string      `json:"dataDir"`
	Fsync          string      `json:"fsync"`
	PollIntervalMS int         `json:"pollIntervalMs"`
	HTTPAddr       string      `json:"httpAddr"`
}

// RedisConfig describes the connection to the shared Redis backend.
// An empty Addr selects the embedded store instead.
type RedisConfig struct {
	Addr     string `json:"addr"`
	DB       int    `json:"db"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Fsync modes for the embedded store.
const (
	FsyncAlways   = "always"
	FsyncInterval = "interval"
	FsyncNever    = "never"
)

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DataDir:        DefaultDataDir(),
		Fsync:          FsyncInterval,
		PollIntervalMS: 200,
		HTTPAddr:       ":8080",
	}
}

// PollInterval converts the configured poll interval to a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// UseRedis reports whether a Redis address is configured.
func (c Config) UseRedis() bool {
	return c.Redis.Addr != ""
}

// Load reads configuration from a JSON file. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return Config{}, errors.New("yaml config not supported; use JSON")
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
