package config

import (
	"os"
	"strconv"
)

// FromEnv overlays YARQ_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("YARQ_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("YARQ_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("YARQ_REDIS_USERNAME"); v != "" {
		cfg.Redis.Username = v
	}
	if v := os.Getenv("YARQ_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("YARQ_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("YARQ_FSYNC"); v != "" {
		cfg.Fsync = v
	}
	if v := os.Getenv("YARQ_POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PollIntervalMS = n
		}
	}
	if v := os.Getenv("YARQ_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
}
