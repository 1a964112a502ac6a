// Package config provides loading and environment overlay for yarqueue
// configuration. It exposes a Default() baseline, a JSON file loader and
// a YARQ_* environment overlay used by the yarq CLI to pick a backend
// (Redis when an address is configured, the embedded store otherwise).
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/yarqueue.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
