package cmd

import (
	"fmt"

	"github.com/gomodule/redigo/redis"

	cfgpkg "github.com/clbarnes/yarqueue/internal/config"
	"github.com/clbarnes/yarqueue/internal/store"
	"github.com/clbarnes/yarqueue/internal/store/pebblestore"
	"github.com/clbarnes/yarqueue/internal/store/redisstore"
)

// backend is one opened store connection shared by every queue name a
// command touches: a Redis pool, or an embedded pebble database.
type backend struct {
	pool *redis.Pool
	db   *pebblestore.DB
}

// openBackend opens the backend the config selects.
func openBackend(cfg cfgpkg.Config) (*backend, error) {
	if cfg.UseRedis() {
		pool := redisstore.NewPool(redisstore.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
		})
		return &backend{pool: pool}, nil
	}

	mode, err := fsyncMode(cfg.Fsync)
	if err != nil {
		return nil, err
	}
	db, err := pebblestore.Open(pebblestore.Options{DataDir: cfg.DataDir, Fsync: mode})
	if err != nil {
		return nil, err
	}
	return &backend{db: db}, nil
}

// store returns the named queue's store on this backend.
func (b *backend) store(name string) (store.Store, error) {
	if b.pool != nil {
		return redisstore.NewWithPool(name, b.pool), nil
	}
	return b.db.Queue(name)
}

func (b *backend) Close() error {
	if b.pool != nil {
		return b.pool.Close()
	}
	return b.db.Close()
}

func fsyncMode(s string) (pebblestore.FsyncMode, error) {
	switch s {
	case cfgpkg.FsyncAlways:
		return pebblestore.FsyncModeAlways, nil
	case cfgpkg.FsyncInterval, "":
		return pebblestore.FsyncModeInterval, nil
	case cfgpkg.FsyncNever:
		return pebblestore.FsyncModeNever, nil
	default:
		return 0, fmt.Errorf("invalid fsync mode %q; use always|interval|never", s)
	}
}
