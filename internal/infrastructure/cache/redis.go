package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr        string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

// Open returns a connected client or an error if the first PING fails
// within five seconds.
func Open(cfg Config) (*redis.Client, error) {
	opts := &redis.Options{Addr: cfg.Addr, DB: cfg.DB, PoolSize: cfg.PoolSize}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	r := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}
