package db

import (
	"context"
	"fmt"

	"github.com/javiermolinar/timetabler/internal/persist"
)

// Cache backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Cache is a persist.Cache that holds a connection.
type Cache interface {
	persist.Cache
	Close() error
}

// Options selects and configures a cache backend.
type Options struct {
	Backend   string
	Path      string
	RedisAddr string
	// RedisPrefix namespaces keys, typically per user.
	RedisPrefix string
}

// Open returns the configured cache backend. An empty backend means SQLite.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		return New(opts.Path)
	case BackendRedis:
		return NewRedis(ctx, RedisOptions{Addr: opts.RedisAddr, Prefix: opts.RedisPrefix})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
