package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisURL  string `toml:"redis_url"`
	Namespace string `toml:"namespace"`
}

// Open returns the backend named by cfg. An empty backend is "file",
// or "redis" when only RedisURL is set. The file backend falls back to
// [DefaultDir].
func Open(ctx context.Context, cfg Config) (Cache, error) {
	backend := strings.ToLower(cfg.Backend)
	if backend == "" {
		backend = BackendFile
		if cfg.RedisURL != "" {
			backend = BackendRedis
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendRedis:
		if err := errors.ValidateCacheURL(cfg.RedisURL); err != nil {
			return nil, err
		}
		c, err := NewRedisCache(ctx, cfg.RedisURL, cfg.Namespace)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = d
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (want file, redis or none)", cfg.Backend)
}
