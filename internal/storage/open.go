package storage

import (
	"context"
	"fmt"
	"strings"

	"kh-portfolio/internal/db"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Options struct {
	Driver        string
	Dir           string
	MemoryQuota   int
	RedisURL      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MongoURI      string
	MongoDB       string
	SQLitePath    string
}

// Open builds the backend named by opts.Driver. The returned close func is
// never nil.
func Open(ctx context.Context, opts Options) (Storage, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverMemory:
		return NewMemory(opts.MemoryQuota), noop, nil

	case DriverFile:
		fs, err := NewFile(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil

	case DriverRedis:
		var rs *RedisStorage
		if opts.RedisURL != "" {
			var err error
			rs, err = NewRedisFromURL(opts.RedisURL)
			if err != nil {
				return nil, noop, fmt.Errorf("parse redis url: %w", err)
			}
		} else {
			rs = NewRedis(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		}
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		return rs, func(context.Context) error { return rs.Close() }, nil

	case DriverMongo:
		m, err := db.Connect(ctx, opts.MongoURI, opts.MongoDB)
		if err != nil {
			return nil, noop, fmt.Errorf("mongo connect: %w", err)
		}
		return NewMongo(m.LocalStorage), m.Close, nil

	case DriverSQLite:
		ss, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("sqlite open: %w", err)
		}
		return ss, func(context.Context) error { return ss.Close() }, nil
	}

	return nil, noop, fmt.Errorf("unknown storage driver %q", opts.Driver)
}
