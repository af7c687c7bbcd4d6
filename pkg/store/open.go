package store

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNull   = "null"
)

// Backends lists the supported backend names.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNull}

// Config selects and configures a KV backend.
type Config struct {
	Backend string
	Dir     string // file backend
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open creates the KV selected by cfg.Backend.
func Open(ctx context.Context, cfg Config) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendNull:
		return NewNullKV(), nil
	case "", BackendFile:
		return NewFileKV(cfg.Dir)
	case BackendRedis:
		return NewRedisKV(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoKV(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown store backend %q (supported: %s)", cfg.Backend, strings.Join(Backends, ", "))
	}
}
