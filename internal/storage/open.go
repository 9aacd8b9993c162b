package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"recipe-box/internal/config"
	"recipe-box/internal/database"
)

// Open builds the backend selected by cfg.StorageBackend.
// db is only used by the sqlite backend. The returned close function releases backend connections
// but never closes db, which the caller owns.
func Open(ctx context.Context, cfg *config.Config, db *database.DB, log *zap.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageBackend {
	case config.BackendMemory:
		return NewMemoryStore(), noop, nil
	case config.BackendFile:
		s, err := NewFileStore(cfg.DataPath)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case config.BackendSQLite:
		if db == nil {
			return nil, nil, fmt.Errorf("sqlite backend requires an open database")
		}
		return NewSQLiteStore(db), noop, nil
	case config.BackendRedis:
		client, err := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.RedisKeyPrefix), client.Close, nil
	case config.BackendMongo:
		s, err := NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Disconnect, nil
	default:
		return nil, nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}
