package backend

import (
	"context"
	"fmt"

	"crediario/internal/log"
	"crediario/internal/storage"
	"crediario/internal/storage/memory"
	"crediario/internal/storage/postgres"
	"crediario/internal/storage/redis"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentBackend)}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemoryBackend(config), nil
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case RedisBackend:
		return f.createRedisBackend(ctx, config)
	case PostgresBackend:
		return f.createPostgresBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createMemoryBackend(config Config) *BackendResult {
	var store *memory.Store
	if config.DataDirectory != "" {
		store = memory.NewFromDir(config.DataDirectory)
	} else {
		store = memory.New()
	}

	f.logger.Info("Initialized memory backend", "data_directory", config.DataDirectory)
	return &BackendResult{Backend: store}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return &BackendResult{Backend: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createRedisBackend(ctx context.Context, config Config) (*BackendResult, error) {
	prefix := config.RedisPrefix
	if prefix == "" {
		prefix = redis.DefaultPrefix
	}
	store, err := redis.New(ctx, config.RedisURL, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis backend: %w", err)
	}

	f.logger.Info("Initialized redis backend", "prefix", prefix)
	return &BackendResult{Backend: store, Cleanup: store.Close}, nil
}

func (f *DefaultFactory) createPostgresBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := postgres.New(ctx, config.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres backend: %w", err)
	}

	f.logger.Info("Initialized postgres backend")
	return &BackendResult{Backend: store, Cleanup: store.Close}, nil
}
