package redisStore

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/ResumeAPI/internal/config"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

var (
	instances = make(map[int]*Store)
	mu        sync.RWMutex
	once      sync.Once
)

type Store struct {
	client *redis.Client
	logger *logger_i.Logger
}

// Options carries the connection settings read from the environment.
type Options struct {
	Addr     string
	Password string
}

// GetRedisStore returns the shared store for the given database, dialing it on first use.
// It returns nil when redis is unreachable.
func GetRedisStore(ctx context.Context, dbType int, opts Options) *Store {
	mu.RLock()
	instance, exists := instances[dbType]
	mu.RUnlock()

	if exists {
		return instance
	}

	mu.Lock()
	defer mu.Unlock()

	if instance, exists = instances[dbType]; exists {
		return instance
	}
	return createNewStore(ctx, dbType, opts)
}

func closeRedisStores(ctx context.Context, logger *logger_i.Logger) {
	<-ctx.Done()
	logger.Info("Closing Redis Stores")
	mu.Lock()
	defer mu.Unlock()
	for dbType, store := range instances {
		if err := store.client.Close(); err != nil {
			logger.Error("Error closing redis client", "error", err)
		}
		delete(instances, dbType)
	}
	logger.Info("Redis Store Closed successfully")
}

func createNewStore(ctx context.Context, dbType int, opts Options) *Store {
	addr := opts.Addr
	if addr == "" {
		addr = config.RedisAddr
	}
	logger := logger_i.NewLogger(fmt.Sprintf("Redis Store %d", dbType))

	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              opts.Password,
		DB:                    dbType,
		ContextTimeoutEnabled: true,
		ReadTimeout:           config.RedisReadTimeout,
		WriteTimeout:          config.RedisWriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.RedisPingTimeout)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "addr", addr, "error", err)
		_ = newClient.Close()
		return nil
	}

	logger.Info("Redis store init successfully", "addr", addr)

	newStore := &Store{
		client: newClient,
		logger: logger,
	}

	instances[dbType] = newStore
	once.Do(func() {
		go closeRedisStores(ctx, logger)
	})
	return newStore
}

// NewTestStore wraps an existing client, typically one pointed at miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("Redis Test Store"),
	}
}
