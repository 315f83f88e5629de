package store

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/ResumeAPI/internal/config"
	"github.com/akolanti/ResumeAPI/internal/data/redisStore"
	"github.com/akolanti/ResumeAPI/internal/domain/quotaModel"
	"github.com/akolanti/ResumeAPI/internal/metrics"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

// reserveScript returns {allowed, used}. The expiry is set once, when the counter is created.
var reserveScript = redis.NewScript(`
local used = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if used >= limit then
	return {0, used}
end
used = redis.call('INCR', KEYS[1])
local ttl = tonumber(ARGV[2])
if used == 1 and ttl > 0 then
	redis.call('PEXPIRE', KEYS[1], ttl)
end
return {1, used}
`)

type RedisQuotaStore struct {
	store  *redisStore.Store
	limit  int
	ttl    time.Duration
	logger *logger_i.Logger
}

// GetRedisQuotaStore returns nil when redis cannot be reached.
func GetRedisQuotaStore(ctx context.Context, opts redisStore.Options, limit int, ttl time.Duration) *RedisQuotaStore {
	internal := redisStore.GetRedisStore(ctx, config.RedisQuotaStore, opts)
	if internal == nil {
		return nil
	}
	return newRedisQuotaStore(internal, limit, ttl)
}

func TestQuotaStore(internal *redisStore.Store, limit int, ttl time.Duration) *RedisQuotaStore {
	return newRedisQuotaStore(internal, limit, ttl)
}

func newRedisQuotaStore(internal *redisStore.Store, limit int, ttl time.Duration) *RedisQuotaStore {
	return &RedisQuotaStore{
		store:  internal,
		limit:  limit,
		ttl:    ttl,
		logger: logger_i.NewLogger("QuotaStore"),
	}
}

func quotaKey(clientKey string) string {
	return config.QuotaKeyPrefix + clientKey
}

func (s *RedisQuotaStore) Limit() int {
	return s.limit
}

func (s *RedisQuotaStore) Reserve(ctx context.Context, clientKey string) (quotaModel.Reservation, error) {
	log := s.logger.FromContext(ctx).With("client", clientKey)

	result, err := s.store.RunScript(ctx, reserveScript, []string{quotaKey(clientKey)}, s.limit, s.ttl.Milliseconds())
	if err != nil {
		log.Error("quota reserve failed", "error", err)
		return quotaModel.Reservation{}, fmt.Errorf("reserve quota: %w", err)
	}
	if len(result) != 2 {
		return quotaModel.Reservation{}, fmt.Errorf("reserve quota: unexpected script result %v", result)
	}

	allowed, used := result[0] == 1, int(result[1])
	if allowed && used == 1 {
		s.refreshTrackedClients(ctx)
	}
	log.Debug("quota reserved", "allowed", allowed, "used", used)
	return quotaModel.NewReservation(allowed, used, s.limit), nil
}

func (s *RedisQuotaStore) Remaining(ctx context.Context, clientKey string) (int, error) {
	used, err := s.store.GetInt(ctx, quotaKey(clientKey))
	if s.store.IsNil(err) {
		return s.limit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read quota: %w", err)
	}
	return quotaModel.NewReservation(true, used, s.limit).Remaining, nil
}

func (s *RedisQuotaStore) refreshTrackedClients(ctx context.Context) {
	count, err := s.store.CountKeys(ctx, config.QuotaKeyPrefix+"*")
	if err != nil {
		s.logger.FromContext(ctx).Warn("could not count quota keys", "error", err)
		return
	}
	metrics.SetQuotaTrackedClients(count)
}
