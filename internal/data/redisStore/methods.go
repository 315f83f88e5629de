package redisStore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

func (s *Store) GetInt(ctx context.Context, key string) (int, error) {
	return s.client.Get(ctx, key).Int()
}

func (s *Store) IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// CountKeys counts keys matching pattern with SCAN so large keyspaces are not blocked.
func (s *Store) CountKeys(ctx context.Context, pattern string) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count, iter.Err()
}

// RunScript evaluates script atomically, loading it on the server when the sha is unknown.
func (s *Store) RunScript(ctx context.Context, script *redis.Script, keys []string, args ...interface{}) ([]int64, error) {
	return script.Run(ctx, s.client, keys, args...).Int64Slice()
}
