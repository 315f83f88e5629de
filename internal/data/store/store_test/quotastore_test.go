package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/ResumeAPI/internal/config"
	"github.com/akolanti/ResumeAPI/internal/data/redisStore"
	"github.com/akolanti/ResumeAPI/internal/data/store"
	"github.com/akolanti/ResumeAPI/internal/domain/quotaModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisQuota(t *testing.T, limit int, ttl time.Duration) (*store.RedisQuotaStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.TestQuotaStore(redisStore.NewTestStore(client), limit, ttl), mr
}

func quotaStores(t *testing.T, limit int) map[string]quotaModel.QuotaStore {
	redisQuota, _ := newRedisQuota(t, limit, 0)
	return map[string]quotaModel.QuotaStore{
		"memory": store.InitInMemoryQuotaStore(limit, 0),
		"redis":  redisQuota,
	}
}

func TestQuotaStore_ReserveUntilExhausted(t *testing.T) {
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	for name, quota := range quotaStores(t, 3) {
		t.Run(name, func(t *testing.T) {
			wantRemaining := []int{2, 1, 0}
			for i, want := range wantRemaining {
				res, err := quota.Reserve(ctx, "10.0.0.1")
				if err != nil {
					t.Fatalf("Reserve #%d failed: %v", i+1, err)
				}
				if !res.Allowed {
					t.Fatalf("Reserve #%d was refused, want allowed", i+1)
				}
				if res.Remaining != want {
					t.Errorf("Reserve #%d remaining = %d, want %d", i+1, res.Remaining, want)
				}
			}

			for i := 0; i < 2; i++ {
				res, err := quota.Reserve(ctx, "10.0.0.1")
				if err != nil {
					t.Fatalf("Reserve after limit failed: %v", err)
				}
				if res.Allowed || res.Remaining != 0 || res.Used != 3 {
					t.Errorf("Reserve after limit = %+v, want refused with used=3", res)
				}
			}

			remaining, err := quota.Remaining(ctx, "10.0.0.1")
			if err != nil || remaining != 0 {
				t.Errorf("Remaining = %d, %v; want 0", remaining, err)
			}
		})
	}
}

func TestQuotaStore_ClientsAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, quota := range quotaStores(t, 3) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if _, err := quota.Reserve(ctx, "client-a"); err != nil {
					t.Fatalf("Reserve failed: %v", err)
				}
			}

			remaining, err := quota.Remaining(ctx, "client-b")
			if err != nil || remaining != 3 {
				t.Errorf("untouched client remaining = %d, %v; want 3", remaining, err)
			}

			res, err := quota.Reserve(ctx, "client-b")
			if err != nil || !res.Allowed || res.Remaining != 2 {
				t.Errorf("client-b first reserve = %+v, %v; want allowed with 2 left", res, err)
			}
		})
	}
}

func TestQuotaStore_ConcurrentReserveNeverExceedsLimit(t *testing.T) {
	ctx := context.Background()
	const limit = 3
	const attempts = 50

	for name, quota := range quotaStores(t, limit) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			var mu sync.Mutex
			allowed := 0

			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					res, err := quota.Reserve(ctx, "burst-client")
					if err != nil {
						t.Errorf("Reserve failed: %v", err)
						return
					}
					if res.Allowed {
						mu.Lock()
						allowed++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			if allowed != limit {
				t.Errorf("allowed reservations = %d, want exactly %d", allowed, limit)
			}
		})
	}
}

func TestRedisQuotaStore_KeyLayout(t *testing.T) {
	quota, mr := newRedisQuota(t, 3, 0)
	ctx := context.Background()

	if _, err := quota.Reserve(ctx, "192.168.1.7"); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	key := config.QuotaKeyPrefix + "192.168.1.7"
	got, err := mr.Get(key)
	if err != nil || got != "1" {
		t.Errorf("counter %s = %q, %v; want \"1\"", key, got, err)
	}
	if ttl := mr.TTL(key); ttl != 0 {
		t.Errorf("counter without ttl should not expire, got %v", ttl)
	}
}

func TestRedisQuotaStore_WindowExpires(t *testing.T) {
	quota, mr := newRedisQuota(t, 2, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := quota.Reserve(ctx, "client"); err != nil {
			t.Fatalf("Reserve failed: %v", err)
		}
	}
	if remaining, _ := quota.Remaining(ctx, "client"); remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}

	mr.FastForward(time.Hour + time.Second)

	remaining, err := quota.Remaining(ctx, "client")
	if err != nil || remaining != 2 {
		t.Errorf("remaining after window = %d, %v; want 2", remaining, err)
	}
}

func TestRedisQuotaStore_Unavailable(t *testing.T) {
	quota, mr := newRedisQuota(t, 3, 0)
	mr.Close()

	_, err := quota.Reserve(context.Background(), "client")
	if err == nil {
		t.Fatal("expected an error when redis is down")
	}
	if _, err := quota.Remaining(context.Background(), "client"); err == nil {
		t.Error("expected Remaining to fail when redis is down")
	}
}
