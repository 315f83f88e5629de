package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/ResumeAPI/internal/domain/quotaModel"
	"github.com/akolanti/ResumeAPI/internal/metrics"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
)

type quotaEntry struct {
	count       int
	windowStart time.Time
}

// InMemoryQuotaStore keeps counters in process memory.
// A counter's window starts at the client's first question; with ttl == 0 it never ends.
type InMemoryQuotaStore struct {
	quotaMutex *sync.Mutex
	quotaMap   map[string]*quotaEntry
	limit      int
	ttl        time.Duration
	now        func() time.Time
	logger     *logger_i.Logger
}

func InitInMemoryQuotaStore(limit int, ttl time.Duration) *InMemoryQuotaStore {
	return &InMemoryQuotaStore{
		quotaMutex: new(sync.Mutex),
		quotaMap:   make(map[string]*quotaEntry),
		limit:      limit,
		ttl:        ttl,
		now:        time.Now,
		logger:     logger_i.NewLogger("InMem QuotaStore"),
	}
}

func (store *InMemoryQuotaStore) Limit() int {
	return store.limit
}

func (store *InMemoryQuotaStore) Reserve(ctx context.Context, clientKey string) (quotaModel.Reservation, error) {
	store.quotaMutex.Lock()
	defer store.quotaMutex.Unlock()

	entry := store.liveEntry(clientKey)
	if entry == nil {
		entry = &quotaEntry{windowStart: store.now()}
		store.quotaMap[clientKey] = entry
		metrics.SetQuotaTrackedClients(len(store.quotaMap))
	}
	if entry.count >= store.limit {
		store.logger.FromContext(ctx).Debug("Quota exhausted", "client", clientKey, "used", entry.count)
		return quotaModel.NewReservation(false, entry.count, store.limit), nil
	}
	entry.count++
	return quotaModel.NewReservation(true, entry.count, store.limit), nil
}

func (store *InMemoryQuotaStore) Remaining(ctx context.Context, clientKey string) (int, error) {
	store.quotaMutex.Lock()
	defer store.quotaMutex.Unlock()

	used := 0
	if entry := store.liveEntry(clientKey); entry != nil {
		used = entry.count
	}
	return quotaModel.NewReservation(true, used, store.limit).Remaining, nil
}

// liveEntry must be called with the mutex held.
func (store *InMemoryQuotaStore) liveEntry(clientKey string) *quotaEntry {
	entry, found := store.quotaMap[clientKey]
	if !found {
		return nil
	}
	if store.expired(entry) {
		delete(store.quotaMap, clientKey)
		metrics.SetQuotaTrackedClients(len(store.quotaMap))
		return nil
	}
	return entry
}

func (store *InMemoryQuotaStore) expired(entry *quotaEntry) bool {
	return store.ttl > 0 && store.now().Sub(entry.windowStart) >= store.ttl
}

// Cleanup drops expired counters. It is a no-op when no ttl is configured.
func (store *InMemoryQuotaStore) Cleanup() int {
	if store.ttl <= 0 {
		return 0
	}
	store.quotaMutex.Lock()
	defer store.quotaMutex.Unlock()

	removed := 0
	for key, entry := range store.quotaMap {
		if store.expired(entry) {
			delete(store.quotaMap, key)
			removed++
		}
	}
	metrics.SetQuotaTrackedClients(len(store.quotaMap))
	return removed
}

// StartJanitor runs Cleanup every interval until ctx is cancelled.
func (store *InMemoryQuotaStore) StartJanitor(ctx context.Context, every time.Duration) {
	if store.ttl <= 0 || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := store.Cleanup(); removed > 0 {
					store.logger.Info("Evicted idle quota counters", "removed", removed)
				}
			}
		}
	}()
}
