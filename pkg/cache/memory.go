package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultSweepInterval là khoảng cách tối thiểu giữa hai lần dọn key hết hạn
const DefaultSweepInterval = time.Minute

// MemoryCache là Cache in-process trên go-cache, dùng khi Redis bị tắt hoặc
// không kết nối được. Values được encode JSON giống RedisCache.
//
// Không chạy janitor goroutine: key hết hạn bị xóa khi Get/Exists gặp nó,
// và toàn bộ key hết hạn được dọn trong Set khi đã quá sweepEvery.
type MemoryCache struct {
	items      *gocache.Cache
	sweepEvery time.Duration

	mu        sync.Mutex
	lastSweep time.Time
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithSweep(DefaultSweepInterval)
}

func NewMemoryCacheWithSweep(every time.Duration) *MemoryCache {
	return &MemoryCache{
		items:      gocache.New(gocache.NoExpiration, 0),
		sweepEvery: every,
		lastSweep:  time.Now(),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := m.lookup(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.items.Set(key, data, ttl)
	m.maybeSweep()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.items.Delete(k)
	}
	return nil
}

func (m *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.lookup(key)
	return ok, nil
}

func (m *MemoryCache) Ping(context.Context) error { return nil }

// Len đếm cả key đã hết hạn nhưng chưa bị dọn
func (m *MemoryCache) Len() int {
	return m.items.ItemCount()
}

// lookup: go-cache trả miss cho key hết hạn nhưng vẫn giữ nó trong map
func (m *MemoryCache) lookup(key string) ([]byte, bool) {
	v, ok := m.items.Get(key)
	if !ok {
		m.items.Delete(key)
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

func (m *MemoryCache) maybeSweep() {
	m.mu.Lock()
	now := time.Now()
	due := now.Sub(m.lastSweep) >= m.sweepEvery
	if due {
		m.lastSweep = now
	}
	m.mu.Unlock()

	if due {
		m.items.DeleteExpired()
	}
}
