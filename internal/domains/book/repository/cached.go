package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/pkg/cache"
)

// CachedStore thêm cache-aside cho GetByID lên một Store.
// Mọi write đều invalidate key của record bị đụng tới; cache lỗi chỉ được
// log, không làm fail request.
//
// generation tăng trước mỗi lần invalidate. GetByID so generation trước khi
// đọc store và sau khi Set: nếu có invalidate xen giữa thì bản vừa ghi có thể
// đã cũ và bị xóa lại.
type CachedStore struct {
	Store
	cache cache.Cache
	ttl   time.Duration

	generation atomic.Uint64
}

func NewCachedStore(store Store, c cache.Cache, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: store, cache: c, ttl: ttl}
}

func bookCacheKey(id int64) string {
	return cache.Key(cache.NamespaceBook, id)
}

func (s *CachedStore) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	key := bookCacheKey(id)

	var cached model.Book
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("book cache read failed")
	}
	if found {
		return &cached, nil
	}

	gen := s.generation.Load()
	book, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.generation.Load() != gen {
		return book, nil
	}
	if err := s.cache.Set(ctx, key, book, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("book cache write failed")
		return book, nil
	}
	if s.generation.Load() != gen {
		s.evict(ctx, key)
	}
	return book, nil
}

func (s *CachedStore) Update(ctx context.Context, b *model.Book) error {
	defer s.invalidate(ctx, b.ID)
	return s.Store.Update(ctx, b)
}

func (s *CachedStore) Delete(ctx context.Context, id int64) error {
	defer s.invalidate(ctx, id)
	return s.Store.Delete(ctx, id)
}

// Atomically invalidate các record được update trong transaction sau khi fn kết thúc
func (s *CachedStore) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	var touched []int64
	defer func() { s.invalidate(ctx, touched...) }()

	return s.Store.Atomically(ctx, func(tx Tx) error {
		return fn(&trackingTx{Tx: tx, touched: &touched})
	})
}

func (s *CachedStore) invalidate(ctx context.Context, ids ...int64) {
	if len(ids) == 0 {
		return
	}
	s.generation.Add(1)
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = bookCacheKey(id)
	}
	s.evict(ctx, keys...)
}

func (s *CachedStore) evict(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("book cache invalidation failed")
	}
}

type trackingTx struct {
	Tx
	touched *[]int64
}

func (t *trackingTx) Update(ctx context.Context, b *model.Book) error {
	*t.touched = append(*t.touched, b.ID)
	return t.Tx.Update(ctx, b)
}
