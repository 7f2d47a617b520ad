package repository

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"book-catalog/internal/domains/book/model"
)

// MemoryStore giữ books trong process. Một mutex toàn store được giữ
// suốt Atomically; rollback bằng snapshot lấy lúc bắt đầu.
type MemoryStore struct {
	mu     sync.Mutex
	books  map[int64]model.Book
	nextID int64
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:  make(map[int64]model.Book),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// memTx thao tác trên store khi mutex đã được giữ
type memTx struct {
	s *MemoryStore
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memTx{s}.GetByID(ctx, id)
}

func (s *MemoryStore) Exists(ctx context.Context, m Match) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memTx{s}.Exists(ctx, m)
}

func (s *MemoryStore) Insert(ctx context.Context, b *model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memTx{s}.Insert(ctx, b)
}

func (s *MemoryStore) Update(ctx context.Context, b *model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memTx{s}.Update(ctx, b)
}

func (s *MemoryStore) List(_ context.Context) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(model.Book) bool { return true }), nil
}

func (s *MemoryStore) Search(_ context.Context, f SearchFilter) ([]model.Book, error) {
	q := strings.ToLower(f.Query)
	contains := func(v string) bool { return strings.Contains(strings.ToLower(v), q) }

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(b model.Book) bool {
		switch f.Field {
		case model.FieldTitle:
			return contains(b.Title)
		case model.FieldAuthor:
			return contains(b.Author)
		case model.FieldISBN:
			return contains(b.ISBN)
		default:
			return contains(b.Title) || contains(b.Author) || contains(b.ISBN)
		}
	}), nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

func (s *MemoryStore) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := maps.Clone(s.books)
	nextID := s.nextID
	if err := fn(memTx{s}); err != nil {
		s.books = snapshot
		s.nextID = nextID
		return err
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) sorted(keep func(model.Book) bool) []model.Book {
	out := make([]model.Book, 0, len(s.books))
	for _, b := range s.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (t memTx) GetByID(_ context.Context, id int64) (*model.Book, error) {
	b, ok := t.s.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &b, nil
}

func (t memTx) Exists(_ context.Context, m Match) (bool, error) {
	for _, b := range t.s.books {
		if m.ExcludeID > 0 && b.ID == m.ExcludeID {
			continue
		}
		if b.Field(m.Field) == m.Value {
			return true, nil
		}
	}
	return false, nil
}

func (t memTx) Insert(_ context.Context, b *model.Book) error {
	if t.isbnTaken(b.ISBN, 0) {
		return fmt.Errorf("insert book: %w", model.ErrDuplicateISBN)
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = t.s.now()
	}
	b.ID = t.s.nextID
	t.s.nextID++
	t.s.books[b.ID] = *b
	return nil
}

func (t memTx) Update(_ context.Context, b *model.Book) error {
	current, ok := t.s.books[b.ID]
	if !ok {
		return model.ErrBookNotFound
	}
	if t.isbnTaken(b.ISBN, b.ID) {
		return fmt.Errorf("update book %d: %w", b.ID, model.ErrDuplicateISBN)
	}
	current.Title, current.Author, current.ISBN = b.Title, b.Author, b.ISBN
	t.s.books[b.ID] = current
	*b = current
	return nil
}

func (t memTx) isbnTaken(isbn string, excludeID int64) bool {
	for _, b := range t.s.books {
		if b.ISBN == isbn && b.ID != excludeID {
			return true
		}
	}
	return false
}
