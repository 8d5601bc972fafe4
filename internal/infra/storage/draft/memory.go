package draft

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryRepository хранит черновики в памяти процесса, для одного экземпляра сервиса
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (r *MemoryRepository) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = r.now().Add(ttl)
	}
	r.items[key] = item

	return nil
}

// Take читает и удаляет черновик под одной блокировкой
func (r *MemoryRepository) Take(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[key]
	if !ok {
		return nil, ErrDraftNotFound
	}
	delete(r.items, key)

	if r.expired(item) {
		return nil, ErrDraftNotFound
	}
	return item.value, nil
}

// Purge удаляет истекшие черновики
func (r *MemoryRepository) Purge(_ context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for key, item := range r.items {
		if r.expired(item) {
			delete(r.items, key)
			n++
		}
	}
	return n
}

func (r *MemoryRepository) expired(item memoryItem) bool {
	return !item.expiresAt.IsZero() && !r.now().Before(item.expiresAt)
}
