package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// Entry сессия бронирования вместе с данными, которые ей нужны для отображения
type Entry struct {
	ID              string
	ClientSessionID string
	Session         domain.BookingSession
	Listing         domain.Listing
	Window          domain.AvailabilityWindow
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (e Entry) clone() Entry {
	out := e
	out.Session = e.Session.Clone()
	return out
}

type slot struct {
	mu    sync.Mutex
	entry Entry

	// читаются без mu, чтобы не брать блокировки в обратном порядке
	deleted   atomic.Bool
	updatedAt atomic.Int64
}

func newSlot(entry Entry) *slot {
	s := &slot{entry: entry}
	s.updatedAt.Store(entry.UpdatedAt.UnixNano())
	return s
}

// Repository реестр сессий в памяти. Сессии никогда не пишутся в постоянное хранилище.
type Repository struct {
	mu    sync.RWMutex
	slots map[string]*slot
	now   func() time.Time
}

// NewRepository создает пустой реестр
func NewRepository() *Repository {
	return &Repository{
		slots: make(map[string]*slot),
		now:   time.Now,
	}
}

// Create сохраняет новую сессию
func (r *Repository) Create(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[entry.ID]; ok {
		return ErrSessionExists
	}

	now := r.now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.slots[entry.ID] = newSlot(entry.clone())

	return nil
}

// Get возвращает копию сессии
func (r *Repository) Get(_ context.Context, id string) (Entry, error) {
	s, ok := r.slot(id)
	if !ok {
		return Entry{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entry.clone(), nil
}

// Update выполняет fn под блокировкой конкретной сессии.
// Обновления одной сессии применяются строго по очереди.
// Если fn вернула ошибку, изменения отбрасываются.
func (r *Repository) Update(ctx context.Context, id string, fn func(e *Entry) error) (Entry, error) {
	s, ok := r.slot(id)
	if !ok {
		return Entry{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// сессию могли удалить, пока ждали блокировку
	if s.deleted.Load() {
		return Entry{}, ErrSessionNotFound
	}

	working := s.entry.clone()
	if err := fn(&working); err != nil {
		return Entry{}, err
	}
	working.ID = s.entry.ID
	working.UpdatedAt = r.now()
	s.entry = working
	s.updatedAt.Store(working.UpdatedAt.UnixNano())

	return working.clone(), nil
}

// Delete удаляет сессию
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.deleted.Store(true)
	delete(r.slots, id)

	return nil
}

// DeleteIdle удаляет сессии, которые не обновлялись с момента before, и возвращает их ID
func (r *Repository) DeleteIdle(_ context.Context, before time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, s := range r.slots {
		if s.updatedAt.Load() < before.UnixNano() {
			s.deleted.Store(true)
			delete(r.slots, id)
			removed = append(removed, id)
		}
	}

	return removed
}

// Count количество активных сессий
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.slots)
}

func (r *Repository) slot(id string) (*slot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.slots[id]
	return s, ok
}
