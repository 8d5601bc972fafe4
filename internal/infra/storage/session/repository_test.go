package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/internal/lifecycle"
)

func newEntry(id string) Entry {
	return Entry{
		ID:      id,
		Session: lifecycle.New(1, "Tent"),
		Listing: domain.Listing{ID: 1, Title: "Tent"},
		Window:  domain.PendingWindow(1),
	}
}

func TestRepository_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.Create(ctx, newEntry("a")))
	assert.ErrorIs(t, repo.Create(ctx, newEntry("a")), ErrSessionExists)
	assert.Equal(t, 1, repo.Count())

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.StageDetails, got.Session.Stage)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "a"), ErrSessionNotFound)
}

func TestRepository_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.Create(ctx, newEntry("a")))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	got.Session.History[0] = "tampered"
	got.Session.Stage = domain.StageCompleted

	again, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.StageDetails, again.Session.Stage)
	assert.Equal(t, "Started a new booking for Tent.", again.Session.History[0])
}

func TestRepository_UpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.Create(ctx, newEntry("a")))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "a", func(e *Entry) error {
		e.Session.Stage = domain.StagePayment
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.StageDetails, got.Session.Stage)
}

func TestRepository_UpdateIsSerialized(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.Create(ctx, newEntry("a")))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "a", func(e *Entry) error {
				e.Session, _ = lifecycle.Reduce(e.Session, domain.Simple(domain.EventRequireAuth))
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, got.Session.History, n+1)
}

func TestRepository_DeleteIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	require.NoError(t, repo.Create(ctx, newEntry("old")))

	now = now.Add(time.Hour)
	require.NoError(t, repo.Create(ctx, newEntry("fresh")))

	removed := repo.DeleteIdle(ctx, now.Add(-30*time.Minute))

	assert.Equal(t, []string{"old"}, removed)
	assert.Equal(t, 1, repo.Count())
}

func TestRepository_UpdateMissing(t *testing.T) {
	_, err := NewRepository().Update(context.Background(), "nope", func(*Entry) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
