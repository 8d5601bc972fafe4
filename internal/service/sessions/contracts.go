package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-GearBookingService/internal/infra/storage/session"
)

// SessionRepository интерфейс реестра сессий
type SessionRepository interface {
	Create(ctx context.Context, entry sessionRepo.Entry) error
	Get(ctx context.Context, id string) (sessionRepo.Entry, error)
	Update(ctx context.Context, id string, fn func(e *sessionRepo.Entry) error) (sessionRepo.Entry, error)
	Delete(ctx context.Context, id string) error
	DeleteIdle(ctx context.Context, before time.Time) []string
	Count() int
}

// ListingServiceClient интерфейс клиента для ListingService
type ListingServiceClient interface {
	GetListing(ctx context.Context, listingID int64) (*domain.Listing, error)
}

// AvailabilityRepository интерфейс загрузчика снимка доступности
type AvailabilityRepository interface {
	GetWindow(ctx context.Context, listingID int64) (*domain.AvailabilityWindow, error)
}

// IntentPublisher интерфейс издателя внешних намерений
type IntentPublisher interface {
	Publish(ctx context.Context, intent domain.Intent) error
}

// Metrics интерфейс для метрик сессий
type Metrics interface {
	ObserveLifecycleEvent(event string, accepted bool)
	SetActiveSessions(n int)
	ObserveAvailabilityLoad(result string)
	ObserveIntent(kind string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
