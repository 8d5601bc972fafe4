package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// ListingServiceClient интерфейс клиента для ListingService
type ListingServiceClient interface {
	GetListing(ctx context.Context, listingID int64) (*domain.Listing, error)
}

// AvailabilityRepository интерфейс загрузчика снимка доступности
type AvailabilityRepository interface {
	GetWindow(ctx context.Context, listingID int64) (*domain.AvailabilityWindow, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
