package start_booking

import (
	"context"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

// SessionsService интерфейс сервиса сессий
type SessionsService interface {
	Get(ctx context.Context, sessionID string) (*models.SessionView, error)
	Submit(ctx context.Context, sessionID string, event domain.Event, auth domain.AuthStatus) (*models.SubmitResult, error)
	StartBooking(ctx context.Context, sessionID string, auth domain.AuthStatus) (*models.SubmitResult, error)
}

// DraftsService интерфейс сервиса черновиков
type DraftsService interface {
	Save(ctx context.Context, clientSessionID string, session domain.BookingSession) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
