package submit_event

import (
	"context"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

type SessionsService interface {
	Submit(ctx context.Context, sessionID string, event domain.Event, auth domain.AuthStatus) (*models.SubmitResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
