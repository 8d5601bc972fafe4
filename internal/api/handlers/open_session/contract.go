package open_session

import (
	"context"

	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

type SessionsService interface {
	Open(ctx context.Context, req models.OpenRequest) (*models.SessionView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
