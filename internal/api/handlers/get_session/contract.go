package get_session

import (
	"context"

	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

type SessionsService interface {
	Get(ctx context.Context, sessionID string) (*models.SessionView, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
