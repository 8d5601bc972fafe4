package change_listing

import (
	"context"

	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

type SessionsService interface {
	ResetIfListingChanged(ctx context.Context, sessionID string, listingID int64) (*models.SessionView, bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
