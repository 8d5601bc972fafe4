package resume_draft

import (
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

// Request модель запроса на восстановление черновика после входа
type Request struct {
	SessionID       string
	ClientSessionID string
	Auth            domain.AuthStatus
}

// Response модель ответа
type Response struct {
	View *models.SessionView
	// Restored даты из черновика применены к сессии
	Restored bool
}
