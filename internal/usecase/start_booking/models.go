package start_booking

import (
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

// Request модель запроса на начало бронирования
type Request struct {
	SessionID       string
	ClientSessionID string // ключ браузерной сессии для черновика
	Auth            domain.AuthStatus
}

// Response модель ответа
type Response struct {
	View     *models.SessionView
	Accepted bool

	// RequireAuth пользователь не вошел: черновик сохранен, нужен редирект
	RequireAuth bool
	RedirectURL string
}
