package start_booking

import (
	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	startBooking "github.com/m04kA/SMC-GearBookingService/internal/usecase/start_booking"
)

// StartBookingResponse HTTP response model
type StartBookingResponse struct {
	Accepted bool                          `json:"accepted"`
	Session  *handlers.SessionViewResponse `json:"session"`
}

// AuthRequiredResponse ответ 401: черновик сохранен, клиент уходит на вход
type AuthRequiredResponse struct {
	RequireAuth bool                          `json:"requireAuth"`
	RedirectURL string                        `json:"redirectUrl"`
	Session     *handlers.SessionViewResponse `json:"session"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *startBooking.Response) *StartBookingResponse {
	return &StartBookingResponse{
		Accepted: resp.Accepted,
		Session:  handlers.NewSessionViewResponse(resp.View),
	}
}
