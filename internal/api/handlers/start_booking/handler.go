package start_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GearBookingService/internal/api/middleware"
	startBooking "github.com/m04kA/SMC-GearBookingService/internal/usecase/start_booking"
)

const (
	msgSessionNotFound  = "сессия не найдена"
	msgInvalidRange     = "выбранные даты недоступны или не соответствуют ограничениям аренды"
	msgAuthPending      = "статус входа еще загружается, повторите позже"
	msgNoClientSession  = "отсутствует заголовок X-Client-Session"
	msgInvalidSessionID = "некорректный ID сессии"
)

type Handler struct {
	useCase StartBookingUseCase
	logger  Logger
}

func NewHandler(useCase StartBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.useCase.Execute(r.Context(), &startBooking.Request{
		SessionID:       sessionID,
		ClientSessionID: middleware.GetClientSessionID(r.Context()),
		Auth:            middleware.GetAuthStatus(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, startBooking.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/start - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, startBooking.ErrInvalidRange):
			h.logger.Warn("POST /sessions/{id}/start - Invalid range: session_id=%s", sessionID)
			handlers.RespondUnprocessable(w, msgInvalidRange)

		case errors.Is(err, startBooking.ErrAuthPending):
			h.logger.Info("POST /sessions/{id}/start - Auth still loading: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgAuthPending)

		case errors.Is(err, startBooking.ErrNoClientSession):
			h.logger.Warn("POST /sessions/{id}/start - Missing client session: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgNoClientSession)

		case errors.Is(err, startBooking.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/start - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		default:
			h.logger.Error("POST /sessions/{id}/start - Failed to start booking: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.RequireAuth {
		h.logger.Info("POST /sessions/{id}/start - Redirecting to sign-in: session_id=%s", sessionID)
		handlers.RespondJSON(w, http.StatusUnauthorized, &AuthRequiredResponse{
			RequireAuth: true,
			RedirectURL: result.RedirectURL,
			Session:     handlers.NewSessionViewResponse(result.View),
		})
		return
	}

	h.logger.Info("POST /sessions/{id}/start - session_id=%s, accepted=%t, stage=%s",
		sessionID, result.Accepted, result.View.Session.Stage)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
