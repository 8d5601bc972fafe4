package submit_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GearBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUseStartEndpoint   = "начало бронирования выполняется через POST /sessions/{sessionId}/start"
	msgSessionNotFound    = "сессия не найдена"
)

type Handler struct {
	service SessionsService
	logger  Logger
}

func NewHandler(service SessionsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/events
// Недопустимое в текущем этапе событие не ошибка: 200 и accepted=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SubmitEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /sessions/{id}/events - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	event, err := req.ToEvent()
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/events - Failed to parse event %s: %v", req.Type, err)
		if errors.Is(err, errStartBookingGesture) {
			handlers.RespondBadRequest(w, msgUseStartEndpoint)
			return
		}
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Submit(r.Context(), sessionID, event, middleware.GetAuthStatus(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/events - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("POST /sessions/{id}/events - Failed to submit %s: session_id=%s, error=%v", event.Type, sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SubmitEventResponse{
		Accepted: result.Accepted,
		Session:  handlers.NewSessionViewResponse(result.View),
	})
}
