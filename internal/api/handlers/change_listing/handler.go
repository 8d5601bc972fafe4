package change_listing

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия не найдена"
	msgListingNotFound    = "объявление не найдено"
	msgListingUnavailable = "сервис объявлений недоступен"
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

// Handle PUT /api/v1/sessions/{sessionId}/listing
// Сбрасывает сессию, только если карточка теперь показывает другое объявление
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req ChangeListingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/listing - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/listing - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	view, changed, err := h.service.ResetIfListingChanged(r.Context(), sessionID, req.ListingID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PUT /sessions/{id}/listing - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrListingNotFound):
			h.logger.Warn("PUT /sessions/{id}/listing - Listing not found: listing_id=%d", req.ListingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, sessions.ErrListingUnavailable):
			h.logger.Error("PUT /sessions/{id}/listing - Listing service unavailable: error=%v", err)
			handlers.RespondBadGateway(w, msgListingUnavailable)

		default:
			h.logger.Error("PUT /sessions/{id}/listing - Failed to change listing: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id}/listing - session_id=%s, listing_id=%d, changed=%t", sessionID, req.ListingID, changed)
	handlers.RespondJSON(w, http.StatusOK, &ChangeListingResponse{
		Changed: changed,
		Session: handlers.NewSessionViewResponse(view),
	})
}
