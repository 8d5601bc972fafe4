package open_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GearBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

const (
	msgInvalidListingID   = "некорректный ID объявления"
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

// Handle POST /api/v1/listings/{listingId}/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	listingID, err := strconv.ParseInt(mux.Vars(r)["listingId"], 10, 64)
	if err != nil || listingID <= 0 {
		h.logger.Warn("POST /listings/{id}/sessions - Invalid listing ID: %q", mux.Vars(r)["listingId"])
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	view, err := h.service.Open(r.Context(), models.OpenRequest{
		ListingID:       listingID,
		ClientSessionID: middleware.GetClientSessionID(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrListingNotFound):
			h.logger.Warn("POST /listings/{id}/sessions - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, sessions.ErrListingUnavailable):
			h.logger.Error("POST /listings/{id}/sessions - Listing service unavailable: listing_id=%d, error=%v", listingID, err)
			handlers.RespondBadGateway(w, msgListingUnavailable)

		default:
			h.logger.Error("POST /listings/{id}/sessions - Failed to open session: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /listings/{id}/sessions - Session opened: session_id=%s, listing_id=%d", view.ID, listingID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewSessionViewResponse(view))
}
