package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-GearBookingService/internal/usecase/check_availability"
)

const (
	msgInvalidListingID = "некорректный ID объявления"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidQuery     = "нужен параметр date или пара start и end"
	msgListingNotFound  = "объявление не найдено"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/listings/{listingId}/availability
// Query params: date (YYYY-MM-DD) либо start и end (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	listingID, err := strconv.ParseInt(mux.Vars(r)["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/availability - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	q := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(listingID, q.Get("date"), q.Get("start"), q.Get("end"))
	if err != nil {
		h.logger.Warn("GET /listings/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /listings/{id}/availability - Invalid input: listing_id=%d, error=%v", listingID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, checkAvailability.ErrListingNotFound):
			h.logger.Warn("GET /listings/{id}/availability - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		default:
			h.logger.Error("GET /listings/{id}/availability - Failed to check availability: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
