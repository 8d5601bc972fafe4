package get_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	getQuote "github.com/m04kA/SMC-GearBookingService/internal/usecase/get_quote"
)

const (
	msgInvalidListingID     = "некорректный ID объявления"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgListingNotFound      = "объявление не найдено"
	msgProtectionNotOffered = "объявление не предлагает выбранную защиту"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/listings/{listingId}/quote
// Query params: start, end (YYYY-MM-DD), protection (none|deposit|insurance)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	listingID, err := strconv.ParseInt(mux.Vars(r)["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/quote - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	q := r.URL.Query()
	query := QuoteQuery{
		Start:      q.Get("start"),
		End:        q.Get("end"),
		Protection: q.Get("protection"),
	}
	if err := handlers.Validate(&query); err != nil {
		h.logger.Warn("GET /listings/{id}/quote - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	useCaseReq, err := query.ToUseCaseRequest(listingID)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/quote - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("GET /listings/{id}/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getQuote.ErrListingNotFound):
			h.logger.Warn("GET /listings/{id}/quote - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, getQuote.ErrProtectionNotOffered):
			h.logger.Warn("GET /listings/{id}/quote - Protection not offered: listing_id=%d, protection=%s", listingID, query.Protection)
			handlers.RespondUnprocessable(w, msgProtectionNotOffered)

		default:
			h.logger.Error("GET /listings/{id}/quote - Failed to compute quote: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
