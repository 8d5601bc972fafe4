package get_quote

import (
	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	getQuote "github.com/m04kA/SMC-GearBookingService/internal/usecase/get_quote"
)

// QuoteQuery параметры запроса
type QuoteQuery struct {
	Start      string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End        string `json:"end" validate:"omitempty,datetime=2006-01-02"`
	Protection string `json:"protection" validate:"omitempty,oneof=none deposit insurance"`
}

// QuoteResponse HTTP response model. quote=null: даты не выбраны или диапазон пуст
type QuoteResponse struct {
	ListingID  int64                   `json:"listingId"`
	Protection string                  `json:"protection"`
	Quote      *handlers.QuoteResponse `json:"quote"`
}

// ToUseCaseRequest конвертирует параметры в модель use case
func (q *QuoteQuery) ToUseCaseRequest(listingID int64) (*getQuote.Request, error) {
	start, err := handlers.ParseDateParam(q.Start)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseDateParam(q.End)
	if err != nil {
		return nil, err
	}

	return &getQuote.Request{
		ListingID:  listingID,
		Start:      start,
		End:        end,
		Protection: domain.ProtectionChoice(q.Protection),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQuote.Response) *QuoteResponse {
	return &QuoteResponse{
		ListingID:  resp.ListingID,
		Protection: string(resp.Protection),
		Quote:      handlers.NewQuoteResponse(resp.Quote),
	}
}
